package interview

import (
	"math"
	"sync"
	"time"

	"github.com/jrsteele09/go-interview-server/candidates"
	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
	"github.com/jrsteele09/go-interview-server/questions"
	"github.com/jrsteele09/go-interview-server/sessions"
)

// liveSession is the in-memory state of one interview. Every field except id is guarded by lock.
type liveSession struct {
	id     string
	lock   sync.Mutex
	record *sessions.Session

	// intake queue
	missing []candidates.Field
	cursor  int

	// pending is set while the extractor or evaluator runs with the lock released.
	pending bool

	// generation invalidates deadline callbacks for questions that are no longer open.
	generation uint64
	timer      Timer
	question   *questions.Question
	deadline   time.Time

	usageRecorded bool
	evictionArmed bool
	transcript    []Message
	observer      Observer
}

func newLiveSession(record *sessions.Session, observer Observer) *liveSession {
	return &liveSession{id: record.ID, record: record, observer: observer}
}

func (ls *liveSession) say(speaker Speaker, text string) {
	msg := Message{Speaker: speaker, Text: text}
	ls.transcript = append(ls.transcript, msg)
	if ls.observer != nil {
		ls.observer(ls.id, msg)
	}
}

// checkOpen rejects input for completed or busy sessions.
func (ls *liveSession) checkOpen() error {
	if ls.record.Stage == sessions.StageCompleted {
		return apperr.ErrSessionCompleted
	}
	if ls.pending {
		return apperr.ErrBusy
	}
	return nil
}

// closeQuestion cancels the open question's deadline and returns it.
// Any deadline callback already in flight sees a newer generation and does nothing.
func (ls *liveSession) closeQuestion() questions.Question {
	ls.generation++
	if ls.timer != nil {
		ls.timer.Stop()
		ls.timer = nil
	}
	q := *ls.question
	ls.question = nil
	ls.deadline = time.Time{}
	return q
}

// remaining is the whole seconds left on the open question, rounded up.
func (ls *liveSession) remaining(now time.Time) (int, bool) {
	if ls.question == nil || ls.pending || ls.record.Stage != sessions.StageInProgress {
		return 0, false
	}
	left := ls.deadline.Sub(now)
	if left <= 0 {
		return 0, true
	}
	return int(math.Ceil(left.Seconds())), true
}

func (ls *liveSession) snapshot() *sessions.Session {
	return ls.record.Clone()
}

func (ls *liveSession) messages() []Message {
	return append([]Message(nil), ls.transcript...)
}
