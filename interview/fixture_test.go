package interview_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-interview-server/candidates"
	"github.com/jrsteele09/go-interview-server/evaluation"
	"github.com/jrsteele09/go-interview-server/extraction"
	"github.com/jrsteele09/go-interview-server/interview"
	passkeyrepofake "github.com/jrsteele09/go-interview-server/passkeys/repofake"
	"github.com/jrsteele09/go-interview-server/reviewers"
	reviewerrepofake "github.com/jrsteele09/go-interview-server/reviewers/repofake"
	"github.com/jrsteele09/go-interview-server/sessions"
	sessionrepofake "github.com/jrsteele09/go-interview-server/sessions/repofake"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const goodAnswer = "I would use useState and useEffect."

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

// fakeClock drives deadlines by hand. Callbacks run on the goroutine that calls Advance or Fire.
type fakeClock struct {
	lock   sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) interview.Timer {
	c.lock.Lock()
	defer c.lock.Unlock()
	t := &fakeTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return &fakeTimerHandle{clock: c, timer: t}
}

type fakeTimerHandle struct {
	clock *fakeClock
	timer *fakeTimer
}

func (h *fakeTimerHandle) Stop() bool {
	h.clock.lock.Lock()
	defer h.clock.lock.Unlock()
	wasActive := !h.timer.stopped && !h.timer.fired
	h.timer.stopped = true
	return wasActive
}

// Advance moves time forward and runs every timer that became due.
func (c *fakeClock) Advance(d time.Duration) {
	c.lock.Lock()
	c.now = c.now.Add(d)
	c.lock.Unlock()

	for {
		c.lock.Lock()
		var due *fakeTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && !t.at.After(c.now) {
				due = t
				break
			}
		}
		if due != nil {
			due.fired = true
		}
		c.lock.Unlock()

		if due == nil {
			return
		}
		due.f()
	}
}

// FireStale runs the n-th timer's callback even if it was stopped, as a timer racing Stop would.
func (c *fakeClock) FireStale(n int) {
	c.lock.Lock()
	t := c.timers[n]
	c.lock.Unlock()
	t.f()
}

func (c *fakeClock) TimerCount() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.timers)
}

type testFixture struct {
	service      *interview.Service
	sessionRepo  *sessionrepofake.FakeSessionRepo
	passkeyRepo  *passkeyrepofake.FakePasskeyRepo
	reviewerRepo *reviewerrepofake.FakeReviewerRepo
	clock        *fakeClock

	lock       sync.Mutex
	profile    candidates.Profile
	extractErr error
}

func (f *testFixture) setExtraction(profile candidates.Profile, err error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.profile = profile
	f.extractErr = err
}

func (f *testFixture) extract(_ context.Context, _ extraction.Document) (candidates.Profile, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.profile, f.extractErr
}

// setupTestFixture builds a Service whose placeholder evaluator scores exactly the tier base.
func setupTestFixture(t *testing.T, evaluator evaluation.Evaluator, options ...interview.ServiceOption) *testFixture {
	t.Helper()

	if evaluator == nil {
		evaluator = evaluation.NewPlaceholder(
			evaluation.WithLatency(0),
			evaluation.WithRandom(func() float64 { return 0.5 }),
		)
	}

	f := &testFixture{
		sessionRepo:  sessionrepofake.NewFakeSessionRepo(),
		passkeyRepo:  passkeyrepofake.NewFakePasskeyRepo(),
		reviewerRepo: reviewerrepofake.NewFakeReviewerRepo(),
		clock:        newFakeClock(),
		profile:      candidates.Profile{Name: "John Doe", Phone: "+1234567890"},
	}

	repos := interview.Repos{
		Sessions:  f.sessionRepo,
		Passkeys:  f.passkeyRepo,
		Reviewers: f.reviewerRepo,
	}
	collaborators := interview.Collaborators{
		Evaluator: evaluator,
		Extractor: extraction.ExtractorFunc(f.extract),
	}
	options = append([]interview.ServiceOption{
		interview.WithNowTime(f.clock.Now),
		interview.WithAfterFunc(f.clock.AfterFunc),
		interview.WithHasher(reviewers.NewHasher(bcrypt.MinCost, "")),
	}, options...)

	service, err := interview.NewService(repos, collaborators, options...)
	require.NoError(t, err)
	f.service = service
	return f
}

// startInterview creates a session and uploads a resume that resolves every field.
func (f *testFixture) startInterview(t *testing.T, passkey string) string {
	t.Helper()
	ctx := context.Background()

	id, err := f.service.CreateSession(ctx, "a@b.com", passkey)
	require.NoError(t, err)
	require.NoError(t, f.service.SubmitUpload(ctx, id, extraction.Document{Name: "resume.pdf"}))
	require.Equal(t, sessions.StageInProgress, f.snapshot(t, id).Stage)
	return id
}

func (f *testFixture) snapshot(t *testing.T, id string) *sessions.Session {
	t.Helper()
	s, err := f.service.Snapshot(context.Background(), id)
	require.NoError(t, err)
	return s
}

func (f *testFixture) transcript(t *testing.T, id string) []interview.Message {
	t.Helper()
	msgs, err := f.service.Transcript(id)
	require.NoError(t, err)
	return msgs
}

func (f *testFixture) lastMessage(t *testing.T, id string) interview.Message {
	t.Helper()
	msgs := f.transcript(t, id)
	require.NotEmpty(t, msgs)
	return msgs[len(msgs)-1]
}

func requireInvariants(t *testing.T, s *sessions.Session) {
	t.Helper()
	total := 0
	for _, a := range s.Answers {
		require.GreaterOrEqual(t, a.Score, 0)
		require.LessOrEqual(t, a.Score, 100)
		total += a.Score
	}
	require.Equal(t, total, s.TotalScore)
	require.GreaterOrEqual(t, s.QuestionIndex, 0)
	require.LessOrEqual(t, s.QuestionIndex, 6)
	if s.Stage != sessions.StageCompleted {
		require.Len(t, s.Answers, s.QuestionIndex)
		require.Nil(t, s.CompletedAt)
		require.Empty(t, s.Summary)
	}
}
