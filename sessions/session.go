package sessions

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-interview-server/candidates"
	"github.com/jrsteele09/go-interview-server/internal/utils"
	"github.com/jrsteele09/go-interview-server/passkeys"
	"github.com/jrsteele09/go-interview-server/questions"
)

// Stage is the position of a session in the interview lifecycle.
type Stage string

const (
	StageStart          Stage = "start"
	StageUpload         Stage = "upload"
	StageCollectingInfo Stage = "collecting_info"
	StageInProgress     Stage = "in_progress"
	StageCompleted      Stage = "completed"
)

// NoPasskey marks a session that was started without a passkey.
const NoPasskey = passkeys.None

// QuestionResult is the scored answer to one question. It is never modified after it is appended.
type QuestionResult struct {
	Question   string         `json:"question"`
	Answer     string         `json:"answer"`
	Difficulty questions.Tier `json:"difficulty"`
	Score      int            `json:"score"`
	Feedback   string         `json:"feedback"`
}

// Session is one candidate's interview.
// Until completion len(Answers) == QuestionIndex, and TotalScore is always the sum of the answer scores.
type Session struct {
	ID            string             `json:"id"`
	Candidate     candidates.Profile `json:"candidate"`
	Passkey       string             `json:"passkey"`
	Answers       []QuestionResult   `json:"answers"`
	TotalScore    int                `json:"total_score"`
	QuestionIndex int                `json:"question_index"`
	Stage         Stage              `json:"stage"`
	CreatedAt     time.Time          `json:"created_at"`
	CompletedAt   *time.Time         `json:"completed_at,omitempty"` // Set only once completed
	Summary       string             `json:"summary,omitempty"`      // Set only once completed
}

// NewID returns a unique session identifier.
func NewID() string {
	return "interview-" + uuid.NewString()
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	c := *s
	if s.Answers != nil {
		c.Answers = make([]QuestionResult, len(s.Answers))
		copy(c.Answers, s.Answers)
	}
	if s.CompletedAt != nil {
		c.CompletedAt = utils.Ptr(*s.CompletedAt)
	}
	return &c
}

// HasPasskey reports whether the session carries a real passkey.
func (s *Session) HasPasskey() bool {
	return s.Passkey != "" && s.Passkey != NoPasskey
}

// Record appends a result and keeps the score and ordinal in step with it.
func (s *Session) Record(result QuestionResult) {
	s.Answers = append(s.Answers, result)
	s.TotalScore += result.Score
	s.QuestionIndex++
}

// Performance buckets a total score.
func Performance(total int) string {
	switch {
	case total >= 80:
		return "Excellent"
	case total >= 60:
		return "Good"
	case total >= 40:
		return "Average"
	default:
		return "Poor"
	}
}

// Summarize is the completion summary for a total score.
func Summarize(total int) string {
	return fmt.Sprintf("%s performance with %d points.", Performance(total), total)
}
