// Package interview runs candidate interviews: resume intake, the timed
// question loop, scoring and completion.
package interview

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jrsteele09/go-interview-server/evaluation"
	"github.com/jrsteele09/go-interview-server/extraction"
	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
	"github.com/jrsteele09/go-interview-server/passkeys"
	"github.com/jrsteele09/go-interview-server/questions"
	"github.com/jrsteele09/go-interview-server/reviewers"
	"github.com/jrsteele09/go-interview-server/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const DefaultEvaluationTimeout = 30 * time.Second

// DefaultRetention is how long a finished interview stays live before only the store serves it.
const DefaultRetention = 10 * time.Minute

// Repos holds all repository dependencies for the Service.
type Repos struct {
	Sessions  sessions.Repo  // Completed interviews
	Passkeys  passkeys.Repo  // Issued passkeys and their usage
	Reviewers reviewers.Repo // The reviewer credential
}

// Collaborators are the external services an interview consumes.
type Collaborators struct {
	Bank      *questions.Bank
	Evaluator evaluation.Evaluator
	Extractor extraction.Extractor
}

// Service owns every live interview and fronts the passkey ledger and reviewer access.
type Service struct {
	repos     Repos
	bank      *questions.Bank
	evaluator evaluation.Evaluator
	extractor extraction.Extractor

	ledger      *passkeys.Ledger
	credentials *reviewers.Store
	access      *reviewers.Access

	hasher            *reviewers.Hasher
	issueAttempts     int
	evaluationTimeout time.Duration
	retention         time.Duration
	nowTime           func() time.Time
	afterFunc         AfterFunc
	observer          Observer
	logger            zerolog.Logger
	validate          *validator.Validate

	lock sync.RWMutex
	live map[string]*liveSession
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithAfterFunc replaces time.AfterFunc for question deadlines.
func WithAfterFunc(f AfterFunc) ServiceOption {
	return func(s *Service) {
		s.afterFunc = f
	}
}

func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithObserver(observer Observer) ServiceOption {
	return func(s *Service) {
		s.observer = observer
	}
}

// WithEvaluationTimeout bounds a single evaluation, including retries.
func WithEvaluationTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.evaluationTimeout = d
		}
	}
}

// WithRetention sets how long a completed interview keeps its transcript in memory.
func WithRetention(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.retention = d
		}
	}
}

// WithHasher sets how reviewer secrets are digested.
func WithHasher(h *reviewers.Hasher) ServiceOption {
	return func(s *Service) {
		s.hasher = h
	}
}

func WithPasskeyIssueAttempts(n int) ServiceOption {
	return func(s *Service) {
		s.issueAttempts = n
	}
}

// NewService initializes a Service with required dependencies.
func NewService(repos Repos, collaborators Collaborators, options ...ServiceOption) (*Service, error) {
	if repos.Sessions == nil {
		return nil, errors.New("[NewService] Sessions repo is required")
	}
	if repos.Passkeys == nil {
		return nil, errors.New("[NewService] Passkeys repo is required")
	}
	if repos.Reviewers == nil {
		return nil, errors.New("[NewService] Reviewers repo is required")
	}
	if collaborators.Evaluator == nil {
		return nil, errors.New("[NewService] Evaluator is required")
	}
	if collaborators.Extractor == nil {
		return nil, errors.New("[NewService] Extractor is required")
	}
	if collaborators.Bank == nil {
		collaborators.Bank = questions.DefaultBank()
	}

	s := &Service{
		repos:             repos,
		bank:              collaborators.Bank,
		evaluator:         collaborators.Evaluator,
		extractor:         collaborators.Extractor,
		hasher:            reviewers.NewHasher(bcrypt.DefaultCost, ""),
		issueAttempts:     passkeys.DefaultIssueAttempts,
		evaluationTimeout: DefaultEvaluationTimeout,
		retention:         DefaultRetention,
		nowTime:           time.Now,
		afterFunc:         realAfterFunc,
		logger:            zerolog.Nop(),
		validate:          validator.New(),
		live:              make(map[string]*liveSession),
	}

	for _, opt := range options {
		opt(s)
	}

	s.ledger = passkeys.NewLedger(repos.Passkeys,
		passkeys.WithIssueAttempts(s.issueAttempts),
		passkeys.WithNowTime(s.nowTime),
		passkeys.WithLogger(s.logger),
	)
	s.credentials = reviewers.NewStore(repos.Reviewers, s.hasher, reviewers.WithLogger(s.logger))
	s.access = reviewers.NewAccess(s.credentials)

	return s, nil
}

type newSessionInput struct {
	Email string `validate:"required,contains=@"`
}

// CreateSession validates the candidate email and opens an interview waiting for a resume.
// A blank passkey is recorded as passkeys.None.
func (s *Service) CreateSession(_ context.Context, email, passkey string) (string, error) {
	email = strings.TrimSpace(email)
	if err := s.validate.Struct(newSessionInput{Email: email}); err != nil {
		return "", apperr.Validation("Please enter a valid email address")
	}

	record := &sessions.Session{
		ID:        sessions.NewID(),
		Passkey:   passkeys.Normalize(passkey),
		Answers:   []sessions.QuestionResult{},
		Stage:     sessions.StageUpload,
		CreatedAt: s.nowTime(),
	}
	record.Candidate.Email = email

	live := newLiveSession(record, s.observer)
	live.lock.Lock()
	live.say(SpeakerBot, welcomeLine(email))
	live.lock.Unlock()

	s.lock.Lock()
	s.live[record.ID] = live
	s.lock.Unlock()

	s.logger.Info().Str("session", record.ID).Str("passkey", record.Passkey).Msg("interview created")
	return record.ID, nil
}

func (s *Service) liveSession(id string) (*liveSession, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	live, ok := s.live[id]
	if !ok {
		return nil, errors.Wrapf(apperr.ErrSessionNotFound, "[Service] session %s", id)
	}
	return live, nil
}

// scheduleEviction drops a finished interview from memory once the retention period passes.
// Snapshot keeps serving it from the store. Caller holds live.lock.
func (s *Service) scheduleEviction(live *liveSession) {
	if live.evictionArmed {
		return
	}
	live.evictionArmed = true
	s.afterFunc(s.retention, func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		if s.live[live.id] == live {
			delete(s.live, live.id)
			s.logger.Debug().Str("session", live.id).Msg("interview evicted from memory")
		}
	})
}

// Snapshot returns a copy of the session. Interviews from an earlier process are read from the store.
func (s *Service) Snapshot(ctx context.Context, id string) (*sessions.Session, error) {
	live, err := s.liveSession(id)
	if err != nil {
		stored, storeErr := s.repos.Sessions.Get(ctx, id)
		if storeErr != nil {
			if apperr.Is(storeErr, apperr.ErrNotFound) {
				return nil, err
			}
			return nil, errors.Wrap(storeErr, "[Service.Snapshot]")
		}
		return stored, nil
	}
	live.lock.Lock()
	defer live.lock.Unlock()
	return live.snapshot(), nil
}

// Transcript returns the session's messages in order.
func (s *Service) Transcript(id string) ([]Message, error) {
	live, err := s.liveSession(id)
	if err != nil {
		return nil, err
	}
	live.lock.Lock()
	defer live.lock.Unlock()
	return live.messages(), nil
}

// Countdown returns the whole seconds left on the open question.
// The second result is false when no question is waiting for an answer.
func (s *Service) Countdown(id string) (int, bool, error) {
	live, err := s.liveSession(id)
	if err != nil {
		return 0, false, err
	}
	live.lock.Lock()
	defer live.lock.Unlock()
	seconds, active := live.remaining(s.nowTime())
	return seconds, active, nil
}
