package passkeys

import (
	"context"
	"crypto/rand"
	"io"
	"strings"
	"time"

	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const DefaultIssueAttempts = 5

// Ledger issues passkeys and records their usage.
type Ledger struct {
	repo     Repo
	attempts int
	random   io.Reader
	nowTime  func() time.Time
	logger   zerolog.Logger
}

type Option func(*Ledger)

// WithIssueAttempts bounds how many fresh tokens Issue tries when a token is already taken.
func WithIssueAttempts(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.attempts = n
		}
	}
}

// WithRandom replaces the crypto/rand token source.
func WithRandom(r io.Reader) Option {
	return func(l *Ledger) {
		l.random = r
	}
}

func WithNowTime(f func() time.Time) Option {
	return func(l *Ledger) {
		l.nowTime = f
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

func NewLedger(repo Repo, options ...Option) *Ledger {
	l := &Ledger{
		repo:     repo,
		attempts: DefaultIssueAttempts,
		random:   rand.Reader,
		nowTime:  time.Now,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// Issue creates a passkey with a fresh token and a zero usage count.
func (l *Ledger) Issue(ctx context.Context, description string) (*Record, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperr.Validation("Please enter a description.")
	}

	for attempt := 1; attempt <= l.attempts; attempt++ {
		token, err := l.newToken()
		if err != nil {
			return nil, errors.Wrap(err, "[Ledger.Issue] generate token")
		}
		record := &Record{
			Token:       token,
			Description: description,
			CreatedAt:   l.nowTime(),
		}
		err = l.repo.Insert(ctx, record)
		if err == nil {
			l.logger.Info().Str("passkey", token).Msg("passkey issued")
			return record, nil
		}
		if !apperr.Is(err, apperr.ErrAlreadyExists) {
			return nil, errors.Wrap(err, "[Ledger.Issue] store passkey")
		}
		l.logger.Debug().Int("attempt", attempt).Msg("passkey token collision")
	}
	return nil, errors.Errorf("[Ledger.Issue] no unused token after %d attempts", l.attempts)
}

// RecordUsage counts one finished interview against the token. None and unknown tokens are ignored.
func (l *Ledger) RecordUsage(ctx context.Context, token string) error {
	token = Normalize(token)
	if token == None {
		return nil
	}
	err := l.repo.IncrementUsage(ctx, token)
	if apperr.Is(err, apperr.ErrNotFound) {
		l.logger.Debug().Str("passkey", token).Msg("usage for unknown passkey ignored")
		return nil
	}
	return errors.Wrap(err, "[Ledger.RecordUsage]")
}

func (l *Ledger) Get(ctx context.Context, token string) (*Record, error) {
	record, err := l.repo.Get(ctx, Normalize(token))
	if err != nil {
		return nil, errors.Wrap(err, "[Ledger.Get]")
	}
	return record, nil
}

func (l *Ledger) List(ctx context.Context) ([]*Record, error) {
	list, err := l.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[Ledger.List]")
	}
	return list, nil
}

// newToken draws TokenLength characters uniformly from TokenAlphabet.
func (l *Ledger) newToken() (string, error) {
	const limit = 256 - 256%len(TokenAlphabet)

	token := make([]byte, 0, TokenLength)
	buf := make([]byte, TokenLength*2)
	for len(token) < TokenLength {
		if _, err := io.ReadFull(l.random, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			token = append(token, TokenAlphabet[int(b)%len(TokenAlphabet)])
			if len(token) == TokenLength {
				break
			}
		}
	}
	return string(token), nil
}
