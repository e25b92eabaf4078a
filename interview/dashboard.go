package interview

import (
	"context"
	"strings"

	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
	"github.com/jrsteele09/go-interview-server/passkeys"
	"github.com/jrsteele09/go-interview-server/sessions"
	"github.com/pkg/errors"
)

// ListSessions returns completed interviews matching the filter, most recently completed first.
func (s *Service) ListSessions(ctx context.Context, filter sessions.Filter) ([]*sessions.Session, error) {
	list, err := s.repos.Sessions.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.ListSessions]")
	}
	return list, nil
}

// ListSessionsByPasskey returns the completed interviews that carried the passkey.
func (s *Service) ListSessionsByPasskey(ctx context.Context, token string) ([]*sessions.Session, error) {
	list, err := s.repos.Sessions.ListByPasskey(ctx, passkeys.Normalize(token))
	if err != nil {
		return nil, errors.Wrap(err, "[Service.ListSessionsByPasskey]")
	}
	return list, nil
}

// Stats counts interviews and passkeys and averages the interview scores.
func (s *Service) Stats(ctx context.Context) (sessions.Stats, error) {
	list, err := s.repos.Sessions.List(ctx, sessions.Filter{})
	if err != nil {
		return sessions.Stats{}, errors.Wrap(err, "[Service.Stats] list sessions")
	}
	keys, err := s.ledger.List(ctx)
	if err != nil {
		return sessions.Stats{}, errors.Wrap(err, "[Service.Stats] list passkeys")
	}
	return sessions.Stats{
		Interviews:   len(list),
		Passkeys:     len(keys),
		AverageScore: sessions.AverageScore(list),
	}, nil
}

func (s *Service) IssuePasskey(ctx context.Context, description string) (*passkeys.Record, error) {
	return s.ledger.Issue(ctx, description)
}

func (s *Service) ListPasskeys(ctx context.Context) ([]*passkeys.Record, error) {
	return s.ledger.List(ctx)
}

func (s *Service) GetPasskey(ctx context.Context, token string) (*passkeys.Record, error) {
	return s.ledger.Get(ctx, token)
}

// RegisterReviewer replaces the reviewer credential and logs the reviewer in.
func (s *Service) RegisterReviewer(ctx context.Context, email, secret, confirm string) error {
	if err := s.credentials.Register(ctx, email, secret, confirm); err != nil {
		return err
	}
	if !s.access.Login(ctx, email, secret) {
		return errors.Wrap(apperr.ErrInvalidCredentials, "[Service.RegisterReviewer] verify new credential")
	}
	return nil
}

// LoginReviewer opens the dashboard when the credentials match. A failure never says which part was wrong.
func (s *Service) LoginReviewer(ctx context.Context, email, secret string) bool {
	if strings.TrimSpace(email) == "" || secret == "" {
		return false
	}
	ok := s.access.Login(ctx, email, secret)
	if !ok {
		s.logger.Warn().Msg("reviewer login failed")
	}
	return ok
}

func (s *Service) LogoutReviewer() {
	s.access.Logout()
}

func (s *Service) ReviewerAuthenticated() bool {
	return s.access.Authenticated()
}

func (s *Service) HasReviewerAccount(ctx context.Context) bool {
	return s.credentials.HasAccount(ctx)
}
