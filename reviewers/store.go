package reviewers

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	ReasonMissingFields = "Please fill in all fields"
	ReasonMismatch      = "Passwords do not match"
	ReasonTooShort      = "Password must be at least 6 characters"
)

type registration struct {
	Email   string `validate:"required"`
	Secret  string `validate:"required,min=6"`
	Confirm string `validate:"eqfield=Secret"`
}

// Store registers and verifies the reviewer credential.
type Store struct {
	repo     Repo
	hasher   *Hasher
	validate *validator.Validate
	logger   zerolog.Logger
}

type StoreOption func(*Store)

func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

func NewStore(repo Repo, hasher *Hasher, options ...StoreOption) *Store {
	s := &Store{
		repo:     repo,
		hasher:   hasher,
		validate: validator.New(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Register validates the input and replaces any stored credential. Nothing is written when validation fails.
func (s *Store) Register(ctx context.Context, email, secret, confirm string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validateRegistration(registration{Email: email, Secret: secret, Confirm: confirm}); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return errors.Wrap(err, "[Store.Register]")
	}
	if err := s.repo.Put(ctx, &Credential{Email: email, SecretHash: hash}); err != nil {
		return errors.Wrap(err, "[Store.Register] store credential")
	}
	s.logger.Info().Str("email", email).Msg("reviewer registered")
	return nil
}

// validateRegistration reports the first failing rule: missing fields, then mismatch, then length.
func (s *Store) validateRegistration(r registration) error {
	err := s.validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "[Store.Register] validate")
	}

	failed := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.Tag()] = true
	}
	switch {
	case failed["required"]:
		return apperr.Validation(ReasonMissingFields)
	case failed["eqfield"]:
		return apperr.Validation(ReasonMismatch)
	default:
		return apperr.Validation(ReasonTooShort)
	}
}

// Verify reports whether email and secret match the stored credential.
// Storage failures are logged and reported as a mismatch.
func (s *Store) Verify(ctx context.Context, email, secret string) bool {
	credential, err := s.repo.Get(ctx)
	if err != nil {
		if !apperr.Is(err, apperr.ErrNotFound) {
			s.logger.Error().Err(err).Msg("failed to load reviewer credential")
		}
		return false
	}
	if credential.Email != strings.ToLower(strings.TrimSpace(email)) {
		return false
	}
	return s.hasher.Matches(secret, credential.SecretHash)
}

// HasAccount reports whether a credential has been registered.
func (s *Store) HasAccount(ctx context.Context) bool {
	_, err := s.repo.Get(ctx)
	if err != nil && !apperr.Is(err, apperr.ErrNotFound) {
		s.logger.Error().Err(err).Msg("failed to load reviewer credential")
	}
	return err == nil
}
