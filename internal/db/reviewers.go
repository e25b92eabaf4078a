package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
	"github.com/jrsteele09/go-interview-server/reviewers"
)

// ReviewerRepo stores the single reviewer credential.
type ReviewerRepo struct {
	pool *pgxpool.Pool
}

var _ reviewers.Repo = (*ReviewerRepo)(nil)

func (r *ReviewerRepo) Put(ctx context.Context, credential *reviewers.Credential) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO reviewer_credentials (id, email, secret_hash, updated_at)
		 VALUES (1, $1, $2, NOW())
		 ON CONFLICT (id) DO UPDATE SET email = $1, secret_hash = $2, updated_at = NOW()`,
		credential.Email, credential.SecretHash,
	)
	if err != nil {
		return fmt.Errorf("failed to store reviewer credential: %w", err)
	}
	return nil
}

func (r *ReviewerRepo) Get(ctx context.Context) (*reviewers.Credential, error) {
	var credential reviewers.Credential
	err := r.pool.QueryRow(ctx,
		`SELECT email, secret_hash FROM reviewer_credentials WHERE id = 1`,
	).Scan(&credential.Email, &credential.SecretHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reviewer credential: %w", err)
	}
	return &credential, nil
}
