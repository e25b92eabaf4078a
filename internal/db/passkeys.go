package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
	"github.com/jrsteele09/go-interview-server/passkeys"
)

// PasskeyRepo stores issued passkeys.
type PasskeyRepo struct {
	pool *pgxpool.Pool
}

var _ passkeys.Repo = (*PasskeyRepo)(nil)

func (r *PasskeyRepo) Insert(ctx context.Context, record *passkeys.Record) error {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO passkeys (token, description, created_at, usage_count)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (token) DO NOTHING`,
		record.Token, record.Description, record.CreatedAt, record.UsageCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert passkey: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrAlreadyExists
	}
	return nil
}

func (r *PasskeyRepo) Get(ctx context.Context, token string) (*passkeys.Record, error) {
	var record passkeys.Record
	err := r.pool.QueryRow(ctx,
		`SELECT token, description, created_at, usage_count FROM passkeys WHERE token = $1`,
		token,
	).Scan(&record.Token, &record.Description, &record.CreatedAt, &record.UsageCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get passkey: %w", err)
	}
	return &record, nil
}

func (r *PasskeyRepo) List(ctx context.Context) ([]*passkeys.Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT token, description, created_at, usage_count FROM passkeys ORDER BY created_at DESC, token`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list passkeys: %w", err)
	}
	defer rows.Close()

	list := make([]*passkeys.Record, 0)
	for rows.Next() {
		var record passkeys.Record
		if err := rows.Scan(&record.Token, &record.Description, &record.CreatedAt, &record.UsageCount); err != nil {
			return nil, fmt.Errorf("failed to scan passkey: %w", err)
		}
		list = append(list, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate passkeys: %w", err)
	}
	return list, nil
}

// IncrementUsage adds one in a single statement so concurrent completions never lose a count.
func (r *PasskeyRepo) IncrementUsage(ctx context.Context, token string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE passkeys SET usage_count = usage_count + 1 WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to increment passkey usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
