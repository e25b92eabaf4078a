package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
	"github.com/jrsteele09/go-interview-server/sessions"
)

const sessionColumns = `id, candidate_name, candidate_phone, candidate_email, passkey, answers,
	total_score, question_index, stage, created_at, completed_at, summary`

// SessionRepo stores completed interviews.
type SessionRepo struct {
	pool *pgxpool.Pool
}

var _ sessions.Repo = (*SessionRepo)(nil)

// Save inserts the session. Saving an id that already exists leaves the stored row unchanged.
func (r *SessionRepo) Save(ctx context.Context, s *sessions.Session) error {
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO interview_sessions (`+sessionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (id) DO NOTHING`,
		s.ID, s.Candidate.Name, s.Candidate.Phone, s.Candidate.Email, s.Passkey, answers,
		s.TotalScore, s.QuestionIndex, string(s.Stage), s.CreatedAt, s.CompletedAt, s.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", s.ID, err)
	}
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*sessions.Session, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM interview_sessions WHERE id = $1`, id)
	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}
	return s, nil
}

func (r *SessionRepo) List(ctx context.Context, filter sessions.Filter) ([]*sessions.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM interview_sessions`
	var args []any
	if search := strings.TrimSpace(filter.Search); search != "" {
		query += ` WHERE candidate_email ILIKE $1 ESCAPE '\' OR candidate_name ILIKE $1 ESCAPE '\' OR passkey ILIKE $1 ESCAPE '\'`
		args = append(args, likePattern(search))
	}
	query += ` ORDER BY completed_at DESC NULLS LAST, id`
	return r.query(ctx, query, args...)
}

func (r *SessionRepo) ListByPasskey(ctx context.Context, passkey string) ([]*sessions.Session, error) {
	return r.query(ctx,
		`SELECT `+sessionColumns+` FROM interview_sessions WHERE passkey = $1 ORDER BY completed_at DESC NULLS LAST, id`,
		strings.ToUpper(strings.TrimSpace(passkey)),
	)
}

func (r *SessionRepo) query(ctx context.Context, query string, args ...any) ([]*sessions.Session, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	list := make([]*sessions.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return list, nil
}

func scanSession(row pgx.Row) (*sessions.Session, error) {
	var (
		s       sessions.Session
		stage   string
		answers []byte
	)
	err := row.Scan(
		&s.ID, &s.Candidate.Name, &s.Candidate.Phone, &s.Candidate.Email, &s.Passkey, &answers,
		&s.TotalScore, &s.QuestionIndex, &stage, &s.CreatedAt, &s.CompletedAt, &s.Summary,
	)
	if err != nil {
		return nil, err
	}
	s.Stage = sessions.Stage(stage)
	if err := json.Unmarshal(answers, &s.Answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	return &s, nil
}

// likePattern builds an ILIKE substring pattern, escaping the wildcard characters in search.
func likePattern(search string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(search)
	return "%" + escaped + "%"
}
