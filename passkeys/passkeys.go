// Package passkeys issues the access tokens that group candidate interviews
// and tracks how many finished interviews carried each one.
package passkeys

import (
	"context"
	"strings"
	"time"
)

const (
	// None is the passkey value of an interview started without one.
	None = "NONE"

	TokenLength   = 8
	TokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Record is an issued passkey. Records are never deleted and UsageCount only grows.
type Record struct {
	Token       string    `json:"token"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UsageCount  int       `json:"usage_count"`
}

// Repo stores passkey records keyed by token.
type Repo interface {
	// Insert stores a new record, failing with ErrAlreadyExists if the token is taken.
	Insert(ctx context.Context, record *Record) error
	Get(ctx context.Context, token string) (*Record, error)
	// List returns every record, newest first.
	List(ctx context.Context) ([]*Record, error)
	// IncrementUsage adds one to the usage count, failing with ErrNotFound for unknown tokens.
	IncrementUsage(ctx context.Context, token string) error
}

// Normalize trims and upper-cases a typed token. An empty result becomes None.
func Normalize(token string) string {
	token = strings.ToUpper(strings.TrimSpace(token))
	if token == "" {
		return None
	}
	return token
}
