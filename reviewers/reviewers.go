// Package reviewers holds the single reviewer credential and the dashboard access flag.
package reviewers

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Credential is the reviewer's login. Email is stored lowercased.
type Credential struct {
	Email      string `json:"email"`
	SecretHash string `json:"-"`
}

// Repo holds at most one credential.
type Repo interface {
	// Put stores the credential, replacing any existing one.
	Put(ctx context.Context, credential *Credential) error
	// Get returns ErrNotFound when no credential has been registered.
	Get(ctx context.Context) (*Credential, error)
}

// Hasher digests reviewer secrets with bcrypt and an optional pepper.
// The peppered secret is reduced to a base64 SHA-256 digest first, so secrets of any
// length fit under bcrypt's 72 byte input limit.
type Hasher struct {
	cost   int
	pepper string
}

func NewHasher(cost int, pepper string) *Hasher {
	return &Hasher{cost: cost, pepper: pepper}
}

func (h *Hasher) Hash(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(h.prehash(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hash), nil
}

func (h *Hasher) Matches(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), h.prehash(secret)) == nil
}

func (h *Hasher) prehash(secret string) []byte {
	sum := sha256.Sum256([]byte(secret + h.pepper))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
