package reviewers

import (
	"context"
	"sync"
)

type verifier interface {
	Verify(ctx context.Context, email, secret string) bool
}

// Access is the process-wide dashboard flag. It carries no token or expiry and is lost on restart.
type Access struct {
	verifier      verifier
	lock          sync.RWMutex
	authenticated bool
}

func NewAccess(v verifier) *Access {
	return &Access{verifier: v}
}

// Login sets the flag only if the credentials verify. It never clears it.
func (a *Access) Login(ctx context.Context, email, secret string) bool {
	if !a.verifier.Verify(ctx, email, secret) {
		return false
	}
	a.lock.Lock()
	defer a.lock.Unlock()
	a.authenticated = true
	return true
}

func (a *Access) Logout() {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.authenticated = false
}

func (a *Access) Authenticated() bool {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.authenticated
}
