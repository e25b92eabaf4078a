package sessionrepofake

import (
	"context"
	"strings"
	"sync"

	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
	"github.com/jrsteele09/go-interview-server/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

type FakeSessionRepo struct {
	sessions map[string]*sessions.Session
	lock     sync.RWMutex
	// SaveErr, when set, is returned by Save without storing anything.
	SaveErr error
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{sessions: make(map[string]*sessions.Session)}
}

func (sr *FakeSessionRepo) Save(_ context.Context, session *sessions.Session) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.SaveErr != nil {
		return sr.SaveErr
	}
	sr.sessions[session.ID] = session.Clone()
	return nil
}

// FailSaves makes subsequent saves return err. Pass nil to recover.
func (sr *FakeSessionRepo) FailSaves(err error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.SaveErr = err
}

func (sr *FakeSessionRepo) Get(_ context.Context, id string) (*sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	s, ok := sr.sessions[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return s.Clone(), nil
}

func (sr *FakeSessionRepo) List(_ context.Context, filter sessions.Filter) ([]*sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	list := make([]*sessions.Session, 0, len(sr.sessions))
	for _, s := range sr.sessions {
		if filter.Matches(s) {
			list = append(list, s.Clone())
		}
	}
	sessions.SortByCompletion(list)
	return list, nil
}

func (sr *FakeSessionRepo) ListByPasskey(_ context.Context, passkey string) ([]*sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	passkey = strings.ToUpper(strings.TrimSpace(passkey))
	list := make([]*sessions.Session, 0)
	for _, s := range sr.sessions {
		if s.Passkey == passkey {
			list = append(list, s.Clone())
		}
	}
	sessions.SortByCompletion(list)
	return list, nil
}
