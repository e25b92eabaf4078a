package reviewerrepofake

import (
	"context"
	"sync"

	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
	"github.com/jrsteele09/go-interview-server/reviewers"
)

var _ reviewers.Repo = (*FakeReviewerRepo)(nil)

type FakeReviewerRepo struct {
	credential *reviewers.Credential
	writes     int
	lock       sync.RWMutex
}

func NewFakeReviewerRepo() *FakeReviewerRepo {
	return &FakeReviewerRepo{}
}

func (rr *FakeReviewerRepo) Put(_ context.Context, credential *reviewers.Credential) error {
	rr.lock.Lock()
	defer rr.lock.Unlock()

	stored := *credential
	rr.credential = &stored
	rr.writes++
	return nil
}

func (rr *FakeReviewerRepo) Get(_ context.Context) (*reviewers.Credential, error) {
	rr.lock.RLock()
	defer rr.lock.RUnlock()

	if rr.credential == nil {
		return nil, apperr.ErrNotFound
	}
	out := *rr.credential
	return &out, nil
}

// Writes counts calls to Put.
func (rr *FakeReviewerRepo) Writes() int {
	rr.lock.RLock()
	defer rr.lock.RUnlock()
	return rr.writes
}
