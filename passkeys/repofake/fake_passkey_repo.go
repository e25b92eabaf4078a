package passkeyrepofake

import (
	"context"
	"sort"
	"sync"

	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
	"github.com/jrsteele09/go-interview-server/passkeys"
)

var _ passkeys.Repo = (*FakePasskeyRepo)(nil)

type FakePasskeyRepo struct {
	records map[string]*passkeys.Record
	lock    sync.RWMutex
}

func NewFakePasskeyRepo() *FakePasskeyRepo {
	return &FakePasskeyRepo{records: make(map[string]*passkeys.Record)}
}

func (pr *FakePasskeyRepo) Insert(_ context.Context, record *passkeys.Record) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if _, ok := pr.records[record.Token]; ok {
		return apperr.ErrAlreadyExists
	}
	stored := *record
	pr.records[record.Token] = &stored
	return nil
}

func (pr *FakePasskeyRepo) Get(_ context.Context, token string) (*passkeys.Record, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	r, ok := pr.records[token]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := *r
	return &out, nil
}

func (pr *FakePasskeyRepo) List(_ context.Context) ([]*passkeys.Record, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	list := make([]*passkeys.Record, 0, len(pr.records))
	for _, r := range pr.records {
		out := *r
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].Token < list[j].Token
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (pr *FakePasskeyRepo) IncrementUsage(_ context.Context, token string) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	r, ok := pr.records[token]
	if !ok {
		return apperr.ErrNotFound
	}
	r.UsageCount++
	return nil
}
