package sessions

import (
	"context"
	"sort"
	"strings"
)

// Filter narrows a session listing.
type Filter struct {
	// Search matches, case-insensitively, a substring of the candidate email, name or passkey.
	Search string
}

// Matches reports whether s passes the filter.
func (f Filter) Matches(s *Session) bool {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	if needle == "" {
		return true
	}
	for _, haystack := range []string{s.Candidate.Email, s.Candidate.Name, s.Passkey} {
		if strings.Contains(strings.ToLower(haystack), needle) {
			return true
		}
	}
	return false
}

// Repo stores completed sessions. Saved sessions are treated as read-only.
type Repo interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context, filter Filter) ([]*Session, error)
	ListByPasskey(ctx context.Context, passkey string) ([]*Session, error)
}

// SortByCompletion orders sessions most recently completed first. Sessions without a completion time sort last.
func SortByCompletion(list []*Session) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].CompletedAt, list[j].CompletedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})
}

// Stats summarizes a set of sessions.
type Stats struct {
	Interviews   int `json:"interviews"`
	Passkeys     int `json:"passkeys"`
	AverageScore int `json:"average_score"`
}

// AverageScore is the rounded mean total score, or 0 for no sessions.
func AverageScore(list []*Session) int {
	if len(list) == 0 {
		return 0
	}
	sum := 0
	for _, s := range list {
		sum += s.TotalScore
	}
	n := len(list)
	return (2*sum + n) / (2 * n)
}
