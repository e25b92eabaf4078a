// Package extraction turns an uploaded resume into candidate contact details.
package extraction

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/jrsteele09/go-interview-server/candidates"
)

// AcceptedExtensions are the resume file types an interview accepts.
var AcceptedExtensions = []string{".pdf", ".docx"}

const DefaultLatency = time.Second

// Document is an uploaded resume.
type Document struct {
	Name    string
	Size    int64
	Content []byte
}

// Accepted reports whether the document's extension is one of AcceptedExtensions, ignoring case.
func (d Document) Accepted() bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(d.Name)))
	for _, accepted := range AcceptedExtensions {
		if ext == accepted {
			return true
		}
	}
	return false
}

// Extractor reads contact details from a resume. Fields it cannot find are left empty.
type Extractor interface {
	Extract(ctx context.Context, doc Document) (candidates.Profile, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, doc Document) (candidates.Profile, error)

func (f ExtractorFunc) Extract(ctx context.Context, doc Document) (candidates.Profile, error) {
	return f(ctx, doc)
}

// Placeholder pretends to parse the resume. It finds a name 70% of the time and a phone 60% of the time.
type Placeholder struct {
	latency time.Duration
	random  func() float64
}

type PlaceholderOption func(*Placeholder)

func WithLatency(d time.Duration) PlaceholderOption {
	return func(p *Placeholder) {
		p.latency = d
	}
}

func WithRandom(f func() float64) PlaceholderOption {
	return func(p *Placeholder) {
		p.random = f
	}
}

func NewPlaceholder(options ...PlaceholderOption) *Placeholder {
	p := &Placeholder{latency: DefaultLatency, random: rand.Float64}
	for _, opt := range options {
		opt(p)
	}
	return p
}

var _ Extractor = (*Placeholder)(nil)

func (p *Placeholder) Extract(ctx context.Context, _ Document) (candidates.Profile, error) {
	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return candidates.Profile{}, ctx.Err()
		case <-timer.C:
		}
	}

	var profile candidates.Profile
	r := p.random()
	if r > 0.3 {
		profile.Name = "John Doe"
	}
	if r > 0.4 {
		profile.Phone = "+1234567890"
	}
	return profile, nil
}
