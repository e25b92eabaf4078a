package evaluation

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/jrsteele09/go-interview-server/questions"
)

const (
	DefaultLatency      = 800 * time.Millisecond
	FeedbackPlaceholder = "Good understanding of core concepts."
)

var baseScores = map[questions.Tier]int{
	questions.TierEasy:   15,
	questions.TierMedium: 25,
	questions.TierHard:   35,
}

// Placeholder scores answers from a tier base with random jitter. It does not read the answer.
type Placeholder struct {
	latency time.Duration
	random  func() float64
}

// PlaceholderOption configures a Placeholder.
type PlaceholderOption func(*Placeholder)

// WithLatency sets the simulated round trip. Zero disables it.
func WithLatency(d time.Duration) PlaceholderOption {
	return func(p *Placeholder) {
		p.latency = d
	}
}

// WithRandom replaces the jitter source. f must return values in [0,1).
func WithRandom(f func() float64) PlaceholderOption {
	return func(p *Placeholder) {
		p.random = f
	}
}

func NewPlaceholder(options ...PlaceholderOption) *Placeholder {
	p := &Placeholder{
		latency: DefaultLatency,
		random:  rand.Float64,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

var _ Evaluator = (*Placeholder)(nil)

func (p *Placeholder) Evaluate(ctx context.Context, _ string, answer string, tier questions.Tier) (Evaluation, error) {
	if TooShort(answer) {
		return TooShortEvaluation(), nil
	}

	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Evaluation{}, ctx.Err()
		case <-timer.C:
		}
	}

	base, ok := baseScores[tier]
	if !ok {
		base = baseScores[questions.TierEasy]
	}
	jitter := p.random()*10 - 5
	score := int(math.Round(float64(base) + jitter))

	return Evaluation{Score: Clamp(score), Feedback: FeedbackPlaceholder}, nil
}
