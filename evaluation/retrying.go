package evaluation

import (
	"context"

	"github.com/jrsteele09/go-interview-server/questions"
	"github.com/rs/zerolog"
)

// Retrying retries a failed evaluation a fixed number of times.
type Retrying struct {
	next    Evaluator
	retries int
	logger  zerolog.Logger
}

// NewRetrying wraps next. Each failed call is retried up to retries times; cancellation is never retried.
func NewRetrying(next Evaluator, retries int, logger zerolog.Logger) *Retrying {
	if retries < 0 {
		retries = 0
	}
	return &Retrying{next: next, retries: retries, logger: logger}
}

var _ Evaluator = (*Retrying)(nil)

func (r *Retrying) Evaluate(ctx context.Context, question, answer string, tier questions.Tier) (Evaluation, error) {
	var err error
	for attempt := 0; attempt <= r.retries; attempt++ {
		var result Evaluation
		result, err = r.next.Evaluate(ctx, question, answer, tier)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return Evaluation{}, err
		}
		r.logger.Warn().Err(err).Int("attempt", attempt+1).Str("tier", string(tier)).Msg("evaluation failed")
	}
	return Evaluation{}, err
}
