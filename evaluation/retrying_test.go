package evaluation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/go-interview-server/evaluation"
	"github.com/jrsteele09/go-interview-server/questions"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type scriptedEvaluator struct {
	errs  []error
	calls int
}

func (s *scriptedEvaluator) Evaluate(_ context.Context, _, _ string, _ questions.Tier) (evaluation.Evaluation, error) {
	defer func() { s.calls++ }()
	if s.calls < len(s.errs) && s.errs[s.calls] != nil {
		return evaluation.Evaluation{}, s.errs[s.calls]
	}
	return evaluation.Evaluation{Score: 50, Feedback: "ok"}, nil
}

func TestRetryingRecoversOnSecondAttempt(t *testing.T) {
	next := &scriptedEvaluator{errs: []error{errors.New("unavailable")}}
	r := evaluation.NewRetrying(next, 1, zerolog.Nop())

	result, err := r.Evaluate(context.Background(), "q", "answer text here", questions.TierEasy)
	require.NoError(t, err)
	require.Equal(t, 50, result.Score)
	require.Equal(t, 2, next.calls)
}

func TestRetryingGivesUp(t *testing.T) {
	boom := errors.New("unavailable")
	next := &scriptedEvaluator{errs: []error{boom, boom, boom}}
	r := evaluation.NewRetrying(next, 1, zerolog.Nop())

	_, err := r.Evaluate(context.Background(), "q", "answer text here", questions.TierEasy)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, next.calls)
}

func TestRetryingStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	next := &scriptedEvaluator{errs: []error{context.Canceled, context.Canceled}}
	r := evaluation.NewRetrying(next, 3, zerolog.Nop())

	_, err := r.Evaluate(ctx, "q", "answer text here", questions.TierEasy)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, next.calls)
}
