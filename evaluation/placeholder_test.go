package evaluation_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-interview-server/evaluation"
	"github.com/jrsteele09/go-interview-server/questions"
	"github.com/stretchr/testify/require"
)

func fixedRandom(v float64) func() float64 {
	return func() float64 { return v }
}

func TestPlaceholderShortAnswer(t *testing.T) {
	calls := 0
	p := evaluation.NewPlaceholder(
		evaluation.WithLatency(time.Hour),
		evaluation.WithRandom(func() float64 { calls++; return 0.5 }),
	)

	for _, answer := range []string{"", "   ", "too short", "  123456789  "} {
		result, err := p.Evaluate(context.Background(), "q", answer, questions.TierHard)
		require.NoError(t, err)
		require.Equal(t, evaluation.TooShortEvaluation(), result, "answer %q", answer)
	}
	require.Zero(t, calls, "short answers must not draw jitter")
}

func TestPlaceholderTierBase(t *testing.T) {
	tests := []struct {
		tier   questions.Tier
		random float64
		want   int
	}{
		{questions.TierEasy, 0.5, 15},
		{questions.TierMedium, 0.5, 25},
		{questions.TierHard, 0.5, 35},
		{questions.TierEasy, 0, 10},
		{questions.TierHard, 0.99, 40},
	}

	for _, tc := range tests {
		p := evaluation.NewPlaceholder(evaluation.WithLatency(0), evaluation.WithRandom(fixedRandom(tc.random)))
		result, err := p.Evaluate(context.Background(), "q", "I would use useState and useEffect.", tc.tier)
		require.NoError(t, err)
		require.Equal(t, tc.want, result.Score, "tier %s random %v", tc.tier, tc.random)
		require.Equal(t, evaluation.FeedbackPlaceholder, result.Feedback)
	}
}

func TestPlaceholderHonoursContext(t *testing.T) {
	p := evaluation.NewPlaceholder(evaluation.WithLatency(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Evaluate(ctx, "q", "a long enough answer", questions.TierEasy)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0, evaluation.Clamp(-3))
	require.Equal(t, 100, evaluation.Clamp(140))
	require.Equal(t, 42, evaluation.Clamp(42))
}
