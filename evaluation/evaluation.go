// Package evaluation scores candidate answers.
package evaluation

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jrsteele09/go-interview-server/questions"
)

// MinAnswerLength is the shortest trimmed answer, in characters, that is worth scoring.
const MinAnswerLength = 10

const (
	FeedbackTooShort    = "Answer too short."
	FeedbackUnavailable = "Evaluation unavailable; the answer was recorded without a score."
)

// Evaluation is the result of scoring one answer.
type Evaluation struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Evaluator scores an answer to a question of the given tier.
type Evaluator interface {
	Evaluate(ctx context.Context, question, answer string, tier questions.Tier) (Evaluation, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, question, answer string, tier questions.Tier) (Evaluation, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, question, answer string, tier questions.Tier) (Evaluation, error) {
	return f(ctx, question, answer, tier)
}

// TooShort reports whether the answer is below MinAnswerLength once trimmed.
// Evaluators return TooShortEvaluation for such answers without any external call.
func TooShort(answer string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(answer)) < MinAnswerLength
}

// TooShortEvaluation is the result for an answer that is too short to score.
func TooShortEvaluation() Evaluation {
	return Evaluation{Score: 0, Feedback: FeedbackTooShort}
}

// Unavailable is the degraded result recorded when no evaluator could score the answer.
func Unavailable() Evaluation {
	return Evaluation{Score: 0, Feedback: FeedbackUnavailable}
}

// Clamp bounds a score to [0,100].
func Clamp(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return score
}
