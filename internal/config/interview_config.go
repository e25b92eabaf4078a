package config

import "time"

const (
	EvaluatorPlaceholder = "placeholder"
	EvaluatorGemini      = "gemini"
)

type InterviewConfig interface {
	GetEvaluator() string
	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetEvaluationLatency() time.Duration
	GetEvaluationTimeout() time.Duration
	GetExtractionLatency() time.Duration
	GetQuestionBankFile() string
	GetSessionRetention() time.Duration
}

type Interview struct{}

var _ InterviewConfig = Interview{}

func (Interview) GetEvaluator() string {
	return GetEnv("EVALUATOR", EvaluatorPlaceholder)
}

func (Interview) GetGeminiAPIKey() string {
	return GetEnv("GEMINI_API_KEY", "")
}

func (Interview) GetGeminiModel() string {
	return GetEnv("GEMINI_MODEL", "")
}

// GetEvaluationLatency is the simulated round trip of the placeholder evaluator.
func (Interview) GetEvaluationLatency() time.Duration {
	return GetEnvDuration("EVALUATION_LATENCY", 800*time.Millisecond)
}

func (Interview) GetEvaluationTimeout() time.Duration {
	return GetEnvDuration("EVALUATION_TIMEOUT", 30*time.Second)
}

func (Interview) GetExtractionLatency() time.Duration {
	return GetEnvDuration("EXTRACTION_LATENCY", time.Second)
}

// GetQuestionBankFile points at an optional YAML question bank. Empty uses the built-in bank.
func (Interview) GetQuestionBankFile() string {
	return GetEnv("QUESTION_BANK_FILE", "")
}

// GetSessionRetention is how long a finished interview stays in memory after it was stored.
func (Interview) GetSessionRetention() time.Duration {
	return GetEnvDuration("SESSION_RETENTION", 10*time.Minute)
}
