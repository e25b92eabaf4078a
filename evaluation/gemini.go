package evaluation

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jrsteele09/go-interview-server/internal/logging"
	"github.com/jrsteele09/go-interview-server/questions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

const maxLogLength = 200

//go:embed gemini_prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GenAIGenerator sends prompts to the Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator creates a client for the Gemini API backend.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("[NewGenAIGenerator] gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[NewGenAIGenerator] create genai client")
	}
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultGeminiModel
	}
	return &GenAIGenerator{client: client, model: model}, nil
}

// GenerateContent returns the concatenated text parts of the first response.
func (g *GenAIGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", errors.Wrap(err, "[GenAIGenerator.GenerateContent]")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(strings.TrimSpace(part.Text))
		}
	}
	if builder.Len() == 0 {
		return "", errors.New("[GenAIGenerator.GenerateContent] empty response")
	}
	return builder.String(), nil
}

// Model returns the configured model name.
func (g *GenAIGenerator) Model() string {
	return g.model
}

// Gemini asks a language model to grade the answer.
type Gemini struct {
	generator contentGenerator
	logger    zerolog.Logger
}

func NewGemini(generator contentGenerator, logger zerolog.Logger) *Gemini {
	return &Gemini{generator: generator, logger: logger}
}

var _ Evaluator = (*Gemini)(nil)

func (g *Gemini) Evaluate(ctx context.Context, question, answer string, tier questions.Tier) (Evaluation, error) {
	if TooShort(answer) {
		return TooShortEvaluation(), nil
	}

	prompt := buildPrompt(question, answer, tier)
	g.logger.Debug().
		Str("tier", string(tier)).
		Int("prompt_length", utf8.RuneCountInString(prompt)).
		Msg("gemini evaluation request")

	raw, err := g.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return Evaluation{}, errors.Wrap(err, "[Gemini.Evaluate]")
	}

	g.logger.Debug().
		Str("response_preview", logging.Truncate(raw, maxLogLength)).
		Msg("gemini evaluation response")

	result, err := parseResponse(raw)
	if err != nil {
		return Evaluation{}, errors.Wrap(err, "[Gemini.Evaluate]")
	}
	return result, nil
}

func buildPrompt(question, answer string, tier questions.Tier) string {
	prompt := strings.ReplaceAll(promptTemplate, "{{TIER}}", tier.Label())
	prompt = strings.ReplaceAll(prompt, "{{QUESTION}}", question)
	return strings.ReplaceAll(prompt, "{{ANSWER}}", strings.TrimSpace(answer))
}

func parseResponse(raw string) (Evaluation, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return Evaluation{}, fmt.Errorf("parse gemini response: %w", err)
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		return Evaluation{}, fmt.Errorf("gemini response has no numeric score")
	}
	feedback, _ := data["feedback"].(string)

	return Evaluation{
		Score:    Clamp(int(math.Round(score))),
		Feedback: strings.TrimSpace(feedback),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.TrimSpace(raw)
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		raw = raw[start : end+1]
	}
	return raw
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
