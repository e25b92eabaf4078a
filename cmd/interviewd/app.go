package main

import (
	"context"

	"github.com/jrsteele09/go-interview-server/evaluation"
	"github.com/jrsteele09/go-interview-server/extraction"
	"github.com/jrsteele09/go-interview-server/internal/config"
	"github.com/jrsteele09/go-interview-server/internal/db"
	"github.com/jrsteele09/go-interview-server/interview"
	passkeyrepofake "github.com/jrsteele09/go-interview-server/passkeys/repofake"
	"github.com/jrsteele09/go-interview-server/questions"
	"github.com/jrsteele09/go-interview-server/reviewers"
	reviewerrepofake "github.com/jrsteele09/go-interview-server/reviewers/repofake"
	sessionrepofake "github.com/jrsteele09/go-interview-server/sessions/repofake"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// evaluationRetries is how many times a failed evaluation is retried before it degrades.
const evaluationRetries = 1

// app is the wired interview service and whatever must be released on exit.
type app struct {
	service *interview.Service
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newApp wires the interview service from configuration. PostgreSQL is used when
// DATABASE_URL is set, otherwise everything is held in memory.
func newApp(ctx context.Context, cfg config.Config, logger zerolog.Logger, options ...interview.ServiceOption) (*app, error) {
	a := &app{}

	repos, err := a.repos(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	bank, err := loadBank(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	evaluator, err := newEvaluator(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	cost, err := cfg.GetBcryptCost()
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "[newApp]")
	}

	collaborators := interview.Collaborators{
		Bank:      bank,
		Evaluator: evaluation.NewRetrying(evaluator, evaluationRetries, logger),
		Extractor: extraction.NewPlaceholder(extraction.WithLatency(cfg.GetExtractionLatency())),
	}

	options = append([]interview.ServiceOption{
		interview.WithLogger(logger),
		interview.WithEvaluationTimeout(cfg.GetEvaluationTimeout()),
		interview.WithRetention(cfg.GetSessionRetention()),
		interview.WithHasher(reviewers.NewHasher(cost, cfg.GetPasswordPepper())),
		interview.WithPasskeyIssueAttempts(cfg.GetPasskeyIssueAttempts()),
	}, options...)

	a.service, err = interview.NewService(repos, collaborators, options...)
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "[newApp]")
	}
	return a, nil
}

func (a *app) repos(ctx context.Context, cfg config.Config, logger zerolog.Logger) (interview.Repos, error) {
	databaseURL := cfg.GetDatabaseURL()
	if databaseURL == "" {
		logger.Info().Msg("DATABASE_URL not set, interviews are kept in memory")
		return interview.Repos{
			Sessions:  sessionrepofake.NewFakeSessionRepo(),
			Passkeys:  passkeyrepofake.NewFakePasskeyRepo(),
			Reviewers: reviewerrepofake.NewFakeReviewerRepo(),
		}, nil
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return interview.Repos{}, errors.Wrap(err, "[newApp] connect")
	}
	a.closers = append(a.closers, database.Close)

	if err := database.Migrate(ctx); err != nil {
		return interview.Repos{}, errors.Wrap(err, "[newApp] migrate")
	}
	logger.Info().Msg("using PostgreSQL stores")
	return interview.Repos{
		Sessions:  database.Sessions(),
		Passkeys:  database.Passkeys(),
		Reviewers: database.Reviewers(),
	}, nil
}

func loadBank(cfg config.Config) (*questions.Bank, error) {
	filename := cfg.GetQuestionBankFile()
	if filename == "" {
		return questions.DefaultBank(), nil
	}
	bank, err := questions.LoadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "[loadBank]")
	}
	return bank, nil
}

func newEvaluator(ctx context.Context, cfg config.Config, logger zerolog.Logger) (evaluation.Evaluator, error) {
	switch cfg.GetEvaluator() {
	case config.EvaluatorPlaceholder:
		return evaluation.NewPlaceholder(evaluation.WithLatency(cfg.GetEvaluationLatency())), nil
	case config.EvaluatorGemini:
		generator, err := evaluation.NewGenAIGenerator(ctx, cfg.GetGeminiAPIKey(), cfg.GetGeminiModel())
		if err != nil {
			return nil, errors.Wrap(err, "[newEvaluator]")
		}
		logger.Info().Str("model", generator.Model()).Msg("scoring answers with Gemini")
		return evaluation.NewGemini(generator, logger), nil
	default:
		return nil, errors.Errorf("[newEvaluator] unknown evaluator %q", cfg.GetEvaluator())
	}
}
