package interview

import (
	"context"
	"strings"

	"github.com/jrsteele09/go-interview-server/evaluation"
	"github.com/jrsteele09/go-interview-server/extraction"
	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
	"github.com/jrsteele09/go-interview-server/internal/utils"
	"github.com/jrsteele09/go-interview-server/questions"
	"github.com/jrsteele09/go-interview-server/sessions"
	"github.com/pkg/errors"
)

// SubmitUpload accepts the candidate's resume and runs extraction. It blocks until extraction finishes.
// Wrong file types and extraction failures leave the session waiting for another upload.
func (s *Service) SubmitUpload(ctx context.Context, id string, doc extraction.Document) error {
	live, err := s.liveSession(id)
	if err != nil {
		return err
	}

	live.lock.Lock()
	if err := live.checkOpen(); err != nil {
		live.lock.Unlock()
		return err
	}
	if live.record.Stage != sessions.StageUpload {
		live.lock.Unlock()
		return errors.Wrapf(apperr.ErrWrongStage, "[Service.SubmitUpload] stage %s", live.record.Stage)
	}
	if !doc.Accepted() {
		live.say(SpeakerBot, msgWrongFileType)
		live.lock.Unlock()
		return apperr.Validation(msgWrongFileType)
	}
	live.pending = true
	live.say(SpeakerUser, uploadedLine(doc.Name))
	live.say(SpeakerBot, msgProcessingResume)
	live.lock.Unlock()

	profile, extractErr := s.extractor.Extract(ctx, doc)

	live.lock.Lock()
	defer live.lock.Unlock()
	live.pending = false

	if extractErr != nil {
		live.say(SpeakerBot, msgResumeUnreadable)
		s.logger.Warn().Err(extractErr).Str("session", id).Msg("resume extraction failed")
		return errors.Wrap(extractErr, "[Service.SubmitUpload] extract resume")
	}

	live.record.Candidate = live.record.Candidate.Merge(profile)
	if missing := live.record.Candidate.Missing(); len(missing) > 0 {
		live.missing = missing
		live.cursor = 0
		live.record.Stage = sessions.StageCollectingInfo
		live.say(SpeakerBot, needFieldLine(missing[0]))
		s.logger.Info().Str("session", id).Int("missing", len(missing)).Msg("collecting candidate details")
		return nil
	}

	live.say(SpeakerBot, startLine(live.record.Candidate.Name))
	return s.startQuestions(live)
}

// SubmitText accepts free text: an intake field while collecting details, otherwise an answer.
// An answer blocks until it has been evaluated.
func (s *Service) SubmitText(ctx context.Context, id, text string) error {
	live, err := s.liveSession(id)
	if err != nil {
		return err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return apperr.Validation("empty input")
	}

	live.lock.Lock()
	if err := live.checkOpen(); err != nil {
		live.lock.Unlock()
		return err
	}

	switch {
	case live.record.Stage == sessions.StageCollectingInfo:
		defer live.lock.Unlock()
		live.say(SpeakerUser, text)
		return s.fillField(live, text)

	case live.record.Stage == sessions.StageInProgress && live.question != nil:
		live.say(SpeakerUser, text)
		q := s.beginEvaluation(live)
		live.lock.Unlock()
		return s.evaluate(ctx, live, q, text)

	default:
		stage := live.record.Stage
		live.lock.Unlock()
		return errors.Wrapf(apperr.ErrWrongStage, "[Service.SubmitText] stage %s", stage)
	}
}

// Finalize retries completion of an interview whose final write or passkey update failed.
func (s *Service) Finalize(ctx context.Context, id string) error {
	live, err := s.liveSession(id)
	if err != nil {
		return err
	}

	live.lock.Lock()
	defer live.lock.Unlock()

	if live.pending {
		return apperr.ErrBusy
	}
	switch {
	case live.record.Stage == sessions.StageCompleted:
		if err := s.recordUsage(ctx, live); err != nil {
			return err
		}
		s.scheduleEviction(live)
		return nil
	case live.record.Stage == sessions.StageInProgress && live.record.QuestionIndex >= questions.Total:
		return s.complete(ctx, live)
	}
	return errors.Wrapf(apperr.ErrWrongStage, "[Service.Finalize] stage %s", live.record.Stage)
}

// fillField stores text in the field at the intake cursor. Caller holds live.lock.
func (s *Service) fillField(live *liveSession, text string) error {
	live.record.Candidate.Set(live.missing[live.cursor], text)
	live.cursor++
	if live.cursor < len(live.missing) {
		live.say(SpeakerBot, nextFieldLine(live.missing[live.cursor]))
		return nil
	}
	live.missing = nil
	live.cursor = 0
	live.say(SpeakerBot, beginLine(live.record.Candidate.Name))
	return s.startQuestions(live)
}

func (s *Service) startQuestions(live *liveSession) error {
	live.record.Stage = sessions.StageInProgress
	s.logger.Info().Str("session", live.id).Msg("interview started")
	return s.issueQuestion(live)
}

// issueQuestion opens the question at the session's ordinal and arms its deadline. Caller holds live.lock.
func (s *Service) issueQuestion(live *liveSession) error {
	q, err := s.bank.Issue(live.record.QuestionIndex)
	if err != nil {
		return errors.Wrap(err, "[Service.issueQuestion]")
	}

	live.generation++
	generation := live.generation
	live.question = &q
	live.deadline = s.nowTime().Add(q.TimeLimit)
	live.timer = s.afterFunc(q.TimeLimit, func() {
		s.expire(live, generation)
	})
	live.say(SpeakerBot, q.Prompt())

	s.logger.Debug().
		Str("session", live.id).
		Int("question", q.Ordinal+1).
		Str("tier", string(q.Tier)).
		Msg("question issued")
	return nil
}

// expire submits the empty answer when a question's deadline passes.
func (s *Service) expire(live *liveSession, generation uint64) {
	live.lock.Lock()
	if generation != live.generation || live.pending || live.question == nil ||
		live.record.Stage != sessions.StageInProgress {
		live.lock.Unlock()
		return
	}
	live.say(SpeakerSystem, msgTimeUp)
	q := s.beginEvaluation(live)
	live.lock.Unlock()

	s.logger.Info().Str("session", live.id).Int("question", q.Ordinal+1).Msg("answer deadline elapsed")
	if err := s.evaluate(context.Background(), live, q, ""); err != nil {
		s.logger.Error().Err(err).Str("session", live.id).Msg("failed to advance after deadline")
	}
}

// beginEvaluation closes the open question and marks the session busy. Caller holds live.lock.
func (s *Service) beginEvaluation(live *liveSession) questions.Question {
	q := live.closeQuestion()
	live.pending = true
	live.say(SpeakerBot, msgEvaluating)
	return q
}

// evaluate scores the answer with the lock released, then records it and advances.
// The evaluation is detached from ctx cancellation and bounded by the evaluation timeout.
func (s *Service) evaluate(ctx context.Context, live *liveSession, q questions.Question, answer string) error {
	ctx = context.WithoutCancel(ctx)
	evalCtx, cancel := context.WithTimeout(ctx, s.evaluationTimeout)
	result, err := s.evaluator.Evaluate(evalCtx, q.Text, answer, q.Tier)
	cancel()
	if err != nil {
		s.logger.Warn().Err(err).Str("session", live.id).Msg("evaluation failed, recording without a score")
		result = evaluation.Unavailable()
	}

	live.lock.Lock()
	defer live.lock.Unlock()
	live.pending = false

	score := evaluation.Clamp(result.Score)
	live.record.Record(sessions.QuestionResult{
		Question:   q.Text,
		Answer:     answer,
		Difficulty: q.Tier,
		Score:      score,
		Feedback:   result.Feedback,
	})
	live.say(SpeakerBot, scoreLine(score, result.Feedback))

	if live.record.QuestionIndex >= questions.Total {
		return s.complete(ctx, live)
	}
	return s.issueQuestion(live)
}

// complete persists the finished interview and then marks it completed.
// On a failed write the session stays in progress so Finalize can retry. Caller holds live.lock.
func (s *Service) complete(ctx context.Context, live *liveSession) error {
	final := live.record.Clone()
	final.Stage = sessions.StageCompleted
	final.CompletedAt = utils.Ptr(s.nowTime())
	final.Summary = sessions.Summarize(final.TotalScore)

	if err := s.repos.Sessions.Save(ctx, final); err != nil {
		s.logger.Error().Err(err).Str("session", final.ID).Msg("failed to persist interview")
		return errors.Wrap(err, "[Service.complete] persist session")
	}

	live.record = final
	live.say(SpeakerBot, msgCompleted)
	live.say(SpeakerBot, finalLine(final.TotalScore, final.Summary))
	s.logger.Info().
		Str("session", final.ID).
		Int("total_score", final.TotalScore).
		Msg("interview completed")

	if err := s.recordUsage(ctx, live); err != nil {
		return err
	}
	s.scheduleEviction(live)
	return nil
}

// recordUsage counts the completed interview against its passkey at most once. Caller holds live.lock.
func (s *Service) recordUsage(ctx context.Context, live *liveSession) error {
	if live.usageRecorded || !live.record.HasPasskey() {
		return nil
	}
	if err := s.ledger.RecordUsage(ctx, live.record.Passkey); err != nil {
		s.logger.Error().Err(err).Str("session", live.id).Msg("failed to record passkey usage")
		return errors.Wrap(err, "[Service.recordUsage]")
	}
	live.usageRecorded = true
	return nil
}
