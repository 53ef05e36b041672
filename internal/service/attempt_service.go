package service

import (
	"context"
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/util"
	"edutrack_backend/pkg/logger"
	"edutrack_backend/pkg/monitoring"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// AttemptService drives one student's pass through a quiz: start, answer, submit.
type AttemptService struct {
	Quizzes  QuizStore
	Attempts AttemptStore
	Cache    CatalogCache

	// Now is the clock for started_at and submitted_at.
	Now func() time.Time
}

func NewAttemptService(quizzes QuizStore, attempts AttemptStore, cache CatalogCache) *AttemptService {
	if cache == nil {
		cache = NewNoopCatalogCache()
	}
	return &AttemptService{
		Quizzes:  quizzes,
		Attempts: attempts,
		Cache:    cache,
		Now:      time.Now,
	}
}

// StartAttempt creates a new in-progress attempt. The quiz's total_points is copied
// into the attempt. Earlier attempts by the same student are not checked.
func (s *AttemptService) StartAttempt(ctx context.Context, quizID string, student model.Identity) (string, error) {
	quiz, err := s.Quizzes.FindQuizByID(ctx, quizID)
	if err != nil {
		return "", err
	}

	attempt := &model.QuizAttempt{
		QuizID:      quiz.ID,
		StudentID:   student.ID,
		StudentName: student.Name,
		TotalPoints: quiz.TotalPoints,
		StartedAt:   s.Now(),
	}
	attempt.ID = model.GenerateUUID()

	if err := s.Attempts.CreateAttempt(ctx, attempt); err != nil {
		return "", err
	}

	monitoring.AttemptsStarted.Inc()
	s.Cache.Invalidate(ctx)
	return attempt.ID, nil
}

// GetAttempt loads one attempt.
func (s *AttemptService) GetAttempt(ctx context.Context, attemptID string) (*model.QuizAttempt, error) {
	return s.Attempts.FindAttemptByID(ctx, attemptID)
}

// AnswerQuestion records selectedIndex for (attemptID, questionID), replacing any
// earlier answer for the same pair.
func (s *AttemptService) AnswerQuestion(ctx context.Context, attemptID, questionID string, selectedIndex int) error {
	attempt, err := s.Attempts.FindAttemptByID(ctx, attemptID)
	if err != nil {
		return err
	}
	if attempt.IsSubmitted() {
		return util.ErrAttemptSubmitted
	}

	answer := &model.QuizAttemptAnswer{
		AttemptID:     attemptID,
		QuestionID:    questionID,
		SelectedIndex: selectedIndex,
	}
	answer.ID = model.GenerateUUID()

	if err := s.Attempts.UpsertAnswer(ctx, answer); err != nil {
		return fmt.Errorf("record answer: %w", err)
	}

	monitoring.AnswersRecorded.Inc()
	return nil
}

// SubmitAttempt scores the recorded answers and marks the attempt submitted. Calling it
// again rewrites submitted_at with the same score.
func (s *AttemptService) SubmitAttempt(ctx context.Context, attemptID string) (int, error) {
	answers, err := s.Attempts.ListAnswers(ctx, attemptID)
	if err != nil {
		return 0, err
	}

	ids := make([]string, len(answers))
	selections := make([]model.AnswerSelection, len(answers))
	for i, a := range answers {
		ids[i] = a.QuestionID
		selections[i] = model.AnswerSelection{QuestionID: a.QuestionID, SelectedIndex: a.SelectedIndex}
	}

	questions, err := s.Quizzes.FindQuestionsByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	key := make(map[string]model.AnswerKey, len(questions))
	for _, q := range questions {
		key[q.ID] = model.AnswerKey{CorrectIndex: q.CorrectIndex, Points: q.Points}
	}

	score := ScoreAnswers(selections, key)
	if err := s.Attempts.MarkSubmitted(ctx, attemptID, s.Now(), score); err != nil {
		return 0, err
	}

	monitoring.AttemptsSubmitted.Inc()
	s.Cache.Invalidate(ctx)
	logger.Log.Info("attempt submitted",
		zap.String("attempt_id", attemptID),
		zap.Int("answers", len(answers)),
		zap.Int("score", score),
	)
	return score, nil
}
