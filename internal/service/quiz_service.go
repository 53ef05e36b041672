package service

import (
	"context"
	"edutrack_backend/internal/config"
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/util"
	"edutrack_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

type QuizService struct {
	Quizzes   QuizStore
	Attempts  AttemptStore
	Cache     CatalogCache
	Remainder RemainderPolicy
}

func NewQuizService(quizzes QuizStore, attempts AttemptStore, cache CatalogCache, cfg *config.Config) *QuizService {
	if cache == nil {
		cache = NewNoopCatalogCache()
	}
	return &QuizService{
		Quizzes:   quizzes,
		Attempts:  attempts,
		Cache:     cache,
		Remainder: RemainderPolicy(cfg.Quiz.PointsRemainder),
	}
}

type CreateQuestionRequest struct {
	QuestionText string   `json:"question_text" validate:"notblank"`
	Options      []string `json:"options" validate:"len=4,dive,notblank"`
	CorrectIndex int      `json:"correct_index" validate:"min=0,max=3"`
}

type CreateQuizRequest struct {
	Title       string                  `json:"title" validate:"notblank,max=255"`
	Description string                  `json:"description"`
	Subject     model.SubjectTag        `json:"subject" validate:"subject"`
	Difficulty  model.DifficultyTag     `json:"difficulty" validate:"difficulty"`
	TotalPoints int                     `json:"total_points" validate:"min=0"`
	DueDate     *time.Time              `json:"due_date"`
	Tags        []string                `json:"tags"`
	Questions   []CreateQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

// ListQuizzes returns every quiz, newest first, with its catalog statistics.
func (s *QuizService) ListQuizzes(ctx context.Context) ([]model.QuizWithStats, error) {
	cached, generation, ok := s.Cache.Get(ctx)
	if ok {
		return cached, nil
	}

	quizzes, err := s.Quizzes.ListQuizzes(ctx)
	if err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return []model.QuizWithStats{}, nil
	}

	ids := make([]string, len(quizzes))
	for i, q := range quizzes {
		ids[i] = q.ID
	}

	counts, err := s.Quizzes.CountQuestions(ctx, ids)
	if err != nil {
		return nil, err
	}
	aggs, err := s.Attempts.AggregateAttempts(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.QuizWithStats, len(quizzes))
	for i, q := range quizzes {
		agg := aggs[q.ID]
		out[i] = model.QuizWithStats{
			Quiz:           q,
			QuestionsCount: counts[q.ID],
			Submissions:    agg.Submissions,
			AverageScore:   AverageScorePercent(agg.ScoreSum, agg.ScoredCount, q.TotalPoints),
		}
	}

	s.Cache.Set(ctx, generation, out)
	return out, nil
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*model.Quiz, error) {
	return s.Quizzes.FindQuizByID(ctx, id)
}

// GetQuizQuestions returns the questions of a quiz in index order.
func (s *QuizService) GetQuizQuestions(ctx context.Context, quizID string) ([]model.QuizQuestion, error) {
	if _, err := s.Quizzes.FindQuizByID(ctx, quizID); err != nil {
		return nil, err
	}
	return s.Quizzes.ListQuestions(ctx, quizID)
}

// GetStudentQuestions is GetQuizQuestions without the answer key.
func (s *QuizService) GetStudentQuestions(ctx context.Context, quizID string) ([]model.StudentQuestion, error) {
	qs, err := s.GetQuizQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	out := make([]model.StudentQuestion, len(qs))
	for i, q := range qs {
		out[i] = q.ForStudent()
	}
	return out, nil
}

// CreateQuiz validates req, freezes per-question points and stores the quiz with its
// questions. Question order in req becomes index_in_quiz.
func (s *QuizService) CreateQuiz(ctx context.Context, req *CreateQuizRequest, creator model.Identity) (string, error) {
	if !creator.IsTeacher() {
		return "", util.ErrPermissionDenied
	}
	if err := util.ValidateStruct(req); err != nil {
		return "", err
	}

	points, err := PerQuestionPoints(req.TotalPoints, len(req.Questions), s.Remainder)
	if err != nil {
		return "", err
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	quiz := &model.Quiz{
		Title:         req.Title,
		Description:   req.Description,
		Subject:       req.Subject,
		Difficulty:    req.Difficulty,
		TotalPoints:   req.TotalPoints,
		DueDate:       req.DueDate,
		IsActive:      true,
		Tags:          tags,
		CreatedBy:     creator.ID,
		CreatedByName: creator.Name,
	}
	quiz.ID = model.GenerateUUID()

	questions := make([]model.QuizQuestion, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = model.QuizQuestion{
			IndexInQuiz:  i,
			QuestionText: q.QuestionText,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Points:       points[i],
		}
		questions[i].ID = model.GenerateUUID()
	}

	if err := s.Quizzes.CreateQuiz(ctx, quiz, questions); err != nil {
		return "", err
	}

	s.Cache.Invalidate(ctx)
	logger.Log.Info("quiz created",
		zap.String("quiz_id", quiz.ID),
		zap.String("created_by", creator.ID),
		zap.Int("questions", len(questions)),
	)
	return quiz.ID, nil
}

// GetAttemptStatuses reports, for each of quizIDs the student has attempted, whether a
// submitted attempt exists. Quizzes without any attempt are absent from the result.
func (s *QuizService) GetAttemptStatuses(ctx context.Context, quizIDs []string, student model.Identity) (map[string]model.AttemptStatus, error) {
	statuses := make(map[string]model.AttemptStatus)
	if len(quizIDs) == 0 {
		return statuses, nil
	}

	attempts, err := s.Attempts.ListStudentAttempts(ctx, student.ID, quizIDs)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]time.Time)
	for _, a := range attempts {
		if !a.IsSubmitted() {
			if _, seen := statuses[a.QuizID]; !seen {
				statuses[a.QuizID] = model.AttemptStatus{QuizID: a.QuizID, Status: model.AttemptNotTaken}
			}
			continue
		}

		if prev, ok := latest[a.QuizID]; ok && a.SubmittedAt.Before(prev) {
			continue
		}
		latest[a.QuizID] = *a.SubmittedAt
		statuses[a.QuizID] = model.AttemptStatus{
			QuizID: a.QuizID,
			Status: model.AttemptCompleted,
			Score:  a.Score,
		}
	}
	return statuses, nil
}
