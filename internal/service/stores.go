package service

import (
	"context"
	"edutrack_backend/internal/model"
	"time"
)

// QuizStore is implemented by repository.QuizRepository and inmem.QuizRepository.
type QuizStore interface {
	CreateQuiz(ctx context.Context, quiz *model.Quiz, questions []model.QuizQuestion) error
	FindQuizByID(ctx context.Context, id string) (*model.Quiz, error)
	ListQuizzes(ctx context.Context) ([]model.Quiz, error)
	ListQuestions(ctx context.Context, quizID string) ([]model.QuizQuestion, error)
	FindQuestionsByIDs(ctx context.Context, ids []string) ([]model.QuizQuestion, error)
	CountQuestions(ctx context.Context, quizIDs []string) (map[string]int, error)
}

type AttemptStore interface {
	CreateAttempt(ctx context.Context, attempt *model.QuizAttempt) error
	FindAttemptByID(ctx context.Context, id string) (*model.QuizAttempt, error)
	UpsertAnswer(ctx context.Context, answer *model.QuizAttemptAnswer) error
	ListAnswers(ctx context.Context, attemptID string) ([]model.QuizAttemptAnswer, error)
	MarkSubmitted(ctx context.Context, attemptID string, at time.Time, score int) error
	AggregateAttempts(ctx context.Context, quizIDs []string) (map[string]model.AttemptAggregate, error)
	ListStudentAttempts(ctx context.Context, studentID string, quizIDs []string) ([]model.QuizAttempt, error)
	ListCompletedAttempts(ctx context.Context, quizID string) ([]model.QuizAttempt, error)
	AggregateQuestionAnswers(ctx context.Context, quizID string) (map[string]model.QuestionAggregate, error)
}

type ResourceStore interface {
	CreateResource(ctx context.Context, resource *model.Resource) error
	ListResources(ctx context.Context, q model.ResourceQuery) ([]model.Resource, error)
}
