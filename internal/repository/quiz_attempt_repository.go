package repository

import (
	"context"
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

func (r *QuizAttemptRepository) CreateAttempt(ctx context.Context, attempt *model.QuizAttempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

func (r *QuizAttemptRepository) FindAttemptByID(ctx context.Context, id string) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpsertAnswer writes the answer for (attempt_id, question_id), replacing the selected
// index of an existing row in the same statement.
func (r *QuizAttemptRepository) UpsertAnswer(ctx context.Context, answer *model.QuizAttemptAnswer) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selected_index"}),
	}).Create(answer).Error
}

func (r *QuizAttemptRepository) ListAnswers(ctx context.Context, attemptID string) ([]model.QuizAttemptAnswer, error) {
	var answers []model.QuizAttemptAnswer
	err := r.DB.WithContext(ctx).Where("attempt_id = ?", attemptID).Find(&answers).Error
	return answers, err
}

func (r *QuizAttemptRepository) MarkSubmitted(ctx context.Context, attemptID string, at time.Time, score int) error {
	res := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
		Where("id = ?", attemptID).
		Updates(map[string]interface{}{
			"submitted_at": at,
			"score":        score,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrAttemptNotFound
	}
	return nil
}

// AggregateAttempts rolls up attempt rows per quiz: every row counts as a submission,
// only rows with a score contribute to the score sum.
func (r *QuizAttemptRepository) AggregateAttempts(ctx context.Context, quizIDs []string) (map[string]model.AttemptAggregate, error) {
	out := make(map[string]model.AttemptAggregate, len(quizIDs))
	if len(quizIDs) == 0 {
		return out, nil
	}

	var rows []model.AttemptAggregate
	err := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
		Select("quiz_id, COUNT(*) AS submissions, COUNT(score) AS scored_count, COALESCE(SUM(score), 0) AS score_sum").
		Where("quiz_id IN ?", quizIDs).
		Group("quiz_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.QuizID] = row
	}
	return out, nil
}

func (r *QuizAttemptRepository) ListStudentAttempts(ctx context.Context, studentID string, quizIDs []string) ([]model.QuizAttempt, error) {
	if len(quizIDs) == 0 {
		return nil, nil
	}
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND quiz_id IN ?", studentID, quizIDs).
		Order("started_at asc").
		Find(&attempts).Error
	return attempts, err
}

func (r *QuizAttemptRepository) ListCompletedAttempts(ctx context.Context, quizID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Where("quiz_id = ? AND submitted_at IS NOT NULL", quizID).
		Order("submitted_at desc").
		Find(&attempts).Error
	return attempts, err
}

// AggregateQuestionAnswers counts answers and correct answers per question of a quiz,
// over submitted attempts only.
func (r *QuizAttemptRepository) AggregateQuestionAnswers(ctx context.Context, quizID string) (map[string]model.QuestionAggregate, error) {
	var rows []model.QuestionAggregate
	err := r.DB.WithContext(ctx).Table("quiz_attempt_answers a").
		Select("a.question_id AS question_id, "+
			"SUM(CASE WHEN a.selected_index = q.correct_index THEN 1 ELSE 0 END) AS correct_count, "+
			"COUNT(*) AS total_count").
		Joins("JOIN quiz_questions q ON q.id = a.question_id").
		Joins("JOIN quiz_attempts t ON t.id = a.attempt_id").
		Where("q.quiz_id = ? AND t.submitted_at IS NOT NULL", quizID).
		Group("a.question_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]model.QuestionAggregate, len(rows))
	for _, row := range rows {
		out[row.QuestionID] = row
	}
	return out, nil
}
