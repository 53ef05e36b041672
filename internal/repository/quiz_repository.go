package repository

import (
	"context"
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// CreateQuiz inserts the quiz and its questions in one transaction.
func (r *QuizRepository) CreateQuiz(ctx context.Context, quiz *model.Quiz, questions []model.QuizQuestion) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		for i := range questions {
			questions[i].QuizID = quiz.ID
		}
		return tx.Create(&questions).Error
	})
}

func (r *QuizRepository) FindQuizByID(ctx context.Context, id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).First(&quiz, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) ListQuizzes(ctx context.Context) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.WithContext(ctx).Order("created_at desc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListQuestions(ctx context.Context, quizID string) ([]model.QuizQuestion, error) {
	var qs []model.QuizQuestion
	err := r.DB.WithContext(ctx).Where("quiz_id = ?", quizID).Order("index_in_quiz asc").Find(&qs).Error
	return qs, err
}

func (r *QuizRepository) FindQuestionsByIDs(ctx context.Context, ids []string) ([]model.QuizQuestion, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var qs []model.QuizQuestion
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&qs).Error
	return qs, err
}

// CountQuestions returns the number of questions per quiz id.
func (r *QuizRepository) CountQuestions(ctx context.Context, quizIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(quizIDs))
	if len(quizIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		QuizID string
		Total  int
	}
	err := r.DB.WithContext(ctx).Model(&model.QuizQuestion{}).
		Select("quiz_id, COUNT(*) AS total").
		Where("quiz_id IN ?", quizIDs).
		Group("quiz_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.QuizID] = row.Total
	}
	return counts, nil
}
