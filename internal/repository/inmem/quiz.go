package inmem

import (
	"context"
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/util"
	"fmt"
	"sort"
)

type quizRow struct {
	seq  int
	quiz model.Quiz
}

type questionRow struct {
	seq      int
	question model.QuizQuestion
}

type QuizRepository struct {
	db *DB
}

func NewQuizRepository(db *DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) CreateQuiz(ctx context.Context, quiz *model.Quiz, questions []model.QuizQuestion) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if quiz.ID == "" {
		quiz.ID = model.GenerateUUID()
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = r.db.Now()
	}

	seen := make(map[int]bool, len(questions))
	for _, q := range questions {
		if seen[q.IndexInQuiz] {
			return fmt.Errorf("duplicate index_in_quiz %d", q.IndexInQuiz)
		}
		seen[q.IndexInQuiz] = true
	}

	r.db.quizzes = append(r.db.quizzes, &quizRow{seq: r.db.next(), quiz: *quiz})
	for i := range questions {
		questions[i].QuizID = quiz.ID
		if questions[i].ID == "" {
			questions[i].ID = model.GenerateUUID()
		}
		questions[i].CreatedAt = quiz.CreatedAt
		r.db.questions = append(r.db.questions, &questionRow{seq: r.db.next(), question: questions[i]})
	}
	return nil
}

func (r *QuizRepository) FindQuizByID(ctx context.Context, id string) (*model.Quiz, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	for _, row := range r.db.quizzes {
		if row.quiz.ID == id {
			q := row.quiz
			return &q, nil
		}
	}
	return nil, util.ErrQuizNotFound
}

func (r *QuizRepository) ListQuizzes(ctx context.Context) ([]model.Quiz, error) {
	r.db.mutex.RLock()
	rows := make([]*quizRow, len(r.db.quizzes))
	copy(rows, r.db.quizzes)
	r.db.mutex.RUnlock()

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].quiz.CreatedAt.Equal(rows[j].quiz.CreatedAt) {
			return rows[i].seq > rows[j].seq
		}
		return rows[i].quiz.CreatedAt.After(rows[j].quiz.CreatedAt)
	})

	quizzes := make([]model.Quiz, 0, len(rows))
	for _, row := range rows {
		quizzes = append(quizzes, row.quiz)
	}
	return quizzes, nil
}

func (r *QuizRepository) ListQuestions(ctx context.Context, quizID string) ([]model.QuizQuestion, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	var qs []model.QuizQuestion
	for _, row := range r.db.questions {
		if row.question.QuizID == quizID {
			qs = append(qs, row.question)
		}
	}
	sort.Slice(qs, func(i, j int) bool { return qs[i].IndexInQuiz < qs[j].IndexInQuiz })
	return qs, nil
}

func (r *QuizRepository) FindQuestionsByIDs(ctx context.Context, ids []string) ([]model.QuizQuestion, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var qs []model.QuizQuestion
	for _, row := range r.db.questions {
		if want[row.question.ID] {
			qs = append(qs, row.question)
		}
	}
	return qs, nil
}

func (r *QuizRepository) CountQuestions(ctx context.Context, quizIDs []string) (map[string]int, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	want := make(map[string]bool, len(quizIDs))
	for _, id := range quizIDs {
		want[id] = true
	}

	counts := make(map[string]int, len(quizIDs))
	for _, row := range r.db.questions {
		if want[row.question.QuizID] {
			counts[row.question.QuizID]++
		}
	}
	return counts, nil
}
