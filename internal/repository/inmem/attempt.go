package inmem

import (
	"context"
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/util"
	"sort"
	"time"
)

type attemptRow struct {
	seq     int
	attempt model.QuizAttempt
}

type answerKey struct {
	attemptID  string
	questionID string
}

type answerRow struct {
	seq    int
	answer model.QuizAttemptAnswer
}

type QuizAttemptRepository struct {
	db *DB
}

func NewQuizAttemptRepository(db *DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{db: db}
}

func (r *QuizAttemptRepository) CreateAttempt(ctx context.Context, attempt *model.QuizAttempt) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if attempt.ID == "" {
		attempt.ID = model.GenerateUUID()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = r.db.Now()
	}
	r.db.attempts = append(r.db.attempts, &attemptRow{seq: r.db.next(), attempt: *attempt})
	return nil
}

func (r *QuizAttemptRepository) find(id string) *attemptRow {
	for _, row := range r.db.attempts {
		if row.attempt.ID == id {
			return row
		}
	}
	return nil
}

func (r *QuizAttemptRepository) FindAttemptByID(ctx context.Context, id string) (*model.QuizAttempt, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	row := r.find(id)
	if row == nil {
		return nil, util.ErrAttemptNotFound
	}
	a := row.attempt
	return &a, nil
}

func (r *QuizAttemptRepository) UpsertAnswer(ctx context.Context, answer *model.QuizAttemptAnswer) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	key := answerKey{attemptID: answer.AttemptID, questionID: answer.QuestionID}
	if existing, ok := r.db.answers[key]; ok {
		existing.answer.SelectedIndex = answer.SelectedIndex
		*answer = existing.answer
		return nil
	}

	if answer.ID == "" {
		answer.ID = model.GenerateUUID()
	}
	if answer.CreatedAt.IsZero() {
		answer.CreatedAt = r.db.Now()
	}
	r.db.answers[key] = &answerRow{seq: r.db.next(), answer: *answer}
	return nil
}

func (r *QuizAttemptRepository) ListAnswers(ctx context.Context, attemptID string) ([]model.QuizAttemptAnswer, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	var rows []*answerRow
	for k, row := range r.db.answers {
		if k.attemptID == attemptID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	answers := make([]model.QuizAttemptAnswer, 0, len(rows))
	for _, row := range rows {
		answers = append(answers, row.answer)
	}
	return answers, nil
}

func (r *QuizAttemptRepository) MarkSubmitted(ctx context.Context, attemptID string, at time.Time, score int) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	row := r.find(attemptID)
	if row == nil {
		return util.ErrAttemptNotFound
	}
	submitted := at
	s := score
	row.attempt.SubmittedAt = &submitted
	row.attempt.Score = &s
	return nil
}

func (r *QuizAttemptRepository) AggregateAttempts(ctx context.Context, quizIDs []string) (map[string]model.AttemptAggregate, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	want := make(map[string]bool, len(quizIDs))
	for _, id := range quizIDs {
		want[id] = true
	}

	out := make(map[string]model.AttemptAggregate, len(quizIDs))
	for _, row := range r.db.attempts {
		a := row.attempt
		if !want[a.QuizID] {
			continue
		}
		agg := out[a.QuizID]
		agg.QuizID = a.QuizID
		agg.Submissions++
		if a.Score != nil {
			agg.ScoredCount++
			agg.ScoreSum += *a.Score
		}
		out[a.QuizID] = agg
	}
	return out, nil
}

func (r *QuizAttemptRepository) ListStudentAttempts(ctx context.Context, studentID string, quizIDs []string) ([]model.QuizAttempt, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	want := make(map[string]bool, len(quizIDs))
	for _, id := range quizIDs {
		want[id] = true
	}

	var attempts []model.QuizAttempt
	for _, row := range r.db.attempts {
		if row.attempt.StudentID == studentID && want[row.attempt.QuizID] {
			attempts = append(attempts, row.attempt)
		}
	}
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].StartedAt.Before(attempts[j].StartedAt)
	})
	return attempts, nil
}

func (r *QuizAttemptRepository) ListCompletedAttempts(ctx context.Context, quizID string) ([]model.QuizAttempt, error) {
	r.db.mutex.RLock()
	var rows []*attemptRow
	for _, row := range r.db.attempts {
		if row.attempt.QuizID == quizID && row.attempt.SubmittedAt != nil {
			rows = append(rows, row)
		}
	}
	r.db.mutex.RUnlock()

	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := *rows[i].attempt.SubmittedAt, *rows[j].attempt.SubmittedAt
		if ti.Equal(tj) {
			return rows[i].seq > rows[j].seq
		}
		return ti.After(tj)
	})

	attempts := make([]model.QuizAttempt, 0, len(rows))
	for _, row := range rows {
		attempts = append(attempts, row.attempt)
	}
	return attempts, nil
}

func (r *QuizAttemptRepository) AggregateQuestionAnswers(ctx context.Context, quizID string) (map[string]model.QuestionAggregate, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	keys := make(map[string]model.QuizQuestion)
	for _, row := range r.db.questions {
		if row.question.QuizID == quizID {
			keys[row.question.ID] = row.question
		}
	}

	out := make(map[string]model.QuestionAggregate)
	for k, row := range r.db.answers {
		q, ok := keys[k.questionID]
		if !ok {
			continue
		}
		attempt := r.find(k.attemptID)
		if attempt == nil || attempt.attempt.SubmittedAt == nil {
			continue
		}
		agg := out[q.ID]
		agg.QuestionID = q.ID
		agg.TotalCount++
		if row.answer.SelectedIndex == q.CorrectIndex {
			agg.CorrectCount++
		}
		out[q.ID] = agg
	}
	return out, nil
}
