package service

import (
	"context"
	"edutrack_backend/internal/config"
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/repository/inmem"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	teacher = model.Identity{ID: "t-1", Name: "Ms. Rivera", Email: "rivera@school.test", Role: model.Teacher}
	alice   = model.Identity{ID: "s-1", Name: "Alice", Email: "alice@school.test", Role: model.Student}
	bob     = model.Identity{ID: "s-2", Name: "Bob", Email: "bob@school.test", Role: model.Student}
)

type testEnv struct {
	db        *inmem.DB
	quizzes   *inmem.QuizRepository
	attempts  *inmem.QuizAttemptRepository
	quiz      *QuizService
	attempt   *AttemptService
	analytics *AnalyticsService
	clock     *fakeClock
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testConfig() *config.Config {
	return &config.Config{
		Quiz:      config.QuizConfig{PointsRemainder: string(RemainderFloor)},
		Analytics: config.AnalyticsConfig{BucketMode: string(BucketUniform)},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	db := inmem.Open()
	db.Now = clock.Now

	quizzes := inmem.NewQuizRepository(db)
	attempts := inmem.NewQuizAttemptRepository(db)
	cfg := testConfig()

	attemptSvc := NewAttemptService(quizzes, attempts, nil)
	attemptSvc.Now = clock.Now

	return &testEnv{
		db:        db,
		quizzes:   quizzes,
		attempts:  attempts,
		quiz:      NewQuizService(quizzes, attempts, nil, cfg),
		attempt:   attemptSvc,
		analytics: NewAnalyticsService(quizzes, attempts, cfg),
		clock:     clock,
	}
}

func options() []string {
	return []string{"A", "B", "C", "D"}
}

// createQuiz stores a quiz with one question per correct index and returns its id and
// question ids in order.
func (e *testEnv) createQuiz(t *testing.T, title string, totalPoints int, correct ...int) (string, []string) {
	t.Helper()

	req := &CreateQuizRequest{
		Title:       title,
		Subject:     model.SubjectMathematics,
		Difficulty:  model.Easy,
		TotalPoints: totalPoints,
	}
	for i, c := range correct {
		req.Questions = append(req.Questions, CreateQuestionRequest{
			QuestionText: title + " question " + string(rune('1'+i)),
			Options:      options(),
			CorrectIndex: c,
		})
	}

	id, err := e.quiz.CreateQuiz(context.Background(), req, teacher)
	require.NoError(t, err)
	e.clock.Advance(time.Second)

	qs, err := e.quiz.GetQuizQuestions(context.Background(), id)
	require.NoError(t, err)

	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return id, ids
}

// takeQuiz starts an attempt, records answers (question id -> index) and submits after d.
func (e *testEnv) takeQuiz(t *testing.T, quizID string, student model.Identity, d time.Duration, answers map[string]int) (string, int) {
	t.Helper()
	ctx := context.Background()

	attemptID, err := e.attempt.StartAttempt(ctx, quizID, student)
	require.NoError(t, err)

	for q, idx := range answers {
		require.NoError(t, e.attempt.AnswerQuestion(ctx, attemptID, q, idx))
	}

	e.clock.Advance(d)
	score, err := e.attempt.SubmitAttempt(ctx, attemptID)
	require.NoError(t, err)
	return attemptID, score
}
