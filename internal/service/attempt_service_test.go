package service

import (
	"context"
	"edutrack_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAttemptCopiesTotalPoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quizID, _ := env.createQuiz(t, "Fractions", 100, 1, 2, 3)

	attemptID, err := env.attempt.StartAttempt(ctx, quizID, alice)
	require.NoError(t, err)

	a, err := env.attempt.GetAttempt(ctx, attemptID)
	require.NoError(t, err)
	assert.Equal(t, quizID, a.QuizID)
	assert.Equal(t, alice.ID, a.StudentID)
	assert.Equal(t, alice.Name, a.StudentName)
	assert.Equal(t, 100, a.TotalPoints)
	assert.Equal(t, env.clock.now, a.StartedAt)
	assert.Nil(t, a.SubmittedAt)
	assert.Nil(t, a.Score)
}

func TestStartAttemptTwiceCreatesTwoAttempts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quizID, _ := env.createQuiz(t, "Fractions", 10, 0)

	first, err := env.attempt.StartAttempt(ctx, quizID, alice)
	require.NoError(t, err)
	second, err := env.attempt.StartAttempt(ctx, quizID, alice)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	aggs, err := env.attempts.AggregateAttempts(ctx, []string{quizID})
	require.NoError(t, err)
	assert.Equal(t, 2, aggs[quizID].Submissions)
}

func TestStartAttemptUnknownQuiz(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attempt.StartAttempt(context.Background(), "missing", alice)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestAnswerQuestionLastWriteWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quizID, qs := env.createQuiz(t, "Geometry", 66, 1, 2)

	attemptID, err := env.attempt.StartAttempt(ctx, quizID, alice)
	require.NoError(t, err)

	require.NoError(t, env.attempt.AnswerQuestion(ctx, attemptID, qs[0], 2))
	require.NoError(t, env.attempt.AnswerQuestion(ctx, attemptID, qs[0], 0))

	answers, err := env.attempts.ListAnswers(ctx, attemptID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, qs[0], answers[0].QuestionID)
	assert.Equal(t, 0, answers[0].SelectedIndex)
}

func TestAnswerQuestionSequenceKeepsOneRowPerQuestion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quizID, qs := env.createQuiz(t, "Algebra", 30, 0, 1, 2)

	attemptID, err := env.attempt.StartAttempt(ctx, quizID, alice)
	require.NoError(t, err)

	writes := []struct {
		q   int
		idx int
	}{
		{0, 3}, {1, 1}, {0, 2}, {2, 0}, {1, 3}, {0, 1}, {2, 2},
	}
	last := map[string]int{}
	for _, w := range writes {
		require.NoError(t, env.attempt.AnswerQuestion(ctx, attemptID, qs[w.q], w.idx))
		last[qs[w.q]] = w.idx
	}

	answers, err := env.attempts.ListAnswers(ctx, attemptID)
	require.NoError(t, err)
	require.Len(t, answers, len(qs))
	for _, a := range answers {
		assert.Equal(t, last[a.QuestionID], a.SelectedIndex, a.QuestionID)
	}
}

func TestAnswerQuestionRejectsSubmittedAttempt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quizID, qs := env.createQuiz(t, "Algebra", 10, 0)

	attemptID, _ := env.takeQuiz(t, quizID, alice, time.Minute, map[string]int{qs[0]: 0})

	err := env.attempt.AnswerQuestion(ctx, attemptID, qs[0], 1)
	assert.ErrorIs(t, err, util.ErrAttemptSubmitted)
}

func TestAnswerQuestionUnknownAttempt(t *testing.T) {
	env := newTestEnv(t)

	err := env.attempt.AnswerQuestion(context.Background(), "missing", "q", 1)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestSubmitAttemptScoresCorrectAnswers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 66 points over 2 questions freezes 33 per question
	quizID, qs := env.createQuiz(t, "Two questions", 66, 1, 2)

	questions, err := env.quiz.GetQuizQuestions(ctx, quizID)
	require.NoError(t, err)
	for _, q := range questions {
		assert.Equal(t, 33, q.Points)
	}

	attemptID, score := env.takeQuiz(t, quizID, alice, 5*time.Minute, map[string]int{qs[0]: 1, qs[1]: 0})
	assert.Equal(t, 33, score)

	a, err := env.attempt.GetAttempt(ctx, attemptID)
	require.NoError(t, err)
	require.NotNil(t, a.SubmittedAt)
	require.NotNil(t, a.Score)
	assert.Equal(t, 33, *a.Score)
	assert.Equal(t, env.clock.now, *a.SubmittedAt)
}

func TestSubmitAttemptTwiceSameScore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quizID, qs := env.createQuiz(t, "Retry", 100, 0, 1, 2)

	attemptID, first := env.takeQuiz(t, quizID, alice, time.Minute, map[string]int{qs[0]: 0, qs[1]: 1, qs[2]: 3})

	env.clock.Advance(time.Minute)
	second, err := env.attempt.SubmitAttempt(ctx, attemptID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 66, second)

	a, err := env.attempt.GetAttempt(ctx, attemptID)
	require.NoError(t, err)
	assert.Equal(t, env.clock.now, *a.SubmittedAt)
}

func TestSubmitAttemptWithoutAnswersScoresZero(t *testing.T) {
	env := newTestEnv(t)
	quizID, _ := env.createQuiz(t, "Blank", 10, 0, 1)

	_, score := env.takeQuiz(t, quizID, alice, time.Minute, nil)
	assert.Equal(t, 0, score)
}

func TestSubmitAttemptIgnoresUnknownQuestion(t *testing.T) {
	env := newTestEnv(t)
	quizID, qs := env.createQuiz(t, "Stray", 20, 2, 2)

	_, score := env.takeQuiz(t, quizID, alice, time.Minute, map[string]int{qs[0]: 2, "not-a-question": 2})
	assert.Equal(t, 10, score)
}

func TestSubmitAttemptUnknownAttempt(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attempt.SubmitAttempt(context.Background(), "missing")
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}
