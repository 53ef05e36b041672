package controller

import (
	"edutrack_backend/internal/model"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuiz(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("teacher creates quiz", func(t *testing.T) {
		s.createQuiz(t, "Fractions", 10, 0, 1)
	})

	t.Run("student is forbidden", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/api/teacher/quizzes", alice, quizPayload("Nope", 10, 0))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/api/teacher/quizzes", model.Identity{}, quizPayload("Nope", 10, 0))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("validation errors list fields", func(t *testing.T) {
		payload := quizPayload("  ", 10, 0)
		payload["subject"] = "Astrology"

		w, env := s.do(t, http.MethodPost, "/api/teacher/quizzes", teacher, payload)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var fields map[string]string
		decode(t, env.Data, &fields)
		assert.Contains(t, fields, "title")
		assert.Contains(t, fields, "subject")
	})

	t.Run("no questions", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/api/teacher/quizzes", teacher, quizPayload("Empty", 10))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListQuizzes(t *testing.T) {
	s := newTestServer(t, nil)
	s.createQuiz(t, "Fractions", 10, 0, 1)

	w, env := s.do(t, http.MethodGet, "/api/quizzes", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var quizzes []model.QuizWithStats
	decode(t, env.Data, &quizzes)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "Fractions", quizzes[0].Title)
	assert.Equal(t, 2, quizzes[0].QuestionsCount)
	assert.Zero(t, quizzes[0].Submissions)
	assert.Nil(t, quizzes[0].AverageScore)
}

func TestGetQuestionsHidesAnswerFromStudents(t *testing.T) {
	s := newTestServer(t, nil)
	quizID := s.createQuiz(t, "Fractions", 10, 2, 3)

	_, env := s.do(t, http.MethodGet, "/api/quizzes/"+quizID+"/questions", alice, nil)
	var studentView []map[string]interface{}
	decode(t, env.Data, &studentView)
	require.Len(t, studentView, 2)
	assert.NotContains(t, studentView[0], "correct_index")
	assert.EqualValues(t, 5, studentView[0]["points"])

	_, env = s.do(t, http.MethodGet, "/api/quizzes/"+quizID+"/questions", teacher, nil)
	var teacherView []model.QuizQuestion
	decode(t, env.Data, &teacherView)
	require.Len(t, teacherView, 2)
	assert.Equal(t, 2, teacherView[0].CorrectIndex)
	assert.Equal(t, 3, teacherView[1].CorrectIndex)
}

func TestGetQuestionsUnknownQuiz(t *testing.T) {
	s := newTestServer(t, nil)

	w, _ := s.do(t, http.MethodGet, "/api/quizzes/missing/questions", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAttemptStatuses(t *testing.T) {
	s := newTestServer(t, nil)
	taken := s.createQuiz(t, "Taken", 10, 0)
	untouched := s.createQuiz(t, "Untouched", 10, 0)

	attemptID := s.startAttempt(t, taken, alice)
	s.answer(t, attemptID, s.questionIDs(t, taken)[0], 0, alice)
	s.submit(t, attemptID, alice)

	w, env := s.do(t, http.MethodGet, "/api/student/quiz-statuses?quizIds="+taken+",%20"+untouched+",", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var statuses map[string]model.AttemptStatus
	decode(t, env.Data, &statuses)
	require.Contains(t, statuses, taken)
	assert.Equal(t, model.AttemptCompleted, statuses[taken].Status)
	require.NotNil(t, statuses[taken].Score)
	assert.Equal(t, 10, *statuses[taken].Score)
	assert.NotContains(t, statuses, untouched)
}

func TestSplitIDs(t *testing.T) {
	assert.Nil(t, splitIDs(""))
	assert.Equal(t, []string{"a", "b"}, splitIDs(" a, ,b,"))
}
