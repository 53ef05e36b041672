package controller

import (
	"bytes"
	"edutrack_backend/internal/config"
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/repository/inmem"
	"edutrack_backend/internal/service"
	"edutrack_backend/internal/util"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	teacher = model.Identity{ID: "t-1", Name: "Ms. Rivera", Role: model.Teacher}
	alice   = model.Identity{ID: "s-1", Name: "Alice", Role: model.Student}
	bob     = model.Identity{ID: "s-2", Name: "Bob", Role: model.Student}
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router   *gin.Engine
	quiz     *service.QuizService
	attempt  *service.AttemptService
	resource *service.ResourceService
	users    map[string]model.Identity
}

// newTestServer mounts the controllers behind a stub identity middleware keyed by X-User.
func newTestServer(t *testing.T, ai *service.AIService) *testServer {
	t.Helper()

	cfg := &config.Config{
		Quiz:      config.QuizConfig{PointsRemainder: "floor"},
		Analytics: config.AnalyticsConfig{BucketMode: "uniform"},
		Storage:   config.StorageConfig{Type: util.StorageLocal, Bucket: util.ResourceBucket, LocalPath: t.TempDir()},
	}

	db := inmem.Open()
	quizzes := inmem.NewQuizRepository(db)
	attempts := inmem.NewQuizAttemptRepository(db)

	s := &testServer{
		quiz:     service.NewQuizService(quizzes, attempts, nil, cfg),
		attempt:  service.NewAttemptService(quizzes, attempts, nil),
		resource: service.NewResourceService(inmem.NewResourceRepository(db), service.NewStorageService(cfg)),
		users:    map[string]model.Identity{teacher.ID: teacher, alice.ID: alice, bob.ID: bob},
	}
	if ai == nil {
		ai = service.NewAIService(config.AIConfig{Provider: "gemini"})
	}

	quizCtrl := NewQuizController(s.quiz)
	attemptCtrl := NewAttemptController(s.attempt)
	analyticsCtrl := NewAnalyticsController(service.NewAnalyticsService(quizzes, attempts, cfg))
	resourceCtrl := NewResourceController(s.resource)
	aiCtrl := NewAIController(ai)

	r := gin.New()
	api := r.Group("/api", func(c *gin.Context) {
		if id, ok := s.users[c.GetHeader("X-User")]; ok {
			util.SetIdentity(c, id)
		}
	})
	api.GET("/quizzes", quizCtrl.ListQuizzes)
	api.GET("/quizzes/:id/questions", quizCtrl.GetQuestions)
	api.GET("/resources", resourceCtrl.ListResources)
	api.GET("/resources/url", resourceCtrl.GetURL)
	api.POST("/ai/generate", aiCtrl.Generate)
	api.GET("/student/quiz-statuses", quizCtrl.GetAttemptStatuses)
	api.POST("/student/quizzes/:id/attempts", attemptCtrl.StartAttempt)
	api.PUT("/student/attempts/:id/answers/:questionId", attemptCtrl.AnswerQuestion)
	api.POST("/student/attempts/:id/submit", attemptCtrl.SubmitAttempt)
	api.POST("/teacher/quizzes", quizCtrl.CreateQuiz)
	api.GET("/teacher/quizzes/:id/analytics", analyticsCtrl.GetQuizAnalytics)
	api.POST("/teacher/resources", resourceCtrl.UploadResource)
	api.POST("/teacher/ai/tools/:tool", aiCtrl.RunTeacherTool)

	s.router = r
	return s
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path string, user model.Identity, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user.ID != "" {
		req.Header.Set("X-User", user.ID)
	}
	return s.serve(t, req)
}

func (s *testServer) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

func quizPayload(title string, totalPoints int, correct ...int) map[string]interface{} {
	questions := make([]map[string]interface{}, len(correct))
	for i, c := range correct {
		questions[i] = map[string]interface{}{
			"question_text": title + " question",
			"options":       []string{"A", "B", "C", "D"},
			"correct_index": c,
		}
	}
	return map[string]interface{}{
		"title":        title,
		"subject":      "Mathematics",
		"difficulty":   "Easy",
		"total_points": totalPoints,
		"questions":    questions,
	}
}

// createQuiz posts a quiz as the teacher and returns its id.
func (s *testServer) createQuiz(t *testing.T, title string, totalPoints int, correct ...int) string {
	t.Helper()

	w, env := s.do(t, http.MethodPost, "/api/teacher/quizzes", teacher, quizPayload(title, totalPoints, correct...))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out struct {
		QuizID string `json:"quiz_id"`
	}
	decode(t, env.Data, &out)
	require.NotEmpty(t, out.QuizID)
	return out.QuizID
}
