package app

import (
	"bytes"
	"edutrack_backend/internal/config"
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "app-test-secret-app-test-secret-xx"

func memoryConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: "test"},
		Database:  config.DatabaseConfig{Driver: util.DriverMemory},
		Auth:      config.AuthConfig{JWTSecret: testSecret},
		Storage:   config.StorageConfig{Type: util.StorageLocal, Bucket: util.ResourceBucket, LocalPath: t.TempDir()},
		Quiz:      config.QuizConfig{PointsRemainder: "floor"},
		Analytics: config.AnalyticsConfig{BucketMode: "uniform"},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
	}
}

func bearer(t *testing.T, id model.Identity) string {
	t.Helper()
	tok, err := util.GenerateJWT(id, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestNewAppRoutes(t *testing.T) {
	a := NewApp(memoryConfig(t))
	require.Nil(t, a.DB)

	student := bearer(t, model.Identity{ID: "s-1", Name: "Alice", Role: model.Student})
	teacher := bearer(t, model.Identity{ID: "t-1", Name: "Ms. Rivera", Role: model.Teacher})
	quiz := `{"title":"Fractions","subject":"Mathematics","difficulty":"Easy","total_points":10,
		"questions":[{"question_text":"1/2+1/2?","options":["1","2","3","4"],"correct_index":0}]}`

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		body   string
		want   int
	}{
		{"health is public", http.MethodGet, "/api/health", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
		{"catalog needs a token", http.MethodGet, "/api/quizzes", "", "", http.StatusUnauthorized},
		{"student catalog", http.MethodGet, "/api/quizzes", student, "", http.StatusOK},
		{"student cannot create", http.MethodPost, "/api/teacher/quizzes", student, quiz, http.StatusForbidden},
		{"teacher creates", http.MethodPost, "/api/teacher/quizzes", teacher, quiz, http.StatusCreated},
		{"teacher cannot start attempts", http.MethodPost, "/api/student/quizzes/x/attempts", teacher, "", http.StatusForbidden},
		{"student statuses", http.MethodGet, "/api/student/quiz-statuses?quizIds=x", student, "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()
			a.Router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}
