package middleware

import (
	"edutrack_backend/internal/config"
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-test-secret-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: testSecret}}
	r := gin.New()
	g := r.Group("/api", AuthMiddleware(cfg))
	g.GET("/me", func(c *gin.Context) {
		id, _ := util.GetIdentity(c)
		c.JSON(http.StatusOK, id)
	})
	g.GET("/teacher", RoleMiddleware(model.Teacher), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func token(t *testing.T, id model.Identity, secret string, exp time.Duration) string {
	t.Helper()
	tok, err := util.GenerateJWT(id, secret, exp)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	student := model.Identity{ID: "s-1", Name: "Alice", Role: model.Student}
	teacher := model.Identity{ID: "t-1", Name: "Ms. Rivera", Role: model.Teacher}

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing token", "/api/me", "", http.StatusUnauthorized},
		{"garbage token", "/api/me", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"wrong secret", "/api/me", "Bearer " + token(t, student, "another-secret", time.Hour), http.StatusUnauthorized},
		{"expired", "/api/me", "Bearer " + token(t, student, testSecret, -time.Minute), http.StatusUnauthorized},
		{"valid student", "/api/me", "Bearer " + token(t, student, testSecret, time.Hour), http.StatusOK},
		{"student on teacher route", "/api/teacher", "Bearer " + token(t, student, testSecret, time.Hour), http.StatusForbidden},
		{"teacher on teacher route", "/api/teacher", "Bearer " + token(t, teacher, testSecret, time.Hour), http.StatusNoContent},
	}

	r := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAuthMiddlewareQueryToken(t *testing.T) {
	r := newRouter()
	tok := token(t, model.Identity{ID: "s-9", Name: "Query", Role: model.Student}, testSecret, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/me?token="+tok, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"s-9"`)
	assert.Contains(t, w.Body.String(), `"role":"student"`)
}

func TestRoleMiddlewareWithoutIdentity(t *testing.T) {
	r := gin.New()
	r.GET("/x", RoleMiddleware(model.Teacher), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
