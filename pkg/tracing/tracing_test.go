package tracing

import (
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTracedRouter(t *testing.T) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	r := gin.New()
	r.Use(GinMiddleware(tp))
	r.GET("/api/quizzes/:id/questions", func(c *gin.Context) {
		util.SetIdentity(c, model.Identity{ID: "s-1", Role: model.Student})
		c.Status(http.StatusOK)
	})
	r.POST("/api/student/attempts/:id/submit", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r, sr
}

func attrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestGinMiddlewareNamesSpanByRoute(t *testing.T) {
	r, sr := newTracedRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quizzes/quiz-42/questions", nil))
	require.Equal(t, http.StatusOK, w.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "GET /api/quizzes/:id/questions", span.Name())
	assert.Equal(t, trace.SpanKindServer, span.SpanKind())
	assert.Equal(t, codes.Unset, span.Status().Code)

	a := attrs(span)
	assert.Equal(t, "/api/quizzes/:id/questions", a["http.route"].AsString())
	assert.Equal(t, "/api/quizzes/quiz-42/questions", a["http.target"].AsString())
	assert.Equal(t, int64(200), a["http.status_code"].AsInt64())
	assert.Equal(t, "s-1", a["enduser.id"].AsString())
	assert.Equal(t, "student", a["enduser.role"].AsString())

	assert.Equal(t, span.SpanContext().TraceID().String(), w.Header().Get(TraceIDHeader))
}

func TestGinMiddlewareContinuesIncomingTrace(t *testing.T) {
	r, sr := newTracedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/quizzes/quiz-42/questions", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	r.ServeHTTP(httptest.NewRecorder(), req)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext().TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent().SpanID().String())
	assert.True(t, spans[0].Parent().IsRemote())
}

func TestGinMiddlewareStatuses(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		wantName string
		wantCode codes.Code
	}{
		{"server error", http.MethodPost, "/api/student/attempts/a-1/submit", "POST /api/student/attempts/:id/submit", codes.Error},
		{"no route", http.MethodGet, "/api/nowhere", "GET unmatched", codes.Unset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, sr := newTracedRouter(t)
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.path, nil))

			spans := sr.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantName, spans[0].Name())
			assert.Equal(t, tt.wantCode, spans[0].Status().Code)
		})
	}
}

func TestGinMiddlewareSkipsMetrics(t *testing.T) {
	r, sr := newTracedRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
	assert.Empty(t, w.Header().Get(TraceIDHeader))
}
