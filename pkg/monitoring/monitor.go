package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	AttemptsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "edutrack_quiz_attempts_started_total",
			Help: "Quiz attempts created",
		},
	)

	AttemptsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "edutrack_quiz_attempts_submitted_total",
			Help: "Quiz attempts scored and marked submitted",
		},
	)

	AnswersRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "edutrack_quiz_answers_recorded_total",
			Help: "Answer upserts written",
		},
	)

	AIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edutrack_ai_requests_total",
			Help: "Generative text requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(AttemptsStarted)
	prometheus.MustRegister(AttemptsSubmitted)
	prometheus.MustRegister(AnswersRecorded)
	prometheus.MustRegister(AIRequests)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
