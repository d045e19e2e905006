package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// httpRequestsTotal counts requests by route, method and status
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "informativos_http_requests_total",
		Help: "Total HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	// httpRequestDuration tracks request latency by route
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "informativos_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"route"})

	// DatasetRecords reports the number of records loaded at startup
	DatasetRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "informativos_dataset_records",
		Help: "Number of informativo records loaded",
	})

	// SearchMatches tracks how many records a question retrieved
	SearchMatches = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "informativos_search_matches",
		Help:    "Records returned per relevance search",
		Buckets: []float64{0, 1, 2, 3, 5, 10},
	})

	// QuestionAnswers counts answered questions by answer source
	QuestionAnswers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "informativos_question_answers_total",
		Help: "Answered questions by source",
	}, []string{"source"})

	// QuizSessions counts generated and regenerated quiz sessions
	QuizSessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "informativos_quiz_sessions_total",
		Help: "Quiz sessions by operation",
	}, []string{"operation"})

	// QuizAnswers counts submitted quiz answers by outcome
	QuizAnswers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "informativos_quiz_answers_total",
		Help: "Submitted quiz answers by result",
	}, []string{"result"})
)

// Middleware records request count and latency per matched route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry for scraping
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// AnswerResult labels a quiz answer outcome
func AnswerResult(correct bool) string {
	if correct {
		return "correct"
	}
	return "incorrect"
}
