package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry 应用自身的 Prometheus 指标
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lottery",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lottery",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms ~ 2s
		},
		[]string{"method", "path"},
	)

	ingestedResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lottery",
			Subsystem: "ingest",
			Name:      "results_total",
			Help:      "Lottery results processed by ingestion, by source and outcome.",
		},
		[]string{"source", "outcome"},
	)

	scrapeRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lottery",
			Subsystem: "scrape",
			Name:      "runs_total",
			Help:      "External scrape runs, by status.",
		},
		[]string{"status"},
	)
)

func init() {
	Registry.MustRegister(httpRequests, httpDuration, ingestedResults, scrapeRuns)
}

// 入库结果
const (
	OutcomeAdded   = "added"
	OutcomeSkipped = "skipped"
)

// ObserveIngest 记录一条结果的入库结果（added/skipped）
func ObserveIngest(source, outcome string) {
	ingestedResults.WithLabelValues(source, outcome).Inc()
}

// ObserveScrape 记录一次抓取（ok/empty/upstream_error/internal_error）
func ObserveScrape(status string) {
	scrapeRuns.WithLabelValues(status).Inc()
}

// Middleware 统计请求数与耗时，path 使用路由模板避免标签爆炸
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler /metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
