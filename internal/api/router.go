package api

import (
	"net/http"

	"LotterySync/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Version 服务版本
const Version = "1.0.0"

// endpoints GET / 返回的接口说明
var endpoints = gin.H{
	"GET /results":          "最近的开奖结果，?limit=N，默认100",
	"GET /results/{period}": "指定期号的全部结果",
	"GET /periods":          "期号列表",
	"POST /add":             "录入单条结果",
	"POST /add_bulk":        "批量导入",
	"GET /scrape":           "从外部网站抓取并入库",
	"DELETE /results/{id}":  "按id删除",
	"GET /stats":            "统计信息",
	"GET /healthz":          "健康检查",
	"GET /metrics":          "Prometheus 指标",
}

// RegisterRoutes 注册全部业务路由
func RegisterRoutes(r *gin.Engine, db *gorm.DB, results *ResultHandler, ingest *IngestHandler) {
	r.GET("/", Index)
	r.GET("/healthz", Health(db))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.GET("/results", results.ListResults)
	r.GET("/results/:period", results.GetPeriodResults)
	r.DELETE("/results/:id", results.DeleteResult)
	r.GET("/periods", results.ListPeriods)
	r.GET("/stats", results.Stats)

	r.POST("/add", ingest.AddResult)
	r.POST("/add_bulk", ingest.AddBulk)
	r.GET("/scrape", ingest.Scrape)
}

// NewEngine 创建带通用中间件的 gin 引擎
func NewEngine(logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	// 期号是任意文本，可能含 "/"（以 %2F 传入），按原始路径匹配后再解码参数
	r.UseRawPath = true
	r.UnescapePathValues = true
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger), metrics.Middleware())
	return r
}

// Index 服务说明
// GET /
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Lottery API is running",
		"version":   Version,
		"endpoints": endpoints,
	})
}

// Health 数据库连通性检查
// GET /healthz
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
