package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"LotterySync/internal/adapter"
	_ "LotterySync/internal/adapter/scraper"
	"LotterySync/internal/api"
	"LotterySync/internal/config"
	"LotterySync/internal/database"
	"LotterySync/internal/job"
	"LotterySync/internal/repository"
	"LotterySync/internal/service"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

func main() {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志
	logger := newLogger(cfg.Log)
	logger.Info("配置文件加载成功")

	// 3. 连接数据库并建表（幂等）
	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatalf("初始化数据库失败: %v", err)
	}
	repo := repository.NewResultRepository(db)
	if err := repo.Init(context.Background()); err != nil {
		logger.Fatalf("%v", err)
	}
	logger.Info("数据库表结构检查完成（不存在则已创建）")

	// 4. 组装服务
	source, err := adapter.NewSource(&cfg.Scraper, logger)
	if err != nil {
		logger.Fatalf("初始化外部来源失败: %v", err)
	}
	queryService := service.NewQueryService(repo, logger)
	ingestService := service.NewIngestService(repo, source, logger)

	// 5. 定时抓取（可选）
	scheduler, err := job.Start(cfg.Scraper.Cron, job.NewScrapeJob(ingestService, 2*cfg.Scraper.TimeoutDuration(), logger), logger)
	if err != nil {
		logger.Fatalf("定时抓取任务配置错误: %v", err)
	}

	// 6. 配置Gin并注册路由
	gin.SetMode(cfg.Server.Mode)
	r := api.NewEngine(logger)
	if len(cfg.Server.CORSOrigins) > 0 {
		r.Use(api.CORS(cfg.Server.CORSOrigins))
	}
	if cfg.Server.Pprof {
		pprof.Register(r)
	}
	api.RegisterRoutes(r, db,
		api.NewResultHandler(queryService, ingestService, logger),
		api.NewIngestHandler(ingestService, logger),
	)

	// 7. 启动服务，收到退出信号后优雅关闭
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("服务启动成功，端口：%d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("启动服务失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("正在关闭服务…")

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("服务关闭异常")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("服务已退出")
}
