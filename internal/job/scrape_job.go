package job

import (
	"context"
	"time"

	"LotterySync/internal/model"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scraper 定时任务依赖的抓取能力（由 service.IngestService 实现）
type Scraper interface {
	Scrape(ctx context.Context) (*model.ScrapeResult, error)
}

// ScrapeJob 定时从外部来源抓取开奖结果
type ScrapeJob struct {
	scraper Scraper
	timeout time.Duration // 单次任务上限，避免与下一次调度重叠
	logger  *logrus.Logger
}

// NewScrapeJob 创建抓取任务
func NewScrapeJob(scraper Scraper, timeout time.Duration, logger *logrus.Logger) *ScrapeJob {
	return &ScrapeJob{scraper: scraper, timeout: timeout, logger: logger}
}

// Run 是 cron.Job 接口方法，失败只记日志，等待下一次调度
func (j *ScrapeJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	result, err := j.scraper.Scrape(ctx)
	if err != nil {
		j.logger.WithError(err).Error("定时抓取失败")
		return
	}
	j.logger.WithFields(logrus.Fields{
		"total_found": result.TotalFound,
		"added_to_db": result.AddedToDB,
	}).Info("定时抓取完成")
}

// Start 按 Cron 表达式（标准5段或 @every 描述）启动调度，表达式为空时返回 nil
func Start(spec string, j *ScrapeJob, logger *logrus.Logger) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddJob(spec, j); err != nil {
		return nil, err
	}
	c.Start()
	logger.WithField("cron", spec).Info("定时抓取任务已启动")
	return c, nil
}
