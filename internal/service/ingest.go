package service

import (
	"context"
	"errors"
	"fmt"

	"LotterySync/internal/interfaces"
	"LotterySync/internal/metrics"
	"LotterySync/internal/model"
	"LotterySync/internal/repository"

	"github.com/sirupsen/logrus"
)

// 入库来源标签
const (
	sourceManual = "manual"
	sourceBulk   = "bulk"
)

// IngestService 手工录入、批量导入、外部抓取入库，以及按 id 删除
type IngestService struct {
	repo   repository.ResultRepository
	source interfaces.ResultSource // 可为 nil：未配置外部来源时 Scrape 直接报错
	logger *logrus.Logger
}

// NewIngestService 创建 IngestService
func NewIngestService(repo repository.ResultRepository, source interfaces.ResultSource, logger *logrus.Logger) *IngestService {
	return &IngestService{repo: repo, source: source, logger: logger}
}

// AddOne 录入单条结果：period 为空时由 draw_date 推导。
// 重复返回 model.ErrDuplicateKey，缺字段返回 model.ErrValidation
func (s *IngestService) AddOne(ctx context.Context, in model.ResultInput) (*model.AddResult, error) {
	id, period, err := s.insert(ctx, in)
	if err != nil {
		metrics.ObserveIngest(sourceManual, metrics.OutcomeSkipped)
		return nil, err
	}
	metrics.ObserveIngest(sourceManual, metrics.OutcomeAdded)
	return &model.AddResult{ID: id, Period: period}, nil
}

// AddBulk 批量导入：逐条独立插入，重复或其它失败都计入 skipped 并继续，不回滚已成功的行
func (s *IngestService) AddBulk(ctx context.Context, inputs []model.ResultInput) model.BulkResult {
	added, skipped := s.insertAll(ctx, sourceBulk, inputs)
	s.logger.WithFields(logrus.Fields{
		"added":   added,
		"skipped": skipped,
	}).Info("批量导入完成")
	return model.BulkResult{Added: added, Skipped: skipped}
}

// Scrape 从外部来源拉取并入库。
// 拉取失败返回 *model.UpstreamFetchError 且不写库；解析失败返回 model.ErrInternal；
// 解析出 0 条属于正常情况，由调用方提示
func (s *IngestService) Scrape(ctx context.Context) (*model.ScrapeResult, error) {
	if s.source == nil {
		metrics.ObserveScrape("internal_error")
		return nil, fmt.Errorf("%w: no external source configured", model.ErrInternal)
	}
	name := s.source.GetName()

	doc, err := s.source.Fetch(ctx)
	if err != nil {
		var upstream *model.UpstreamFetchError
		switch {
		case errors.As(err, &upstream):
		case errors.Is(err, model.ErrInternal):
			metrics.ObserveScrape("internal_error")
			return nil, err
		default:
			upstream = &model.UpstreamFetchError{Cause: err}
		}
		metrics.ObserveScrape("upstream_error")
		s.logger.WithError(upstream).WithField("source", name).Error("抓取外部开奖结果失败")
		return nil, upstream
	}

	candidates, err := s.source.Extract(doc)
	if err != nil {
		metrics.ObserveScrape("internal_error")
		return nil, fmt.Errorf("%w: extract %s: %v", model.ErrInternal, name, err)
	}

	result := &model.ScrapeResult{Source: name, TotalFound: len(candidates)}
	if len(candidates) == 0 {
		metrics.ObserveScrape("empty")
		s.logger.WithField("source", name).Warn("未从外部来源解析到开奖结果")
		return result, nil
	}

	result.AddedToDB, result.Skipped = s.insertAll(ctx, name, candidates)
	metrics.ObserveScrape("ok")
	s.logger.WithFields(logrus.Fields{
		"source":      name,
		"total_found": result.TotalFound,
		"added_to_db": result.AddedToDB,
	}).Info("外部抓取入库完成")
	return result, nil
}

// DeleteResult 按 id 删除，不存在时返回 model.ErrNotFound
func (s *IngestService) DeleteResult(ctx context.Context, id uint64) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("删除开奖结果失败: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: result %d", model.ErrNotFound, id)
	}
	s.logger.WithField("id", id).Info("开奖结果已删除")
	return nil
}

func (s *IngestService) insert(ctx context.Context, in model.ResultInput) (uint64, string, error) {
	row := in.ToResult()
	id, err := s.repo.Insert(ctx, row)
	if err != nil {
		return 0, "", err
	}
	return id, row.Period, nil
}

// insertAll 逐条插入，单条失败不影响其它行
func (s *IngestService) insertAll(ctx context.Context, source string, inputs []model.ResultInput) (added, skipped int) {
	for i, in := range inputs {
		if _, _, err := s.insert(ctx, in); err != nil {
			skipped++
			metrics.ObserveIngest(source, metrics.OutcomeSkipped)
			if !errors.Is(err, model.ErrDuplicateKey) {
				s.logger.WithError(err).WithFields(logrus.Fields{
					"source": source,
					"index":  i,
				}).Warn("跳过无法入库的结果")
			}
			continue
		}
		added++
		metrics.ObserveIngest(source, metrics.OutcomeAdded)
	}
	return added, skipped
}
