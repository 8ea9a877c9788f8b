package service

import (
	"context"
	"fmt"

	"LotterySync/internal/model"
	"LotterySync/internal/repository"

	"github.com/sirupsen/logrus"
)

// QueryService 开奖结果查询服务
type QueryService struct {
	repo   repository.ResultRepository
	logger *logrus.Logger
}

// NewQueryService 创建 QueryService
func NewQueryService(repo repository.ResultRepository, logger *logrus.Logger) *QueryService {
	return &QueryService{repo: repo, logger: logger}
}

// ListResults 最近的开奖结果；库为空时返回空列表而不是错误
func (s *QueryService) ListResults(ctx context.Context, limit int) ([]*model.LotteryResult, error) {
	return s.repo.ListAll(ctx, limit)
}

// ResultsByPeriod 指定期号的全部结果（头奖、前三、后三、后二、其它），没有结果时返回 ErrNotFound
func (s *QueryService) ResultsByPeriod(ctx context.Context, period string) ([]*model.LotteryResult, error) {
	results, err := s.repo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no results for period %q", model.ErrNotFound, period)
	}
	return results, nil
}

// ListPeriods 期号列表，最近一期在前
func (s *QueryService) ListPeriods(ctx context.Context) ([]*model.PeriodInfo, error) {
	return s.repo.ListPeriods(ctx)
}

// Stats 期数、结果总数与最近一期
func (s *QueryService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.repo.Stats(ctx)
}

// Count 结果总数
func (s *QueryService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
