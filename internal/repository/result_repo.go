package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"LotterySync/internal/model"

	"gorm.io/gorm"
)

// DefaultListLimit 结果列表默认条数
const DefaultListLimit = 100

// ResultRepository 开奖结果仓储，唯一直接读写持久化状态的组件
type ResultRepository interface {
	// Init 幂等建表及索引（draw_date、period、四元组唯一），不会破坏已有数据
	Init(ctx context.Context) error
	// Insert 写入一条结果，返回新分配的 id
	Insert(ctx context.Context, result *model.LotteryResult) (uint64, error)
	// ListAll 按 draw_date DESC, id DESC 返回最多 limit 条
	ListAll(ctx context.Context, limit int) ([]*model.LotteryResult, error)
	// ListByPeriod 按奖项固定顺序返回某一期的全部结果，无结果时返回空切片
	ListByPeriod(ctx context.Context, period string) ([]*model.LotteryResult, error)
	// ListPeriods 去重后的期号列表，最近的开奖日期在前
	ListPeriods(ctx context.Context) ([]*model.PeriodInfo, error)
	// DeleteByID 删除一条结果，返回是否真正删除了记录
	DeleteByID(ctx context.Context, id uint64) (bool, error)
	// Stats 汇总统计
	Stats(ctx context.Context) (*model.Stats, error)
	// Count 结果总数
	Count(ctx context.Context) (int64, error)
}

type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository 创建 ResultRepository 实例
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Init(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&model.LotteryResult{}); err != nil {
		return fmt.Errorf("lottery_results 表结构迁移失败: %w", err)
	}
	return nil
}

func (r *resultRepository) Insert(ctx context.Context, result *model.LotteryResult) (uint64, error) {
	if err := validate(result); err != nil {
		return 0, err
	}
	result.ID = 0
	result.CreatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		if isDuplicateKey(err) {
			return 0, fmt.Errorf("%w: %s / %s / %s", model.ErrDuplicateKey, result.Period, result.PrizeType, result.PrizeNumber)
		}
		return 0, fmt.Errorf("保存开奖结果失败: %w", err)
	}
	return result.ID, nil
}

func (r *resultRepository) ListAll(ctx context.Context, limit int) ([]*model.LotteryResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", model.ErrValidation, limit)
	}
	results := make([]*model.LotteryResult, 0)
	if err := r.db.WithContext(ctx).
		Order("draw_date DESC").
		Order("id DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) ListByPeriod(ctx context.Context, period string) ([]*model.LotteryResult, error) {
	results := make([]*model.LotteryResult, 0)
	if err := r.db.WithContext(ctx).
		Where("period = ?", period).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	// 奖项别名在 SQL 里不好归一，排序放在内存中做；id 已升序，稳定排序保证同奖项按 id 升序
	sort.SliceStable(results, func(i, j int) bool {
		return model.PrizeRank(results[i].PrizeType) < model.PrizeRank(results[j].PrizeType)
	})
	return results, nil
}

func (r *resultRepository) ListPeriods(ctx context.Context) ([]*model.PeriodInfo, error) {
	periods := make([]*model.PeriodInfo, 0)
	// 同一期号对应多个 draw_date 时取最大的那个
	if err := r.db.WithContext(ctx).
		Model(&model.LotteryResult{}).
		Select("period, MAX(draw_date) AS draw_date").
		Group("period").
		Order("MAX(draw_date) DESC").
		Order("period ASC").
		Scan(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *resultRepository) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.LotteryResult{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *resultRepository) Stats(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats
	db := r.db.WithContext(ctx).Model(&model.LotteryResult{})
	if err := db.Count(&stats.TotalResults).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.LotteryResult{}).
		Select("COUNT(DISTINCT period)").
		Scan(&stats.TotalPeriods).Error; err != nil {
		return nil, err
	}

	var latest model.LotteryResult
	err := r.db.WithContext(ctx).
		Order("draw_date DESC").
		Order("id DESC").
		First(&latest).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return nil, err
	default:
		stats.LatestPeriod = &model.PeriodInfo{Period: latest.Period, DrawDate: latest.DrawDate}
	}
	return &stats, nil
}

func (r *resultRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.LotteryResult{}).Count(&n).Error
	return n, err
}

// validate 必填字段校验
func validate(result *model.LotteryResult) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", model.ErrValidation)
	}
	var missing []string
	if strings.TrimSpace(result.DrawDate) == "" {
		missing = append(missing, "draw_date")
	}
	if strings.TrimSpace(result.PrizeType) == "" {
		missing = append(missing, "prize_type")
	}
	if strings.TrimSpace(result.PrizeNumber) == "" {
		missing = append(missing, "prize_number")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s is required", model.ErrValidation, strings.Join(missing, ", "))
	}
	if strings.TrimSpace(result.Period) == "" {
		result.Period = model.DerivePeriod(result.DrawDate)
	}
	return nil
}

// isDuplicateKey 判断是否违反唯一约束。开启 TranslateError 的驱动返回 gorm.ErrDuplicatedKey，
// 不支持翻译的驱动版本按错误文本兜底
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "uk_result_identity") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
