package model

import (
	"strings"
	"time"
)

// PeriodPrefix 期号前缀：未显式传入 period 时，period = PeriodPrefix + draw_date
const PeriodPrefix = "งวดวันที่ "

// LotteryResult 对应 lottery_results 表，一期开奖中的一条中奖号码
// (draw_date, period, prize_type, prize_number) 四元组唯一，只插入/删除，不做原地更新
type LotteryResult struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DrawDate    string    `gorm:"column:draw_date;type:varchar(64);not null;index:idx_results_draw_date;uniqueIndex:uk_result_identity,priority:1" json:"draw_date"` // 开奖日期（原样保存的文本）
	Period      string    `gorm:"column:period;type:varchar(128);not null;index:idx_results_period;uniqueIndex:uk_result_identity,priority:2" json:"period"`         // 期号（展示用）
	PrizeType   string    `gorm:"column:prize_type;type:varchar(64);not null;uniqueIndex:uk_result_identity,priority:3" json:"prize_type"`                           // 奖项类别（开放集合）
	PrizeNumber string    `gorm:"column:prize_number;type:varchar(32);not null;uniqueIndex:uk_result_identity,priority:4" json:"prize_number"`                       // 中奖号码（文本，保留前导零）
	PrizeAmount *int64    `gorm:"column:prize_amount" json:"prize_amount"`                                                                                           // 奖金，未知时为空
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"created_at"`                                                                                      // 入库时间
}

func (LotteryResult) TableName() string { return "lottery_results" }

// ResultInput 手工录入 / 批量导入 / 抓取候选 共用的入参
type ResultInput struct {
	DrawDate    string `json:"draw_date"`
	Period      string `json:"period,omitempty"` // 可选，空则按 draw_date 推导
	PrizeType   string `json:"prize_type"`
	PrizeNumber string `json:"prize_number"`
	PrizeAmount *int64 `json:"prize_amount,omitempty"`
}

// DerivePeriod 由开奖日期推导期号
func DerivePeriod(drawDate string) string {
	return PeriodPrefix + strings.TrimSpace(drawDate)
}

// ToResult 转换为数据库模型，period 为空时按 draw_date 推导
func (in ResultInput) ToResult() *LotteryResult {
	drawDate := strings.TrimSpace(in.DrawDate)
	period := strings.TrimSpace(in.Period)
	if period == "" && drawDate != "" {
		period = DerivePeriod(drawDate)
	}
	return &LotteryResult{
		DrawDate:    drawDate,
		Period:      period,
		PrizeType:   strings.TrimSpace(in.PrizeType),
		PrizeNumber: strings.TrimSpace(in.PrizeNumber),
		PrizeAmount: in.PrizeAmount,
	}
}

// PeriodInfo 期号列表项
type PeriodInfo struct {
	Period   string `gorm:"column:period" json:"period"`
	DrawDate string `gorm:"column:draw_date" json:"draw_date"`
}

// Stats 汇总统计
type Stats struct {
	TotalPeriods int64       `json:"total_periods"`
	TotalResults int64       `json:"total_results"`
	LatestPeriod *PeriodInfo `json:"latest_period"` // 库为空时为 null
}

// AddResult 单条录入的返回
type AddResult struct {
	ID     uint64 `json:"id"`
	Period string `json:"period"`
}

// BulkResult 批量导入的返回
type BulkResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// ScrapeResult 外部抓取入库的返回
type ScrapeResult struct {
	Message    string `json:"message,omitempty"` // 未解析到结果时的提示
	Source     string `json:"source"`
	TotalFound int    `json:"total_found"`
	AddedToDB  int    `json:"added_to_db"`
	Skipped    int    `json:"skipped"`
}
