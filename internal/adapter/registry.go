package adapter

import (
	"fmt"
	"sort"

	"LotterySync/internal/config"
	"LotterySync/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// Factory 外部来源工厂函数签名
// 入参：抓取配置、日志实例
// 出参：实现ResultSource接口的来源实例
type Factory func(cfg *config.ScraperConfig, logger *logrus.Logger) interfaces.ResultSource

// ========== 全局工厂函数注册表 ==========
var factoryRegistry = make(map[string]Factory)

// Register 供来源实现的init函数调用，注册工厂函数
func Register(kind string, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("来源%s的工厂函数不能为nil", kind))
	}
	if _, exists := factoryRegistry[kind]; exists {
		logrus.Warnf("来源%s已注册，将覆盖原有实现", kind)
	}
	factoryRegistry[kind] = factory
}

// GetFactory 获取指定来源的工厂函数
func GetFactory(kind string) (Factory, bool) {
	factory, ok := factoryRegistry[kind]
	return factory, ok
}

// ListKinds 列出所有已注册的来源类型（排序后）
func ListKinds() []string {
	kinds := make([]string, 0, len(factoryRegistry))
	for k := range factoryRegistry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// NewSource 按配置中的 kind 创建外部来源实例
func NewSource(cfg *config.ScraperConfig, logger *logrus.Logger) (interfaces.ResultSource, error) {
	factory, ok := GetFactory(cfg.Kind)
	if !ok {
		return nil, fmt.Errorf("未支持的抓取来源: %s（已注册：%v）", cfg.Kind, ListKinds())
	}
	source := factory(cfg, logger)
	if source == nil {
		return nil, fmt.Errorf("来源%s的工厂函数返回nil", cfg.Kind)
	}
	logger.WithFields(logrus.Fields{
		"kind": cfg.Kind,
		"url":  cfg.URL,
	}).Info("外部来源初始化成功")
	return source, nil
}
