package interfaces

import (
	"context"

	"LotterySync/internal/model"
)

// ResultSource 外部开奖结果来源必须实现的接口（抓取与解析分离，便于替换和测试）
type ResultSource interface {
	GetName() string                                      // 来源名称
	Fetch(ctx context.Context) ([]byte, error)            // 拉取原始文档；失败返回 *model.UpstreamFetchError
	Extract(document []byte) ([]model.ResultInput, error) // 从文档中提取候选结果，结构无法识别时返回空切片
}
