package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation 调用方入参缺失或非法（客户端错误）
	ErrValidation = errors.New("validation error")
	// ErrDuplicateKey 违反 (draw_date, period, prize_type, prize_number) 唯一约束
	ErrDuplicateKey = errors.New("result already exists")
	// ErrNotFound 查询/删除目标不存在
	ErrNotFound = errors.New("not found")
	// ErrUpstreamFetch 外部数据源不可达或返回非成功状态
	ErrUpstreamFetch = errors.New("upstream fetch failed")
	// ErrInternal 抓取/解析过程中的其它异常
	ErrInternal = errors.New("internal error")
)

// UpstreamFetchError 外部抓取失败，携带上游状态码或底层原因
type UpstreamFetchError struct {
	URL        string
	StatusCode int   // 非 2xx 时的上游状态码，传输错误时为 0
	Cause      error // 传输错误/超时
}

func (e *UpstreamFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s unreachable: %v", e.URL, e.Cause)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Cause }

// Is 使 errors.Is(err, ErrUpstreamFetch) 成立
func (e *UpstreamFetchError) Is(target error) bool { return target == ErrUpstreamFetch }
