package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"LotterySync/internal/adapter"
	"LotterySync/internal/config"
	"LotterySync/internal/interfaces"
	"LotterySync/internal/model"
	"LotterySync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// Kind 注册到 adapter 注册表的来源类型
const Kind = "web"

func init() {
	adapter.Register(Kind, NewScraperAdapter)
}

// maxDocumentSize 单次抓取文档上限
const maxDocumentSize = 8 << 20

// Adapter 通过 HTTP 抓取开奖页面并解析出候选结果
type Adapter struct {
	cfg        *config.ScraperConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewScraperAdapter 创建网页抓取适配器
func NewScraperAdapter(cfg *config.ScraperConfig, logger *logrus.Logger) interfaces.ResultSource {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// GetName ========== 实现ResultSource接口 ==========
func (a *Adapter) GetName() string {
	return Kind
}

// Fetch 拉取原始文档。传输错误、超时、非 2xx 均返回 *model.UpstreamFetchError，不做重试
func (a *Adapter) Fetch(ctx context.Context) ([]byte, error) {
	if a.cfg.URL == "" {
		return nil, fmt.Errorf("%w: scraper.url 未配置", model.ErrInternal)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: 构建请求失败: %v", model.ErrInternal, err)
	}
	if a.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", a.cfg.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &model.UpstreamFetchError{URL: a.cfg.URL, Cause: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Errorf("关闭抓取响应体失败: %v", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &model.UpstreamFetchError{URL: a.cfg.URL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, &model.UpstreamFetchError{URL: a.cfg.URL, Cause: err}
	}
	a.logger.WithFields(logrus.Fields{
		"url":   a.cfg.URL,
		"bytes": len(body),
	}).Info("抓取开奖页面成功")
	return body, nil
}

// Extract 见 extract.go
func (a *Adapter) Extract(document []byte) ([]model.ResultInput, error) {
	return NewExtractor(a.cfg.DateSelector, a.logger).Extract(document)
}
