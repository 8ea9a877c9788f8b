package api

import (
	"fmt"
	"net/http"

	"LotterySync/internal/model"
	"LotterySync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// IngestHandler 录入、批量导入与外部抓取接口
type IngestHandler struct {
	ingestService *service.IngestService
	logger        *logrus.Logger
}

// NewIngestHandler 创建 IngestHandler
func NewIngestHandler(ingest *service.IngestService, logger *logrus.Logger) *IngestHandler {
	return &IngestHandler{ingestService: ingest, logger: logger}
}

// AddResult 录入单条结果，重复时返回 400
// POST /add {"draw_date": "...", "prize_type": "...", "prize_number": "...", "prize_amount": 0}
func (h *IngestHandler) AddResult(c *gin.Context) {
	var req model.ResultInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, "AddResult", fmt.Errorf("%w: invalid request: %v", model.ErrValidation, err))
		return
	}
	result, err := h.ingestService.AddOne(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, "AddResult", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "result added",
		"id":      result.ID,
		"period":  result.Period,
	})
}

// AddBulk 批量导入，单条失败只计入 skipped
// POST /add_bulk [{...}, {...}]
func (h *IngestHandler) AddBulk(c *gin.Context) {
	var req []model.ResultInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, "AddBulk", fmt.Errorf("%w: body must be a JSON array: %v", model.ErrValidation, err))
		return
	}
	c.JSON(http.StatusOK, h.ingestService.AddBulk(c.Request.Context(), req))
}

// Scrape 触发一次外部抓取入库：上游失败 502，其它异常 500
// GET /scrape
func (h *IngestHandler) Scrape(c *gin.Context) {
	result, err := h.ingestService.Scrape(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "Scrape", err)
		return
	}
	if result.TotalFound == 0 {
		result.Message = "no results found"
	}
	c.JSON(http.StatusOK, result)
}
