package api

import (
	"fmt"
	"net/http"
	"strconv"

	"LotterySync/internal/model"
	"LotterySync/internal/repository"
	"LotterySync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ResultHandler 开奖结果查询与删除接口
type ResultHandler struct {
	queryService  *service.QueryService
	ingestService *service.IngestService
	logger        *logrus.Logger
}

// NewResultHandler 创建 ResultHandler
func NewResultHandler(query *service.QueryService, ingest *service.IngestService, logger *logrus.Logger) *ResultHandler {
	return &ResultHandler{
		queryService:  query,
		ingestService: ingest,
		logger:        logger,
	}
}

// ListResults 最近的开奖结果
// GET /results?limit=100
func (h *ResultHandler) ListResults(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(repository.DefaultListLimit)))
	if err != nil {
		writeError(c, h.logger, "ListResults", fmt.Errorf("%w: limit must be an integer", model.ErrValidation))
		return
	}
	results, err := h.queryService.ListResults(c.Request.Context(), limit)
	if err != nil {
		writeError(c, h.logger, "ListResults", err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetPeriodResults 某一期的全部结果，没有记录时返回 404
// GET /results/:period
func (h *ResultHandler) GetPeriodResults(c *gin.Context) {
	period := c.Param("period")
	results, err := h.queryService.ResultsByPeriod(c.Request.Context(), period)
	if err != nil {
		writeError(c, h.logger, "GetPeriodResults", err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// ListPeriods 期号列表
// GET /periods
func (h *ResultHandler) ListPeriods(c *gin.Context) {
	periods, err := h.queryService.ListPeriods(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "ListPeriods", err)
		return
	}
	c.JSON(http.StatusOK, periods)
}

// DeleteResult 按 id 删除
// DELETE /results/:id
func (h *ResultHandler) DeleteResult(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, h.logger, "DeleteResult", fmt.Errorf("%w: id must be a positive integer", model.ErrValidation))
		return
	}
	if err := h.ingestService.DeleteResult(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, "DeleteResult", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "result deleted", "id": id})
}

// Stats 汇总统计
// GET /stats
func (h *ResultHandler) Stats(c *gin.Context) {
	stats, err := h.queryService.Stats(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "Stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
