package api

import (
	"errors"
	"net/http"

	"LotterySync/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// statusOf 错误类型 → HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrDuplicateKey):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrUpstreamFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError 统一错误响应：客户端错误记 warn，服务端错误记 error
func writeError(c *gin.Context, logger *logrus.Logger, op string, err error) {
	status := statusOf(err)
	entry := logger.WithError(err).WithFields(logrus.Fields{
		"op":         op,
		"status":     status,
		"request_id": c.GetString(requestIDKey),
	})
	if status >= http.StatusInternalServerError {
		entry.Error(op + " failed")
	} else {
		entry.Warn(op + " rejected")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
