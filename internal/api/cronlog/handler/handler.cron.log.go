// Package handler chứa HTTP handler cho domain CronLog.
package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "email_marketing/internal/api/base/handler"
	models "email_marketing/internal/api/cronlog/models"
	services "email_marketing/internal/api/cronlog/service"
)

// cronLogInput CronLog do hệ thống sinh, API chỉ đọc nên input trống
type cronLogInput struct{}

// CronLogHandler xử lý các route liên quan đến CronLog
type CronLogHandler struct {
	*basehdl.BaseHandler[models.CronLog, cronLogInput, cronLogInput]
	CronLogService *services.CronLogService
}

// NewCronLogHandler tạo CronLogHandler mới
func NewCronLogHandler() (*CronLogHandler, error) {
	service, err := services.NewCronLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create cron log service: %v", err)
	}
	hdl := &CronLogHandler{
		BaseHandler:    basehdl.NewBaseHandler[models.CronLog, cronLogInput, cronLogInput](service),
		CronLogService: service,
	}
	return hdl, nil
}

// FindRecent liệt kê nhật ký chạy, lượt mới nhất trước.
// Endpoint: GET /api/v1/cron-logs/recent
func (h *CronLogHandler) FindRecent(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)
		data, err := h.CronLogService.FindRecent(c.Context(), page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}
