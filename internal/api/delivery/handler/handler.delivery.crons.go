// Package handler - CronTriggerHandler (xem handler.delivery.send.go cho package doc).
package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	basehdl "email_marketing/internal/api/base/handler"
	cronlogmodels "email_marketing/internal/api/cronlog/models"
	"email_marketing/internal/api/wiring"
	"email_marketing/internal/logger"
	"email_marketing/internal/mailer"
)

// CronTriggerHandler kích hoạt một lượt gửi batch thủ công qua API,
// dùng chung Selector với scheduler nền.
type CronTriggerHandler struct {
	Selector *mailer.Selector
	Logger   *logrus.Logger
}

// NewCronTriggerHandler tạo CronTriggerHandler từ Selector dùng chung
func NewCronTriggerHandler() (*CronTriggerHandler, error) {
	selector, err := wiring.GetSelector()
	if err != nil {
		return nil, err
	}
	return &CronTriggerHandler{
		Selector: selector,
		Logger:   logger.GetLogger("cron"),
	}, nil
}

// HandleRun chạy một lượt gửi batch ngay lập tức.
// Endpoint: GET /api/v1/crons/run
func (h *CronTriggerHandler) HandleRun(c fiber.Ctx) error {
	h.Logger.Info("🚀 Kích hoạt lượt gửi batch thủ công qua API")

	summary, err := h.Selector.RunPass(c.Context(), cronlogmodels.LogTypeManual)
	if err != nil {
		return basehdl.ErrorResponse(c, err)
	}

	return basehdl.SuccessResponse(c, fiber.Map{
		"message":   summary.String(),
		"campaigns": summary.Campaigns,
		"sent":      summary.Sent,
		"failed":    summary.Failed,
	})
}
