// Package handler chứa HTTP handler cho domain Settings.
package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "email_marketing/internal/api/base/handler"
	dto "email_marketing/internal/api/settings/dto"
	models "email_marketing/internal/api/settings/models"
	services "email_marketing/internal/api/settings/service"
)

// SmtpSettingHandler xử lý các route cấu hình SMTP.
// Không dùng CRUD chung: cấu hình là một bản ghi theo provider, chỉ có
// get hiện hành và save (upsert). Password không bao giờ trả về client.
type SmtpSettingHandler struct {
	*basehdl.BaseHandler[models.SmtpSetting, dto.SmtpSettingInput, dto.SmtpSettingInput]
	SmtpSettingService *services.SmtpSettingService
}

// NewSmtpSettingHandler tạo SmtpSettingHandler mới
func NewSmtpSettingHandler() (*SmtpSettingHandler, error) {
	service, err := services.NewSmtpSettingService()
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp setting service: %v", err)
	}
	hdl := &SmtpSettingHandler{
		BaseHandler:        basehdl.NewBaseHandler[models.SmtpSetting, dto.SmtpSettingInput, dto.SmtpSettingInput](service),
		SmtpSettingService: service,
	}
	return hdl, nil
}

// GetCurrent trả về cấu hình SMTP hiện hành.
// Endpoint: GET /api/v1/settings/smtp
func (h *SmtpSettingHandler) GetCurrent(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		data, err := h.SmtpSettingService.GetCurrent(c.Context())
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Save upsert cấu hình SMTP.
// Endpoint: POST /api/v1/settings/smtp
func (h *SmtpSettingHandler) Save(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.SmtpSettingInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.SmtpSettingService.Save(c.Context(), models.SmtpSetting{
			SenderEmail: input.SenderEmail,
			Password:    input.Password,
			Provider:    input.Provider,
			Host:        input.Host,
			Port:        input.Port,
		})
		h.HandleResponse(c, data, err)
		return nil
	})
}
