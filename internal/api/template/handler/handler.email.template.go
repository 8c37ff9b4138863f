// Package handler chứa HTTP handler cho domain EmailTemplate.
package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "email_marketing/internal/api/base/handler"
	dto "email_marketing/internal/api/template/dto"
	models "email_marketing/internal/api/template/models"
	services "email_marketing/internal/api/template/service"
	"email_marketing/internal/common"
)

// EmailTemplateHandler xử lý các route liên quan đến EmailTemplate
type EmailTemplateHandler struct {
	*basehdl.BaseHandler[models.EmailTemplate, dto.EmailTemplateCreateInput, dto.EmailTemplateUpdateInput]
	EmailTemplateService *services.EmailTemplateService
}

// NewEmailTemplateHandler tạo EmailTemplateHandler mới
func NewEmailTemplateHandler() (*EmailTemplateHandler, error) {
	service, err := services.NewEmailTemplateService()
	if err != nil {
		return nil, fmt.Errorf("failed to create email template service: %v", err)
	}
	hdl := &EmailTemplateHandler{
		BaseHandler:          basehdl.NewBaseHandler[models.EmailTemplate, dto.EmailTemplateCreateInput, dto.EmailTemplateUpdateInput](service),
		EmailTemplateService: service,
	}
	return hdl, nil
}

// UpdateById ghi đè base handler: cập nhật qua service để danh sách biến
// được trích lại mỗi khi nội dung HTML thay đổi
func (h *EmailTemplateHandler) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		var input dto.EmailTemplateUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.EmailTemplateService.UpdateContent(c.Context(), objID, models.EmailTemplate{
			Name:        input.Name,
			Subject:     input.Subject,
			HTMLContent: input.HTMLContent,
			PreviewText: input.PreviewText,
		})
		h.HandleResponse(c, data, err)
		return nil
	})
}
