// Package handler chứa HTTP handler cho domain Campaign.
package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "email_marketing/internal/api/base/handler"
	dto "email_marketing/internal/api/campaign/dto"
	models "email_marketing/internal/api/campaign/models"
	services "email_marketing/internal/api/campaign/service"
	"email_marketing/internal/common"
)

// CampaignHandler xử lý các route liên quan đến Campaign
type CampaignHandler struct {
	*basehdl.BaseHandler[models.Campaign, dto.CampaignCreateInput, dto.CampaignUpdateInput]
	CampaignService *services.CampaignService
}

// NewCampaignHandler tạo CampaignHandler mới
func NewCampaignHandler() (*CampaignHandler, error) {
	service, err := services.NewCampaignService()
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign service: %v", err)
	}
	hdl := &CampaignHandler{
		BaseHandler:     basehdl.NewBaseHandler[models.Campaign, dto.CampaignCreateInput, dto.CampaignUpdateInput](service),
		CampaignService: service,
	}
	return hdl, nil
}

// UpdateStatus đổi trạng thái campaign theo bảng chuyển trạng thái.
// Endpoint: PUT /api/v1/campaigns/update-status/:id
func (h *CampaignHandler) UpdateStatus(c fiber.Ctx) error {
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

		var input dto.CampaignStatusInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.CampaignService.UpdateStatus(c.Context(), objID, input.Status)
		h.HandleResponse(c, data, err)
		return nil
	})
}
