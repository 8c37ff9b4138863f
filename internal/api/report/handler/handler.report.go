// Package handler chứa HTTP handler cho domain Report.
package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "email_marketing/internal/api/base/handler"
	dto "email_marketing/internal/api/report/dto"
	models "email_marketing/internal/api/report/models"
	services "email_marketing/internal/api/report/service"
	"email_marketing/internal/common"
)

// ReportHandler xử lý các route liên quan đến Report.
// Report do hệ thống sinh ra trong lúc gửi nên API chỉ đọc.
type ReportHandler struct {
	*basehdl.BaseHandler[models.Report, dto.ReportCreateInput, dto.ReportUpdateInput]
	ReportService *services.ReportService
}

// NewReportHandler tạo ReportHandler mới
func NewReportHandler() (*ReportHandler, error) {
	service, err := services.NewReportService()
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %v", err)
	}
	hdl := &ReportHandler{
		BaseHandler:   basehdl.NewBaseHandler[models.Report, dto.ReportCreateInput, dto.ReportUpdateInput](service),
		ReportService: service,
	}
	return hdl, nil
}

// FindByCampaign liệt kê report của một campaign, mới nhất trước.
// Endpoint: GET /api/v1/reports/by-campaign/:id
func (h *ReportHandler) FindByCampaign(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")
		campaignID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		page, limit := h.ParsePagination(c)
		data, err := h.ReportService.FindByCampaign(c.Context(), campaignID, page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}
