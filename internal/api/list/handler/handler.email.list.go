// Package handler chứa HTTP handler cho domain EmailList.
package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "email_marketing/internal/api/base/handler"
	dto "email_marketing/internal/api/list/dto"
	models "email_marketing/internal/api/list/models"
	services "email_marketing/internal/api/list/service"
	"email_marketing/internal/common"
)

// EmailListHandler xử lý các route liên quan đến EmailList
type EmailListHandler struct {
	*basehdl.BaseHandler[models.EmailList, dto.EmailListCreateInput, dto.EmailListUpdateInput]
	EmailListService *services.EmailListService
}

// NewEmailListHandler tạo EmailListHandler mới
func NewEmailListHandler() (*EmailListHandler, error) {
	service, err := services.NewEmailListService()
	if err != nil {
		return nil, fmt.Errorf("failed to create email list service: %v", err)
	}
	hdl := &EmailListHandler{
		BaseHandler:      basehdl.NewBaseHandler[models.EmailList, dto.EmailListCreateInput, dto.EmailListUpdateInput](service),
		EmailListService: service,
	}
	return hdl, nil
}

// parseListID đọc và validate :id từ URL
func (h *EmailListHandler) parseListID(c fiber.Ctx) (primitive.ObjectID, error) {
	id := c.Params("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID", id),
			common.StatusBadRequest,
			nil,
		)
	}
	return objID, nil
}

// AddSubscribers thêm người nhận vào cuối danh sách.
// Endpoint: POST /api/v1/email-lists/add-subscribers/:id
func (h *EmailListHandler) AddSubscribers(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		listID, err := h.parseListID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input dto.AddSubscribersInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		subs := make([]models.Subscriber, 0, len(input.Emails))
		for _, in := range input.Emails {
			subs = append(subs, models.Subscriber{
				Email:       in.Email,
				Name:        in.Name,
				CompanyName: in.CompanyName,
				WebsiteURL:  in.WebsiteURL,
				Notes:       in.Notes,
				EmailStatus: in.EmailStatus,
				Variables:   in.Variables,
			})
		}

		data, err := h.EmailListService.AddSubscribers(c.Context(), listID, subs)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// RemoveSubscriber gỡ một người nhận khỏi danh sách.
// Endpoint: DELETE /api/v1/email-lists/remove-subscriber/:id/:subscriberId
func (h *EmailListHandler) RemoveSubscriber(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		listID, err := h.parseListID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		subID, err := primitive.ObjectIDFromHex(c.Params("subscriberId"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"subscriberId không đúng định dạng MongoDB ObjectID",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		data, err := h.EmailListService.RemoveSubscriber(c.Context(), listID, subID)
		h.HandleResponse(c, data, err)
		return nil
	})
}
