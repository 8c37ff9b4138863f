// Package handler chứa HTTP handler cho domain Delivery: gửi mail trực tiếp
// tới subscriber chọn tay, gửi mail thử của campaign và pixel tracking.
package handler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "email_marketing/internal/api/base/handler"
	campaignsvc "email_marketing/internal/api/campaign/service"
	dto "email_marketing/internal/api/delivery/dto"
	listmodels "email_marketing/internal/api/list/models"
	listsvc "email_marketing/internal/api/list/service"
	reportsvc "email_marketing/internal/api/report/service"
	settingssvc "email_marketing/internal/api/settings/service"
	templatesvc "email_marketing/internal/api/template/service"
	"email_marketing/internal/common"
	"email_marketing/internal/global"
	"email_marketing/internal/logger"
	"email_marketing/internal/mailer"
)

// DeliverySendHandler gửi mail ngoài luồng batch: gửi lẻ theo danh sách
// subscriber id và gửi mail thử. Không có delay giữa các mail vì số lượng
// nhỏ và do người dùng chủ động kích hoạt.
type DeliverySendHandler struct {
	Lists     *listsvc.EmailListService
	Templates *templatesvc.EmailTemplateService
	Campaigns *campaignsvc.CampaignService
	Reports   *reportsvc.ReportService
	Provider  mailer.ChannelProvider
	Logger    *logrus.Logger
	BaseURL   string
}

// NewDeliverySendHandler tạo DeliverySendHandler với các service thật
func NewDeliverySendHandler() (*DeliverySendHandler, error) {
	lists, err := listsvc.NewEmailListService()
	if err != nil {
		return nil, fmt.Errorf("failed to create email list service: %v", err)
	}
	templates, err := templatesvc.NewEmailTemplateService()
	if err != nil {
		return nil, fmt.Errorf("failed to create email template service: %v", err)
	}
	campaigns, err := campaignsvc.NewCampaignService()
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign service: %v", err)
	}
	reports, err := reportsvc.NewReportService()
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %v", err)
	}
	settings, err := settingssvc.NewSmtpSettingService()
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp setting service: %v", err)
	}

	baseURL := ""
	if global.ServerConfig != nil {
		baseURL = global.ServerConfig.BaseURL
	}
	return &DeliverySendHandler{
		Lists:     lists,
		Templates: templates,
		Campaigns: campaigns,
		Reports:   reports,
		Provider:  mailer.NewSmtpChannelProvider(settings),
		Logger:    logger.GetLogger("app"),
		BaseURL:   baseURL,
	}, nil
}

// HandleSend gửi template tới một số subscriber chọn tay, ngoài lịch batch.
// Endpoint: POST /api/v1/delivery/send
func (h *DeliverySendHandler) HandleSend(c fiber.Ctx) error {
	var input dto.SendByIdsInput
	if err := parseBody(c, &input); err != nil {
		return basehdl.ErrorResponse(c, err)
	}

	templateID, err := primitive.ObjectIDFromHex(input.TemplateID)
	if err != nil {
		return basehdl.ErrorResponse(c, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("templateId '%s' không đúng định dạng MongoDB ObjectID", input.TemplateID),
			common.StatusBadRequest,
			nil,
		))
	}

	ctx := c.Context()
	template, err := h.Templates.FindOneById(ctx, templateID)
	if err != nil {
		return basehdl.ErrorResponse(c, err)
	}

	// CampaignID không bắt buộc: nếu có thì report và pixel gắn với campaign
	campaignID := primitive.NilObjectID
	trackingPixelID := ""
	if input.CampaignID != "" {
		campaignID, err = primitive.ObjectIDFromHex(input.CampaignID)
		if err != nil {
			return basehdl.ErrorResponse(c, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("campaignId '%s' không đúng định dạng MongoDB ObjectID", input.CampaignID),
				common.StatusBadRequest,
				nil,
			))
		}
		campaign, err := h.Campaigns.FindOneById(ctx, campaignID)
		if err != nil {
			return basehdl.ErrorResponse(c, err)
		}
		trackingPixelID = campaign.TrackingPixelID
	}

	channel, err := h.Provider.Acquire(ctx)
	if err != nil {
		return basehdl.ErrorResponse(c, err)
	}
	defer channel.Close()

	result := dto.SendByIdsResult{}
	for _, rawID := range input.SubscriberIDs {
		subscriberID, err := primitive.ObjectIDFromHex(rawID)
		if err != nil {
			result.Failed++
			result.FailedEmails = append(result.FailedEmails, rawID)
			continue
		}

		list, sub, err := h.Lists.FindSubscriberByID(ctx, subscriberID)
		if err != nil {
			h.Logger.Warnf("⚠️ Không tìm thấy subscriber %s: %v", rawID, err)
			result.Failed++
			result.FailedEmails = append(result.FailedEmails, rawID)
			continue
		}

		if sub.EmailStatus == listmodels.EmailStatusWrong {
			result.Failed++
			result.FailedEmails = append(result.FailedEmails, sub.Email)
			if _, rErr := h.Reports.RecordFailed(ctx, campaignID, sub.Email, trackingPixelID, "Email marked as invalid"); rErr != nil {
				h.Logger.Errorf("❌ Ghi report failed cho %s lỗi: %v", sub.Email, rErr)
			}
			continue
		}

		vars := mailer.SubscriberVariables(sub)
		html := mailer.ReplaceVariables(template.HTMLContent, vars)
		html += mailer.TrackingPixelTag(h.BaseURL, trackingPixelID, sub.Email)
		subject := mailer.ReplaceVariables(template.Subject, vars)

		if err := channel.Send(mailer.Message{To: sub.Email, Subject: subject, HTML: html}); err != nil {
			h.Logger.Errorf("❌ Gửi mail tới %s thất bại: %v", sub.Email, err)
			result.Failed++
			result.FailedEmails = append(result.FailedEmails, sub.Email)
			if _, rErr := h.Reports.RecordFailed(ctx, campaignID, sub.Email, trackingPixelID, err.Error()); rErr != nil {
				h.Logger.Errorf("❌ Ghi report failed cho %s lỗi: %v", sub.Email, rErr)
			}
			continue
		}

		result.Sent++
		if _, rErr := h.Reports.RecordSent(ctx, campaignID, sub.Email, trackingPixelID); rErr != nil {
			h.Logger.Errorf("❌ Ghi report sent cho %s lỗi: %v", sub.Email, rErr)
		}
		if mErr := h.Lists.MarkSubscriberSent(ctx, list.ID, sub.ID); mErr != nil {
			h.Logger.Warnf("⚠️ Đánh dấu sended cho subscriber %s lỗi: %v", sub.ID.Hex(), mErr)
		}
	}

	h.Logger.Infof("✅ Gửi trực tiếp xong: %d thành công, %d thất bại", result.Sent, result.Failed)
	return basehdl.SuccessResponse(c, result)
}

// HandleTestEmail gửi mail thử của một campaign tới một địa chỉ bất kỳ.
// Mail thử không ghi report và không chèn pixel tracking.
// Endpoint: POST /api/v1/delivery/test-email/:id
func (h *DeliverySendHandler) HandleTestEmail(c fiber.Ctx) error {
	id := c.Params("id")
	campaignID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return basehdl.ErrorResponse(c, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID", id),
			common.StatusBadRequest,
			nil,
		))
	}

	var input dto.TestEmailInput
	if err := parseBody(c, &input); err != nil {
		return basehdl.ErrorResponse(c, err)
	}

	ctx := c.Context()
	campaign, err := h.Campaigns.FindOneById(ctx, campaignID)
	if err != nil {
		return basehdl.ErrorResponse(c, err)
	}
	template, err := h.Templates.FindOneById(ctx, campaign.TemplateID)
	if err != nil {
		return basehdl.ErrorResponse(c, err)
	}

	// Subscriber mẫu để người nhận thấy được template sau khi thay biến
	vars := mailer.SubscriberVariables(listmodels.Subscriber{
		Email:       input.RecipientEmail,
		Name:        "Nguyễn Văn A",
		CompanyName: "Công ty ABC",
		WebsiteURL:  "https://example.com",
	})
	for _, v := range template.Variables {
		if _, ok := vars[v]; !ok {
			vars[v] = "[" + v + "]"
		}
	}

	channel, err := h.Provider.Acquire(ctx)
	if err != nil {
		return basehdl.ErrorResponse(c, err)
	}
	defer channel.Close()

	msg := mailer.Message{
		To:      input.RecipientEmail,
		Subject: "[Test] " + mailer.ReplaceVariables(template.Subject, vars),
		HTML:    mailer.ReplaceVariables(template.HTMLContent, vars),
	}
	if err := channel.Send(msg); err != nil {
		h.Logger.Errorf("❌ Gửi mail thử của campaign %s tới %s thất bại: %v", campaign.Name, input.RecipientEmail, err)
		return basehdl.ErrorResponse(c, err)
	}

	h.Logger.Infof("✅ Đã gửi mail thử của campaign %s tới %s", campaign.Name, input.RecipientEmail)
	return basehdl.SuccessResponse(c, fiber.Map{
		"campaignId":     campaign.ID.Hex(),
		"recipientEmail": input.RecipientEmail,
	})
}

// parseBody parse và validate request body cho các handler không embed BaseHandler
func parseBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	if global.Validate != nil {
		if err := global.Validate.Struct(input); err != nil {
			return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
		}
	}
	return nil
}
