// Package handler - TrackingHandler (xem handler.delivery.send.go cho package doc).
package handler

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	campaignmodels "email_marketing/internal/api/campaign/models"
	campaignsvc "email_marketing/internal/api/campaign/service"
	dto "email_marketing/internal/api/delivery/dto"
	reportmodels "email_marketing/internal/api/report/models"
	reportsvc "email_marketing/internal/api/report/service"
	"email_marketing/internal/logger"
	"email_marketing/internal/mailer"
)

// OpenRecorder ghi nhận lượt mở mail trên report tương ứng
type OpenRecorder interface {
	RecordOpen(ctx context.Context, trackingPixelID, recipientEmail, userAgent, ipAddress string) (reportmodels.Report, bool, error)
}

// OpenCounter tăng bộ đếm lượt mở trên campaign sở hữu pixel
type OpenCounter interface {
	FindByTrackingPixelID(ctx context.Context, trackingPixelID string) (campaignmodels.Campaign, error)
	IncrementOpened(ctx context.Context, id primitive.ObjectID) error
}

// TrackingHandler phục vụ pixel tracking mở mail.
// Endpoint luôn trả về ảnh GIF 1x1 với status 200, kể cả khi params rác
// hoặc không khớp report nào: mail client chỉ cần tải được ảnh.
type TrackingHandler struct {
	Reports   OpenRecorder
	Campaigns OpenCounter
	Logger    *logrus.Logger
}

// NewTrackingHandler tạo TrackingHandler với các service thật
func NewTrackingHandler() (*TrackingHandler, error) {
	reports, err := reportsvc.NewReportService()
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %v", err)
	}
	campaigns, err := campaignsvc.NewCampaignService()
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign service: %v", err)
	}
	return &TrackingHandler{
		Reports:   reports,
		Campaigns: campaigns,
		Logger:    logger.GetLogger("app"),
	}, nil
}

// HandleTrack xử lý pixel tracking (public endpoint).
// Endpoint: GET /api/v1/track/:trackingId?email=...
func (h *TrackingHandler) HandleTrack(c fiber.Ctx) error {
	params := dto.NewTrackingParams(c.Params("trackingId"), c.Query("email"))

	if params.Trackable() {
		h.recordOpen(c, params)
	}

	c.Set("Content-Type", "image/gif")
	c.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Set("Pragma", "no-cache")
	c.Set("Expires", "0")
	return c.Status(fiber.StatusOK).Send(mailer.TrackingGIF)
}

// recordOpen cập nhật report và bộ đếm openedCount của campaign.
// Lỗi ở đây chỉ log chứ không ảnh hưởng tới response pixel.
func (h *TrackingHandler) recordOpen(c fiber.Ctx, params dto.TrackingParams) {
	ctx := c.Context()

	report, opened, err := h.Reports.RecordOpen(ctx, params.PixelID, params.Email, c.Get("User-Agent"), c.IP())
	if err != nil {
		h.Logger.Warnf("⚠️ Ghi nhận mở mail lỗi (pixel=%s, email=%s): %v", params.PixelID, params.Email, err)
		return
	}
	if !opened {
		// Không có report sent khớp, hoặc đã ghi nhận mở trước đó
		return
	}

	h.Logger.Infof("✅ Email %s đã được mở (campaign %s)", report.RecipientEmail, report.CampaignID.Hex())

	campaign, err := h.Campaigns.FindByTrackingPixelID(ctx, params.PixelID)
	if err != nil {
		h.Logger.Warnf("⚠️ Không tìm thấy campaign cho pixel %s: %v", params.PixelID, err)
		return
	}
	if err := h.Campaigns.IncrementOpened(ctx, campaign.ID); err != nil {
		h.Logger.Warnf("⚠️ Tăng openedCount cho campaign %s lỗi: %v", campaign.ID.Hex(), err)
	}
}
