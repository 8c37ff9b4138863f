// Package models - Report thuộc domain Report.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của một report gửi mail
const (
	ReportStatusSent    = "sent"    // Đã gửi, chưa ghi nhận mở
	ReportStatusOpened  = "opened"  // Người nhận đã mở mail (pixel được tải)
	ReportStatusFailed  = "failed"  // Gửi thất bại
	ReportStatusBounced = "bounced" // Mail bị trả lại
)

// Report - Kết quả gửi một email tới một người nhận
type Report struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CampaignID primitive.ObjectID `json:"campaignId" bson:"campaignId" index:"single:1"`

	// RecipientEmail luôn lưu ở dạng chữ thường để khớp khi tracking
	RecipientEmail string `json:"recipientEmail" bson:"recipientEmail" index:"compound:tracking_email_idx"`

	// Status: sent, opened, failed, bounced
	Status string `json:"status" bson:"status" index:"single:1"`

	SentAt   *int64 `json:"sentAt,omitempty" bson:"sentAt,omitempty"`
	OpenedAt *int64 `json:"openedAt,omitempty" bson:"openedAt,omitempty"`

	// TrackingPixelID trùng với trackingPixelId của campaign tại thời điểm gửi
	TrackingPixelID string `json:"trackingPixelId,omitempty" bson:"trackingPixelId,omitempty" index:"compound:tracking_email_idx"`

	UserAgent string `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	IPAddress string `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	Error     string `json:"error,omitempty" bson:"error,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
