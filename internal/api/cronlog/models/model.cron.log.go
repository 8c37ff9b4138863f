// Package models - CronLog thuộc domain CronLog.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loại lượt chạy sinh ra log
const (
	LogTypeCron   = "cron"   // Lượt chạy tự động theo lịch
	LogTypeManual = "manual" // Lượt chạy kích hoạt thủ công qua API
)

// MailAttempt - Chi tiết một lần gửi trong lượt chạy (phục vụ audit).
// Một lượt chạy có thể gửi cho nhiều campaign nên mỗi attempt tự mang
// thông tin campaign/list của nó.
type MailAttempt struct {
	CampaignID     primitive.ObjectID `json:"campaignId" bson:"campaignId"`
	CampaignName   string             `json:"campaignName,omitempty" bson:"campaignName,omitempty"`
	ListID         primitive.ObjectID `json:"listId,omitempty" bson:"listId,omitempty"`
	ListName       string             `json:"listName,omitempty" bson:"listName,omitempty"`
	Sender         string             `json:"sender,omitempty" bson:"sender,omitempty"`
	RecipientEmail string             `json:"recipientEmail" bson:"recipientEmail"`
	Status         string             `json:"status" bson:"status"` // sent hoặc failed
	Error          string             `json:"error,omitempty" bson:"error,omitempty"`
	SentAt         int64              `json:"sentAt" bson:"sentAt"`
}

// CronLog - Nhật ký một lượt chạy batch, gom mọi campaign xử lý trong lượt đó
type CronLog struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	CampaignsCount int      `json:"campaignsCount" bson:"campaignsCount"`
	SentCount      int      `json:"sentCount" bson:"sentCount"`
	FailedCount    int      `json:"failedCount" bson:"failedCount"`
	FailedEmails   []string `json:"failedEmails,omitempty" bson:"failedEmails,omitempty"`

	// Mails chi tiết từng lần gửi trong lượt chạy
	Mails []MailAttempt `json:"mails,omitempty" bson:"mails,omitempty"`

	// RunAt thời điểm bắt đầu lượt chạy
	RunAt int64 `json:"runAt" bson:"runAt" index:"single:1,order:-1"`

	// LogType: cron hoặc manual
	LogType string `json:"logType" bson:"logType"`

	Message string `json:"message,omitempty" bson:"message,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
