// Package models - SmtpSetting thuộc domain Settings.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provider được hỗ trợ và thông số SMTP mặc định của nó
const (
	ProviderGmail = "gmail"

	DefaultGmailHost = "smtp.gmail.com"
	DefaultGmailPort = 587
)

// SmtpSetting - Tài khoản SMTP dùng để gửi mail.
// Hệ thống dùng bản ghi mới nhất; không có bản ghi nào nghĩa là chưa cấu hình.
type SmtpSetting struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SenderEmail string             `json:"senderEmail" bson:"senderEmail"`
	Password    string             `json:"-" bson:"password"`
	Provider    string             `json:"provider" bson:"provider"` // hiện hỗ trợ gmail

	// Host/Port override tùy chọn, mặc định suy ra từ provider
	Host string `json:"host,omitempty" bson:"host,omitempty"`
	Port int    `json:"port,omitempty" bson:"port,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
