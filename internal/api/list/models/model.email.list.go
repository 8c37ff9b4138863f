// Package models - EmailList thuộc domain List.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái kiểm tra email của subscriber
const (
	EmailStatusRight = "Right" // Địa chỉ hợp lệ, được phép gửi
	EmailStatusWrong = "Wrong" // Địa chỉ sai, bỏ qua khi gửi nhưng vẫn đi qua con trỏ
)

// Subscriber - Một người nhận trong danh sách email
type Subscriber struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email       string             `json:"email" bson:"email"`
	Name        string             `json:"name,omitempty" bson:"name,omitempty"`
	CompanyName string             `json:"companyName,omitempty" bson:"companyName,omitempty"`
	WebsiteURL  string             `json:"websiteUrl,omitempty" bson:"websiteUrl,omitempty"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`

	// EmailStatus: Right hoặc Wrong
	EmailStatus string `json:"emailStatus" bson:"emailStatus"`

	// Sended đánh dấu subscriber đã được gửi mail thành công ít nhất một lần
	Sended bool `json:"sended" bson:"sended"`

	// Variables dữ liệu cá nhân hóa tùy ý cho template, ưu tiên thấp hơn các field chuẩn
	Variables map[string]string `json:"variables,omitempty" bson:"variables,omitempty"`

	CreatedAt int64 `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt int64 `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// EmailList - Danh sách người nhận, subscribers lưu embedded theo thứ tự cố định
type EmailList struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" index:"single:1"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`

	// Emails danh sách subscribers. Thứ tự mảng là thứ tự gửi,
	// con trỏ resume của campaign dựa trên vị trí trong mảng này.
	Emails []Subscriber `json:"emails" bson:"emails"`

	TotalCount int `json:"totalCount" bson:"totalCount"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
