// Package models - EmailTemplate thuộc domain Template.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmailTemplate - Mẫu email với placeholder dạng {{tên_biến}}
type EmailTemplate struct {
	ID      primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name    string             `json:"name" bson:"name" index:"single:1"`
	Subject string             `json:"subject" bson:"subject"`

	// HTMLContent nội dung HTML của email, chứa các placeholder {{firstName}}, {{companyName}}, ...
	HTMLContent string `json:"htmlContent" bson:"htmlContent"`

	// Variables danh sách tên biến xuất hiện trong subject và htmlContent,
	// được trích xuất tự động khi tạo/cập nhật template
	Variables []string `json:"variables" bson:"variables"`

	PreviewText string `json:"previewText,omitempty" bson:"previewText,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
