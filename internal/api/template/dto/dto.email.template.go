// Package dto chứa DTO cho domain EmailTemplate.
package dto

// EmailTemplateCreateInput dữ liệu đầu vào khi tạo template.
// Danh sách biến không nhận từ client mà trích tự động từ htmlContent.
type EmailTemplateCreateInput struct {
	Name        string `json:"name" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	HTMLContent string `json:"htmlContent" validate:"required" transform:",map:HTMLContent"`
	PreviewText string `json:"previewText"`
}

// EmailTemplateUpdateInput dữ liệu đầu vào khi cập nhật template
type EmailTemplateUpdateInput struct {
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
	PreviewText string `json:"previewText"`
}
