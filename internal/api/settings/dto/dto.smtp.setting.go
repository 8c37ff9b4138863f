// Package dto chứa DTO cho domain Settings.
package dto

// SmtpSettingInput dữ liệu đầu vào khi lưu cấu hình SMTP
type SmtpSettingInput struct {
	SenderEmail string `json:"senderEmail" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	Provider    string `json:"provider" validate:"omitempty,oneof=gmail"`
	Host        string `json:"host"`
	Port        int    `json:"port" validate:"omitempty,min=1,max=65535"`
}
