// Package dto chứa DTO cho domain Delivery (gửi trực tiếp, test mail, tracking).
package dto

// SendByIdsInput là request gửi mail trực tiếp tới một số subscriber chọn tay.
// CampaignID không bắt buộc: nếu có thì report gắn với campaign và pixel
// tracking dùng trackingPixelId của campaign đó.
type SendByIdsInput struct {
	SubscriberIDs []string `json:"subscriberIds" validate:"required,min=1"`
	TemplateID    string   `json:"templateId" validate:"required"`
	CampaignID    string   `json:"campaignId,omitempty"`
}

// SendByIdsResult là kết quả sau khi gửi trực tiếp
type SendByIdsResult struct {
	Sent         int      `json:"sent"`
	Failed       int      `json:"failed"`
	FailedEmails []string `json:"failedEmails,omitempty"`
}

// TestEmailInput là request gửi mail thử của một campaign tới một địa chỉ
type TestEmailInput struct {
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
}
