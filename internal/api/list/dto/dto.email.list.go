// Package dto chứa DTO cho domain EmailList.
package dto

// EmailListCreateInput dữ liệu đầu vào khi tạo danh sách.
// Người nhận thêm sau qua endpoint add-subscribers.
type EmailListCreateInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// EmailListUpdateInput dữ liệu đầu vào khi cập nhật danh sách
type EmailListUpdateInput struct {
	Name        string `json:"name" bson:"name,omitempty"`
	Description string `json:"description" bson:"description,omitempty"`
}

// SubscriberInput một người nhận cần thêm vào danh sách
type SubscriberInput struct {
	Email       string            `json:"email" validate:"required,email"`
	Name        string            `json:"name"`
	CompanyName string            `json:"companyName"`
	WebsiteURL  string            `json:"websiteUrl"`
	Notes       string            `json:"notes"`
	EmailStatus string            `json:"emailStatus" validate:"omitempty,oneof=Right Wrong"`
	Variables   map[string]string `json:"variables"`
}

// AddSubscribersInput dữ liệu đầu vào khi thêm người nhận vào danh sách
type AddSubscribersInput struct {
	Emails []SubscriberInput `json:"emails" validate:"required,min=1,dive"`
}
