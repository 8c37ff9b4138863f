// Package dto chứa DTO cho domain Campaign.
package dto

// CampaignCreateInput dữ liệu đầu vào khi tạo campaign
type CampaignCreateInput struct {
	Name         string `json:"name" validate:"required"`
	EmailListID  string `json:"emailListId" validate:"required" transform:"objectID,map:EmailListID"`
	TemplateID   string `json:"templateId" validate:"required" transform:"objectID,map:TemplateID"`
	Status       string `json:"status" validate:"omitempty,campaign_status"`
	ScheduledFor *int64 `json:"scheduledFor,omitempty"`
	CronAt       int64  `json:"cronAt,omitempty"`
	PerDayLimit  int    `json:"perDayLimit" validate:"omitempty,min=1"`
}

// CampaignUpdateInput dữ liệu đầu vào khi cập nhật campaign.
// Trạng thái đổi qua endpoint update-status riêng; đổi list/template thì tạo
// campaign mới thay vì sửa campaign đang chạy giữa chừng.
type CampaignUpdateInput struct {
	Name         string `json:"name" bson:"name,omitempty"`
	ScheduledFor *int64 `json:"scheduledFor,omitempty" bson:"scheduledFor,omitempty"`
	CronAt       int64  `json:"cronAt,omitempty" bson:"cronAt,omitempty"`
	PerDayLimit  int    `json:"perDayLimit" bson:"perDayLimit,omitempty" validate:"omitempty,min=1"`
}

// CampaignStatusInput dữ liệu đầu vào khi đổi trạng thái campaign
type CampaignStatusInput struct {
	Status string `json:"status" validate:"required,campaign_status"`
}
