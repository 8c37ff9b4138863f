// Package models - Campaign thuộc domain Campaign.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của Campaign
const (
	StatusDraft     = "draft"     // Mới tạo, chưa tham gia gửi tự động
	StatusScheduled = "scheduled" // Đủ điều kiện để được chọn gửi theo lịch
	StatusRunning   = "running"   // Đang có một lượt gửi batch
	StatusPaused    = "paused"    // Tạm dừng bởi người dùng, giữ nguyên tiến trình
	StatusCompleted = "completed" // Đã gửi hết danh sách người nhận
	StatusFailed    = "failed"    // Lượt gửi lỗi không khôi phục được
)

// validTransitions bảng chuyển trạng thái hợp lệ của campaign.
// completed -> running cho phép chạy lại campaign trên danh sách đã bổ sung người nhận mới.
var validTransitions = map[string][]string{
	StatusDraft:     {StatusScheduled, StatusRunning},
	StatusScheduled: {StatusRunning, StatusPaused},
	StatusRunning:   {StatusCompleted, StatusScheduled, StatusFailed, StatusPaused},
	StatusPaused:    {StatusScheduled},
	StatusCompleted: {StatusRunning},
	StatusFailed:    {StatusScheduled},
}

// CanTransition kiểm tra chuyển trạng thái from -> to có hợp lệ không
func CanTransition(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Campaign - Chiến dịch gửi email theo batch hàng ngày
type Campaign struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" index:"single:1"`
	EmailListID primitive.ObjectID `json:"emailListId" bson:"emailListId" index:"single:1"`
	TemplateID  primitive.ObjectID `json:"templateId" bson:"templateId"`

	// Status: draft, scheduled, running, paused, completed, failed
	Status string `json:"status" bson:"status" index:"single:1;compound:status_cronat_idx"`

	ScheduledFor *int64 `json:"scheduledFor,omitempty" bson:"scheduledFor,omitempty"`
	StartedAt    *int64 `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	CompletedAt  *int64 `json:"completedAt,omitempty" bson:"completedAt,omitempty"`

	TotalRecipients int `json:"totalRecipients" bson:"totalRecipients"`
	SentCount       int `json:"sentCount" bson:"sentCount"`
	OpenedCount     int `json:"openedCount" bson:"openedCount"`
	FailedCount     int `json:"failedCount" bson:"failedCount"`

	// PerDayLimit số email tối đa gửi trong một lượt chạy mỗi ngày
	PerDayLimit int `json:"perDayLimit" bson:"perDayLimit"`

	// LastSentAt thời điểm batch gần nhất gửi xong
	LastSentAt *int64 `json:"lastSentAt,omitempty" bson:"lastSentAt,omitempty"`

	// CronAt thời điểm dự kiến của lượt gửi kế tiếp. Campaign chỉ được chọn
	// khi cronAt rơi vào ngày hôm nay; sau mỗi batch, cronAt nhảy sang ngày kế tiếp.
	CronAt int64 `json:"cronAt" bson:"cronAt" index:"compound:status_cronat_idx"`

	// LastSendEmailID marker resume: subscriber cuối cùng đã xử lý trong lần chạy trước.
	// Nil nghĩa là chưa gửi cho ai, batch kế tiếp bắt đầu từ đầu danh sách.
	LastSendEmailID *primitive.ObjectID `json:"lastSendEmailId,omitempty" bson:"lastSendEmailId,omitempty"`

	// TrackingPixelID định danh pixel theo dõi mở mail, cấp khi campaign bắt đầu chạy
	TrackingPixelID string `json:"trackingPixelId,omitempty" bson:"trackingPixelId,omitempty" index:"single:1"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
