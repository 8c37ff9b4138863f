// Package services - Service cho domain Campaign.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "email_marketing/internal/api/base/service"
	models "email_marketing/internal/api/campaign/models"
	"email_marketing/internal/common"
	"email_marketing/internal/global"
	"email_marketing/internal/utility"
)

// CampaignService quản lý vòng đời campaign: CRUD, chọn campaign đến hạn,
// claim lượt chạy và ghi nhận kết quả batch.
type CampaignService struct {
	*basesvc.BaseServiceMongoImpl[models.Campaign]
}

// NewCampaignService tạo mới CampaignService
func NewCampaignService() (*CampaignService, error) {
	campaignCollection, exist := global.RegistryCollections.Get(global.MongoCollectionNames.Campaigns)
	if !exist {
		return nil, fmt.Errorf("failed to get campaigns collection: %v", common.ErrNotFound)
	}
	return &CampaignService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Campaign](campaignCollection),
	}, nil
}

// InsertOne tạo campaign với các giá trị mặc định: status draft, perDayLimit
// tối thiểu 1, cronAt là hiện tại và trackingPixelId cấp ngay lúc tạo,
// giữ ổn định suốt vòng đời campaign.
func (s *CampaignService) InsertOne(ctx context.Context, campaign models.Campaign) (models.Campaign, error) {
	if campaign.Status == "" {
		campaign.Status = models.StatusDraft
	}
	if campaign.PerDayLimit <= 0 {
		campaign.PerDayLimit = 1
	}
	if campaign.CronAt == 0 {
		campaign.CronAt = utility.CurrentTimeInMilli()
	}
	if campaign.TrackingPixelID == "" {
		campaign.TrackingPixelID = uuid.NewString()
	}
	return s.BaseServiceMongoImpl.InsertOne(ctx, campaign)
}

// BatchOutcome kết quả một lượt batch cần ghi nhận vào campaign.
type BatchOutcome struct {
	Sent            int
	Failed          int
	LastSendEmailID *primitive.ObjectID
	Exhausted       bool
}

// FindDueToday trả về các campaign đủ điều kiện chạy trong lượt này:
// status = scheduled và cronAt rơi vào hôm nay nhưng không ở tương lai.
// Sắp xếp theo _id tăng dần để thứ tự xử lý ổn định giữa các lượt.
func (s *CampaignService) FindDueToday(ctx context.Context, now time.Time) ([]models.Campaign, error) {
	filter := bson.M{
		"status": models.StatusScheduled,
		"cronAt": bson.M{
			"$gte": utility.StartOfDay(now),
			"$lte": utility.UnixMilli(now),
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return s.BaseServiceMongoImpl.Find(ctx, filter, opts)
}

// ClaimForRun chiếm quyền chạy campaign bằng CAS scheduled -> running.
// Campaign đã bị lượt khác chiếm (status không còn scheduled) trả về ErrNotFound;
// caller bỏ qua, không coi là lỗi. Cấp trackingPixelId nếu campaign chưa có.
func (s *CampaignService) ClaimForRun(ctx context.Context, id primitive.ObjectID) (models.Campaign, error) {
	now := utility.CurrentTimeInMilli()
	set := bson.M{
		"status":    models.StatusRunning,
		"updatedAt": now,
	}
	// startedAt chỉ set ở lần chạy đầu tiên
	current, err := s.FindOneById(ctx, id)
	if err != nil {
		return models.Campaign{}, err
	}
	if current.StartedAt == nil {
		set["startedAt"] = now
	}
	if current.TrackingPixelID == "" {
		set["trackingPixelId"] = uuid.NewString()
	}

	filter := bson.M{"_id": id, "status": models.StatusScheduled}
	return s.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
}

// ReleaseClaim trả campaign từ running về scheduled khi lượt chạy không thực
// hiện được (thiếu list/template, lỗi kênh gửi...). Giữ nguyên tiến trình gửi.
func (s *CampaignService) ReleaseClaim(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "status": models.StatusRunning}
	update := bson.M{"$set": bson.M{
		"status":    models.StatusScheduled,
		"updatedAt": utility.CurrentTimeInMilli(),
	}}
	_, err := s.FindOneAndUpdate(ctx, filter, update, nil)
	return err
}

// ApplyBatchOutcome ghi nhận kết quả batch: cộng dồn bộ đếm, cập nhật marker
// resume và chuyển trạng thái. Hết danh sách -> completed; còn người nhận ->
// quay về scheduled với cronAt nhảy sang ngày kế tiếp, giữ nguyên giờ phút giây.
func (s *CampaignService) ApplyBatchOutcome(ctx context.Context, id primitive.ObjectID, outcome BatchOutcome, now time.Time) error {
	nowMilli := utility.UnixMilli(now)
	set := bson.M{
		"lastSentAt": nowMilli,
		"updatedAt":  nowMilli,
	}
	if outcome.LastSendEmailID != nil {
		set["lastSendEmailId"] = *outcome.LastSendEmailID
	}
	if outcome.Exhausted {
		set["status"] = models.StatusCompleted
		set["completedAt"] = nowMilli
	} else {
		set["status"] = models.StatusScheduled
		set["cronAt"] = utility.UnixMilli(now.AddDate(0, 0, 1))
	}
	update := bson.M{
		"$set": set,
		"$inc": bson.M{
			"sentCount":   outcome.Sent,
			"failedCount": outcome.Failed,
		},
	}
	filter := bson.M{"_id": id, "status": models.StatusRunning}
	_, err := s.FindOneAndUpdate(ctx, filter, update, nil)
	return err
}

// IncrementOpened cộng openedCount khi có lượt mở mail đầu tiên của một report
func (s *CampaignService) IncrementOpened(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{
		"$inc": bson.M{"openedCount": 1},
		"$set": bson.M{"updatedAt": utility.CurrentTimeInMilli()},
	}
	_, err := s.UpdateById(ctx, id, update)
	return err
}

// FindByTrackingPixelID tìm campaign theo trackingPixelId
func (s *CampaignService) FindByTrackingPixelID(ctx context.Context, trackingPixelID string) (models.Campaign, error) {
	return s.FindOne(ctx, bson.M{"trackingPixelId": trackingPixelID}, nil)
}

// UpdateStatus chuyển trạng thái campaign theo yêu cầu người dùng, có kiểm tra
// bảng chuyển trạng thái. Chuyển không hợp lệ trả về ErrInvalidState.
func (s *CampaignService) UpdateStatus(ctx context.Context, id primitive.ObjectID, newStatus string) (models.Campaign, error) {
	campaign, err := s.FindOneById(ctx, id)
	if err != nil {
		return models.Campaign{}, err
	}
	if !models.CanTransition(campaign.Status, newStatus) {
		return models.Campaign{}, common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("không thể chuyển trạng thái campaign từ %s sang %s", campaign.Status, newStatus),
			common.StatusBadRequest, nil)
	}
	set := bson.M{
		"status":    newStatus,
		"updatedAt": utility.CurrentTimeInMilli(),
	}
	if newStatus == models.StatusCompleted {
		set["completedAt"] = utility.CurrentTimeInMilli()
	}
	filter := bson.M{"_id": id, "status": campaign.Status}
	return s.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
}
