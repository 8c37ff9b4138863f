// Package services - Service cho domain Report.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "email_marketing/internal/api/base/models"
	basesvc "email_marketing/internal/api/base/service"
	models "email_marketing/internal/api/report/models"
	"email_marketing/internal/common"
	"email_marketing/internal/global"
	"email_marketing/internal/utility"
)

// ReportService ghi nhận kết quả gửi từng email và lượt mở mail.
// Email người nhận luôn được chuẩn hóa chữ thường trước khi lưu
// để khớp với query của endpoint tracking.
type ReportService struct {
	*basesvc.BaseServiceMongoImpl[models.Report]
}

// NewReportService tạo mới ReportService
func NewReportService() (*ReportService, error) {
	reportCollection, exist := global.RegistryCollections.Get(global.MongoCollectionNames.Reports)
	if !exist {
		return nil, fmt.Errorf("failed to get reports collection: %v", common.ErrNotFound)
	}
	return &ReportService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Report](reportCollection),
	}, nil
}

// RecordSent ghi report trạng thái sent cho một email gửi thành công
func (s *ReportService) RecordSent(ctx context.Context, campaignID primitive.ObjectID, recipientEmail, trackingPixelID string) (models.Report, error) {
	now := utility.CurrentTimeInMilli()
	report := models.Report{
		CampaignID:      campaignID,
		RecipientEmail:  strings.ToLower(recipientEmail),
		Status:          models.ReportStatusSent,
		SentAt:          &now,
		TrackingPixelID: trackingPixelID,
	}
	return s.InsertOne(ctx, report)
}

// RecordFailed ghi report trạng thái failed kèm thông điệp lỗi
func (s *ReportService) RecordFailed(ctx context.Context, campaignID primitive.ObjectID, recipientEmail, trackingPixelID, errMsg string) (models.Report, error) {
	now := utility.CurrentTimeInMilli()
	report := models.Report{
		CampaignID:      campaignID,
		RecipientEmail:  strings.ToLower(recipientEmail),
		Status:          models.ReportStatusFailed,
		SentAt:          &now,
		TrackingPixelID: trackingPixelID,
		Error:           errMsg,
	}
	return s.InsertOne(ctx, report)
}

// RecordOpen chuyển report sent -> opened theo (trackingPixelId, email).
// Trả về true khi report thực sự chuyển trạng thái trong lần gọi này;
// không có report khớp không phải lỗi (pixel có thể bị tải lại nhiều lần).
func (s *ReportService) RecordOpen(ctx context.Context, trackingPixelID, recipientEmail, userAgent, ipAddress string) (models.Report, bool, error) {
	filter := bson.M{
		"trackingPixelId": trackingPixelID,
		"recipientEmail":  strings.ToLower(recipientEmail),
		"status":          models.ReportStatusSent,
	}
	now := utility.CurrentTimeInMilli()
	update := bson.M{"$set": bson.M{
		"status":    models.ReportStatusOpened,
		"openedAt":  now,
		"userAgent": userAgent,
		"ipAddress": ipAddress,
		"updatedAt": now,
	}}
	report, err := s.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.Report{}, false, nil
		}
		return models.Report{}, false, err
	}
	return report, true, nil
}

// FindByCampaign liệt kê report của một campaign, mới nhất trước, có phân trang
func (s *ReportService) FindByCampaign(ctx context.Context, campaignID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[models.Report], error) {
	filter := bson.M{"campaignId": campaignID}
	opts := options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}
