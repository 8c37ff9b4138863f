// Package services - Service cho domain CronLog.
package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "email_marketing/internal/api/base/models"
	basesvc "email_marketing/internal/api/base/service"
	models "email_marketing/internal/api/cronlog/models"
	"email_marketing/internal/common"
	"email_marketing/internal/global"
)

// CronLogService lưu nhật ký từng lượt chạy batch (cron hoặc kích hoạt tay)
type CronLogService struct {
	*basesvc.BaseServiceMongoImpl[models.CronLog]
}

// NewCronLogService tạo mới CronLogService
func NewCronLogService() (*CronLogService, error) {
	cronLogCollection, exist := global.RegistryCollections.Get(global.MongoCollectionNames.CronLogs)
	if !exist {
		return nil, fmt.Errorf("failed to get cron_logs collection: %v", common.ErrNotFound)
	}
	return &CronLogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.CronLog](cronLogCollection),
	}, nil
}

// FindRecent liệt kê nhật ký chạy, lượt mới nhất trước, có phân trang
func (s *CronLogService) FindRecent(ctx context.Context, page, limit int64) (*basemodels.PaginateResult[models.CronLog], error) {
	opts := options.Find().SetSort(bson.D{{Key: "runAt", Value: -1}})
	return s.FindWithPagination(ctx, bson.M{}, page, limit, opts)
}
