// Package services - Service cho domain SmtpSetting.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "email_marketing/internal/api/base/service"
	models "email_marketing/internal/api/settings/models"
	"email_marketing/internal/common"
	"email_marketing/internal/global"
	"email_marketing/internal/utility"
)

const smtpSettingCacheKey = "smtp_setting_current"

// SmtpSettingService quản lý cấu hình SMTP dùng chung cho mọi lượt gửi.
// Cấu hình hiện hành được cache trong bộ nhớ để mỗi pass cron không phải
// query lại DB; mọi thao tác ghi đều xóa cache.
type SmtpSettingService struct {
	*basesvc.BaseServiceMongoImpl[models.SmtpSetting]
	cache *gocache.Cache
}

// NewSmtpSettingService tạo mới SmtpSettingService
func NewSmtpSettingService() (*SmtpSettingService, error) {
	settingCollection, exist := global.RegistryCollections.Get(global.MongoCollectionNames.SmtpSettings)
	if !exist {
		return nil, fmt.Errorf("failed to get smtp_settings collection: %v", common.ErrNotFound)
	}
	return &SmtpSettingService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.SmtpSetting](settingCollection),
		cache:                gocache.New(5*time.Minute, 10*time.Minute),
	}, nil
}

// GetCurrent trả về cấu hình SMTP hiện hành (bản ghi mới nhất theo provider gmail).
// Chưa có cấu hình nào trả về ErrSmtpNotConfigured.
func (s *SmtpSettingService) GetCurrent(ctx context.Context) (models.SmtpSetting, error) {
	if cached, found := s.cache.Get(smtpSettingCacheKey); found {
		if setting, ok := cached.(models.SmtpSetting); ok {
			return setting, nil
		}
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	setting, err := s.FindOne(ctx, bson.M{"provider": models.ProviderGmail}, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.SmtpSetting{}, common.ErrSmtpNotConfigured
		}
		return models.SmtpSetting{}, err
	}
	s.cache.SetDefault(smtpSettingCacheKey, setting)
	return setting, nil
}

// Save upsert cấu hình SMTP theo provider và xóa cache
func (s *SmtpSettingService) Save(ctx context.Context, setting models.SmtpSetting) (models.SmtpSetting, error) {
	if err := utility.ValidateEmail(setting.SenderEmail); err != nil {
		return models.SmtpSetting{}, err
	}
	if setting.Provider == "" {
		setting.Provider = models.ProviderGmail
	}
	if setting.Host == "" {
		setting.Host = models.DefaultGmailHost
	}
	if setting.Port == 0 {
		setting.Port = models.DefaultGmailPort
	}
	saved, err := s.Upsert(ctx, bson.M{"provider": setting.Provider}, setting)
	if err != nil {
		return models.SmtpSetting{}, err
	}
	s.cache.Delete(smtpSettingCacheKey)
	return saved, nil
}
