// Package wiring lắp ráp mailer.Selector từ các service thật.
// Tách ra package riêng để handler delivery và scheduler nền dùng chung
// một Selector duy nhất mà không tạo import cycle giữa các domain.
package wiring

import (
	"fmt"
	"sync"
	"time"

	campaignsvc "email_marketing/internal/api/campaign/service"
	cronlogsvc "email_marketing/internal/api/cronlog/service"
	listsvc "email_marketing/internal/api/list/service"
	reportsvc "email_marketing/internal/api/report/service"
	settingssvc "email_marketing/internal/api/settings/service"
	templatesvc "email_marketing/internal/api/template/service"
	"email_marketing/internal/global"
	"email_marketing/internal/logger"
	"email_marketing/internal/mailer"
)

var (
	selectorOnce sync.Once
	selector     *mailer.Selector
	selectorErr  error
)

// GetSelector trả về Selector dùng chung của ứng dụng.
// Khởi tạo lazy một lần; gọi sau khi registry collections đã sẵn sàng.
func GetSelector() (*mailer.Selector, error) {
	selectorOnce.Do(func() {
		selector, selectorErr = newSelector()
	})
	return selector, selectorErr
}

func newSelector() (*mailer.Selector, error) {
	campaigns, err := campaignsvc.NewCampaignService()
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign service: %v", err)
	}
	lists, err := listsvc.NewEmailListService()
	if err != nil {
		return nil, fmt.Errorf("failed to create email list service: %v", err)
	}
	templates, err := templatesvc.NewEmailTemplateService()
	if err != nil {
		return nil, fmt.Errorf("failed to create email template service: %v", err)
	}
	reports, err := reportsvc.NewReportService()
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %v", err)
	}
	cronLogs, err := cronlogsvc.NewCronLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create cron log service: %v", err)
	}
	settings, err := settingssvc.NewSmtpSettingService()
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp setting service: %v", err)
	}

	cfg := global.ServerConfig
	if cfg == nil {
		return nil, fmt.Errorf("server config chưa được khởi tạo")
	}

	return &mailer.Selector{
		Campaigns: campaigns,
		Lists:     lists,
		Templates: templates,
		Reports:   reports,
		RunLogs:   cronLogs,
		Provider:  mailer.NewSmtpChannelProvider(settings),
		Logger:    logger.GetLogger("cron"),
		BaseURL:   cfg.BaseURL,
		DelayMin:  time.Duration(cfg.SendDelayMinSeconds) * time.Second,
		DelayMax:  time.Duration(cfg.SendDelayMaxSeconds) * time.Second,
	}, nil
}
