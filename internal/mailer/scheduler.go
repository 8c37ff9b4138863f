package mailer

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	cronlogmodels "email_marketing/internal/api/cronlog/models"
)

// Scheduler chạy Selector.RunPass định kỳ theo lịch cấu hình
type Scheduler struct {
	selector *Selector
	logger   *logrus.Logger
	cron     *cron.Cron
}

// NewScheduler tạo mới Scheduler, chưa chạy cho tới khi gọi Start
func NewScheduler(selector *Selector, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		selector: selector,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start đăng ký lịch chạy và khởi động cron. spec theo cú pháp robfig/cron,
// ví dụ "@every 1m" hoặc "0 8 * * *".
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		if _, err := s.selector.RunPass(context.Background(), cronlogmodels.LogTypeCron); err != nil {
			s.logger.Errorf("❌ Lượt chạy cron thất bại: %v", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Infof("🚀 Cron gửi mail đã khởi động với lịch %s", spec)
	return nil
}

// Stop dừng cron, chờ job đang chạy kết thúc
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("🛑 Cron gửi mail đã dừng")
}
