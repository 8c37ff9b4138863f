package mailer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	campaignmodels "email_marketing/internal/api/campaign/models"
	campaignsvc "email_marketing/internal/api/campaign/service"
	cronlogmodels "email_marketing/internal/api/cronlog/models"
	listmodels "email_marketing/internal/api/list/models"
	templatemodels "email_marketing/internal/api/template/models"
	"email_marketing/internal/common"
	"email_marketing/internal/utility"
)

// CampaignStore thao tác campaign mà một lượt chạy cần
type CampaignStore interface {
	FindDueToday(ctx context.Context, now time.Time) ([]campaignmodels.Campaign, error)
	ClaimForRun(ctx context.Context, id primitive.ObjectID) (campaignmodels.Campaign, error)
	ReleaseClaim(ctx context.Context, id primitive.ObjectID) error
	ApplyBatchOutcome(ctx context.Context, id primitive.ObjectID, outcome campaignsvc.BatchOutcome, now time.Time) error
}

// ListStore đọc danh sách người nhận và đánh dấu subscriber đã gửi
type ListStore interface {
	SubscriberMarker
	FindOneById(ctx context.Context, id primitive.ObjectID) (listmodels.EmailList, error)
}

// TemplateStore đọc template của campaign
type TemplateStore interface {
	FindOneById(ctx context.Context, id primitive.ObjectID) (templatemodels.EmailTemplate, error)
}

// RunLogStore lưu nhật ký lượt chạy
type RunLogStore interface {
	InsertOne(ctx context.Context, log cronlogmodels.CronLog) (cronlogmodels.CronLog, error)
}

// PassSummary tổng kết một lượt chạy batch
type PassSummary struct {
	Campaigns int
	Sent      int
	Failed    int
}

// String trả về thông điệp tổng kết ghi vào log và trả cho API kích hoạt tay
func (s PassSummary) String() string {
	return fmt.Sprintf("Processed %d campaigns. Sent: %d, Failed: %d", s.Campaigns, s.Sent, s.Failed)
}

// Selector chọn campaign đến hạn và chạy batch cho từng campaign.
// Mọi collaborator được inject lúc khởi tạo; Selector không đụng tới
// biến global nào nên test được trọn vẹn bằng fake.
type Selector struct {
	Campaigns CampaignStore
	Lists     ListStore
	Templates TemplateStore
	Reports   ReportStore
	RunLogs   RunLogStore
	Provider  ChannelProvider
	Logger    *logrus.Logger

	BaseURL  string
	DelayMin time.Duration
	DelayMax time.Duration

	// Sleep truyền xuống BatchSender, test thay bằng hàm trả về ngay
	Sleep func(ctx context.Context, d time.Duration) error

	// Now cho phép test cố định thời gian, mặc định time.Now
	Now func() time.Time
}

// RunPass chạy một lượt gửi: chọn campaign đến hạn hôm nay, chạy batch cho
// từng campaign trên goroutine riêng rồi ghi một CronLog tổng hợp.
// Kênh SMTP được thăm dò một lần trước khi đụng tới bất kỳ campaign nào;
// thăm dò thất bại hủy cả lượt và mọi campaign giữ nguyên trạng thái.
func (s *Selector) RunPass(ctx context.Context, logType string) (PassSummary, error) {
	now := s.now()
	runAt := utility.UnixMilli(now)

	probe, err := s.Provider.Acquire(ctx)
	if err != nil {
		s.Logger.Errorf("❌ Bỏ qua lượt chạy: không mở được kênh SMTP: %v", err)
		return PassSummary{}, err
	}
	if cErr := probe.Close(); cErr != nil {
		s.Logger.Warnf("⚠️ Đóng kênh thăm dò lỗi: %v", cErr)
	}

	due, err := s.Campaigns.FindDueToday(ctx, now)
	if err != nil {
		return PassSummary{}, err
	}

	var (
		mu       sync.Mutex
		summary  = PassSummary{Campaigns: len(due)}
		attempts []cronlogmodels.MailAttempt
		failed   []string
	)

	var wg sync.WaitGroup
	for _, campaign := range due {
		wg.Add(1)
		go utility.GoProtect(func() {
			defer wg.Done()
			result := s.runCampaign(ctx, campaign, now)
			mu.Lock()
			summary.Sent += result.Sent
			summary.Failed += result.Failed
			attempts = append(attempts, result.Attempts...)
			failed = append(failed, result.FailedEmails...)
			mu.Unlock()
		})
	}
	wg.Wait()

	if len(attempts) > 0 {
		log := cronlogmodels.CronLog{
			CampaignsCount: summary.Campaigns,
			SentCount:      summary.Sent,
			FailedCount:    summary.Failed,
			FailedEmails:   failed,
			Mails:          attempts,
			RunAt:          runAt,
			LogType:        logType,
			Message:        summary.String(),
		}
		if _, err := s.RunLogs.InsertOne(ctx, log); err != nil {
			s.Logger.Errorf("❌ Không ghi được cron log: %v", err)
		}
	}

	s.Logger.Infof("✅ %s", summary.String())
	return summary, nil
}

// runCampaign xử lý trọn một campaign trong lượt chạy. Mọi lỗi được log và
// khoanh vùng tại đây; campaign lỗi được trả về scheduled chứ không failed.
func (s *Selector) runCampaign(ctx context.Context, campaign campaignmodels.Campaign, now time.Time) BatchResult {
	claimed, err := s.Campaigns.ClaimForRun(ctx, campaign.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Lượt khác đã chiếm campaign này, bỏ qua
			return BatchResult{}
		}
		s.Logger.Errorf("❌ Không claim được campaign %s: %v", campaign.ID.Hex(), err)
		return BatchResult{}
	}

	release := func() {
		if err := s.Campaigns.ReleaseClaim(ctx, campaign.ID); err != nil {
			s.Logger.Errorf("❌ Không trả được campaign %s về scheduled: %v", campaign.ID.Hex(), err)
		}
	}

	list, err := s.Lists.FindOneById(ctx, claimed.EmailListID)
	if err != nil {
		s.Logger.Errorf("❌ Campaign %s thiếu danh sách người nhận: %v", claimed.Name, err)
		release()
		return BatchResult{}
	}
	template, err := s.Templates.FindOneById(ctx, claimed.TemplateID)
	if err != nil {
		s.Logger.Errorf("❌ Campaign %s thiếu template: %v", claimed.Name, err)
		release()
		return BatchResult{}
	}

	channel, err := s.Provider.Acquire(ctx)
	if err != nil {
		s.Logger.Errorf("❌ Campaign %s không mở được kênh SMTP: %v", claimed.Name, err)
		release()
		return BatchResult{}
	}
	defer func() {
		if err := channel.Close(); err != nil {
			s.Logger.Warnf("⚠️ Đóng kênh SMTP của campaign %s lỗi: %v", claimed.Name, err)
		}
	}()

	sender := &BatchSender{
		Channel:  channel,
		Reports:  s.Reports,
		Lists:    s.Lists,
		Logger:   s.Logger,
		BaseURL:  s.BaseURL,
		Sender:   channel.From(),
		DelayMin: s.DelayMin,
		DelayMax: s.DelayMax,
		Sleep:    s.Sleep,
	}
	result, runErr := sender.Run(ctx, claimed, list, template)
	if runErr != nil {
		s.Logger.Warnf("⚠️ Batch của campaign %s dừng sớm: %v", claimed.Name, runErr)
	}

	outcome := campaignsvc.BatchOutcome{
		Sent:            result.Sent,
		Failed:          result.Failed,
		LastSendEmailID: result.LastSendEmailID,
		Exhausted:       result.Exhausted,
	}
	if err := s.Campaigns.ApplyBatchOutcome(ctx, campaign.ID, outcome, now); err != nil {
		s.Logger.Errorf("❌ Không ghi được kết quả batch cho campaign %s: %v", claimed.Name, err)
	}
	return result
}

func (s *Selector) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
