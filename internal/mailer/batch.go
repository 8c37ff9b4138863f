package mailer

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	campaignmodels "email_marketing/internal/api/campaign/models"
	cronlogmodels "email_marketing/internal/api/cronlog/models"
	listmodels "email_marketing/internal/api/list/models"
	reportmodels "email_marketing/internal/api/report/models"
	templatemodels "email_marketing/internal/api/template/models"
	"email_marketing/internal/utility"
)

// ReportStore ghi report kết quả gửi từng email
type ReportStore interface {
	RecordSent(ctx context.Context, campaignID primitive.ObjectID, recipientEmail, trackingPixelID string) (reportmodels.Report, error)
	RecordFailed(ctx context.Context, campaignID primitive.ObjectID, recipientEmail, trackingPixelID, errMsg string) (reportmodels.Report, error)
}

// SubscriberMarker đánh dấu subscriber đã được gửi trong danh sách
type SubscriberMarker interface {
	MarkSubscriberSent(ctx context.Context, listID, subscriberID primitive.ObjectID) error
}

// BatchResult kết quả một lượt batch của một campaign
type BatchResult struct {
	Sent            int
	Failed          int
	FailedEmails    []string
	LastSendEmailID *primitive.ObjectID
	Exhausted       bool
	Attempts        []cronlogmodels.MailAttempt
}

// BatchSender gửi tuần tự một lô người nhận của một campaign qua một kênh
// SMTP đã mở. Lỗi của từng người nhận được ghi nhận rồi đi tiếp, không bao
// giờ làm vỡ cả batch.
type BatchSender struct {
	Channel  Channel
	Reports  ReportStore
	Lists    SubscriberMarker
	Logger   *logrus.Logger
	BaseURL  string
	Sender   string // địa chỉ from, chỉ phục vụ audit log
	DelayMin time.Duration
	DelayMax time.Duration

	// Sleep chờ giữa hai lần gửi, mặc định chờ thật và tôn trọng ctx.
	// Test thay bằng hàm trả về ngay.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Run gửi lô kế tiếp của campaign theo marker resume hiện tại.
// Trả về lỗi chỉ khi ctx bị hủy giữa chừng; kết quả tích lũy tới thời điểm
// đó vẫn hợp lệ và caller vẫn phải ghi nhận nó.
func (b *BatchSender) Run(ctx context.Context, campaign campaignmodels.Campaign, list listmodels.EmailList, template templatemodels.EmailTemplate) (BatchResult, error) {
	batch, startIdx := NextBatch(list.Emails, campaign.LastSendEmailID, campaign.PerDayLimit)
	result := BatchResult{
		LastSendEmailID: campaign.LastSendEmailID,
		Exhausted:       Exhausted(startIdx, campaign.PerDayLimit, len(list.Emails)),
	}

	for i, recipient := range batch {
		if recipient.EmailStatus == listmodels.EmailStatusWrong {
			// Địa chỉ đã đánh dấu sai: bỏ qua không gửi, không chờ,
			// nhưng marker vẫn tiến qua để không kẹt lại ở đây mãi
			result.Failed++
			result.FailedEmails = append(result.FailedEmails, recipient.Email)
			result.LastSendEmailID = &batch[i].ID
			result.Attempts = append(result.Attempts, b.attempt(campaign, list, recipient, cronlogmodels.MailAttempt{
				Status: reportmodels.ReportStatusFailed,
				Error:  "recipient email marked wrong",
			}))
			if _, err := b.Reports.RecordFailed(ctx, campaign.ID, recipient.Email, campaign.TrackingPixelID, "recipient email marked wrong"); err != nil {
				b.Logger.Warnf("⚠️ Không ghi được report failed cho %s: %v", recipient.Email, err)
			}
			continue
		}

		variables := SubscriberVariables(recipient)
		msg := Message{
			To:      recipient.Email,
			Subject: ReplaceVariables(template.Subject, variables),
			HTML: ReplaceVariables(template.HTMLContent, variables) +
				TrackingPixelTag(b.BaseURL, campaign.TrackingPixelID, recipient.Email),
		}

		if err := b.Channel.Send(msg); err != nil {
			// Gửi lỗi: thất bại không tự tiến marker, nhưng người
			// phía sau thành công vẫn kéo marker qua người này
			result.Failed++
			result.FailedEmails = append(result.FailedEmails, recipient.Email)
			result.Attempts = append(result.Attempts, b.attempt(campaign, list, recipient, cronlogmodels.MailAttempt{
				Status: reportmodels.ReportStatusFailed,
				Error:  err.Error(),
			}))
			b.Logger.Errorf("❌ Gửi mail tới %s thất bại: %v", recipient.Email, err)
			if _, rErr := b.Reports.RecordFailed(ctx, campaign.ID, recipient.Email, campaign.TrackingPixelID, err.Error()); rErr != nil {
				b.Logger.Warnf("⚠️ Không ghi được report failed cho %s: %v", recipient.Email, rErr)
			}
		} else {
			result.Sent++
			result.LastSendEmailID = &batch[i].ID
			result.Attempts = append(result.Attempts, b.attempt(campaign, list, recipient, cronlogmodels.MailAttempt{
				Status: reportmodels.ReportStatusSent,
			}))
			// Report và cờ sended ghi best-effort: mail đã đi rồi,
			// lỗi ghi nhận chỉ log lại chứ không đảo ngược được
			if _, err := b.Reports.RecordSent(ctx, campaign.ID, recipient.Email, campaign.TrackingPixelID); err != nil {
				b.Logger.Warnf("⚠️ Mail đã gửi nhưng không ghi được report sent cho %s: %v", recipient.Email, err)
			}
			if err := b.Lists.MarkSubscriberSent(ctx, list.ID, recipient.ID); err != nil {
				b.Logger.Warnf("⚠️ Không đánh dấu được sended cho %s: %v", recipient.Email, err)
			}
		}

		// Chờ ngẫu nhiên giữa hai lần gửi, bỏ qua sau người cuối cùng
		if i < len(batch)-1 {
			if err := b.sleep(ctx, b.randomDelay()); err != nil {
				result.Exhausted = false
				return result, err
			}
		}
	}

	return result, nil
}

func (b *BatchSender) attempt(campaign campaignmodels.Campaign, list listmodels.EmailList, recipient listmodels.Subscriber, base cronlogmodels.MailAttempt) cronlogmodels.MailAttempt {
	base.CampaignID = campaign.ID
	base.CampaignName = campaign.Name
	base.ListID = list.ID
	base.ListName = list.Name
	base.Sender = b.Sender
	base.RecipientEmail = strings.ToLower(recipient.Email)
	base.SentAt = utility.CurrentTimeInMilli()
	return base
}

func (b *BatchSender) randomDelay() time.Duration {
	if b.DelayMax <= b.DelayMin {
		return b.DelayMin
	}
	return b.DelayMin + time.Duration(rand.Int63n(int64(b.DelayMax-b.DelayMin)+1))
}

func (b *BatchSender) sleep(ctx context.Context, d time.Duration) error {
	if b.Sleep != nil {
		return b.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
