// Package mailer - Test gửi batch với kênh và store giả.
package mailer

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	campaignmodels "email_marketing/internal/api/campaign/models"
	listmodels "email_marketing/internal/api/list/models"
	reportmodels "email_marketing/internal/api/report/models"
	templatemodels "email_marketing/internal/api/template/models"
)

type fakeChannel struct {
	from    string
	failFor map[string]error
	sent    []Message
	closed  bool
}

func (c *fakeChannel) Send(msg Message) error {
	if err := c.failFor[msg.To]; err != nil {
		return err
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (c *fakeChannel) From() string { return c.from }

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

type fakeReports struct {
	sent   []string
	failed []string
}

func (r *fakeReports) RecordSent(ctx context.Context, campaignID primitive.ObjectID, email, pixelID string) (reportmodels.Report, error) {
	r.sent = append(r.sent, email)
	return reportmodels.Report{}, nil
}

func (r *fakeReports) RecordFailed(ctx context.Context, campaignID primitive.ObjectID, email, pixelID, errMsg string) (reportmodels.Report, error) {
	r.failed = append(r.failed, email)
	return reportmodels.Report{}, nil
}

type fakeMarker struct {
	marked []primitive.ObjectID
}

func (m *fakeMarker) MarkSubscriberSent(ctx context.Context, listID, subscriberID primitive.ObjectID) error {
	m.marked = append(m.marked, subscriberID)
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newBatchSender tạo BatchSender với Sleep đếm số lần chờ thay vì chờ thật
func newBatchSender(channel *fakeChannel, reports *fakeReports, marker *fakeMarker, sleeps *int) *BatchSender {
	return &BatchSender{
		Channel:  channel,
		Reports:  reports,
		Lists:    marker,
		Logger:   quietLogger(),
		BaseURL:  "https://mail.example.com",
		Sender:   "sender@example.com",
		DelayMin: 60 * time.Second,
		DelayMax: 90 * time.Second,
		Sleep: func(ctx context.Context, d time.Duration) error {
			*sleeps++
			return nil
		},
	}
}

// Kịch bản hai lượt với danh sách A(right), B(wrong), C(right) và perDayLimit=2:
// lượt 1 gửi A, bỏ B; lượt 2 gửi C và campaign cạn danh sách.
func TestBatchSender_TwoPassScenario(t *testing.T) {
	list := listmodels.EmailList{
		ID:   primitive.NewObjectID(),
		Name: "Danh sách demo",
		Emails: []listmodels.Subscriber{
			{ID: primitive.NewObjectID(), Email: "a@example.com", Name: "An", EmailStatus: listmodels.EmailStatusRight},
			{ID: primitive.NewObjectID(), Email: "b@example.com", Name: "Binh", EmailStatus: listmodels.EmailStatusWrong},
			{ID: primitive.NewObjectID(), Email: "c@example.com", Name: "Chi", EmailStatus: listmodels.EmailStatusRight},
		},
	}
	template := templatemodels.EmailTemplate{
		Subject:     "Chào {{firstName}}",
		HTMLContent: "<p>Xin chào {{firstName}}</p>",
	}
	campaign := campaignmodels.Campaign{
		ID:              primitive.NewObjectID(),
		Name:            "Campaign demo",
		PerDayLimit:     2,
		TrackingPixelID: "pixel-1",
	}

	// Lượt 1: xử lý A và B
	channel := &fakeChannel{from: "sender@example.com"}
	reports := &fakeReports{}
	marker := &fakeMarker{}
	sleeps := 0
	sender := newBatchSender(channel, reports, marker, &sleeps)

	result, err := sender.Run(context.Background(), campaign, list, template)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"b@example.com"}, result.FailedEmails)
	assert.False(t, result.Exhausted)
	require.NotNil(t, result.LastSendEmailID)
	assert.Equal(t, list.Emails[1].ID, *result.LastSendEmailID, "marker phải tiến qua cả địa chỉ wrong")

	// B bị bỏ qua: không gửi, không report sent, chỉ report failed
	require.Len(t, channel.sent, 1)
	assert.Equal(t, "a@example.com", channel.sent[0].To)
	assert.Equal(t, []string{"a@example.com"}, reports.sent)
	assert.Equal(t, []string{"b@example.com"}, reports.failed)
	require.Len(t, marker.marked, 1)
	assert.Equal(t, list.Emails[0].ID, marker.marked[0])

	// Chỉ chờ 1 lần (sau A); B là wrong nên không chờ
	assert.Equal(t, 1, sleeps)

	// Nội dung đã render và gắn pixel
	assert.Contains(t, channel.sent[0].HTML, "Xin chào An")
	assert.Contains(t, channel.sent[0].HTML, "/api/v1/track/pixel-1?email=a%40example.com")
	assert.Equal(t, "Chào An", channel.sent[0].Subject)

	// Lượt 2: tiếp tục từ marker, chỉ còn C và danh sách cạn
	campaign.LastSendEmailID = result.LastSendEmailID
	channel2 := &fakeChannel{from: "sender@example.com"}
	reports2 := &fakeReports{}
	sleeps2 := 0
	sender2 := newBatchSender(channel2, reports2, &fakeMarker{}, &sleeps2)

	result2, err := sender2.Run(context.Background(), campaign, list, template)
	require.NoError(t, err)

	assert.Equal(t, 1, result2.Sent)
	assert.Equal(t, 0, result2.Failed)
	assert.True(t, result2.Exhausted)
	require.NotNil(t, result2.LastSendEmailID)
	assert.Equal(t, list.Emails[2].ID, *result2.LastSendEmailID)
	assert.Equal(t, 0, sleeps2, "người cuối cùng không cần chờ")
}

// Gửi lỗi ở cuối lô thì marker không tiến: lần chạy sau thử lại người đó
func TestBatchSender_FailedSendKeepsMarker(t *testing.T) {
	list := listmodels.EmailList{
		ID: primitive.NewObjectID(),
		Emails: []listmodels.Subscriber{
			{ID: primitive.NewObjectID(), Email: "a@example.com", EmailStatus: listmodels.EmailStatusRight},
			{ID: primitive.NewObjectID(), Email: "b@example.com", EmailStatus: listmodels.EmailStatusRight},
		},
	}
	campaign := campaignmodels.Campaign{ID: primitive.NewObjectID(), PerDayLimit: 1}
	template := templatemodels.EmailTemplate{Subject: "Hi", HTMLContent: "<p>Hi</p>"}

	channel := &fakeChannel{
		from:    "sender@example.com",
		failFor: map[string]error{"a@example.com": errors.New("mailbox unavailable")},
	}
	reports := &fakeReports{}
	sleeps := 0
	sender := newBatchSender(channel, reports, &fakeMarker{}, &sleeps)

	result, err := sender.Run(context.Background(), campaign, list, template)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Nil(t, result.LastSendEmailID, "marker giữ nguyên khi gửi lỗi")
	assert.Equal(t, []string{"a@example.com"}, reports.failed)
	assert.Empty(t, reports.sent)
}

// Marker là một con trỏ duy nhất: gửi lỗi giữa lô rồi người sau thành công
// thì marker vẫn tiến qua người lỗi, lô kế tiếp bắt đầu sau người thành công
// chứ không quay lại thử người lỗi.
func TestBatchSender_FailedThenSuccessAdvancesMarker(t *testing.T) {
	list := listmodels.EmailList{
		ID: primitive.NewObjectID(),
		Emails: []listmodels.Subscriber{
			{ID: primitive.NewObjectID(), Email: "a@example.com", EmailStatus: listmodels.EmailStatusRight},
			{ID: primitive.NewObjectID(), Email: "b@example.com", EmailStatus: listmodels.EmailStatusRight},
			{ID: primitive.NewObjectID(), Email: "c@example.com", EmailStatus: listmodels.EmailStatusRight},
		},
	}
	campaign := campaignmodels.Campaign{ID: primitive.NewObjectID(), PerDayLimit: 2}
	template := templatemodels.EmailTemplate{Subject: "Hi", HTMLContent: "<p>Hi</p>"}

	channel := &fakeChannel{
		from:    "sender@example.com",
		failFor: map[string]error{"a@example.com": errors.New("mailbox unavailable")},
	}
	reports := &fakeReports{}
	sleeps := 0
	sender := newBatchSender(channel, reports, &fakeMarker{}, &sleeps)

	result, err := sender.Run(context.Background(), campaign, list, template)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"a@example.com"}, result.FailedEmails)
	assert.Equal(t, []string{"a@example.com"}, reports.failed)
	assert.Equal(t, []string{"b@example.com"}, reports.sent)

	// B thành công kéo marker qua A
	require.NotNil(t, result.LastSendEmailID)
	assert.Equal(t, list.Emails[1].ID, *result.LastSendEmailID)

	// Lô kế tiếp resume sau B: bắt đầu từ C, A không được thử lại
	batch, startIdx := NextBatch(list.Emails, result.LastSendEmailID, campaign.PerDayLimit)
	assert.Equal(t, 2, startIdx)
	require.Len(t, batch, 1)
	assert.Equal(t, "c@example.com", batch[0].Email)
}

// Hủy ctx giữa chừng: dừng sớm, kết quả tích lũy vẫn trả về và không coi là cạn
func TestBatchSender_ContextCancelledStopsEarly(t *testing.T) {
	list := listmodels.EmailList{
		ID: primitive.NewObjectID(),
		Emails: []listmodels.Subscriber{
			{ID: primitive.NewObjectID(), Email: "a@example.com", EmailStatus: listmodels.EmailStatusRight},
			{ID: primitive.NewObjectID(), Email: "b@example.com", EmailStatus: listmodels.EmailStatusRight},
		},
	}
	campaign := campaignmodels.Campaign{ID: primitive.NewObjectID(), PerDayLimit: 2}
	template := templatemodels.EmailTemplate{Subject: "Hi", HTMLContent: "<p>Hi</p>"}

	channel := &fakeChannel{from: "sender@example.com"}
	sender := newBatchSender(channel, &fakeReports{}, &fakeMarker{}, new(int))
	sender.Sleep = func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}

	result, err := sender.Run(context.Background(), campaign, list, template)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 1, result.Sent)
	assert.False(t, result.Exhausted)
	require.NotNil(t, result.LastSendEmailID)
	assert.Equal(t, list.Emails[0].ID, *result.LastSendEmailID)
}
