// Package mailer - Test lượt chạy Selector với store giả.
package mailer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	campaignmodels "email_marketing/internal/api/campaign/models"
	campaignsvc "email_marketing/internal/api/campaign/service"
	cronlogmodels "email_marketing/internal/api/cronlog/models"
	listmodels "email_marketing/internal/api/list/models"
	templatemodels "email_marketing/internal/api/template/models"
	"email_marketing/internal/common"
)

type fakeCampaignStore struct {
	mu       sync.Mutex
	due      []campaignmodels.Campaign
	claimErr map[primitive.ObjectID]error
	released []primitive.ObjectID
	outcomes map[primitive.ObjectID]campaignsvc.BatchOutcome
}

func (s *fakeCampaignStore) FindDueToday(ctx context.Context, now time.Time) ([]campaignmodels.Campaign, error) {
	return s.due, nil
}

func (s *fakeCampaignStore) ClaimForRun(ctx context.Context, id primitive.ObjectID) (campaignmodels.Campaign, error) {
	if err := s.claimErr[id]; err != nil {
		return campaignmodels.Campaign{}, err
	}
	for _, c := range s.due {
		if c.ID == id {
			c.Status = campaignmodels.StatusRunning
			return c, nil
		}
	}
	return campaignmodels.Campaign{}, common.ErrNotFound
}

func (s *fakeCampaignStore) ReleaseClaim(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = append(s.released, id)
	return nil
}

func (s *fakeCampaignStore) ApplyBatchOutcome(ctx context.Context, id primitive.ObjectID, outcome campaignsvc.BatchOutcome, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcomes == nil {
		s.outcomes = make(map[primitive.ObjectID]campaignsvc.BatchOutcome)
	}
	s.outcomes[id] = outcome
	return nil
}

type fakeListStore struct {
	fakeMarker
	lists map[primitive.ObjectID]listmodels.EmailList
}

func (s *fakeListStore) FindOneById(ctx context.Context, id primitive.ObjectID) (listmodels.EmailList, error) {
	list, ok := s.lists[id]
	if !ok {
		return listmodels.EmailList{}, common.ErrNotFound
	}
	return list, nil
}

type fakeTemplateStore struct {
	templates map[primitive.ObjectID]templatemodels.EmailTemplate
}

func (s *fakeTemplateStore) FindOneById(ctx context.Context, id primitive.ObjectID) (templatemodels.EmailTemplate, error) {
	template, ok := s.templates[id]
	if !ok {
		return templatemodels.EmailTemplate{}, common.ErrNotFound
	}
	return template, nil
}

type fakeRunLogStore struct {
	mu   sync.Mutex
	logs []cronlogmodels.CronLog
}

func (s *fakeRunLogStore) InsertOne(ctx context.Context, log cronlogmodels.CronLog) (cronlogmodels.CronLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, log)
	return log, nil
}

type fakeProvider struct {
	err      error
	acquired int
}

func (p *fakeProvider) Acquire(ctx context.Context) (Channel, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.acquired++
	return &fakeChannel{from: "sender@example.com"}, nil
}

func newTestSelector(campaigns *fakeCampaignStore, lists *fakeListStore, templates *fakeTemplateStore, reports *fakeReports, logs *fakeRunLogStore, provider *fakeProvider) *Selector {
	return &Selector{
		Campaigns: campaigns,
		Lists:     lists,
		Templates: templates,
		Reports:   reports,
		RunLogs:   logs,
		Provider:  provider,
		Logger:    quietLogger(),
		BaseURL:   "https://mail.example.com",
		Sleep: func(ctx context.Context, d time.Duration) error {
			return nil
		},
	}
}

func TestSelector_RunPass(t *testing.T) {
	listID := primitive.NewObjectID()
	templateID := primitive.NewObjectID()
	campaign := campaignmodels.Campaign{
		ID:              primitive.NewObjectID(),
		Name:            "Campaign demo",
		EmailListID:     listID,
		TemplateID:      templateID,
		Status:          campaignmodels.StatusScheduled,
		PerDayLimit:     5,
		TrackingPixelID: "pixel-1",
	}
	list := listmodels.EmailList{
		ID:   listID,
		Name: "Danh sách demo",
		Emails: []listmodels.Subscriber{
			{ID: primitive.NewObjectID(), Email: "a@example.com", EmailStatus: listmodels.EmailStatusRight},
			{ID: primitive.NewObjectID(), Email: "b@example.com", EmailStatus: listmodels.EmailStatusRight},
		},
	}
	template := templatemodels.EmailTemplate{Subject: "Hi", HTMLContent: "<p>Hi</p>"}

	t.Run("Lượt chạy bình thường gửi hết và ghi một cron log", func(t *testing.T) {
		campaigns := &fakeCampaignStore{due: []campaignmodels.Campaign{campaign}}
		lists := &fakeListStore{lists: map[primitive.ObjectID]listmodels.EmailList{listID: list}}
		templates := &fakeTemplateStore{templates: map[primitive.ObjectID]templatemodels.EmailTemplate{templateID: template}}
		reports := &fakeReports{}
		logs := &fakeRunLogStore{}
		provider := &fakeProvider{}

		summary, err := newTestSelector(campaigns, lists, templates, reports, logs, provider).
			RunPass(context.Background(), cronlogmodels.LogTypeCron)
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Campaigns)
		assert.Equal(t, 2, summary.Sent)
		assert.Equal(t, 0, summary.Failed)
		assert.Equal(t, "Processed 1 campaigns. Sent: 2, Failed: 0", summary.String())

		outcome, ok := campaigns.outcomes[campaign.ID]
		require.True(t, ok)
		assert.Equal(t, 2, outcome.Sent)
		assert.True(t, outcome.Exhausted)

		require.Len(t, logs.logs, 1)
		assert.Equal(t, cronlogmodels.LogTypeCron, logs.logs[0].LogType)
		assert.Len(t, logs.logs[0].Mails, 2)
		assert.Equal(t, summary.String(), logs.logs[0].Message)
	})

	t.Run("Không mở được kênh SMTP thì hủy cả lượt, không đụng campaign nào", func(t *testing.T) {
		campaigns := &fakeCampaignStore{due: []campaignmodels.Campaign{campaign}}
		logs := &fakeRunLogStore{}
		provider := &fakeProvider{err: common.ErrSmtpNotConfigured}

		_, err := newTestSelector(campaigns, &fakeListStore{}, &fakeTemplateStore{}, &fakeReports{}, logs, provider).
			RunPass(context.Background(), cronlogmodels.LogTypeCron)
		require.ErrorIs(t, err, common.ErrSmtpNotConfigured)

		assert.Empty(t, campaigns.outcomes)
		assert.Empty(t, campaigns.released)
		assert.Empty(t, logs.logs)
	})

	t.Run("Thua CAS claim thì bỏ qua campaign, không lỗi", func(t *testing.T) {
		campaigns := &fakeCampaignStore{
			due:      []campaignmodels.Campaign{campaign},
			claimErr: map[primitive.ObjectID]error{campaign.ID: common.ErrNotFound},
		}
		logs := &fakeRunLogStore{}

		summary, err := newTestSelector(campaigns, &fakeListStore{}, &fakeTemplateStore{}, &fakeReports{}, logs, &fakeProvider{}).
			RunPass(context.Background(), cronlogmodels.LogTypeManual)
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Campaigns)
		assert.Equal(t, 0, summary.Sent)
		assert.Empty(t, campaigns.outcomes)
		assert.Empty(t, logs.logs, "không có attempt nào thì không ghi cron log")
	})

	t.Run("Thiếu danh sách thì trả campaign về scheduled và đi tiếp", func(t *testing.T) {
		campaigns := &fakeCampaignStore{due: []campaignmodels.Campaign{campaign}}
		lists := &fakeListStore{lists: map[primitive.ObjectID]listmodels.EmailList{}}
		templates := &fakeTemplateStore{templates: map[primitive.ObjectID]templatemodels.EmailTemplate{templateID: template}}

		summary, err := newTestSelector(campaigns, lists, templates, &fakeReports{}, &fakeRunLogStore{}, &fakeProvider{}).
			RunPass(context.Background(), cronlogmodels.LogTypeCron)
		require.NoError(t, err)

		assert.Equal(t, 0, summary.Sent)
		assert.Equal(t, []primitive.ObjectID{campaign.ID}, campaigns.released)
		assert.Empty(t, campaigns.outcomes)
	})
}
