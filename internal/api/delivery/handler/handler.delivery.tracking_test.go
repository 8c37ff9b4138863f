package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	campaignmodels "email_marketing/internal/api/campaign/models"
	reportmodels "email_marketing/internal/api/report/models"
	"email_marketing/internal/common"
	"email_marketing/internal/mailer"
)

type fakeOpenRecorder struct {
	calls  int
	report reportmodels.Report
	opened bool
	err    error
}

func (f *fakeOpenRecorder) RecordOpen(_ context.Context, pixelID, email, _, _ string) (reportmodels.Report, bool, error) {
	f.calls++
	return f.report, f.opened, f.err
}

type fakeOpenCounter struct {
	campaign    campaignmodels.Campaign
	findErr     error
	incremented []primitive.ObjectID
}

func (f *fakeOpenCounter) FindByTrackingPixelID(_ context.Context, _ string) (campaignmodels.Campaign, error) {
	return f.campaign, f.findErr
}

func (f *fakeOpenCounter) IncrementOpened(_ context.Context, id primitive.ObjectID) error {
	f.incremented = append(f.incremented, id)
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTrackingApp(recorder *fakeOpenRecorder, counter *fakeOpenCounter) *fiber.App {
	h := &TrackingHandler{Reports: recorder, Campaigns: counter, Logger: quietLogger()}
	app := fiber.New()
	app.Get("/api/v1/track/:trackingId", h.HandleTrack)
	return app
}

func assertPixelResponse(t *testing.T, app *fiber.App, url string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/gif", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, mailer.TrackingGIF, body)
}

func TestTrackingHandler_HandleTrack(t *testing.T) {
	t.Run("pixel none không ghi nhận gì nhưng vẫn trả về ảnh", func(t *testing.T) {
		recorder := &fakeOpenRecorder{}
		counter := &fakeOpenCounter{}
		app := newTrackingApp(recorder, counter)

		assertPixelResponse(t, app, "/api/v1/track/none?email=a%40example.com")
		assert.Zero(t, recorder.calls)
		assert.Empty(t, counter.incremented)
	})

	t.Run("thiếu email không ghi nhận gì nhưng vẫn trả về ảnh", func(t *testing.T) {
		recorder := &fakeOpenRecorder{}
		app := newTrackingApp(recorder, &fakeOpenCounter{})

		assertPixelResponse(t, app, "/api/v1/track/pixel-1")
		assert.Zero(t, recorder.calls)
	})

	t.Run("lượt mở đầu tiên tăng openedCount của campaign", func(t *testing.T) {
		campaignID := primitive.NewObjectID()
		recorder := &fakeOpenRecorder{
			report: reportmodels.Report{CampaignID: campaignID, RecipientEmail: "a@example.com"},
			opened: true,
		}
		counter := &fakeOpenCounter{campaign: campaignmodels.Campaign{ID: campaignID}}
		app := newTrackingApp(recorder, counter)

		assertPixelResponse(t, app, "/api/v1/track/pixel-1?email=A%40example.com")
		assert.Equal(t, 1, recorder.calls)
		require.Len(t, counter.incremented, 1)
		assert.Equal(t, campaignID, counter.incremented[0])
	})

	t.Run("không khớp report nào vẫn trả về ảnh, không tăng đếm", func(t *testing.T) {
		recorder := &fakeOpenRecorder{opened: false}
		counter := &fakeOpenCounter{}
		app := newTrackingApp(recorder, counter)

		assertPixelResponse(t, app, "/api/v1/track/pixel-1?email=b%40example.com")
		assert.Equal(t, 1, recorder.calls)
		assert.Empty(t, counter.incremented)
	})

	t.Run("lỗi khi ghi nhận vẫn trả về ảnh", func(t *testing.T) {
		recorder := &fakeOpenRecorder{err: common.ErrNotFound}
		counter := &fakeOpenCounter{}
		app := newTrackingApp(recorder, counter)

		assertPixelResponse(t, app, "/api/v1/track/pixel-1?email=c%40example.com")
		assert.Empty(t, counter.incremented)
	})
}
