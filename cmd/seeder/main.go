// Seeder tạo dữ liệu mẫu để chạy thử hệ thống: một email list với vài
// subscriber, một template có biến và một campaign đã scheduled.
// Chạy: go run ./cmd/seeder
package main

import (
	"context"
	"reflect"
	"time"

	"github.com/sirupsen/logrus"

	"email_marketing/config"
	campaignmodels "email_marketing/internal/api/campaign/models"
	campaignsvc "email_marketing/internal/api/campaign/service"
	listmodels "email_marketing/internal/api/list/models"
	listsvc "email_marketing/internal/api/list/service"
	templatemodels "email_marketing/internal/api/template/models"
	templatesvc "email_marketing/internal/api/template/service"
	"email_marketing/internal/database"
	"email_marketing/internal/global"
	"email_marketing/internal/logger"
	"email_marketing/internal/utility"
)

const demoHTML = `<html>
<body>
  <h1>Xin chào {{name}}!</h1>
  <p>Cảm ơn {{company}} đã quan tâm tới sản phẩm của chúng tôi.</p>
  <p>Ghé thăm chúng tôi tại <a href="{{websiteUrl}}">{{websiteUrl}}</a>.</p>
</body>
</html>`

func main() {
	if err := logger.Init(nil); err != nil {
		logrus.Fatalf("Failed to initialize logger: %v", err)
	}
	log := logger.GetAppLogger()

	global.InitValidator()
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		log.Fatal("Failed to initialize config")
	}

	var err error
	global.MongoDBClient, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := database.EnsureDatabaseAndCollections(global.MongoDBClient); err != nil {
		log.Fatalf("Failed to ensure database and collections: %v", err)
	}

	db := global.MongoDBClient.Database(global.ServerConfig.MongoDB_DBName)
	v := reflect.ValueOf(global.MongoCollectionNames)
	for i := 0; i < v.NumField(); i++ {
		name := v.Field(i).String()
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			log.Fatalf("Failed to register collection %s: %v", name, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	seed(ctx, log)
}

func seed(ctx context.Context, log *logrus.Logger) {
	lists, err := listsvc.NewEmailListService()
	if err != nil {
		log.Fatalf("Failed to create email list service: %v", err)
	}
	templates, err := templatesvc.NewEmailTemplateService()
	if err != nil {
		log.Fatalf("Failed to create email template service: %v", err)
	}
	campaigns, err := campaignsvc.NewCampaignService()
	if err != nil {
		log.Fatalf("Failed to create campaign service: %v", err)
	}

	list, err := lists.InsertOne(ctx, listmodels.EmailList{
		Name:        "Danh sách demo",
		Description: "Dữ liệu mẫu do seeder tạo",
	})
	if err != nil {
		log.Fatalf("Failed to insert email list: %v", err)
	}
	list, err = lists.AddSubscribers(ctx, list.ID, []listmodels.Subscriber{
		{Email: "an.nguyen@example.com", Name: "Nguyễn Văn An", CompanyName: "Công ty An Phát", WebsiteURL: "https://anphat.example.com"},
		{Email: "binh.tran@example.com", Name: "Trần Thanh Bình", CompanyName: "Công ty Bình Minh", WebsiteURL: "https://binhminh.example.com"},
		{Email: "chi.le@example.com", Name: "Lê Kim Chi"},
	})
	if err != nil {
		log.Fatalf("Failed to add subscribers: %v", err)
	}
	log.Infof("✅ Seeded email list %s với %d subscribers", list.ID.Hex(), list.TotalCount)

	template, err := templates.InsertOne(ctx, templatemodels.EmailTemplate{
		Name:        "Template chào mừng",
		Subject:     "Chào mừng {{name}} đến với chúng tôi",
		HTMLContent: demoHTML,
		PreviewText: "Lời chào từ đội ngũ demo",
	})
	if err != nil {
		log.Fatalf("Failed to insert template: %v", err)
	}
	log.Infof("✅ Seeded template %s (variables: %v)", template.ID.Hex(), template.Variables)

	campaign, err := campaigns.InsertOne(ctx, campaignmodels.Campaign{
		Name:            "Campaign demo",
		EmailListID:     list.ID,
		TemplateID:      template.ID,
		Status:          campaignmodels.StatusScheduled,
		PerDayLimit:     2,
		CronAt:          utility.UnixMilli(time.Now()),
		TotalRecipients: list.TotalCount,
	})
	if err != nil {
		log.Fatalf("Failed to insert campaign: %v", err)
	}
	log.Infof("✅ Seeded campaign %s (status=%s, perDayLimit=%d)", campaign.ID.Hex(), campaign.Status, campaign.PerDayLimit)
}
