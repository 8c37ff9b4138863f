package main

import (
	"context"

	"email_marketing/config"
	campaignmodels "email_marketing/internal/api/campaign/models"
	cronlogmodels "email_marketing/internal/api/cronlog/models"
	listmodels "email_marketing/internal/api/list/models"
	reportmodels "email_marketing/internal/api/report/models"
	settingsmodels "email_marketing/internal/api/settings/models"
	templatemodels "email_marketing/internal/api/template/models"
	"email_marketing/internal/database"
	"email_marketing/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDBClient, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	// Khởi tạo các db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDBClient); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Khởi tạo các index cho các collection theo tag `index` trên model
	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDBClient.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoCollectionNames.Campaigns), campaignmodels.Campaign{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoCollectionNames.EmailLists), listmodels.EmailList{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoCollectionNames.EmailTemplates), templatemodels.EmailTemplate{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoCollectionNames.Reports), reportmodels.Report{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoCollectionNames.CronLogs), cronlogmodels.CronLog{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoCollectionNames.SmtpSettings), settingsmodels.SmtpSetting{})
}
