// Package global chứa các biến toàn cục của ứng dụng:
// cấu hình server, kết nối MongoDB, registry collections và validator.
package global

import (
	"email_marketing/config"
	"email_marketing/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ServerConfig cấu hình toàn cục của server, load từ file env
	ServerConfig *config.Configuration

	// MongoDBClient client kết nối MongoDB
	MongoDBClient *mongo.Client

	// RegistryCollections registry quản lý các collection của MongoDB
	RegistryCollections = registry.NewRegistry[*mongo.Collection]()

	// Validate validator toàn cục, khởi tạo qua InitValidator
	Validate *validator.Validate
)

// ColNames chứa tên các collection trong database.
// Struct này được dùng để khởi tạo collections qua reflection.
type ColNames struct {
	Campaigns      string
	EmailLists     string
	EmailTemplates string
	Reports        string
	CronLogs       string
	SmtpSettings   string
}

// MongoCollectionNames tên các collection (trùng với tên dùng trong registry)
var MongoCollectionNames = ColNames{
	Campaigns:      "campaigns",
	EmailLists:     "email_lists",
	EmailTemplates: "email_templates",
	Reports:        "reports",
	CronLogs:       "cron_logs",
	SmtpSettings:   "smtp_settings",
}

// GetCollection lấy collection theo tên từ registry.
// Trả về nil nếu collection chưa được đăng ký.
func GetCollection(name string) *mongo.Collection {
	col, exists := RegistryCollections.Get(name)
	if !exists {
		return nil
	}
	return col
}
