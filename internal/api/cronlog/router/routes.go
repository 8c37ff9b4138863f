// Package router đăng ký các route thuộc domain CronLog.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	cronloghdl "email_marketing/internal/api/cronlog/handler"
	apirouter "email_marketing/internal/api/router"
)

// Register đăng ký tất cả route cron log lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	cronLogHandler, err := cronloghdl.NewCronLogHandler()
	if err != nil {
		return fmt.Errorf("create cron log handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/cron-logs", cronLogHandler, apirouter.ReadOnlyConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/cron-logs", "GET", "/recent", nil, cronLogHandler.FindRecent)
	return nil
}
