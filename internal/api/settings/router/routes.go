// Package router đăng ký các route thuộc domain Settings.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	settingshdl "email_marketing/internal/api/settings/handler"
	apirouter "email_marketing/internal/api/router"
)

// Register đăng ký tất cả route settings lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	smtpHandler, err := settingshdl.NewSmtpSettingHandler()
	if err != nil {
		return fmt.Errorf("create smtp setting handler: %w", err)
	}
	apirouter.RegisterRouteWithMiddleware(v1, "/settings", "GET", "/smtp", nil, smtpHandler.GetCurrent)
	apirouter.RegisterRouteWithMiddleware(v1, "/settings", "POST", "/smtp", nil, smtpHandler.Save)
	return nil
}
