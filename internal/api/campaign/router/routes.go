// Package router đăng ký các route thuộc domain Campaign.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	campaignhdl "email_marketing/internal/api/campaign/handler"
	apirouter "email_marketing/internal/api/router"
)

// Register đăng ký tất cả route campaign lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	campaignHandler, err := campaignhdl.NewCampaignHandler()
	if err != nil {
		return fmt.Errorf("create campaign handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/campaigns", campaignHandler, apirouter.ReadWriteConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/campaigns", "PUT", "/update-status/:id", nil, campaignHandler.UpdateStatus)
	return nil
}
