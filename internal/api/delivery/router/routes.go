// Package router đăng ký các route thuộc domain Delivery: gửi trực tiếp,
// gửi mail thử, pixel tracking và kích hoạt cron thủ công.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	deliveryhdl "email_marketing/internal/api/delivery/handler"
	apirouter "email_marketing/internal/api/router"
)

// Register đăng ký tất cả route delivery lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	sendHandler, err := deliveryhdl.NewDeliverySendHandler()
	if err != nil {
		return fmt.Errorf("create delivery send handler: %w", err)
	}
	apirouter.RegisterRouteWithMiddleware(v1, "/delivery", "POST", "/send", nil, sendHandler.HandleSend)
	apirouter.RegisterRouteWithMiddleware(v1, "/delivery", "POST", "/test-email/:id", nil, sendHandler.HandleTestEmail)

	trackingHandler, err := deliveryhdl.NewTrackingHandler()
	if err != nil {
		return fmt.Errorf("create tracking handler: %w", err)
	}
	// Public endpoint: mail client tải pixel không kèm credentials
	apirouter.RegisterRouteWithMiddleware(v1, "/track", "GET", "/:trackingId", nil, trackingHandler.HandleTrack)

	cronHandler, err := deliveryhdl.NewCronTriggerHandler()
	if err != nil {
		return fmt.Errorf("create cron trigger handler: %w", err)
	}
	apirouter.RegisterRouteWithMiddleware(v1, "/crons", "GET", "/run", nil, cronHandler.HandleRun)
	return nil
}
