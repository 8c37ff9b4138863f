// Package router đăng ký các route thuộc domain EmailList.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	listhdl "email_marketing/internal/api/list/handler"
	apirouter "email_marketing/internal/api/router"
)

// Register đăng ký tất cả route email list lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	listHandler, err := listhdl.NewEmailListHandler()
	if err != nil {
		return fmt.Errorf("create email list handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/email-lists", listHandler, apirouter.ReadWriteConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/email-lists", "POST", "/add-subscribers/:id", nil, listHandler.AddSubscribers)
	apirouter.RegisterRouteWithMiddleware(v1, "/email-lists", "DELETE", "/remove-subscriber/:id/:subscriberId", nil, listHandler.RemoveSubscriber)
	return nil
}
