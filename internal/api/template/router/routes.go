// Package router đăng ký các route thuộc domain EmailTemplate.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	templatehdl "email_marketing/internal/api/template/handler"
	apirouter "email_marketing/internal/api/router"
)

// Register đăng ký tất cả route email template lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	templateHandler, err := templatehdl.NewEmailTemplateHandler()
	if err != nil {
		return fmt.Errorf("create email template handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/email-templates", templateHandler, apirouter.ReadWriteConfig)
	return nil
}
