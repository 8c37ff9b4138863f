// Package router đăng ký các route thuộc domain Report.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	reporthdl "email_marketing/internal/api/report/handler"
	apirouter "email_marketing/internal/api/router"
)

// Register đăng ký tất cả route report lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	reportHandler, err := reporthdl.NewReportHandler()
	if err != nil {
		return fmt.Errorf("create report handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/reports", reportHandler, apirouter.ReadOnlyConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/reports", "GET", "/by-campaign/:id", nil, reportHandler.FindByCampaign)
	return nil
}
