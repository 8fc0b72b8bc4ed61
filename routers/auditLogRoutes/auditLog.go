package auditLogRoutes

import (
	auditLogControllers "slotbook/controllers/auditLog"
	"slotbook/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAuditLogRoutes(app *fiber.App) {
	group := app.Group("/api/admin/audit-logs", middleware.AdminAuth)

	group.Get("/", auditLogControllers.GetAuditLogs)
	group.Get("/stats", auditLogControllers.GetAuditStats)
	group.Get("/export", auditLogControllers.ExportAuditLogs)
}
