package slotManagementRoutes

import (
	slotManagementControllers "slotbook/controllers/slotManagement"
	"slotbook/middleware"
	slotManagementValidators "slotbook/validators/slotManagement"

	"github.com/gofiber/fiber/v2"
)

func SetupSlotManagementRoutes(app *fiber.App) {
	group := app.Group("/api/admin/slot-management", middleware.AdminAuth)

	// Slot Configurations
	group.Get("/configurations", slotManagementControllers.GetSlotConfigurations)
	group.Post("/configuration", slotManagementValidators.SlotConfig(), slotManagementControllers.CreateSlotConfiguration)
	group.Put("/configuration/:id", slotManagementValidators.SlotConfig(), slotManagementControllers.UpdateSlotConfiguration)
	group.Delete("/configuration/:id", slotManagementControllers.DeleteSlotConfiguration)
	group.Post("/bulk-configuration", slotManagementValidators.BulkConfig(), slotManagementControllers.BulkConfigure)

	// Recurring Rules
	group.Get("/recurring-rules", slotManagementControllers.GetRecurringRules)
	group.Post("/recurring-rule", slotManagementValidators.RecurringRule(), slotManagementControllers.CreateRecurringRule)
	group.Put("/recurring-rule/:id", slotManagementValidators.RuleUpdate(), slotManagementControllers.UpdateRecurringRule)
	group.Delete("/recurring-rule/:id", slotManagementControllers.DeleteRecurringRule)

	// Availability
	group.Get("/availability", slotManagementControllers.GetSlotAvailability)
}
