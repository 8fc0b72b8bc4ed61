package slotRoutes

import (
	slotControllers "slotbook/controllers/slot"

	"github.com/gofiber/fiber/v2"
)

func SetupSlotRoutes(app *fiber.App) {
	slotGroup := app.Group("/api/slots")

	// Static path must be registered before the :date parameter route.
	slotGroup.Get("/status/overall", slotControllers.GetSlotStatus)
	slotGroup.Get("/:date", slotControllers.GetSlots)
}
