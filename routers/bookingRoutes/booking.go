package bookingRoutes

import (
	bookingControllers "slotbook/controllers/booking"
	bookingValidators "slotbook/validators/booking"

	"github.com/gofiber/fiber/v2"
)

func SetupBookingRoutes(app *fiber.App) {
	bookingGroup := app.Group("/api/bookings")

	bookingGroup.Post("/", bookingValidators.Create(), bookingControllers.CreateBooking)
	bookingGroup.Get("/weekly-status", bookingControllers.GetWeeklyStatus)

	// Legacy alias used by the original client.
	app.Get("/api/user/weekly-status", bookingControllers.GetWeeklyStatus)
}
