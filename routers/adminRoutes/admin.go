package adminRoutes

import (
	adminControllers "slotbook/controllers/admin"
	"slotbook/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin", middleware.AdminAuth)

	adminGroup.Get("/bookings", adminControllers.GetAllBookings)
	adminGroup.Get("/stats", adminControllers.GetStats)
	adminGroup.Put("/bookings/:id/status", adminControllers.UpdateBookingStatus)
	adminGroup.Delete("/bookings/:id", adminControllers.DeleteBooking)
	adminGroup.Delete("/bookings", adminControllers.DeleteMultipleBookings)
	adminGroup.Get("/export", adminControllers.ExportBookings)
	adminGroup.Get("/analytics", adminControllers.GetAnalytics)
}
