package authRoutes

import (
	authControllers "slotbook/controllers/auth"
	"slotbook/middleware"
	authValidators "slotbook/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/admin/login", authValidators.AdminLogin(), authControllers.AdminLogin)
	authGroup.Post("/admin/logout", authControllers.AdminLogout)
	authGroup.Get("/admin/verify", middleware.AdminAuth, authControllers.VerifyAdminSession)
	authGroup.Post("/user/login", authValidators.UserLogin(), authControllers.UserLogin)
}
