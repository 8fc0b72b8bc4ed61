package userManagementRoutes

import (
	userManagementControllers "slotbook/controllers/userManagement"
	"slotbook/middleware"
	userManagementValidators "slotbook/validators/userManagement"

	"github.com/gofiber/fiber/v2"
)

func SetupUserManagementRoutes(app *fiber.App) {
	group := app.Group("/api/admin/users", middleware.AdminAuth)

	group.Get("/", userManagementControllers.GetAllUsers)
	group.Get("/stats", userManagementControllers.GetUserStats)
	group.Post("/", userManagementValidators.CreateUser(), userManagementControllers.CreateUser)
	group.Get("/:id", userManagementControllers.GetUserByID)
	group.Put("/:id/role", userManagementControllers.UpdateUserRole)
	group.Delete("/:id", userManagementControllers.DeleteUser)
}
