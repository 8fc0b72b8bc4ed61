package profileRoutes

import (
	profileControllers "slotbook/controllers/profile"
	profileValidators "slotbook/validators/profile"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App) {
	profileGroup := app.Group("/api/profile")

	profileGroup.Post("/", profileValidators.Save(), profileControllers.SaveProfile)
	profileGroup.Get("/:armyNumber", profileControllers.GetProfile)
	profileGroup.Delete("/:armyNumber", profileControllers.DeleteProfile)
}
