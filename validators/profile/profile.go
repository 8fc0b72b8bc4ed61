package profileValidator

import (
	"regexp"
	"strings"

	profileController "slotbook/controllers/profile"
	"slotbook/middleware"

	"github.com/gofiber/fiber/v2"
)

var mobilePattern = regexp.MustCompile(`^[\+]?[1-9][\d]{0,15}$`)

// Save validates a profile create/update request.
func Save() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(profileController.ProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.ArmyNumber) == "" {
			errors["armyNumber"] = "Army number is required!"
		}
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if !mobilePattern.MatchString(reqData.Mobile) {
			errors["mobile"] = "Invalid mobile number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
