package authValidator

import (
	"strings"

	authController "slotbook/controllers/auth"
	"slotbook/middleware"

	"github.com/gofiber/fiber/v2"
)

// AdminLogin validates an admin login request.
func AdminLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authController.AdminLoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Username) == "" {
			errors["username"] = "Username is required!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAdminLogin", reqData)
		return c.Next()
	}
}

// UserLogin validates a public-user login request.
func UserLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authController.UserLoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Mobile) == "" {
			errors["mobile"] = "Mobile number is required!"
		}
		if strings.TrimSpace(reqData.ArmyNumber) == "" {
			errors["armyNumber"] = "Army number is required!"
		}
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUserLogin", reqData)
		return c.Next()
	}
}
