package userManagementValidator

import (
	"strings"

	userManagementController "slotbook/controllers/userManagement"
	"slotbook/middleware"
	"slotbook/models"

	"github.com/gofiber/fiber/v2"
)

// CreateUser validates an admin-account creation request.
func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(userManagementController.CreateUserRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Username) == "" {
			errors["username"] = "Username is required!"
		}
		if len(strings.TrimSpace(reqData.Password)) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}
		if strings.TrimSpace(reqData.FullName) == "" {
			errors["fullName"] = "Full name is required!"
		}
		if reqData.Role != "" && !models.IsValidAdminRole(reqData.Role) {
			errors["role"] = "Invalid role!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateUser", reqData)
		return c.Next()
	}
}
