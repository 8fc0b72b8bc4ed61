package middleware

import (
	"log"
	"strings"
	"time"

	"slotbook/database"
	"slotbook/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminContext is the authenticated admin identity threaded through handlers
// via c.Locals("admin"). Handlers never reach into session rows directly.
type AdminContext struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
}

// AdminFromContext returns the authenticated admin set by AdminAuth, or a
// zero context when the request is unauthenticated.
func AdminFromContext(c *fiber.Ctx) AdminContext {
	admin, ok := c.Locals("admin").(AdminContext)
	if !ok {
		return AdminContext{}
	}
	return admin
}

// AdminAuth validates an opaque bearer token against the admin session store.
// Absent, unknown or expired tokens are rejected with 401.
func AdminAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Authentication required", nil)
	}
	token := authHeader[len("Bearer "):]

	var session models.AdminSession
	err := database.Database.Db.
		Preload("AdminUser").
		Where("token = ? AND expires_at >= ?", token, time.Now()).
		First(&session).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("Admin auth error: %v", err)
		}
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired session", nil)
	}

	c.Locals("admin", AdminContext{
		ID:       session.AdminUser.ID,
		Username: session.AdminUser.Username,
		Role:     session.AdminUser.Role,
		FullName: session.AdminUser.FullName,
	})

	return c.Next()
}
