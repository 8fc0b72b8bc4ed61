package utils

import (
	"encoding/json"
	"log"

	"slotbook/database"
	"slotbook/middleware"
	"slotbook/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// LogAudit appends an audit record for an admin mutation. Failures are
// logged and swallowed: the audit trail must never block the operation it
// describes.
func LogAudit(c *fiber.Ctx, admin middleware.AdminContext, action, entityType, entityID string, oldValues, newValues interface{}) {
	entry := models.AuditLog{
		AdminID:       admin.ID,
		AdminUsername: admin.Username,
		Action:        action,
		EntityType:    entityType,
		EntityID:      entityID,
		IPAddress:     c.IP(),
		UserAgent:     c.Get("User-Agent"),
	}
	if admin.Username == "" {
		entry.AdminUsername = "system"
	}

	if oldValues != nil {
		if raw, err := json.Marshal(oldValues); err == nil {
			entry.OldValues = datatypes.JSON(raw)
		}
	}
	if newValues != nil {
		if raw, err := json.Marshal(newValues); err == nil {
			entry.NewValues = datatypes.JSON(raw)
		}
	}

	if err := database.Database.Db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log audit: %v", err)
	}
}
