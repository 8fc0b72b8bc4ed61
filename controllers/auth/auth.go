package authController

import (
	"log"
	"strings"
	"time"

	"slotbook/config"
	"slotbook/database"
	"slotbook/middleware"
	"slotbook/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminLoginRequest is the validated admin login payload.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserLoginRequest is the validated public-user login payload.
type UserLoginRequest struct {
	Mobile     string `json:"mobile"`
	ArmyNumber string `json:"armyNumber"`
	Name       string `json:"name"`
}

// AdminLogin verifies username/password and opens a session.
func AdminLogin(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAdminLogin").(*AdminLoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var admin models.AdminUser
	if err := db.Where("username = ?", reqData.Username).First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	session := models.AdminSession{
		AdminID:   admin.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Duration(config.AppConfig.SessionHours) * time.Hour),
	}
	if err := db.Create(&session).Error; err != nil {
		log.Printf("Error creating admin session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged in successfully.", fiber.Map{
		"token": session.Token,
		"admin": fiber.Map{
			"id":       admin.ID,
			"username": admin.Username,
			"role":     admin.Role,
			"fullName": admin.FullName,
		},
	})
}

// AdminLogout deletes the presented session token. Logging out with an
// unknown token is not an error.
func AdminLogout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := authHeader[len("Bearer "):]
		if err := database.Database.Db.Where("token = ?", token).Delete(&models.AdminSession{}).Error; err != nil {
			log.Printf("Error deleting admin session: %v", err)
		}
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out successfully.", nil)
}

// VerifyAdminSession echoes the identity behind a valid session token.
func VerifyAdminSession(c *fiber.Ctx) error {
	admin := middleware.AdminFromContext(c)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session is valid.", fiber.Map{
		"admin": admin,
	})
}

// UserLogin upserts the caller's contact profile and issues a user JWT.
// Public users have no password; the profile is a contact cache, not an
// identity check.
func UserLogin(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserLogin").(*UserLoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	profile := models.UserProfile{
		ArmyNumber: reqData.ArmyNumber,
		Name:       reqData.Name,
		Mobile:     reqData.Mobile,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "army_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "mobile", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		log.Printf("Error upserting profile for %s: %v", reqData.ArmyNumber, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	// Re-read so the response carries the stored row, not the insert attempt.
	if err := db.Where("army_number = ?", reqData.ArmyNumber).First(&profile).Error; err != nil && err != gorm.ErrRecordNotFound {
		log.Printf("Error reloading profile for %s: %v", reqData.ArmyNumber, err)
	}

	token, err := middleware.GenerateUserJWT(profile.ArmyNumber, profile.Name, profile.Mobile)
	if err != nil {
		log.Printf("Error generating user token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged in successfully.", fiber.Map{
		"token": token,
		"user": fiber.Map{
			"armyNumber": profile.ArmyNumber,
			"name":       profile.Name,
			"mobile":     profile.Mobile,
		},
	})
}
