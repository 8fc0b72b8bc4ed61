package profileController

import (
	"log"

	"slotbook/database"
	"slotbook/middleware"
	"slotbook/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRequest is the validated payload for profile save.
type ProfileRequest struct {
	ArmyNumber string `json:"armyNumber"`
	Name       string `json:"name"`
	Mobile     string `json:"mobile"`
}

// GetProfile fetches a contact profile by army number.
func GetProfile(c *fiber.Ctx) error {
	armyNumber := c.Params("armyNumber")

	var profile models.UserProfile
	err := database.Database.Db.Where("army_number = ?", armyNumber).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Profile not found!", nil)
	}
	if err != nil {
		log.Printf("Error fetching profile %s: %v", armyNumber, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", profile)
}

// SaveProfile creates or updates a profile keyed by army number.
func SaveProfile(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedProfile").(*ProfileRequest)
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
		log.Printf("Error saving profile %s: %v", reqData.ArmyNumber, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save profile!", nil)
	}

	if err := db.Where("army_number = ?", reqData.ArmyNumber).First(&profile).Error; err != nil {
		log.Printf("Error reloading profile %s: %v", reqData.ArmyNumber, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile saved successfully.", profile)
}

// DeleteProfile removes a profile by army number.
func DeleteProfile(c *fiber.Ctx) error {
	armyNumber := c.Params("armyNumber")

	if err := database.Database.Db.Where("army_number = ?", armyNumber).Delete(&models.UserProfile{}).Error; err != nil {
		log.Printf("Error deleting profile %s: %v", armyNumber, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile deleted successfully.", nil)
}
