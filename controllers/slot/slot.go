package slotController

import (
	"log"
	"time"

	"slotbook/database"
	"slotbook/middleware"
	"slotbook/models"
	"slotbook/slotengine"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// fetchEffectiveConfig resolves the configuration actually applied to a
// date, falling back to the defaults when no row exists.
func fetchEffectiveConfig(db *gorm.DB, date string) (slotengine.EffectiveConfig, error) {
	var cfg models.SlotConfiguration
	err := db.Where("date = ?", date).First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		return slotengine.ResolveEffectiveConfig(nil), nil
	}
	if err != nil {
		return slotengine.EffectiveConfig{}, err
	}
	return slotengine.ResolveEffectiveConfig(&cfg), nil
}

// countBookingsPerSlot groups the non-cancelled bookings of a date by
// time-slot label.
func countBookingsPerSlot(db *gorm.DB, date string) (map[string]int, error) {
	var bookings []models.Booking
	err := db.Select("time_slot").
		Where("date = ? AND status <> ?", date, models.BookingCancelled).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, b := range bookings {
		counts[slotengine.NormalizeTimeSlot(b.TimeSlot)]++
	}
	return counts, nil
}

// GetSlots returns the full availability breakdown for a date.
func GetSlots(c *fiber.Ctx) error {
	date := c.Params("date")
	if _, err := time.Parse(slotengine.DateLayout, date); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date format!", nil)
	}

	db := database.Database.Db

	eff, err := fetchEffectiveConfig(db, date)
	if err != nil {
		log.Printf("Error fetching slot configuration for %s: %v", date, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch slots!", nil)
	}

	// Closed days are terminal: no per-slot enumeration.
	if eff.Status == models.SlotStatusClosed {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Slots fetched successfully.",
			slotengine.BuildDaySchedule(date, eff, nil))
	}

	counts, err := countBookingsPerSlot(db, date)
	if err != nil {
		log.Printf("Error counting bookings for %s: %v", date, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch slots!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slots fetched successfully.",
		slotengine.BuildDaySchedule(date, eff, counts))
}

// GetSlotStatus returns the cheap single-date summary without the per-slot
// breakdown.
func GetSlotStatus(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(slotengine.DateLayout)
	}
	if _, err := time.Parse(slotengine.DateLayout, date); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date format!", nil)
	}

	db := database.Database.Db

	eff, err := fetchEffectiveConfig(db, date)
	if err != nil {
		log.Printf("Error fetching slot configuration for %s: %v", date, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch slot status!", nil)
	}

	var total int64
	err = db.Model(&models.Booking{}).
		Where("date = ? AND status <> ?", date, models.BookingCancelled).
		Count(&total).Error
	if err != nil {
		log.Printf("Error counting bookings for %s: %v", date, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch slot status!", nil)
	}

	available := eff.MaxSlots - int(total)
	if available < 0 {
		available = 0
	}

	var reason *string
	if eff.Reason != "" {
		reason = &eff.Reason
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slot status fetched successfully.", fiber.Map{
		"date":           date,
		"status":         eff.Status,
		"totalBookings":  total,
		"maxSlots":       eff.MaxSlots,
		"availableSlots": available,
		"reason":         reason,
	})
}
