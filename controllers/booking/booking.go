package bookingController

import (
	"errors"
	"log"
	"time"

	"slotbook/database"
	"slotbook/middleware"
	"slotbook/models"
	"slotbook/slotengine"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errWeeklyLimit = errors.New("weekly booking limit reached")
	errDayClosed   = errors.New("date is closed for booking")
	errInvalidSlot = errors.New("time slot not bookable on this date")
	errSlotFull    = errors.New("time slot fully booked")
)

// BookingRequest is the validated payload for booking creation.
type BookingRequest struct {
	Phone      string `json:"phone"`
	Name       string `json:"name"`
	ArmyNumber string `json:"armyNumber"`
	Date       string `json:"date"`
	TimeSlot   string `json:"timeSlot"`
	Purpose    string `json:"purpose"`
	Location   string `json:"location"`
}

// CheckWeeklyBookings counts the active bookings a phone number holds in
// the ISO week containing date. Cancelled bookings do not count against
// the weekly limit.
func CheckWeeklyBookings(db *gorm.DB, phone, date string) (int64, error) {
	weekStart, weekEnd, err := slotengine.WeekBounds(date)
	if err != nil {
		return 0, err
	}

	var count int64
	err = db.Model(&models.Booking{}).
		Where("phone = ? AND date >= ? AND date <= ? AND status <> ?",
			phone, weekStart, weekEnd, models.BookingCancelled).
		Count(&count).Error
	return count, err
}

// CreateBooking persists a booking after the weekly-limit and capacity
// gates pass. The checks and the insert run inside one transaction
// (serializable on Postgres) so two racing requests cannot both take the
// last spot or the weekly allowance. The profile upsert afterwards is a
// cache write: its failure never rolls back the booking.
func CreateBooking(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBooking").(*BookingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	booking := models.Booking{
		Phone:      reqData.Phone,
		Name:       reqData.Name,
		ArmyNumber: reqData.ArmyNumber,
		Date:       reqData.Date,
		TimeSlot:   slotengine.NormalizeTimeSlot(reqData.TimeSlot),
		Purpose:    reqData.Purpose,
		Location:   reqData.Location,
		Status:     models.BookingConfirmed,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		weekly, err := CheckWeeklyBookings(tx, booking.Phone, booking.Date)
		if err != nil {
			return err
		}
		if weekly > 0 {
			return errWeeklyLimit
		}

		var cfg models.SlotConfiguration
		var eff slotengine.EffectiveConfig
		err = tx.Where("date = ?", booking.Date).First(&cfg).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			eff = slotengine.ResolveEffectiveConfig(nil)
		case err != nil:
			return err
		default:
			eff = slotengine.ResolveEffectiveConfig(&cfg)
		}

		if eff.Status == models.SlotStatusClosed {
			return errDayClosed
		}
		if !slotengine.IsBookableSlot(eff.Status, booking.TimeSlot) {
			return errInvalidSlot
		}

		maxPerSlot := slotengine.MaxPerSlot(eff.MaxSlots, len(slotengine.TimeSlotsForStatus(eff.Status)))
		var slotCount int64
		err = tx.Model(&models.Booking{}).
			Where("date = ? AND time_slot = ? AND status <> ?",
				booking.Date, booking.TimeSlot, models.BookingCancelled).
			Count(&slotCount).Error
		if err != nil {
			return err
		}
		if slotCount >= int64(maxPerSlot) {
			return errSlotFull
		}

		return tx.Create(&booking).Error
	}, database.TxOptions(db))

	switch {
	case err == nil:
	case errors.Is(err, errWeeklyLimit):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Weekly booking limit reached. Only one booking per week is allowed!", nil)
	case errors.Is(err, errDayClosed):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Bookings are closed for this date!", nil)
	case errors.Is(err, errInvalidSlot):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Selected time slot is not available on this date!", nil)
	case errors.Is(err, errSlotFull):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Selected time slot is fully booked!", nil)
	default:
		log.Printf("Error creating booking: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create booking!", nil)
	}

	// Best-effort contact-cache refresh, never fails the booking.
	if booking.ArmyNumber != "" {
		upsertProfile(db, booking.ArmyNumber, booking.Name, booking.Phone)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Booking created successfully.", booking)
}

func upsertProfile(db *gorm.DB, armyNumber, name, mobile string) {
	profile := models.UserProfile{
		ArmyNumber: armyNumber,
		Name:       name,
		Mobile:     mobile,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "army_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "mobile", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		log.Printf("Error upserting profile for %s: %v", armyNumber, err)
	}
}

// GetWeeklyStatus reports whether a phone number has already booked in the
// week containing date.
func GetWeeklyStatus(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if phone == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Phone number required!", nil)
	}

	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(slotengine.DateLayout)
	}
	if _, err := time.Parse(slotengine.DateLayout, date); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date format!", nil)
	}

	count, err := CheckWeeklyBookings(database.Database.Db, phone, date)
	if err != nil {
		log.Printf("Error checking weekly bookings for %s: %v", phone, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch weekly status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Weekly status fetched successfully.", fiber.Map{
		"hasBookedThisWeek": count > 0,
		"bookingsThisWeek":  count,
	})
}
