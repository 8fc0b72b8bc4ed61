package adminController

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"

	"slotbook/database"
	"slotbook/middleware"
	"slotbook/models"
	"slotbook/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// applyDateRange narrows a bookings query to an optional [startDate, endDate].
func applyDateRange(query *gorm.DB, startDate, endDate string) *gorm.DB {
	if startDate != "" {
		query = query.Where("date >= ?", startDate)
	}
	if endDate != "" {
		query = query.Where("date <= ?", endDate)
	}
	return query
}

// GetAllBookings lists bookings, newest first, optionally narrowed to a
// date range.
func GetAllBookings(c *fiber.Ctx) error {
	query := applyDateRange(database.Database.Db.Model(&models.Booking{}), c.Query("startDate"), c.Query("endDate"))

	var bookings []models.Booking
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		log.Printf("Error fetching bookings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bookings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bookings fetched successfully.", bookings)
}

// GetStats returns the global booking counters.
func GetStats(c *fiber.Ctx) error {
	var total int64
	if err := database.Database.Db.Model(&models.Booking{}).Count(&total).Error; err != nil {
		log.Printf("Error counting bookings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}

	available := int64(models.DefaultMaxSlots) - total
	if available < 0 {
		available = 0
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully.", fiber.Map{
		"totalBookings":     total,
		"availableBookings": available,
		"maxBookings":       models.DefaultMaxSlots,
	})
}

// UpdateBookingStatus mutates a booking's lifecycle status.
func UpdateBookingStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	admin := middleware.AdminFromContext(c)

	reqData := new(struct {
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if !models.IsValidBookingStatus(reqData.Status) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid status!", nil)
	}

	db := database.Database.Db

	var booking models.Booking
	if err := db.First(&booking, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Booking not found!", nil)
		}
		log.Printf("Error fetching booking %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update booking!", nil)
	}

	oldBooking := booking
	booking.Status = reqData.Status
	if err := db.Save(&booking).Error; err != nil {
		log.Printf("Error updating booking %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update booking!", nil)
	}

	utils.LogAudit(c, admin, models.ActionUpdateBookingStatus, "booking", id, oldBooking, booking)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Booking status updated successfully.", booking)
}

// DeleteBooking hard-deletes one booking, capturing it into the audit log
// beforehand.
func DeleteBooking(c *fiber.Ctx) error {
	id := c.Params("id")
	admin := middleware.AdminFromContext(c)

	db := database.Database.Db

	var booking models.Booking
	if err := db.First(&booking, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Booking not found!", nil)
		}
		log.Printf("Error fetching booking %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete booking!", nil)
	}

	if err := db.Unscoped().Delete(&booking).Error; err != nil {
		log.Printf("Error deleting booking %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete booking!", nil)
	}

	utils.LogAudit(c, admin, models.ActionDeleteBooking, "booking", id, booking, nil)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Booking deleted successfully.", nil)
}

// DeleteMultipleBookings hard-deletes a set of bookings by id, auditing
// each one.
func DeleteMultipleBookings(c *fiber.Ctx) error {
	admin := middleware.AdminFromContext(c)

	reqData := new(struct {
		IDs []uint `json:"ids"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if len(reqData.IDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No booking IDs provided!", nil)
	}

	db := database.Database.Db

	var bookings []models.Booking
	if err := db.Where("id IN ?", reqData.IDs).Find(&bookings).Error; err != nil {
		log.Printf("Error fetching bookings for bulk delete: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete bookings!", nil)
	}

	if err := db.Unscoped().Where("id IN ?", reqData.IDs).Delete(&models.Booking{}).Error; err != nil {
		log.Printf("Error bulk deleting bookings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete bookings!", nil)
	}

	for _, booking := range bookings {
		utils.LogAudit(c, admin, models.ActionDeleteBookingBulk, "booking",
			strconv.FormatUint(uint64(booking.ID), 10), booking, nil)
	}

	message := fmt.Sprintf("%d booking(s) deleted successfully.", len(bookings))
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, nil)
}

// ExportBookings streams the (optionally range-filtered) bookings table as
// a CSV attachment.
func ExportBookings(c *fiber.Ctx) error {
	query := applyDateRange(database.Database.Db.Model(&models.Booking{}), c.Query("startDate"), c.Query("endDate"))

	var bookings []models.Booking
	if err := query.Order("date, time_slot").Find(&bookings).Error; err != nil {
		log.Printf("Error fetching bookings for export: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export bookings!", nil)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"ID", "Name", "Army Number", "Phone", "Date", "Time Slot", "Purpose", "Location", "Status", "Created At"})
	for _, b := range bookings {
		_ = w.Write([]string{
			strconv.FormatUint(uint64(b.ID), 10),
			b.Name,
			b.ArmyNumber,
			b.Phone,
			b.Date,
			b.TimeSlot,
			b.Purpose,
			b.Location,
			b.Status,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("Error writing bookings CSV: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export bookings!", nil)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=bookings.csv`)
	return c.Send(buf.Bytes())
}

// GetAnalytics aggregates bookings by status, purpose, location, time slot
// and day.
func GetAnalytics(c *fiber.Ctx) error {
	query := applyDateRange(database.Database.Db.Model(&models.Booking{}), c.Query("startDate"), c.Query("endDate"))

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		log.Printf("Error fetching bookings for analytics: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch analytics!", nil)
	}

	byStatus := map[string]int{
		models.BookingConfirmed: 0,
		models.BookingCancelled: 0,
		models.BookingCompleted: 0,
		models.BookingNoShow:    0,
	}
	byPurpose := map[string]int{}
	byLocation := map[string]int{}
	byTimeSlot := map[string]int{}
	dailyTrend := map[string]int{}

	for _, b := range bookings {
		status := b.Status
		if status == "" {
			status = models.BookingConfirmed
		}
		byStatus[status]++
		byPurpose[b.Purpose]++
		byLocation[b.Location]++
		byTimeSlot[b.TimeSlot]++
		dailyTrend[b.Date]++
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched successfully.", fiber.Map{
		"totalBookings": len(bookings),
		"byStatus":      byStatus,
		"byPurpose":     byPurpose,
		"byLocation":    byLocation,
		"byTimeSlot":    byTimeSlot,
		"dailyTrend":    dailyTrend,
	})
}
