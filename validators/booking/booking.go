package bookingValidator

import (
	"regexp"
	"strings"
	"time"

	bookingController "slotbook/controllers/booking"
	"slotbook/middleware"
	"slotbook/slotengine"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Permissive international format: optional +, no leading zero, up to 16 digits.
var phonePattern = regexp.MustCompile(`^[\+]?[1-9][\d]{0,15}$`)

var timeSlotPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// Create validates a booking-creation request.
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(bookingController.BookingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}
		if !phonePattern.MatchString(reqData.Phone) {
			errors["phone"] = "Invalid phone number!"
		}
		if err := validate.Var(reqData.Purpose, "required"); err != nil {
			errors["purpose"] = "Purpose is required!"
		}
		if err := validate.Var(reqData.Location, "required"); err != nil {
			errors["location"] = "Location is required!"
		}
		if _, err := time.Parse(slotengine.DateLayout, reqData.Date); err != nil {
			errors["date"] = "Invalid date format!"
		}
		if !timeSlotPattern.MatchString(reqData.TimeSlot) {
			errors["timeSlot"] = "Invalid time slot format!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBooking", reqData)
		return c.Next()
	}
}
