package slotManagementValidator

import (
	"time"

	slotManagementController "slotbook/controllers/slotManagement"
	"slotbook/middleware"
	"slotbook/models"
	"slotbook/slotengine"

	"github.com/gofiber/fiber/v2"
)

func validateStatusAndDate(errors map[string]string, status, date, dateField string) {
	if !models.IsValidSlotStatus(status) {
		errors["status"] = "Invalid status!"
	}
	if _, err := time.Parse(slotengine.DateLayout, date); err != nil {
		errors[dateField] = "Invalid date format!"
	}
}

// SlotConfig validates single-date configuration create/update requests.
func SlotConfig() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(slotManagementController.SlotConfigRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		validateStatusAndDate(errors, reqData.Status, reqData.Date, "date")
		if reqData.MaxSlots < 0 {
			errors["maxSlots"] = "Max slots must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSlotConfig", reqData)
		return c.Next()
	}
}

// BulkConfig validates date-range configuration requests. The range size
// guard lives in the controller, before any write.
func BulkConfig() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(slotManagementController.BulkConfigRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if !models.IsValidSlotStatus(reqData.Status) {
			errors["status"] = "Invalid status!"
		}
		if _, err := time.Parse(slotengine.DateLayout, reqData.StartDate); err != nil {
			errors["startDate"] = "Invalid date format!"
		}
		if _, err := time.Parse(slotengine.DateLayout, reqData.EndDate); err != nil {
			errors["endDate"] = "Invalid date format!"
		}
		if reqData.MaxSlots < 0 {
			errors["maxSlots"] = "Max slots must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBulkConfig", reqData)
		return c.Next()
	}
}

// RecurringRule validates rule-creation requests.
func RecurringRule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(slotManagementController.RecurringRuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if !models.IsValidSlotStatus(reqData.Status) {
			errors["status"] = "Invalid status!"
		}
		if _, err := time.Parse(slotengine.DateLayout, reqData.StartDate); err != nil {
			errors["startDate"] = "Invalid date format!"
		}
		if _, err := time.Parse(slotengine.DateLayout, reqData.EndDate); err != nil {
			errors["endDate"] = "Invalid date format!"
		}
		if reqData.MaxSlots < 0 {
			errors["maxSlots"] = "Max slots must not be negative!"
		}

		switch reqData.RuleType {
		case models.RuleTypeWeekly:
			if reqData.DayOfWeek < 0 || reqData.DayOfWeek > 6 {
				errors["dayOfWeek"] = "Day of week must be between 0 (Sunday) and 6!"
			}
		case models.RuleTypeMonthly:
			if reqData.DayOfMonth < 1 || reqData.DayOfMonth > 31 {
				errors["dayOfMonth"] = "Day of month must be between 1 and 31!"
			}
		default:
			errors["ruleType"] = "Rule type must be weekly or monthly!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRecurringRule", reqData)
		return c.Next()
	}
}

// RuleUpdate validates partial rule updates.
func RuleUpdate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(slotManagementController.RuleUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.Status != nil && !models.IsValidSlotStatus(*reqData.Status) {
			errors["status"] = "Invalid status!"
		}
		if reqData.MaxSlots != nil && *reqData.MaxSlots < 0 {
			errors["maxSlots"] = "Max slots must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRuleUpdate", reqData)
		return c.Next()
	}
}
