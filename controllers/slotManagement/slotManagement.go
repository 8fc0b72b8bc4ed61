package slotManagementController

import (
	"log"
	"strconv"
	"time"

	"slotbook/config"
	"slotbook/database"
	"slotbook/middleware"
	"slotbook/models"
	"slotbook/slotengine"
	"slotbook/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SlotConfigRequest is the validated payload for single-date configuration.
type SlotConfigRequest struct {
	Date     string `json:"date"`
	Status   string `json:"status"`
	MaxSlots int    `json:"maxSlots"`
	Reason   string `json:"reason"`
}

// BulkConfigRequest is the validated payload for date-range configuration.
type BulkConfigRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
	MaxSlots  int    `json:"maxSlots"`
	Reason    string `json:"reason"`
}

// RecurringRuleRequest is the validated payload for rule creation.
type RecurringRuleRequest struct {
	RuleType   string `json:"ruleType"`
	DayOfWeek  int    `json:"dayOfWeek"`
	DayOfMonth int    `json:"dayOfMonth"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Status     string `json:"status"`
	MaxSlots   int    `json:"maxSlots"`
	Reason     string `json:"reason"`
}

// RuleUpdateRequest is the validated partial-update payload for a rule.
type RuleUpdateRequest struct {
	IsActive *bool   `json:"isActive"`
	Status   *string `json:"status"`
	MaxSlots *int    `json:"maxSlots"`
	Reason   *string `json:"reason"`
}

// GetSlotConfigurations lists configurations ordered by date, optionally
// narrowed to a range.
func GetSlotConfigurations(c *fiber.Ctx) error {
	query := database.Database.Db.Model(&models.SlotConfiguration{})
	if startDate := c.Query("startDate"); startDate != "" {
		query = query.Where("date >= ?", startDate)
	}
	if endDate := c.Query("endDate"); endDate != "" {
		query = query.Where("date <= ?", endDate)
	}

	var configs []models.SlotConfiguration
	if err := query.Order("date ASC").Find(&configs).Error; err != nil {
		log.Printf("Error fetching slot configurations: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch configurations!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Configurations fetched successfully.", configs)
}

// upsertConfiguration writes one per-date configuration row. The date
// carries a unique index and the write goes through ON CONFLICT, so
// concurrent upserts for the same date cannot produce duplicate rows.
func upsertConfiguration(db *gorm.DB, date, status string, maxSlots int, reason string, adminID uint) (models.SlotConfiguration, error) {
	cfg := models.SlotConfiguration{
		Date:      date,
		Status:    status,
		MaxSlots:  slotengine.DeriveMaxSlots(status, maxSlots),
		Reason:    reason,
		CreatedBy: adminID,
	}
	// RETURNING carries the surviving row (id and timestamps included) back
	// in the same statement, so the update path needs no reload.
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "max_slots", "reason", "updated_at"}),
	}, clause.Returning{}).Create(&cfg).Error
	return cfg, err
}

// CreateSlotConfiguration upserts the configuration for one date.
func CreateSlotConfiguration(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSlotConfig").(*SlotConfigRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	admin := middleware.AdminFromContext(c)

	cfg, err := upsertConfiguration(database.Database.Db, reqData.Date, reqData.Status, reqData.MaxSlots, reqData.Reason, admin.ID)
	if err != nil {
		log.Printf("Error upserting slot configuration for %s: %v", reqData.Date, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save configuration!", nil)
	}

	utils.LogAudit(c, admin, models.ActionCreateSlotConfig, "slot_configuration",
		strconv.FormatUint(uint64(cfg.ID), 10), nil, cfg)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Configuration saved successfully.", cfg)
}

// UpdateSlotConfiguration rewrites an existing configuration row by id.
func UpdateSlotConfiguration(c *fiber.Ctx) error {
	id := c.Params("id")
	admin := middleware.AdminFromContext(c)

	reqData, ok := c.Locals("validatedSlotConfig").(*SlotConfigRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var cfg models.SlotConfiguration
	if err := db.First(&cfg, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Configuration not found!", nil)
		}
		log.Printf("Error fetching slot configuration %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update configuration!", nil)
	}

	oldCfg := cfg
	cfg.Status = reqData.Status
	cfg.MaxSlots = slotengine.DeriveMaxSlots(reqData.Status, reqData.MaxSlots)
	cfg.Reason = reqData.Reason
	if err := db.Save(&cfg).Error; err != nil {
		log.Printf("Error updating slot configuration %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update configuration!", nil)
	}

	utils.LogAudit(c, admin, models.ActionUpdateSlotConfig, "slot_configuration", id, oldCfg, cfg)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Configuration updated successfully.", cfg)
}

// DeleteSlotConfiguration removes a configuration row; the date falls back
// to the defaults afterwards.
func DeleteSlotConfiguration(c *fiber.Ctx) error {
	id := c.Params("id")
	admin := middleware.AdminFromContext(c)

	db := database.Database.Db

	var cfg models.SlotConfiguration
	if err := db.First(&cfg, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Configuration not found!", nil)
		}
		log.Printf("Error fetching slot configuration %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete configuration!", nil)
	}

	if err := db.Unscoped().Delete(&cfg).Error; err != nil {
		log.Printf("Error deleting slot configuration %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete configuration!", nil)
	}

	utils.LogAudit(c, admin, models.ActionDeleteSlotConfig, "slot_configuration", id, cfg, nil)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Configuration deleted successfully.", nil)
}

// BulkConfigure expands a date range into per-date upserts. The 365-day
// guard runs before any write. Dates are configured independently; the
// response reports which dates succeeded and which failed instead of
// pretending the batch is atomic.
func BulkConfigure(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBulkConfig").(*BulkConfigRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	admin := middleware.AdminFromContext(c)

	dates, err := slotengine.ExpandDateRange(reqData.StartDate, reqData.EndDate)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	db := database.Database.Db

	configured := []string{}
	failed := []string{}
	for _, date := range dates {
		if _, err := upsertConfiguration(db, date, reqData.Status, reqData.MaxSlots, reqData.Reason, admin.ID); err != nil {
			log.Printf("Error configuring %s in bulk: %v", date, err)
			failed = append(failed, date)
			continue
		}
		configured = append(configured, date)
	}

	utils.LogAudit(c, admin, models.ActionBulkSlotConfig, "slot_configuration",
		reqData.StartDate+".."+reqData.EndDate, nil, fiber.Map{
			"status":     reqData.Status,
			"maxSlots":   slotengine.DeriveMaxSlots(reqData.Status, reqData.MaxSlots),
			"configured": len(configured),
			"failed":     len(failed),
		})

	status := fiber.StatusCreated
	message := "Bulk configuration applied successfully."
	if len(failed) > 0 {
		status = fiber.StatusMultiStatus
		message = "Bulk configuration partially applied."
	}

	return middleware.JsonResponse(c, status, len(failed) == 0, message, fiber.Map{
		"configured": configured,
		"failed":     failed,
	})
}

// GetRecurringRules lists rules, newest first.
func GetRecurringRules(c *fiber.Ctx) error {
	var rules []models.RecurringSlotRule
	if err := database.Database.Db.Order("created_at DESC").Find(&rules).Error; err != nil {
		log.Printf("Error fetching recurring rules: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch recurring rules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recurring rules fetched successfully.", rules)
}

// CreateRecurringRule stores a rule template and eagerly materializes it
// over the configured horizon.
func CreateRecurringRule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRecurringRule").(*RecurringRuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	admin := middleware.AdminFromContext(c)

	db := database.Database.Db

	rule := models.RecurringSlotRule{
		RuleType:   reqData.RuleType,
		DayOfWeek:  reqData.DayOfWeek,
		DayOfMonth: reqData.DayOfMonth,
		StartDate:  reqData.StartDate,
		EndDate:    reqData.EndDate,
		Status:     reqData.Status,
		MaxSlots:   slotengine.DeriveMaxSlots(reqData.Status, reqData.MaxSlots),
		Reason:     reqData.Reason,
		IsActive:   true,
		CreatedBy:  admin.ID,
	}
	if err := db.Create(&rule).Error; err != nil {
		log.Printf("Error creating recurring rule: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create recurring rule!", nil)
	}

	materializeRuleNow(db, rule)

	utils.LogAudit(c, admin, models.ActionCreateRecurringRule, "recurring_rule",
		strconv.FormatUint(uint64(rule.ID), 10), nil, rule)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Recurring rule created successfully.", rule)
}

// UpdateRecurringRule applies a partial update; capacity is re-derived only
// when a new max-slots value is supplied, and reactivated rules are
// materialized again.
func UpdateRecurringRule(c *fiber.Ctx) error {
	id := c.Params("id")
	admin := middleware.AdminFromContext(c)

	reqData, ok := c.Locals("validatedRuleUpdate").(*RuleUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var rule models.RecurringSlotRule
	if err := db.First(&rule, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Recurring rule not found!", nil)
		}
		log.Printf("Error fetching recurring rule %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update recurring rule!", nil)
	}

	oldRule := rule
	if reqData.Status != nil {
		rule.Status = *reqData.Status
	}
	// The stored capacity is already derived; re-deriving it from itself
	// would halve a half-day rule on every status-only update. Capacity only
	// changes when the caller supplies a new input value.
	if reqData.MaxSlots != nil {
		rule.MaxSlots = slotengine.DeriveMaxSlots(rule.Status, *reqData.MaxSlots)
	}
	if reqData.Reason != nil {
		rule.Reason = *reqData.Reason
	}
	wasActive := rule.IsActive
	if reqData.IsActive != nil {
		rule.IsActive = *reqData.IsActive
	}

	if err := db.Save(&rule).Error; err != nil {
		log.Printf("Error updating recurring rule %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update recurring rule!", nil)
	}

	if rule.IsActive && !wasActive {
		materializeRuleNow(db, rule)
	}

	utils.LogAudit(c, admin, models.ActionUpdateRecurringRule, "recurring_rule", id, oldRule, rule)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recurring rule updated successfully.", rule)
}

// DeleteRecurringRule removes a rule template. Already-materialized
// configuration rows stay in place; deleting a rule is not a retraction of
// the days it configured.
func DeleteRecurringRule(c *fiber.Ctx) error {
	id := c.Params("id")
	admin := middleware.AdminFromContext(c)

	db := database.Database.Db

	var rule models.RecurringSlotRule
	if err := db.First(&rule, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Recurring rule not found!", nil)
		}
		log.Printf("Error fetching recurring rule %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete recurring rule!", nil)
	}

	if err := db.Unscoped().Delete(&rule).Error; err != nil {
		log.Printf("Error deleting recurring rule %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete recurring rule!", nil)
	}

	utils.LogAudit(c, admin, models.ActionDeleteRecurringRule, "recurring_rule", id, rule, nil)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recurring rule deleted successfully.", nil)
}

func materializeRuleNow(db *gorm.DB, rule models.RecurringSlotRule) {
	from := time.Now().Format(slotengine.DateLayout)
	to := time.Now().AddDate(0, 0, config.AppConfig.RuleHorizonDays).Format(slotengine.DateLayout)
	if _, err := utils.MaterializeRule(db, rule, from, to); err != nil {
		log.Printf("Error materializing recurring rule %d: %v", rule.ID, err)
	}
}

// GetSlotAvailability returns the per-day rollup for a range, applying the
// same configuration precedence as the public availability endpoint.
func GetSlotAvailability(c *fiber.Ctx) error {
	start := c.Query("startDate")
	if start == "" {
		start = time.Now().Format(slotengine.DateLayout)
	}
	end := c.Query("endDate")
	if end == "" {
		end = time.Now().AddDate(0, 0, 30).Format(slotengine.DateLayout)
	}

	dates, err := slotengine.ExpandDateRange(start, end)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	db := database.Database.Db

	var configs []models.SlotConfiguration
	if err := db.Where("date >= ? AND date <= ?", start, end).Find(&configs).Error; err != nil {
		log.Printf("Error fetching slot configurations: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch availability!", nil)
	}
	configByDate := make(map[string]models.SlotConfiguration, len(configs))
	for _, cfg := range configs {
		configByDate[cfg.Date] = cfg
	}

	var bookings []models.Booking
	err = db.Select("date").
		Where("date >= ? AND date <= ? AND status <> ?", start, end, models.BookingCancelled).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch availability!", nil)
	}
	bookedByDate := make(map[string]int)
	for _, b := range bookings {
		bookedByDate[b.Date]++
	}

	availability := make([]fiber.Map, 0, len(dates))
	for _, date := range dates {
		var eff slotengine.EffectiveConfig
		if cfg, found := configByDate[date]; found {
			eff = slotengine.ResolveEffectiveConfig(&cfg)
		} else {
			eff = slotengine.ResolveEffectiveConfig(nil)
		}

		booked := bookedByDate[date]
		available := eff.MaxSlots - booked
		if available < 0 {
			available = 0
		}

		var reason *string
		if eff.Reason != "" {
			r := eff.Reason
			reason = &r
		}

		availability = append(availability, fiber.Map{
			"date":           date,
			"status":         eff.Status,
			"maxSlots":       eff.MaxSlots,
			"bookedSlots":    booked,
			"availableSlots": available,
			"reason":         reason,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Availability fetched successfully.", availability)
}
