package slotManagementController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"slotbook/config"
	"slotbook/database"
	"slotbook/models"
	"slotbook/slotengine"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.SlotConfiguration{},
		&models.Booking{},
		&models.RecurringSlotRule{},
		&models.AuditLog{},
	))

	config.AppConfig = &config.Config{RuleHorizonDays: 30}
	database.Database = database.DbInstance{Db: db}
	return db
}

func setupApp() *fiber.App {
	app := fiber.New()

	app.Post("/configuration", func(c *fiber.Ctx) error {
		reqData := new(SlotConfigRequest)
		if err := c.BodyParser(reqData); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		c.Locals("validatedSlotConfig", reqData)
		return CreateSlotConfiguration(c)
	})
	app.Post("/bulk-configuration", func(c *fiber.Ctx) error {
		reqData := new(BulkConfigRequest)
		if err := c.BodyParser(reqData); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		c.Locals("validatedBulkConfig", reqData)
		return BulkConfigure(c)
	})
	app.Post("/recurring-rule", func(c *fiber.Ctx) error {
		reqData := new(RecurringRuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		c.Locals("validatedRecurringRule", reqData)
		return CreateRecurringRule(c)
	})
	app.Put("/recurring-rule/:id", func(c *fiber.Ctx) error {
		reqData := new(RuleUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		c.Locals("validatedRuleUpdate", reqData)
		return UpdateRecurringRule(c)
	})
	app.Get("/availability", GetSlotAvailability)

	return app
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestCreateSlotConfigurationDerivesCapacity(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp()

	code, _ := doJSON(t, app, "POST", "/configuration", SlotConfigRequest{
		Date: "2025-03-12", Status: models.SlotStatusHalfDayPre, MaxSlots: 1200, Reason: "Morning only",
	})
	require.Equal(t, fiber.StatusCreated, code)

	var cfg models.SlotConfiguration
	require.NoError(t, db.Where("date = ?", "2025-03-12").First(&cfg).Error)
	assert.Equal(t, 600, cfg.MaxSlots)

	code, _ = doJSON(t, app, "POST", "/configuration", SlotConfigRequest{
		Date: "2025-03-13", Status: models.SlotStatusClosed, MaxSlots: 1200, Reason: "Holiday",
	})
	require.Equal(t, fiber.StatusCreated, code)

	cfg = models.SlotConfiguration{}
	require.NoError(t, db.Where("date = ?", "2025-03-13").First(&cfg).Error)
	assert.Equal(t, 0, cfg.MaxSlots)
}

func TestCreateSlotConfigurationUpsertsOneRowPerDate(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp()

	code, _ := doJSON(t, app, "POST", "/configuration", SlotConfigRequest{
		Date: "2025-03-12", Status: models.SlotStatusOpen, MaxSlots: 1200,
	})
	require.Equal(t, fiber.StatusCreated, code)

	code, _ = doJSON(t, app, "POST", "/configuration", SlotConfigRequest{
		Date: "2025-03-12", Status: models.SlotStatusClosed, MaxSlots: 1200, Reason: "Holiday",
	})
	require.Equal(t, fiber.StatusCreated, code)

	var count int64
	require.NoError(t, db.Model(&models.SlotConfiguration{}).Where("date = ?", "2025-03-12").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The second write wins.
	var cfg models.SlotConfiguration
	require.NoError(t, db.Where("date = ?", "2025-03-12").First(&cfg).Error)
	assert.Equal(t, models.SlotStatusClosed, cfg.Status)
	assert.Equal(t, 0, cfg.MaxSlots)
}

func TestCreateSlotConfigurationResponseCarriesSurvivingRow(t *testing.T) {
	setupTestDB(t)
	app := setupApp()

	code, env := doJSON(t, app, "POST", "/configuration", SlotConfigRequest{
		Date: "2025-03-12", Status: models.SlotStatusOpen, MaxSlots: 1200,
	})
	require.Equal(t, fiber.StatusCreated, code)

	var first models.SlotConfiguration
	require.NoError(t, json.Unmarshal(env.Data, &first))
	require.NotZero(t, first.ID)

	// The conflict-update path returns the same row, not a phantom insert.
	code, env = doJSON(t, app, "POST", "/configuration", SlotConfigRequest{
		Date: "2025-03-12", Status: models.SlotStatusClosed, MaxSlots: 1200, Reason: "Holiday",
	})
	require.Equal(t, fiber.StatusCreated, code)

	var second models.SlotConfiguration
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.SlotStatusClosed, second.Status)
	assert.Equal(t, 0, second.MaxSlots)
}

func TestUpdateRecurringRuleStatusOnlyKeepsStoredCapacity(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp()

	rule := models.RecurringSlotRule{
		RuleType:  models.RuleTypeWeekly,
		DayOfWeek: 1,
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		Status:    models.SlotStatusHalfDayPre,
		MaxSlots:  600, // derived once from an input of 1200
		Reason:    "Morning only",
		IsActive:  true,
	}
	require.NoError(t, db.Create(&rule).Error)

	// A status-only update must not feed the stored (already-derived)
	// capacity back through derivation.
	status := models.SlotStatusHalfDayPre
	code, _ := doJSON(t, app, "PUT", fmt.Sprintf("/recurring-rule/%d", rule.ID), RuleUpdateRequest{
		Status: &status,
	})
	require.Equal(t, fiber.StatusOK, code)

	var stored models.RecurringSlotRule
	require.NoError(t, db.First(&stored, rule.ID).Error)
	assert.Equal(t, 600, stored.MaxSlots)

	// Capacity changes only when a new input value is supplied.
	newMax := 1000
	code, _ = doJSON(t, app, "PUT", fmt.Sprintf("/recurring-rule/%d", rule.ID), RuleUpdateRequest{
		MaxSlots: &newMax,
	})
	require.Equal(t, fiber.StatusOK, code)

	require.NoError(t, db.First(&stored, rule.ID).Error)
	assert.Equal(t, 500, stored.MaxSlots)
}

func TestBulkConfigureRange(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp()

	code, env := doJSON(t, app, "POST", "/bulk-configuration", BulkConfigRequest{
		StartDate: "2025-03-03", EndDate: "2025-03-16",
		Status: models.SlotStatusHalfDayPre, MaxSlots: 1200, Reason: "Exercise period",
	})
	require.Equal(t, fiber.StatusCreated, code)

	var report struct {
		Configured []string `json:"configured"`
		Failed     []string `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Len(t, report.Configured, 14)
	assert.Empty(t, report.Failed)

	var count int64
	require.NoError(t, db.Model(&models.SlotConfiguration{}).Count(&count).Error)
	assert.Equal(t, int64(14), count)

	var cfg models.SlotConfiguration
	require.NoError(t, db.Where("date = ?", "2025-03-09").First(&cfg).Error)
	assert.Equal(t, 600, cfg.MaxSlots)
}

func TestBulkConfigureRejectsOversizedRange(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp()

	// 366 days inclusive; nothing may be written.
	code, _ := doJSON(t, app, "POST", "/bulk-configuration", BulkConfigRequest{
		StartDate: "2025-01-01", EndDate: "2026-01-01",
		Status: models.SlotStatusOpen, MaxSlots: 1200,
	})
	assert.Equal(t, fiber.StatusBadRequest, code)

	var count int64
	require.NoError(t, db.Model(&models.SlotConfiguration{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestBulkConfigureRejectsReversedRange(t *testing.T) {
	setupTestDB(t)
	app := setupApp()

	code, _ := doJSON(t, app, "POST", "/bulk-configuration", BulkConfigRequest{
		StartDate: "2025-03-16", EndDate: "2025-03-03",
		Status: models.SlotStatusOpen, MaxSlots: 1200,
	})
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestCreateRecurringRuleMaterializesAhead(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp()

	today := time.Now()
	targetWeekday := int(today.AddDate(0, 0, 1).Weekday())

	code, _ := doJSON(t, app, "POST", "/recurring-rule", RecurringRuleRequest{
		RuleType:  models.RuleTypeWeekly,
		DayOfWeek: targetWeekday,
		StartDate: today.Format(slotengine.DateLayout),
		EndDate:   today.AddDate(0, 0, 60).Format(slotengine.DateLayout),
		Status:    models.SlotStatusClosed,
		MaxSlots:  1200,
		Reason:    "Weekly maintenance",
	})
	require.Equal(t, fiber.StatusCreated, code)

	// The 30-day horizon holds four or five occurrences of any weekday.
	var count int64
	require.NoError(t, db.Model(&models.SlotConfiguration{}).
		Where("status = ?", models.SlotStatusClosed).Count(&count).Error)
	assert.GreaterOrEqual(t, count, int64(4))

	var cfg models.SlotConfiguration
	require.NoError(t, db.Where("date = ?", today.AddDate(0, 0, 1).Format(slotengine.DateLayout)).First(&cfg).Error)
	assert.Equal(t, 0, cfg.MaxSlots)
	assert.Equal(t, "Weekly maintenance", cfg.Reason)
}

func TestCreateRecurringRuleDoesNotOverwriteExplicitConfig(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp()

	tomorrow := time.Now().AddDate(0, 0, 1)
	require.NoError(t, db.Create(&models.SlotConfiguration{
		Date:     tomorrow.Format(slotengine.DateLayout),
		Status:   models.SlotStatusOpen,
		MaxSlots: 500,
		Reason:   "Explicit override",
	}).Error)

	code, _ := doJSON(t, app, "POST", "/recurring-rule", RecurringRuleRequest{
		RuleType:  models.RuleTypeWeekly,
		DayOfWeek: int(tomorrow.Weekday()),
		StartDate: time.Now().Format(slotengine.DateLayout),
		EndDate:   time.Now().AddDate(0, 0, 60).Format(slotengine.DateLayout),
		Status:    models.SlotStatusClosed,
		MaxSlots:  1200,
	})
	require.Equal(t, fiber.StatusCreated, code)

	var cfg models.SlotConfiguration
	require.NoError(t, db.Where("date = ?", tomorrow.Format(slotengine.DateLayout)).First(&cfg).Error)
	assert.Equal(t, models.SlotStatusOpen, cfg.Status)
	assert.Equal(t, 500, cfg.MaxSlots)
}

func TestGetSlotAvailabilityDefaultsAndBookedCounts(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp()

	require.NoError(t, db.Create(&models.SlotConfiguration{
		Date: "2025-03-12", Status: models.SlotStatusHalfDayPre, MaxSlots: 600,
	}).Error)
	require.NoError(t, db.Create(&models.Booking{
		Phone: "919876543210", Name: "Ram Singh", Date: "2025-03-12",
		TimeSlot: "09:00", Purpose: "x", Location: "y",
		Status: models.BookingConfirmed,
	}).Error)
	require.NoError(t, db.Create(&models.Booking{
		Phone: "918888777666", Name: "Shyam Singh", Date: "2025-03-12",
		TimeSlot: "09:30", Purpose: "x", Location: "y",
		Status: models.BookingCancelled,
	}).Error)

	code, env := doJSON(t, app, "GET", "/availability?startDate=2025-03-11&endDate=2025-03-12", nil)
	require.Equal(t, fiber.StatusOK, code)

	var days []struct {
		Date           string `json:"date"`
		Status         string `json:"status"`
		MaxSlots       int    `json:"maxSlots"`
		BookedSlots    int    `json:"bookedSlots"`
		AvailableSlots int    `json:"availableSlots"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &days))
	require.Len(t, days, 2)

	// Unconfigured day falls back to the defaults.
	assert.Equal(t, "2025-03-11", days[0].Date)
	assert.Equal(t, models.SlotStatusOpen, days[0].Status)
	assert.Equal(t, models.DefaultMaxSlots, days[0].MaxSlots)
	assert.Equal(t, 0, days[0].BookedSlots)

	// Cancelled bookings do not consume capacity.
	assert.Equal(t, "2025-03-12", days[1].Date)
	assert.Equal(t, 600, days[1].MaxSlots)
	assert.Equal(t, 1, days[1].BookedSlots)
	assert.Equal(t, 599, days[1].AvailableSlots)
}
