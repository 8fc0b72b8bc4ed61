package utils

import (
	"fmt"
	"log"
	"time"

	"slotbook/config"
	"slotbook/database"
	"slotbook/models"
	"slotbook/slotengine"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[RULE-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// MaterializeRule expands one recurring rule into concrete slot
// configuration rows over [from, to]. Rows are inserted with ON CONFLICT DO
// NOTHING on the date key, so an explicit day-level configuration always
// wins over a rule-derived one. Returns the number of rows written.
func MaterializeRule(db *gorm.DB, rule models.RecurringSlotRule, from, to string) (int, error) {
	dates, err := slotengine.RuleDates(rule, from, to)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, date := range dates {
		cfg := models.SlotConfiguration{
			Date:      date,
			Status:    rule.Status,
			MaxSlots:  rule.MaxSlots,
			Reason:    rule.Reason,
			CreatedBy: rule.CreatedBy,
		}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoNothing: true,
		}).Create(&cfg)
		if res.Error != nil {
			return written, res.Error
		}
		written += int(res.RowsAffected)
	}
	return written, nil
}

// MaterializeActiveRules expands every active rule over a rolling horizon
// starting today. Called daily by the scheduler and once at startup.
func MaterializeActiveRules(db *gorm.DB, horizonDays int) {
	from := time.Now().Format(slotengine.DateLayout)
	to := time.Now().AddDate(0, 0, horizonDays).Format(slotengine.DateLayout)

	var rules []models.RecurringSlotRule
	if err := db.Where("is_active = ?", true).Find(&rules).Error; err != nil {
		logScheduler("Error fetching active rules: " + err.Error())
		return
	}

	total := 0
	for _, rule := range rules {
		n, err := MaterializeRule(db, rule, from, to)
		if err != nil {
			logScheduler("Error materializing rule: " + err.Error())
			continue
		}
		total += n
	}
	if total > 0 {
		logScheduler(fmt.Sprintf("Materialized %d configuration row(s) from %d active rule(s)", total, len(rules)))
	}
}

// StartRuleScheduler runs rule materialization once immediately and then on
// the configured cron schedule (daily at 00:05 by default).
func StartRuleScheduler() *cron.Cron {
	horizon := config.AppConfig.RuleHorizonDays

	MaterializeActiveRules(database.Database.Db, horizon)

	c := cron.New()
	_, err := c.AddFunc(config.AppConfig.RuleCronSchedule, func() {
		MaterializeActiveRules(database.Database.Db, horizon)
	})
	if err != nil {
		logScheduler("Failed to schedule rule materialization: " + err.Error())
		return c
	}
	c.Start()
	logScheduler("Rule materialization scheduled: " + config.AppConfig.RuleCronSchedule)
	return c
}
