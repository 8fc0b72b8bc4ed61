package slotengine

import (
	"testing"

	"slotbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandDateRangeInclusive(t *testing.T) {
	dates, err := ExpandDateRange("2025-03-01", "2025-03-14")
	require.NoError(t, err)
	require.Len(t, dates, 14)
	assert.Equal(t, "2025-03-01", dates[0])
	assert.Equal(t, "2025-03-14", dates[13])
}

func TestExpandDateRangeSingleDay(t *testing.T) {
	dates, err := ExpandDateRange("2025-03-01", "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-01"}, dates)
}

func TestExpandDateRangeRejectsReversedRange(t *testing.T) {
	_, err := ExpandDateRange("2025-03-14", "2025-03-01")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExpandDateRangeRejectsOversizedRange(t *testing.T) {
	// 366 days: rejected before any expansion.
	_, err := ExpandDateRange("2025-01-01", "2026-01-01")
	assert.ErrorIs(t, err, ErrRangeTooLarge)

	// Exactly 365 days is the permitted maximum.
	dates, err := ExpandDateRange("2025-01-01", "2025-12-31")
	require.NoError(t, err)
	assert.Len(t, dates, 365)
}

func TestRuleDatesWeekly(t *testing.T) {
	rule := models.RecurringSlotRule{
		RuleType:  models.RuleTypeWeekly,
		DayOfWeek: 1, // Monday
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		IsActive:  true,
	}

	dates, err := RuleDates(rule, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-03", "2025-03-10", "2025-03-17", "2025-03-24", "2025-03-31"}, dates)
}

func TestRuleDatesMonthly(t *testing.T) {
	rule := models.RecurringSlotRule{
		RuleType:   models.RuleTypeMonthly,
		DayOfMonth: 15,
		StartDate:  "2025-01-01",
		EndDate:    "2025-06-30",
		IsActive:   true,
	}

	dates, err := RuleDates(rule, "2025-02-01", "2025-04-30")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-02-15", "2025-03-15", "2025-04-15"}, dates)
}

func TestRuleDatesClampedToRuleWindow(t *testing.T) {
	rule := models.RecurringSlotRule{
		RuleType:  models.RuleTypeWeekly,
		DayOfWeek: 0, // Sunday
		StartDate: "2025-03-10",
		EndDate:   "2025-03-20",
		IsActive:  true,
	}

	dates, err := RuleDates(rule, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-16"}, dates)
}

func TestRuleDatesInactiveRuleYieldsNothing(t *testing.T) {
	rule := models.RecurringSlotRule{
		RuleType:  models.RuleTypeWeekly,
		DayOfWeek: 1,
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		IsActive:  false,
	}

	dates, err := RuleDates(rule, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Nil(t, dates)
}
