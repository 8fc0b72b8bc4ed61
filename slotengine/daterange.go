package slotengine

import (
	"errors"
	"time"

	"slotbook/models"
)

// MaxRangeDays bounds bulk range expansion; anything longer is rejected
// before a single row is written.
const MaxRangeDays = 365

var (
	ErrInvalidRange  = errors.New("end date must not be before start date")
	ErrRangeTooLarge = errors.New("date range exceeds 365 days")
)

// ExpandDateRange expands [start, end] inclusive into one date per day.
func ExpandDateRange(start, end string) ([]string, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, err
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, err
	}
	if e.Before(s) {
		return nil, ErrInvalidRange
	}
	days := int(e.Sub(s).Hours()/24) + 1
	if days > MaxRangeDays {
		return nil, ErrRangeTooLarge
	}

	dates := make([]string, 0, days)
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// RuleDates returns the dates inside [from, to] that a recurring rule
// triggers on, clamped to the rule's own start/end window. Inactive rules
// yield nothing.
func RuleDates(rule models.RecurringSlotRule, from, to string) ([]string, error) {
	if !rule.IsActive {
		return nil, nil
	}
	start := from
	if rule.StartDate > start {
		start = rule.StartDate
	}
	end := to
	if rule.EndDate != "" && rule.EndDate < end {
		end = rule.EndDate
	}
	if end < start {
		return nil, nil
	}

	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, err
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, err
	}

	var dates []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		switch rule.RuleType {
		case models.RuleTypeWeekly:
			if int(d.Weekday()) == rule.DayOfWeek {
				dates = append(dates, d.Format(DateLayout))
			}
		case models.RuleTypeMonthly:
			if d.Day() == rule.DayOfMonth {
				dates = append(dates, d.Format(DateLayout))
			}
		}
	}
	return dates, nil
}
