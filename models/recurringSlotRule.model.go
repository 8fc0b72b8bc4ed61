package models

import (
	"gorm.io/gorm"
)

// Recurring rule types
const (
	RuleTypeWeekly  = "weekly"
	RuleTypeMonthly = "monthly"
)

// RecurringSlotRule is a template for per-date slot configurations. Active
// rules are materialized into concrete SlotConfiguration rows by the rule
// scheduler; the availability engine never consults rules directly.
type RecurringSlotRule struct {
	gorm.Model
	RuleType   string `gorm:"type:varchar(10);not null" json:"ruleType"`
	DayOfWeek  int    `gorm:"default:0" json:"dayOfWeek"`  // 0 = Sunday, used by weekly rules
	DayOfMonth int    `gorm:"default:0" json:"dayOfMonth"` // 1-31, used by monthly rules
	StartDate  string `gorm:"type:varchar(10);not null" json:"startDate"`
	EndDate    string `gorm:"type:varchar(10);not null" json:"endDate"`
	Status     string `gorm:"type:varchar(20);not null" json:"status"`
	MaxSlots   int    `gorm:"default:0;not null" json:"maxSlots"`
	Reason     string `gorm:"type:varchar(255)" json:"reason"`
	IsActive   bool   `gorm:"default:true" json:"isActive"`
	CreatedBy  uint   `gorm:"default:0" json:"createdBy"`
}

func (RecurringSlotRule) TableName() string {
	return "recurring_slot_rules"
}
