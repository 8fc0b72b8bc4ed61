package models

import (
	"gorm.io/gorm"
)

// Slot configuration statuses
const (
	SlotStatusOpen        = "open"
	SlotStatusHalfDayPre  = "half_day_pre"
	SlotStatusHalfDayPost = "half_day_post"
	SlotStatusClosed      = "closed"
)

// DefaultMaxSlots is the capacity applied to any date without an explicit configuration.
const DefaultMaxSlots = 1200

// SlotConfiguration overrides the default status/capacity for a single date.
// At most one row per date; absence of a row means the date is open with
// DefaultMaxSlots capacity.
type SlotConfiguration struct {
	gorm.Model
	Date      string `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"` // YYYY-MM-DD
	Status    string `gorm:"type:varchar(20);default:'open';not null" json:"status"`
	MaxSlots  int    `gorm:"default:0;not null" json:"maxSlots"`
	Reason    string `gorm:"type:varchar(255)" json:"reason"`
	CreatedBy uint   `gorm:"default:0" json:"createdBy"`
}

func (SlotConfiguration) TableName() string {
	return "slot_configurations"
}

// IsValidSlotStatus reports whether s is one of the four configuration statuses.
func IsValidSlotStatus(s string) bool {
	switch s {
	case SlotStatusOpen, SlotStatusHalfDayPre, SlotStatusHalfDayPost, SlotStatusClosed:
		return true
	}
	return false
}
