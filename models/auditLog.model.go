package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit actions
const (
	ActionCreateSlotConfig    = "CREATE_SLOT_CONFIG"
	ActionUpdateSlotConfig    = "UPDATE_SLOT_CONFIG"
	ActionDeleteSlotConfig    = "DELETE_SLOT_CONFIG"
	ActionBulkSlotConfig      = "BULK_SLOT_CONFIG"
	ActionCreateRecurringRule = "CREATE_RECURRING_RULE"
	ActionUpdateRecurringRule = "UPDATE_RECURRING_RULE"
	ActionDeleteRecurringRule = "DELETE_RECURRING_RULE"
	ActionUpdateBookingStatus = "UPDATE_BOOKING_STATUS"
	ActionDeleteBooking       = "DELETE_BOOKING"
	ActionDeleteBookingBulk   = "DELETE_BOOKING_BULK"
	ActionCreateUser          = "CREATE_USER"
	ActionUpdateUserRole      = "UPDATE_USER_ROLE"
	ActionDeleteUser          = "DELETE_USER"
)

// AuditLog is an append-only record of admin mutations. Writes are
// best-effort: a failed audit insert is logged and never blocks the
// operation it describes.
type AuditLog struct {
	gorm.Model
	AdminID       uint           `gorm:"index" json:"adminId"`
	AdminUsername string         `gorm:"type:varchar(50)" json:"adminUsername"`
	Action        string         `gorm:"type:varchar(40);index;not null" json:"action"`
	EntityType    string         `gorm:"type:varchar(30);index;not null" json:"entityType"`
	EntityID      string         `gorm:"type:varchar(30)" json:"entityId"`
	OldValues     datatypes.JSON `json:"oldValues"`
	NewValues     datatypes.JSON `json:"newValues"`
	IPAddress     string         `gorm:"type:varchar(45)" json:"ipAddress"`
	UserAgent     string         `gorm:"type:varchar(255)" json:"userAgent"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
