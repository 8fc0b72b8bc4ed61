package models

import (
	"time"

	"gorm.io/gorm"
)

// AdminSession is an opaque bearer token with expiry. Tokens are looked up on
// every admin request; expired rows are ignored and may be garbage-collected.
type AdminSession struct {
	gorm.Model
	AdminID   uint      `gorm:"not null;index" json:"adminId"`
	Token     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`

	AdminUser AdminUser `gorm:"foreignKey:AdminID" json:"-"`
}

func (AdminSession) TableName() string {
	return "admin_sessions"
}
