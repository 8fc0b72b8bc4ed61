package models

import (
	"gorm.io/gorm"
)

// UserProfile is a denormalized contact cache keyed by army number. It is
// upserted as a side effect of user login and booking creation and is never
// authoritative for identity.
type UserProfile struct {
	gorm.Model
	ArmyNumber string `gorm:"type:varchar(30);uniqueIndex;not null" json:"armyNumber"`
	Name       string `gorm:"type:varchar(100);not null" json:"name"`
	Mobile     string `gorm:"type:varchar(20);not null" json:"mobile"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
