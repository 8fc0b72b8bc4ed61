package models

import (
	"gorm.io/gorm"
)

// Booking statuses
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
	BookingNoShow    = "no_show"
)

type Booking struct {
	gorm.Model
	Phone      string `gorm:"type:varchar(20);index;not null" json:"phone"`
	Name       string `gorm:"type:varchar(100);not null" json:"name"`
	ArmyNumber string `gorm:"type:varchar(30);index" json:"armyNumber"`
	Date       string `gorm:"type:varchar(10);index;not null" json:"date"` // YYYY-MM-DD
	TimeSlot   string `gorm:"type:varchar(5);not null" json:"timeSlot"`    // HH:MM
	Purpose    string `gorm:"type:varchar(255);not null" json:"purpose"`
	Location   string `gorm:"type:varchar(255);not null" json:"location"`
	Status     string `gorm:"type:varchar(20);default:'confirmed';not null" json:"status"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsValidBookingStatus reports whether s is an allowed booking status.
func IsValidBookingStatus(s string) bool {
	switch s {
	case BookingConfirmed, BookingCancelled, BookingCompleted, BookingNoShow:
		return true
	}
	return false
}
