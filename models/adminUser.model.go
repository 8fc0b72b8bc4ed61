package models

import (
	"gorm.io/gorm"
)

// Admin roles
const (
	RoleAdmin = "ADMIN"
	RoleJCO   = "JCO"
	RoleCO    = "CO"
)

type AdminUser struct {
	gorm.Model
	Username string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	FullName string `gorm:"type:varchar(100);not null" json:"fullName"`
	Role     string `gorm:"type:varchar(10);default:'CO';not null" json:"role"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

// IsValidAdminRole reports whether r is an allowed admin role.
func IsValidAdminRole(r string) bool {
	switch r {
	case RoleAdmin, RoleJCO, RoleCO:
		return true
	}
	return false
}
