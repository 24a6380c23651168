package entity

import (
	"gorm.io/gorm"
)

const (
	RoleUser       = "USER"
	RoleManager    = "MANAGER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

const (
	UserActive    = "ACTIVE"
	UserSuspended = "SUSPENDED"
	UserBanned    = "BANNED"
)

// RoleRank gives roles an explicit numeric order for "at least" checks.
// Unknown roles rank below USER.
func RoleRank(role string) int {
	switch role {
	case RoleUser:
		return 0
	case RoleManager:
		return 1
	case RoleAdmin:
		return 2
	case RoleSuperAdmin:
		return 3
	default:
		return -1
	}
}

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        string `gorm:"not null;default:USER" json:"role"`
	Status      string `gorm:"not null;default:ACTIVE" json:"status"`

	// Relations — preload only when needed
	Bookings    []Booking    `json:"-"`
	Reviews     []Review     `json:"-"`
	Permissions []Permission `json:"-"`
	AuditLogs   []AuditLog   `gorm:"foreignKey:ActorID" json:"-"`
}
