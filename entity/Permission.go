package entity

import (
	"gorm.io/gorm"
)

// Permission keys used by the admin surface.
const (
	PermBookingsManage = "bookings.manage"
	PermInvoicesManage = "invoices.manage"
	PermVehiclesManage = "vehicles.manage"
	PermUsersManage    = "users.manage"
	PermAuditView      = "audit.view"
)

// A Permission row is either a role default (UserID nil) or a
// user-specific override (UserID set). Overrides win.
type Permission struct {
	gorm.Model
	Key     string `gorm:"index;not null" json:"key"`
	Role    string `gorm:"index" json:"role"`
	UserID  *uint  `gorm:"index" json:"userId,omitempty"`
	Allowed bool   `json:"allowed"`
}
