package entity

import (
	"gorm.io/gorm"
)

// Lifecycle status names, seeded as lookup rows.
const (
	BookingPending       = "PENDING"
	BookingConfirmed     = "CONFIRMED"
	BookingCollected     = "COLLECTED"
	BookingCompleted     = "COMPLETED"
	BookingInvoiced      = "INVOICED"
	BookingPartiallyPaid = "PARTIALLY_PAID"
	BookingPaid          = "PAID"
	BookingCancelled     = "CANCELLED"
)

type BookingStatus struct {
	gorm.Model
	StatusName string `gorm:"uniqueIndex" json:"statusName"`

	Bookings []Booking `json:"-"`
}
