package entity

import (
	"time"

	"gorm.io/gorm"
)

// Invoice is an immutable-once-issued snapshot of a completed booking's
// charges. Only PaidToDate/Balance/status move after issue, via payments.
type Invoice struct {
	gorm.Model
	Number string `gorm:"uniqueIndex;not null" json:"number"`

	BookingID uint    `gorm:"uniqueIndex" json:"bookingId"`
	Booking   Booking `json:"-"`
	UserID    uint    `json:"userId"`
	VehicleID uint    `json:"vehicleId"`

	IssuedAt time.Time `json:"issuedAt"`
	DueDate  time.Time `json:"dueDate"`
	Currency string    `json:"currency"`

	Subtotal   int64  `json:"subtotal"` // booking final amount, pre-tax
	TaxName    string `json:"taxName"`
	TaxRateBps int64  `json:"taxRateBps"`
	TaxAmount  int64  `json:"taxAmount"`
	Total      int64  `json:"total"`

	AdvanceCredited int64 `json:"advanceCredited"`
	PaidToDate      int64 `json:"paidToDate"`
	Balance         int64 `json:"balance"`

	InvoiceStatusID uint          `json:"invoiceStatusId"`
	InvoiceStatus   InvoiceStatus `json:"-"`

	Items    []InvoiceItem `json:"-"` // preload on detail
	Payments []Payment     `json:"-"`
}
