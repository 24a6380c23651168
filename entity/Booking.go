package entity

import (
	"time"

	"gorm.io/gorm"
)

// Booking carries the whole rental lifecycle. Stage metadata stays nil
// until the corresponding transition runs; entered surcharges default to 0.
type Booking struct {
	gorm.Model
	UserID uint `json:"userId"`
	User   User `json:"-"` // preload for customer name only

	VehicleID uint    `json:"vehicleId"`
	Vehicle   Vehicle `json:"-"`

	PackageID   *uint    `json:"packageId,omitempty"`
	Package     *Package `json:"-"`
	UseFlatRate bool     `json:"useFlatRate"` // package bookings may charge the vehicle flat rate once

	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	PickupLocation  string    `json:"pickupLocation"`
	DropoffLocation string    `json:"dropoffLocation"`

	BookingStatusID uint          `json:"bookingStatusId"`
	BookingStatus   BookingStatus `json:"bookingStatus"`

	// confirmation
	AdvanceAmount   int64      `json:"advanceAmount"`
	AdvanceMethodID *uint      `json:"advanceMethodId,omitempty"`
	AdvancePaid     bool       `json:"advancePaid"` // credit only when actually received
	FreeKmPerDay    int64      `json:"freeKmPerDay"`
	ExtraKmRate     int64      `json:"extraKmRate"`
	ConfirmNotes    string     `json:"confirmNotes"`
	ConfirmedAt     *time.Time `json:"confirmedAt,omitempty"`

	// collection
	CollectionOdometer *int64     `json:"collectionOdometer,omitempty"`
	CollectionFuel     string     `json:"collectionFuel"`
	CollectionNotes    string     `json:"collectionNotes"`
	CollectedAt        *time.Time `json:"collectedAt,omitempty"`

	// return / completion
	ReturnOdometer *int64     `json:"returnOdometer,omitempty"`
	ReturnFuel     string     `json:"returnFuel"`
	ActualStart    *time.Time `json:"actualStart,omitempty"`
	ActualEnd      *time.Time `json:"actualEnd,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`

	// entered surcharges / discount
	FuelCharge       int64 `json:"fuelCharge"`
	DamageCharge     int64 `json:"damageCharge"`
	LateReturnCharge int64 `json:"lateReturnCharge"`
	OtherCharges     int64 `json:"otherCharges"`
	DiscountAmount   int64 `json:"discountAmount"`

	// computed at completion
	ActualDays     *int   `json:"actualDays,omitempty"`
	BaseRental     *int64 `json:"baseRental,omitempty"`
	PackageCharges *int64 `json:"packageCharges,omitempty"`
	TotalKm        *int64 `json:"totalKm,omitempty"`
	ExtraKm     *int64 `json:"extraKm,omitempty"`
	ExtraKmCost *int64 `json:"extraKmCost,omitempty"`
	FinalAmount *int64 `json:"finalAmount,omitempty"`
	BalanceDue  *int64 `json:"balanceDue,omitempty"`

	CancelReason string     `json:"cancelReason,omitempty"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`

	Documents []BookingDocument `json:"-"`
	Invoice   *Invoice          `json:"-"` // one-to-one once invoiced
}
