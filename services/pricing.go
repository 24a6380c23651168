package services

import "time"

// Pricing is pure arithmetic: the same inputs always produce the same
// breakdown, so the live preview and the persisted invoice agree.
// Amounts are minor currency units, distances are km.

type PriceInput struct {
	DayRate     int64
	FlatRate    int64
	UseFlatRate bool // package bookings may charge the flat rate once, ignoring days
	Days        int

	PackageBase     int64
	PackageDayPrice int64

	CollectionOdometer int64
	ReturnOdometer     int64
	FreeKmPerDay       int64
	ExtraKmRate        int64

	FuelCharge       int64
	DamageCharge     int64
	LateReturnCharge int64
	OtherCharges     int64
	DiscountAmount   int64

	AdvanceAmount int64
	AdvancePaid   bool
}

type PriceBreakdown struct {
	Days           int   `json:"days"`
	BaseRental     int64 `json:"baseRental"`
	PackageCharges int64 `json:"packageCharges"`

	TotalKm     int64 `json:"totalKm"`
	FreeKm      int64 `json:"freeKm"`
	ExtraKm     int64 `json:"extraKm"`
	ExtraKmCost int64 `json:"extraKmCost"`

	FuelCharge       int64 `json:"fuelCharge"`
	DamageCharge     int64 `json:"damageCharge"`
	LateReturnCharge int64 `json:"lateReturnCharge"`
	OtherCharges     int64 `json:"otherCharges"`
	DiscountAmount   int64 `json:"discountAmount"`

	FinalAmount     int64 `json:"finalAmount"`
	AdvanceCredited int64 `json:"advanceCredited"`
	BalanceDue      int64 `json:"balanceDue"`
}

// RentalDays rounds up to whole days, minimum 1.
func RentalDays(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 1
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Quote computes the full charge breakdown for a booking.
func Quote(in PriceInput) PriceBreakdown {
	days := in.Days
	if days < 1 {
		days = 1
	}

	base := in.DayRate * int64(days)
	if in.UseFlatRate {
		base = in.FlatRate
	}

	pkg := in.PackageBase + in.PackageDayPrice*int64(days)

	totalKm := in.ReturnOdometer - in.CollectionOdometer
	if totalKm < 0 {
		totalKm = 0
	}
	freeKm := in.FreeKmPerDay * int64(days)
	extraKm := totalKm - freeKm
	if extraKm < 0 {
		extraKm = 0
	}
	extraCost := extraKm * in.ExtraKmRate

	final := base + pkg + extraCost +
		in.FuelCharge + in.DamageCharge + in.LateReturnCharge + in.OtherCharges -
		in.DiscountAmount

	// advance counts only when it was actually received
	advance := int64(0)
	if in.AdvancePaid {
		advance = in.AdvanceAmount
	}
	balance := final - advance
	if balance < 0 {
		balance = 0
	}

	return PriceBreakdown{
		Days:             days,
		BaseRental:       base,
		PackageCharges:   pkg,
		TotalKm:          totalKm,
		FreeKm:           freeKm,
		ExtraKm:          extraKm,
		ExtraKmCost:      extraCost,
		FuelCharge:       in.FuelCharge,
		DamageCharge:     in.DamageCharge,
		LateReturnCharge: in.LateReturnCharge,
		OtherCharges:     in.OtherCharges,
		DiscountAmount:   in.DiscountAmount,
		FinalAmount:      final,
		AdvanceCredited:  advance,
		BalanceDue:       balance,
	}
}

// TaxOf applies a basis-point rate (1800 = 18%).
func TaxOf(amount, rateBps int64) int64 {
	if amount <= 0 || rateBps <= 0 {
		return 0
	}
	return amount * rateBps / 10000
}
