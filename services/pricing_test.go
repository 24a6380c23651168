package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRentalDays(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"exact three days", base.Add(72 * time.Hour), 3},
		{"partial day rounds up", base.Add(50 * time.Hour), 3},
		{"under a day is one day", base.Add(2 * time.Hour), 1},
		{"zero duration is one day", base, 1},
		{"end before start is one day", base.Add(-5 * time.Hour), 1},
		{"one minute over a day", base.Add(24*time.Hour + time.Minute), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(base, tt.end))
		})
	}
}

func TestQuote_Example(t *testing.T) {
	// day rate 5000, 3 days, 100 free km/day, 10000→10450 at 50/km,
	// advance 5000 received
	in := PriceInput{
		DayRate:            5000,
		Days:               3,
		CollectionOdometer: 10000,
		ReturnOdometer:     10450,
		FreeKmPerDay:       100,
		ExtraKmRate:        50,
		AdvanceAmount:      5000,
		AdvancePaid:        true,
	}
	bd := Quote(in)

	assert.Equal(t, int64(15000), bd.BaseRental)
	assert.Equal(t, int64(450), bd.TotalKm)
	assert.Equal(t, int64(300), bd.FreeKm)
	assert.Equal(t, int64(150), bd.ExtraKm)
	assert.Equal(t, int64(7500), bd.ExtraKmCost)
	assert.Equal(t, int64(22500), bd.FinalAmount)
	assert.Equal(t, int64(5000), bd.AdvanceCredited)
	assert.Equal(t, int64(17500), bd.BalanceDue)
}

func TestQuote_Deterministic(t *testing.T) {
	in := PriceInput{
		DayRate: 3200, Days: 5,
		CollectionOdometer: 500, ReturnOdometer: 1340,
		FreeKmPerDay: 120, ExtraKmRate: 35,
		PackageBase: 1500, PackageDayPrice: 200,
		FuelCharge: 900, DamageCharge: 2500, LateReturnCharge: 600, OtherCharges: 150,
		DiscountAmount: 1000,
		AdvanceAmount:  4000, AdvancePaid: true,
	}
	first := Quote(in)
	second := Quote(in)
	assert.Equal(t, first, second)
}

func TestQuote_MileageNeverNegative(t *testing.T) {
	// driven less than the free allotment
	bd := Quote(PriceInput{
		DayRate: 5000, Days: 2,
		CollectionOdometer: 1000, ReturnOdometer: 1050,
		FreeKmPerDay: 100, ExtraKmRate: 50,
	})
	assert.Equal(t, int64(50), bd.TotalKm)
	assert.Equal(t, int64(0), bd.ExtraKm)
	assert.Equal(t, int64(0), bd.ExtraKmCost)

	// odometers reversed clamp to zero rather than going negative
	bd = Quote(PriceInput{
		DayRate: 5000, Days: 1,
		CollectionOdometer: 2000, ReturnOdometer: 1500,
		FreeKmPerDay: 100, ExtraKmRate: 50,
	})
	assert.Equal(t, int64(0), bd.TotalKm)
	assert.Equal(t, int64(0), bd.ExtraKmCost)
}

func TestQuote_ChargeFolding(t *testing.T) {
	bd := Quote(PriceInput{
		DayRate: 1000, Days: 2,
		FuelCharge: 300, DamageCharge: 700, LateReturnCharge: 200, OtherCharges: 100,
		DiscountAmount: 500,
	})
	// 2000 + 300 + 700 + 200 + 100 - 500
	assert.Equal(t, int64(2800), bd.FinalAmount)
	assert.Equal(t, int64(2800), bd.BalanceDue)
}

func TestQuote_AdvanceOnlyWhenPaid(t *testing.T) {
	in := PriceInput{DayRate: 1000, Days: 3, AdvanceAmount: 2000}

	// recorded but never marked received: no credit
	bd := Quote(in)
	assert.Equal(t, int64(0), bd.AdvanceCredited)
	assert.Equal(t, int64(3000), bd.BalanceDue)

	in.AdvancePaid = true
	bd = Quote(in)
	assert.Equal(t, int64(2000), bd.AdvanceCredited)
	assert.Equal(t, int64(1000), bd.BalanceDue)
}

func TestQuote_BalanceClampedAtZero(t *testing.T) {
	bd := Quote(PriceInput{
		DayRate: 1000, Days: 1,
		AdvanceAmount: 5000, AdvancePaid: true,
	})
	assert.Equal(t, int64(1000), bd.FinalAmount)
	assert.Equal(t, int64(0), bd.BalanceDue)
}

func TestQuote_FlatRateIgnoresDays(t *testing.T) {
	bd := Quote(PriceInput{
		DayRate: 5000, FlatRate: 12000, UseFlatRate: true, Days: 7,
		PackageBase: 1000, PackageDayPrice: 100,
	})
	assert.Equal(t, int64(12000), bd.BaseRental)
	// package per-day charges still scale with days
	assert.Equal(t, int64(1700), bd.PackageCharges)
	assert.Equal(t, int64(13700), bd.FinalAmount)
}

func TestQuote_MinimumOneDay(t *testing.T) {
	bd := Quote(PriceInput{DayRate: 4000, Days: 0, FreeKmPerDay: 100})
	assert.Equal(t, 1, bd.Days)
	assert.Equal(t, int64(4000), bd.BaseRental)
	assert.Equal(t, int64(100), bd.FreeKm)
}

func TestTaxOf(t *testing.T) {
	assert.Equal(t, int64(1800), TaxOf(10000, 1800))
	assert.Equal(t, int64(0), TaxOf(10000, 0))
	assert.Equal(t, int64(0), TaxOf(0, 1800))
	assert.Equal(t, int64(0), TaxOf(-500, 1800))
}
