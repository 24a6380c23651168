package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestComposeItems_FixedOrder(t *testing.T) {
	bd := PriceBreakdown{
		Days:             3,
		BaseRental:       15000,
		PackageCharges:   2000,
		ExtraKm:          150,
		ExtraKmCost:      7500,
		FuelCharge:       800,
		DamageCharge:     1200,
		LateReturnCharge: 400,
		OtherCharges:     50,
		DiscountAmount:   1000,
	}
	items := composeItems(bd, "VAT", 900)

	kinds := make([]string, 0, len(items))
	for i, it := range items {
		assert.Equal(t, i+1, it.Position)
		kinds = append(kinds, it.Kind)
	}
	assert.Equal(t, []string{
		entity.LineRental, entity.LinePackage, entity.LineExtraMileage,
		entity.LineFuel, entity.LineDamage, entity.LineLateReturn,
		entity.LineOther, entity.LineDiscount, entity.LineTax,
	}, kinds)

	// discount carries a negative amount
	assert.Equal(t, int64(-1000), items[7].Amount)
	assert.Equal(t, int64(900), items[8].Amount)
}

func TestComposeItems_SkipsZeroLines(t *testing.T) {
	bd := PriceBreakdown{Days: 2, BaseRental: 8000}
	items := composeItems(bd, "VAT", 0)

	require.Len(t, items, 1)
	assert.Equal(t, entity.LineRental, items[0].Kind)
	assert.Equal(t, int64(8000), items[0].Amount)
}

// drives a booking to COMPLETED so an invoice can be issued
func completeBooking(t *testing.T, svc *BookingService, db *gorm.DB, userID, vehicleID uint) uint {
	t.Helper()
	id := createTestBooking(t, svc, userID, vehicleID)
	staffID := uint(77)

	require.NoError(t, svc.Confirm(staffID, id, &ConfirmReq{AdvanceAmount: 5000, AdvanceMethod: "cash", AdvancePaid: true}))
	odo := int64(10000)
	require.NoError(t, svc.Collect(staffID, id, &CollectReq{Odometer: &odo}))

	var b entity.Booking
	require.NoError(t, db.First(&b, id).Error)
	start := *b.CollectedAt
	end := start.Add(72 * time.Hour)
	ret := int64(10450)
	_, err := svc.Complete(staffID, id, &CompleteReq{ReturnOdometer: &ret, ActualStart: &start, ActualEnd: &end})
	require.NoError(t, err)
	return id
}

func TestGenerateInvoice_NumbersMonotonic(t *testing.T) {
	svc, db := newTestService(t)
	userID, _ := seedCustomerAndVehicle(t, db)

	year := time.Now().Year()
	var numbers []string
	for i := 0; i < 3; i++ {
		// separate vehicles so the booking windows never collide
		v := entity.Vehicle{Name: fmt.Sprintf("Car %d", i), PlateNumber: fmt.Sprintf("CAR-%04d", i), DayRate: 5000, Available: true}
		require.NoError(t, db.Create(&v).Error)
		bookingID := completeBooking(t, svc, db, userID, v.ID)

		inv, err := svc.GenerateInvoice(77, bookingID)
		require.NoError(t, err)
		numbers = append(numbers, inv.Number)
	}

	assert.Equal(t, []string{
		fmt.Sprintf("INV-%d-0001", year),
		fmt.Sprintf("INV-%d-0002", year),
		fmt.Sprintf("INV-%d-0003", year),
	}, numbers)
}

func TestGenerateInvoice_PersistsOrderedItems(t *testing.T) {
	svc, db := newTestService(t)
	userID, vehicleID := seedCustomerAndVehicle(t, db)
	bookingID := completeBooking(t, svc, db, userID, vehicleID)

	inv, err := svc.GenerateInvoice(77, bookingID)
	require.NoError(t, err)

	detail, err := svc.InvoiceDetail(inv.ID)
	require.NoError(t, err)
	require.NotEmpty(t, detail.Items)

	// rental first, positions strictly increasing
	assert.Equal(t, entity.LineRental, detail.Items[0].Kind)
	for i := 1; i < len(detail.Items); i++ {
		assert.Greater(t, detail.Items[i].Position, detail.Items[i-1].Position)
	}

	// the snapshot reproduces the completion breakdown
	var b entity.Booking
	require.NoError(t, db.First(&b, bookingID).Error)
	require.NotNil(t, b.FinalAmount)
	assert.Equal(t, *b.FinalAmount, detail.Subtotal)

	var sum int64
	for _, it := range detail.Items {
		sum += it.Amount
	}
	assert.Equal(t, detail.Total, sum)
}

func TestGenerateInvoice_SnapshotsCompletionCharges(t *testing.T) {
	svc, db := newTestService(t)
	userID, vehicleID := seedCustomerAndVehicle(t, db)
	bookingID := completeBooking(t, svc, db, userID, vehicleID)

	// a rate hike between completion and invoicing must not leak in
	require.NoError(t, db.Model(&entity.Vehicle{}).
		Where("id = ?", vehicleID).Update("day_rate", 99999).Error)

	inv, err := svc.GenerateInvoice(77, bookingID)
	require.NoError(t, err)

	var b entity.Booking
	require.NoError(t, db.First(&b, bookingID).Error)
	require.NotNil(t, b.FinalAmount)
	assert.Equal(t, *b.FinalAmount, inv.Subtotal)
	assert.Equal(t, int64(22500), inv.Subtotal)
	assert.Equal(t, int64(17500), inv.Balance)

	detail, err := svc.InvoiceDetail(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LineRental, detail.Items[0].Kind)
	assert.Equal(t, int64(15000), detail.Items[0].Amount)
}

func TestGenerateInvoice_AdvanceCoversEverything(t *testing.T) {
	svc, db := newTestService(t)
	userID, _ := seedCustomerAndVehicle(t, db)

	v := entity.Vehicle{Name: "Cheap", PlateNumber: "CHP-0001", DayRate: 1000, Available: true}
	require.NoError(t, db.Create(&v).Error)

	id := createTestBooking(t, svc, userID, v.ID)
	staffID := uint(77)
	require.NoError(t, svc.Confirm(staffID, id, &ConfirmReq{AdvanceAmount: 100000, AdvanceMethod: "cash", AdvancePaid: true}))
	odo := int64(500)
	require.NoError(t, svc.Collect(staffID, id, &CollectReq{Odometer: &odo}))

	var b entity.Booking
	require.NoError(t, db.First(&b, id).Error)
	start := *b.CollectedAt
	end := start.Add(24 * time.Hour)
	ret := int64(550)
	_, err := svc.Complete(staffID, id, &CompleteReq{ReturnOdometer: &ret, ActualStart: &start, ActualEnd: &end})
	require.NoError(t, err)

	inv, err := svc.GenerateInvoice(staffID, id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inv.Balance)
	assert.Equal(t, entity.BookingPaid, statusName(t, db, id))
}
