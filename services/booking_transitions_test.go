package services

import (
	"testing"
	"time"

	"github.com/shanmdahanayaka/vehicle-rental-backend/configs"
	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
	"github.com/shanmdahanayaka/vehicle-rental-backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*BookingService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Permission{},
		&entity.Vehicle{}, &entity.Package{}, &entity.Policy{},
		&entity.BookingStatus{}, &entity.Booking{}, &entity.BookingDocument{},
		&entity.InvoiceStatus{}, &entity.Invoice{}, &entity.InvoiceItem{},
		&entity.PaymentMethod{}, &entity.Payment{},
		&entity.Review{}, &entity.AuditLog{},
	))

	for _, s := range []string{
		entity.BookingPending, entity.BookingConfirmed, entity.BookingCollected,
		entity.BookingCompleted, entity.BookingInvoiced, entity.BookingPartiallyPaid,
		entity.BookingPaid, entity.BookingCancelled,
	} {
		require.NoError(t, db.Create(&entity.BookingStatus{StatusName: s}).Error)
	}
	for _, s := range []string{entity.InvoiceIssued, entity.InvoicePartiallyPaid, entity.InvoicePaid} {
		require.NoError(t, db.Create(&entity.InvoiceStatus{StatusName: s}).Error)
	}
	for _, m := range []string{"Cash", "Card", "Bank Transfer"} {
		require.NoError(t, db.Create(&entity.PaymentMethod{MethodName: m}).Error)
	}

	cfg := &configs.Config{
		FreeKmPerDay:   100,
		ExtraKmRate:    50,
		TaxName:        "VAT",
		TaxRateBps:     0,
		Currency:       "LKR",
		InvoicePrefix:  "INV",
		InvoiceDueDays: 14,
	}

	svc := NewBookingService(
		db,
		repository.NewBookingRepository(db),
		repository.NewInvoiceRepository(db),
		repository.NewPaymentRepository(db),
		cfg,
		NewAuditService(db),
		NewNotifier(cfg.Currency),
		nil,
	)
	return svc, db
}

func seedCustomerAndVehicle(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()
	user := entity.User{Email: "customer@test.local", Role: entity.RoleUser, Status: entity.UserActive}
	require.NoError(t, db.Create(&user).Error)
	vehicle := entity.Vehicle{Name: "Corolla", PlateNumber: "CAB-1234", DayRate: 5000, FlatRate: 12000, Available: true}
	require.NoError(t, db.Create(&vehicle).Error)
	return user.ID, vehicle.ID
}

func createTestBooking(t *testing.T, svc *BookingService, userID, vehicleID uint) uint {
	t.Helper()
	start := time.Now().Add(24 * time.Hour)
	out, err := svc.Create(userID, &CreateBookingReq{
		VehicleID: vehicleID,
		StartDate: start,
		EndDate:   start.Add(72 * time.Hour),
	})
	require.NoError(t, err)
	return out.ID
}

func statusName(t *testing.T, db *gorm.DB, bookingID uint) string {
	t.Helper()
	var b entity.Booking
	require.NoError(t, db.Preload("BookingStatus").First(&b, bookingID).Error)
	return b.BookingStatus.StatusName
}

func TestCreateBooking_Validation(t *testing.T) {
	svc, db := newTestService(t)
	userID, vehicleID := seedCustomerAndVehicle(t, db)

	start := time.Now().Add(24 * time.Hour)

	_, err := svc.Create(userID, &CreateBookingReq{
		VehicleID: vehicleID, StartDate: start, EndDate: start,
	})
	assert.True(t, IsValidation(err), "end==start must be rejected")

	_, err = svc.Create(userID, &CreateBookingReq{
		VehicleID: 9999, StartDate: start, EndDate: start.Add(24 * time.Hour),
	})
	assert.True(t, IsValidation(err), "unknown vehicle must be rejected")

	// overlapping window on the same vehicle
	_, err = svc.Create(userID, &CreateBookingReq{
		VehicleID: vehicleID, StartDate: start, EndDate: start.Add(72 * time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.Create(userID, &CreateBookingReq{
		VehicleID: vehicleID, StartDate: start.Add(24 * time.Hour), EndDate: start.Add(96 * time.Hour),
	})
	assert.True(t, IsValidation(err), "overlap must be rejected")
}

func TestWorkflow_FullLifecycle(t *testing.T) {
	svc, db := newTestService(t)
	userID, vehicleID := seedCustomerAndVehicle(t, db)
	bookingID := createTestBooking(t, svc, userID, vehicleID)
	staffID := uint(77)

	assert.Equal(t, entity.BookingPending, statusName(t, db, bookingID))

	// confirm with a received advance of 5000
	err := svc.Confirm(staffID, bookingID, &ConfirmReq{
		AdvanceAmount: 5000,
		AdvanceMethod: "cash",
		AdvancePaid:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingConfirmed, statusName(t, db, bookingID))

	var b entity.Booking
	require.NoError(t, db.First(&b, bookingID).Error)
	assert.Equal(t, int64(100), b.FreeKmPerDay, "config default applies")
	assert.Equal(t, int64(50), b.ExtraKmRate)

	// collect without odometer fails, nothing changes
	err = svc.Collect(staffID, bookingID, &CollectReq{})
	assert.True(t, IsValidation(err))
	assert.Equal(t, entity.BookingConfirmed, statusName(t, db, bookingID))

	odo := int64(10000)
	require.NoError(t, svc.Collect(staffID, bookingID, &CollectReq{
		Odometer:  &odo,
		FuelLevel: "FULL",
		Documents: []CollectDocIn{{Name: "licence.jpg", URL: "/uploads/abc.jpg", Size: 1024}},
	}))
	assert.Equal(t, entity.BookingCollected, statusName(t, db, bookingID))

	var docs int64
	db.Model(&entity.BookingDocument{}).Where("booking_id = ?", bookingID).Count(&docs)
	assert.Equal(t, int64(1), docs)

	// complete: 3 actual days, 450 km driven
	require.NoError(t, db.First(&b, bookingID).Error)
	actualStart := *b.CollectedAt
	actualEnd := actualStart.Add(72 * time.Hour)
	ret := int64(10450)

	bd, err := svc.Complete(staffID, bookingID, &CompleteReq{
		ReturnOdometer: &ret,
		ActualStart:    &actualStart,
		ActualEnd:      &actualEnd,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCompleted, statusName(t, db, bookingID))
	assert.Equal(t, int64(22500), bd.FinalAmount)
	assert.Equal(t, int64(17500), bd.BalanceDue)

	require.NoError(t, db.First(&b, bookingID).Error)
	require.NotNil(t, b.FinalAmount)
	assert.Equal(t, int64(22500), *b.FinalAmount)
	require.NotNil(t, b.BalanceDue)
	assert.Equal(t, int64(17500), *b.BalanceDue)

	// invoice
	inv, err := svc.GenerateInvoice(staffID, bookingID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingInvoiced, statusName(t, db, bookingID))
	assert.Equal(t, int64(22500), inv.Total)
	assert.Equal(t, int64(5000), inv.AdvanceCredited)
	assert.Equal(t, int64(17500), inv.Balance)

	// a second invoice for the same booking is an illegal transition
	_, err = svc.GenerateInvoice(staffID, bookingID)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// partial payment
	_, err = svc.RecordPayment(staffID, inv.ID, &RecordPaymentReq{Amount: 10000, Method: "cash"})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingPartiallyPaid, statusName(t, db, bookingID))

	fresh, err := svc.InvoiceDetail(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7500), fresh.Balance)

	// overpayment is rejected
	_, err = svc.RecordPayment(staffID, inv.ID, &RecordPaymentReq{Amount: 9000, Method: "cash"})
	assert.True(t, IsValidation(err))

	// settling payment
	_, err = svc.RecordPayment(staffID, inv.ID, &RecordPaymentReq{Amount: 7500, Method: "card"})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingPaid, statusName(t, db, bookingID))

	fresh, err = svc.InvoiceDetail(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fresh.Balance)

	// nothing more to pay
	_, err = svc.RecordPayment(staffID, inv.ID, &RecordPaymentReq{Amount: 1, Method: "cash"})
	assert.True(t, IsValidation(err))

	// a settled booking cannot be cancelled
	err = svc.Cancel(staffID, bookingID, "too late")
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// audit trail recorded each transition
	var audits int64
	db.Model(&entity.AuditLog{}).Count(&audits)
	assert.GreaterOrEqual(t, audits, int64(5))
}

func TestWorkflow_IllegalTransitions(t *testing.T) {
	svc, db := newTestService(t)
	userID, vehicleID := seedCustomerAndVehicle(t, db)
	bookingID := createTestBooking(t, svc, userID, vehicleID)
	staffID := uint(77)

	odo := int64(100)

	// collect before confirm
	err := svc.Collect(staffID, bookingID, &CollectReq{Odometer: &odo})
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// complete before collect
	_, err = svc.Complete(staffID, bookingID, &CompleteReq{ReturnOdometer: &odo})
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// invoice before complete
	_, err = svc.GenerateInvoice(staffID, bookingID)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// cancel a pending booking, then nothing else is possible
	require.NoError(t, svc.Cancel(staffID, bookingID, "customer no-show"))
	assert.Equal(t, entity.BookingCancelled, statusName(t, db, bookingID))

	err = svc.Collect(staffID, bookingID, &CollectReq{Odometer: &odo})
	assert.ErrorIs(t, err, ErrIllegalTransition)
	err = svc.Confirm(staffID, bookingID, &ConfirmReq{})
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// no invoice ever appeared
	var invoices int64
	db.Model(&entity.Invoice{}).Count(&invoices)
	assert.Equal(t, int64(0), invoices)
}

func TestCancelOwn_OnlyWhilePending(t *testing.T) {
	svc, db := newTestService(t)
	userID, vehicleID := seedCustomerAndVehicle(t, db)
	bookingID := createTestBooking(t, svc, userID, vehicleID)

	// someone else's booking reads as not found
	err := svc.CancelOwn(userID+1, bookingID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.CancelOwn(userID, bookingID))
	assert.Equal(t, entity.BookingCancelled, statusName(t, db, bookingID))

	// self-cancel lands in the audit trail like every other transition
	var audits int64
	db.Model(&entity.AuditLog{}).
		Where("actor_id = ? AND action = ? AND resource_id = ?", userID, "booking.cancel", bookingID).
		Count(&audits)
	assert.Equal(t, int64(1), audits)

	// confirmed bookings are out of the customer's hands
	second := createTestBooking(t, svc, userID, vehicleID)
	require.NoError(t, svc.Confirm(77, second, &ConfirmReq{}))
	err = svc.CancelOwn(userID, second)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}
