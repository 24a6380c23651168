package services

import (
	"time"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"

	"gorm.io/gorm"
)

// Workflow transitions. Every operation takes the acting staff user
// explicitly, runs in one transaction, and guards the status move with a
// compare-and-set so a concurrent transition loses cleanly.

// ----- confirm: PENDING → CONFIRMED -----

type ConfirmReq struct {
	AdvanceAmount int64  `json:"advanceAmount" binding:"min=0"`
	AdvanceMethod string `json:"advanceMethod"`
	AdvancePaid   bool   `json:"advancePaid"`
	FreeKmPerDay  *int64 `json:"freeKmPerDay"` // default from config
	ExtraKmRate   *int64 `json:"extraKmRate"`  // default from config
	Notes         string `json:"notes"`
}

func (s *BookingService) Confirm(actorID, bookingID uint, req *ConfirmReq) error {
	b, err := s.Repo.Get(bookingID)
	if err != nil {
		return ErrNotFound
	}

	freeKm := s.Cfg.FreeKmPerDay
	if req.FreeKmPerDay != nil {
		if *req.FreeKmPerDay < 0 {
			return invalid("freeKmPerDay cannot be negative")
		}
		freeKm = *req.FreeKmPerDay
	}
	rate := s.Cfg.ExtraKmRate
	if req.ExtraKmRate != nil {
		if *req.ExtraKmRate < 0 {
			return invalid("extraKmRate cannot be negative")
		}
		rate = *req.ExtraKmRate
	}

	var methodID *uint
	if req.AdvanceMethod != "" {
		id, err := s.PayRepo.GetMethodIDFromKey(req.AdvanceMethod)
		if err != nil {
			return err
		}
		if id == 0 {
			return invalid("unknown payment method")
		}
		methodID = &id
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, b.ID, s.Status.Pending, s.Status.Confirmed)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrIllegalTransition
		}
		now := time.Now()
		return s.Repo.UpdateFields(tx, b.ID, map[string]any{
			"advance_amount":    req.AdvanceAmount,
			"advance_method_id": methodID,
			"advance_paid":      req.AdvancePaid,
			"free_km_per_day":   freeKm,
			"extra_km_rate":     rate,
			"confirm_notes":     req.Notes,
			"confirmed_at":      &now,
		})
	})
	if err != nil {
		return err
	}

	s.Audit.Record(actorID, "booking.confirm", "booking", b.ID, req)
	s.publish("bookings", b.ID, "confirmed")
	return nil
}

// ----- collect: CONFIRMED → COLLECTED -----

type CollectDocIn struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

type CollectReq struct {
	Odometer  *int64         `json:"odometer"`
	FuelLevel string         `json:"fuelLevel"`
	Notes     string         `json:"notes"`
	Documents []CollectDocIn `json:"documents"`
}

func (s *BookingService) Collect(actorID, bookingID uint, req *CollectReq) error {
	b, err := s.Repo.Get(bookingID)
	if err != nil {
		return ErrNotFound
	}
	if req.Odometer == nil {
		return invalid("odometer reading is required")
	}
	if *req.Odometer < 0 {
		return invalid("odometer cannot be negative")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, b.ID, s.Status.Confirmed, s.Status.Collected)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrIllegalTransition
		}
		now := time.Now()
		if err := s.Repo.UpdateFields(tx, b.ID, map[string]any{
			"collection_odometer": *req.Odometer,
			"collection_fuel":     req.FuelLevel,
			"collection_notes":    req.Notes,
			"collected_at":        &now,
		}); err != nil {
			return err
		}
		for _, d := range req.Documents {
			doc := entity.BookingDocument{BookingID: b.ID, Name: d.Name, URL: d.URL, Size: d.Size}
			if err := s.Repo.CreateDocument(tx, &doc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Audit.Record(actorID, "booking.collect", "booking", b.ID, map[string]any{"odometer": *req.Odometer})
	s.publish("bookings", b.ID, "collected")
	return nil
}

// ----- complete: COLLECTED → COMPLETED -----

type CompleteReq struct {
	ReturnOdometer *int64     `json:"returnOdometer"`
	FuelLevel      string     `json:"fuelLevel"`
	ActualStart    *time.Time `json:"actualStart"` // defaults to collection time
	ActualEnd      *time.Time `json:"actualEnd"`   // defaults to now

	FuelCharge       int64 `json:"fuelCharge" binding:"min=0"`
	DamageCharge     int64 `json:"damageCharge" binding:"min=0"`
	LateReturnCharge int64 `json:"lateReturnCharge" binding:"min=0"`
	OtherCharges     int64 `json:"otherCharges" binding:"min=0"`
	DiscountAmount   int64 `json:"discountAmount" binding:"min=0"`
}

// priceCompletion validates the request against the booking and produces
// the deterministic breakdown plus the actual rental window.
func (s *BookingService) priceCompletion(b *entity.Booking, req *CompleteReq) (PriceBreakdown, time.Time, time.Time, error) {
	var zero time.Time
	if b.CollectionOdometer == nil || b.CollectedAt == nil {
		return PriceBreakdown{}, zero, zero, ErrIllegalTransition
	}
	if req.ReturnOdometer == nil {
		return PriceBreakdown{}, zero, zero, invalid("return odometer reading is required")
	}
	if *req.ReturnOdometer < *b.CollectionOdometer {
		return PriceBreakdown{}, zero, zero, invalid("return odometer is before collection reading")
	}

	start := *b.CollectedAt
	if req.ActualStart != nil {
		start = *req.ActualStart
	}
	end := time.Now()
	if req.ActualEnd != nil {
		end = *req.ActualEnd
	}

	v, err := s.Repo.GetVehicleBasics(b.VehicleID)
	if err != nil {
		return PriceBreakdown{}, zero, zero, err
	}

	in := PriceInput{
		DayRate:            v.DayRate,
		FlatRate:           v.FlatRate,
		UseFlatRate:        b.UseFlatRate,
		Days:               RentalDays(start, end),
		CollectionOdometer: *b.CollectionOdometer,
		ReturnOdometer:     *req.ReturnOdometer,
		FreeKmPerDay:       b.FreeKmPerDay,
		ExtraKmRate:        b.ExtraKmRate,
		FuelCharge:         req.FuelCharge,
		DamageCharge:       req.DamageCharge,
		LateReturnCharge:   req.LateReturnCharge,
		OtherCharges:       req.OtherCharges,
		DiscountAmount:     req.DiscountAmount,
		AdvanceAmount:      b.AdvanceAmount,
		AdvancePaid:        b.AdvancePaid,
	}
	if b.PackageID != nil {
		p, err := s.Repo.GetPackageBasics(*b.PackageID)
		if err != nil {
			return PriceBreakdown{}, zero, zero, err
		}
		in.PackageBase = p.BasePrice
		in.PackageDayPrice = p.DayPrice
	}

	return Quote(in), start, end, nil
}

// Preview prices a hypothetical completion without persisting anything.
// The UI shows this before the staff member commits.
func (s *BookingService) Preview(bookingID uint, req *CompleteReq) (*PriceBreakdown, error) {
	b, err := s.Repo.Get(bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	bd, _, _, err := s.priceCompletion(b, req)
	if err != nil {
		return nil, err
	}
	return &bd, nil
}

func (s *BookingService) Complete(actorID, bookingID uint, req *CompleteReq) (*PriceBreakdown, error) {
	b, err := s.Repo.Get(bookingID)
	if err != nil {
		return nil, ErrNotFound
	}

	bd, start, end, err := s.priceCompletion(b, req)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, b.ID, s.Status.Collected, s.Status.Completed)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrIllegalTransition
		}
		now := time.Now()
		return s.Repo.UpdateFields(tx, b.ID, map[string]any{
			"return_odometer":    *req.ReturnOdometer,
			"return_fuel":        req.FuelLevel,
			"actual_start":       &start,
			"actual_end":         &end,
			"completed_at":       &now,
			"fuel_charge":        bd.FuelCharge,
			"damage_charge":      bd.DamageCharge,
			"late_return_charge": bd.LateReturnCharge,
			"other_charges":      bd.OtherCharges,
			"discount_amount":    bd.DiscountAmount,
			"actual_days":        bd.Days,
			"base_rental":        bd.BaseRental,
			"package_charges":    bd.PackageCharges,
			"total_km":           bd.TotalKm,
			"extra_km":           bd.ExtraKm,
			"extra_km_cost":      bd.ExtraKmCost,
			"final_amount":       bd.FinalAmount,
			"balance_due":        bd.BalanceDue,
		})
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Record(actorID, "booking.complete", "booking", b.ID, bd)
	s.publish("bookings", b.ID, "completed")
	return &bd, nil
}

// ----- cancel: any non-terminal → CANCELLED -----

func (s *BookingService) Cancel(actorID, bookingID uint, reason string) error {
	b, err := s.Repo.Get(bookingID)
	if err != nil {
		return ErrNotFound
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		terminal := []uint{s.Status.Paid, s.Status.Cancelled}
		affected, err := s.Repo.CancelGuard(tx, b.ID, terminal, s.Status.Cancelled)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrIllegalTransition
		}
		now := time.Now()
		return s.Repo.UpdateFields(tx, b.ID, map[string]any{
			"cancel_reason": reason,
			"cancelled_at":  &now,
		})
	})
	if err != nil {
		return err
	}

	s.Audit.Record(actorID, "booking.cancel", "booking", b.ID, map[string]any{"reason": reason})
	s.publish("bookings", b.ID, "cancelled")
	return nil
}
