package services

import (
	"time"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
	"github.com/shanmdahanayaka/vehicle-rental-backend/repository"

	"gorm.io/gorm"
)

// ----- generate-invoice: COMPLETED → INVOICED -----

// storedBreakdown reassembles the breakdown Complete persisted on the
// booking. The invoice snapshots what the rental actually settled on;
// vehicle or package price edits made afterwards never leak in.
func storedBreakdown(b *entity.Booking) (PriceBreakdown, error) {
	if b.ActualDays == nil || b.BaseRental == nil || b.FinalAmount == nil {
		return PriceBreakdown{}, ErrIllegalTransition
	}
	bd := PriceBreakdown{
		Days:             *b.ActualDays,
		BaseRental:       *b.BaseRental,
		FreeKm:           b.FreeKmPerDay * int64(*b.ActualDays),
		FuelCharge:       b.FuelCharge,
		DamageCharge:     b.DamageCharge,
		LateReturnCharge: b.LateReturnCharge,
		OtherCharges:     b.OtherCharges,
		DiscountAmount:   b.DiscountAmount,
		FinalAmount:      *b.FinalAmount,
	}
	if b.PackageCharges != nil {
		bd.PackageCharges = *b.PackageCharges
	}
	if b.TotalKm != nil {
		bd.TotalKm = *b.TotalKm
	}
	if b.ExtraKm != nil {
		bd.ExtraKm = *b.ExtraKm
	}
	if b.ExtraKmCost != nil {
		bd.ExtraKmCost = *b.ExtraKmCost
	}
	if b.AdvancePaid {
		bd.AdvanceCredited = b.AdvanceAmount
	}
	if b.BalanceDue != nil {
		bd.BalanceDue = *b.BalanceDue
	}
	return bd, nil
}

// composeItems lays out the line items in their fixed order:
// rental → packages → extra mileage → fuel → damage → late-return → other
// → discount → tax. Zero-amount surcharge lines are omitted.
func composeItems(bd PriceBreakdown, taxName string, taxAmount int64) []entity.InvoiceItem {
	pos := 0
	add := func(items []entity.InvoiceItem, kind, desc string, qty, unit, amount int64) []entity.InvoiceItem {
		pos++
		return append(items, entity.InvoiceItem{
			Position: pos, Kind: kind, Description: desc,
			Qty: qty, UnitPrice: unit, Amount: amount,
		})
	}

	var items []entity.InvoiceItem
	items = add(items, entity.LineRental, "Vehicle rental", int64(bd.Days), 0, bd.BaseRental)
	if bd.PackageCharges != 0 {
		items = add(items, entity.LinePackage, "Package charges", 1, bd.PackageCharges, bd.PackageCharges)
	}
	if bd.ExtraKmCost != 0 {
		items = add(items, entity.LineExtraMileage, "Extra mileage", bd.ExtraKm, bd.ExtraKmCost/bd.ExtraKm, bd.ExtraKmCost)
	}
	if bd.FuelCharge != 0 {
		items = add(items, entity.LineFuel, "Fuel charge", 1, bd.FuelCharge, bd.FuelCharge)
	}
	if bd.DamageCharge != 0 {
		items = add(items, entity.LineDamage, "Damage charge", 1, bd.DamageCharge, bd.DamageCharge)
	}
	if bd.LateReturnCharge != 0 {
		items = add(items, entity.LineLateReturn, "Late return charge", 1, bd.LateReturnCharge, bd.LateReturnCharge)
	}
	if bd.OtherCharges != 0 {
		items = add(items, entity.LineOther, "Other charges", 1, bd.OtherCharges, bd.OtherCharges)
	}
	if bd.DiscountAmount != 0 {
		items = add(items, entity.LineDiscount, "Discount", 1, -bd.DiscountAmount, -bd.DiscountAmount)
	}
	if taxAmount != 0 {
		items = add(items, entity.LineTax, taxName, 1, taxAmount, taxAmount)
	}
	return items
}

func (s *BookingService) GenerateInvoice(actorID, bookingID uint) (*entity.Invoice, error) {
	b, err := s.Repo.GetWithRelations(bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	bd, err := storedBreakdown(b)
	if err != nil {
		return nil, err
	}

	tax := TaxOf(bd.FinalAmount, s.Cfg.TaxRateBps)
	total := bd.FinalAmount + tax
	balance := total - bd.AdvanceCredited
	if balance < 0 {
		balance = 0
	}

	now := time.Now()
	inv := entity.Invoice{
		BookingID: b.ID,
		UserID:    b.UserID,
		VehicleID: b.VehicleID,
		IssuedAt:  now,
		DueDate:   now.AddDate(0, 0, s.Cfg.InvoiceDueDays),
		Currency:  s.Cfg.Currency,

		Subtotal:   bd.FinalAmount,
		TaxName:    s.Cfg.TaxName,
		TaxRateBps: s.Cfg.TaxRateBps,
		TaxAmount:  tax,
		Total:      total,

		AdvanceCredited: bd.AdvanceCredited,
		PaidToDate:      bd.AdvanceCredited,
		Balance:         balance,

		InvoiceStatusID: s.InvStatus.Issued,
	}
	if balance == 0 {
		inv.InvoiceStatusID = s.InvStatus.Paid
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, b.ID, s.Status.Completed, s.Status.Invoiced)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrIllegalTransition
		}

		number, err := s.InvRepo.NextNumber(tx, s.Cfg.InvoicePrefix, now.Year())
		if err != nil {
			return err
		}
		inv.Number = number

		if err := s.InvRepo.Create(tx, &inv); err != nil {
			return err
		}
		for _, it := range composeItems(bd, s.Cfg.TaxName, tax) {
			it.InvoiceID = inv.ID
			if err := s.InvRepo.CreateItem(tx, &it); err != nil {
				return err
			}
		}

		// an invoice already settled by the advance goes straight to PAID
		if balance == 0 {
			if _, err := s.Repo.UpdateStatusGuard(tx, b.ID, s.Status.Invoiced, s.Status.Paid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Record(actorID, "invoice.generate", "invoice", inv.ID, map[string]any{"number": inv.Number, "total": inv.Total})
	// notification failure must not undo the issued invoice
	s.Notify.InvoiceIssued(&b.User, &inv)
	s.publish("invoices", inv.ID, "issued")
	return &inv, nil
}

// ----- queries -----

func (s *BookingService) InvoiceDetail(invoiceID uint) (*entity.Invoice, error) {
	inv, err := s.InvRepo.GetWithItems(invoiceID)
	if err != nil {
		return nil, ErrNotFound
	}
	return inv, nil
}

func (s *BookingService) InvoiceForBooking(bookingID uint) (*entity.Invoice, error) {
	inv, err := s.InvRepo.GetByBooking(bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	return inv, nil
}

type InvoiceListOut struct {
	Items []repository.InvoiceSummary `json:"items"`
	Total int64                       `json:"total"`
	Page  int                         `json:"page"`
	Limit int                         `json:"limit"`
}

func (s *BookingService) ListInvoices(statusID *uint, page, limit int) (*InvoiceListOut, error) {
	items, total, err := s.InvRepo.List(statusID, page, limit)
	if err != nil {
		return nil, err
	}
	return &InvoiceListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// ResendInvoiceNotice re-fires the customer notification for an invoice.
func (s *BookingService) ResendInvoiceNotice(actorID, invoiceID uint) error {
	inv, err := s.InvRepo.Get(invoiceID)
	if err != nil {
		return ErrNotFound
	}
	var user entity.User
	if err := s.DB.First(&user, inv.UserID).Error; err != nil {
		return ErrNotFound
	}
	s.Notify.InvoiceIssued(&user, inv)
	s.Audit.Record(actorID, "invoice.resend", "invoice", inv.ID, nil)
	return nil
}
