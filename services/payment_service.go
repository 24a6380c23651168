package services

import (
	"time"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"

	"gorm.io/gorm"
)

// ----- record-payment: INVOICED → PARTIALLY_PAID → PAID -----

type RecordPaymentReq struct {
	Amount    int64      `json:"amount" binding:"required,min=1"`
	Method    string     `json:"method" binding:"required"`
	Reference string     `json:"reference"`
	PaidAt    *time.Time `json:"paidAt"` // defaults to now
}

func (s *BookingService) RecordPayment(actorID, invoiceID uint, req *RecordPaymentReq) (*entity.Payment, error) {
	inv, err := s.InvRepo.Get(invoiceID)
	if err != nil {
		return nil, ErrNotFound
	}
	if inv.Balance <= 0 {
		return nil, invalid("invoice already settled")
	}
	if req.Amount <= 0 {
		return nil, invalid("amount must be positive")
	}
	if req.Amount > inv.Balance {
		return nil, invalid("amount exceeds outstanding balance")
	}

	methodID, err := s.PayRepo.GetMethodIDFromKey(req.Method)
	if err != nil {
		return nil, err
	}
	if methodID == 0 {
		return nil, invalid("unknown payment method")
	}

	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	p := entity.Payment{
		Amount:          req.Amount,
		Reference:       req.Reference,
		PaidAt:          paidAt,
		PaymentMethodID: methodID,
		InvoiceID:       inv.ID,
		ReceivedByID:    actorID,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.InvRepo.ApplyPaymentGuard(tx, inv.ID, req.Amount)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict // balance moved under us
		}
		if err := s.PayRepo.Create(tx, &p); err != nil {
			return err
		}

		newBalance := inv.Balance - req.Amount
		invStatus := s.InvStatus.PartiallyPaid
		bookingStatus := s.Status.PartiallyPaid
		if newBalance == 0 {
			invStatus = s.InvStatus.Paid
			bookingStatus = s.Status.Paid
		}
		if err := s.InvRepo.UpdateStatus(tx, inv.ID, invStatus); err != nil {
			return err
		}
		from := []uint{s.Status.Invoiced, s.Status.PartiallyPaid}
		if _, err := s.Repo.UpdateStatusIn(tx, inv.BookingID, from, bookingStatus); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Record(actorID, "payment.record", "invoice", inv.ID, map[string]any{"amount": req.Amount, "method": req.Method})

	var user entity.User
	if err := s.DB.First(&user, inv.UserID).Error; err == nil {
		fresh, err := s.InvRepo.Get(inv.ID)
		if err == nil {
			s.Notify.PaymentReceived(&user, fresh, req.Amount)
		}
	}
	s.publish("invoices", inv.ID, "payment")
	return &p, nil
}

func (s *BookingService) ListPayments(invoiceID uint) ([]entity.Payment, error) {
	if _, err := s.InvRepo.Get(invoiceID); err != nil {
		return nil, ErrNotFound
	}
	return s.PayRepo.ListForInvoice(invoiceID)
}
