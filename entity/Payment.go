package entity

import (
	"time"

	"gorm.io/gorm"
)

type Payment struct {
	gorm.Model
	Amount    int64     `json:"amount"`
	Reference string    `json:"reference"`
	PaidAt    time.Time `json:"paidAt"`

	PaymentMethodID uint          `json:"paymentMethodId"`
	PaymentMethod   PaymentMethod `json:"-"` // preload for method name only

	InvoiceID uint    `gorm:"index" json:"invoiceId"`
	Invoice   Invoice `json:"-"`

	ReceivedByID uint `json:"receivedById"` // staff user who recorded it
}
