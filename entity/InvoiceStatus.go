package entity

import (
	"gorm.io/gorm"
)

const (
	InvoiceIssued        = "ISSUED"
	InvoicePartiallyPaid = "PARTIALLY_PAID"
	InvoicePaid          = "PAID"
)

type InvoiceStatus struct {
	gorm.Model
	StatusName string `gorm:"uniqueIndex" json:"statusName"`

	Invoices []Invoice `json:"-"`
}
