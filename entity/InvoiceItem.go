package entity

import (
	"gorm.io/gorm"
)

// Line kinds in their fixed display order.
const (
	LineRental       = "RENTAL"
	LinePackage      = "PACKAGE"
	LineExtraMileage = "EXTRA_MILEAGE"
	LineFuel         = "FUEL"
	LineDamage       = "DAMAGE"
	LineLateReturn   = "LATE_RETURN"
	LineOther        = "OTHER"
	LineDiscount     = "DISCOUNT"
	LineTax          = "TAX"
)

type InvoiceItem struct {
	gorm.Model
	InvoiceID   uint   `gorm:"index" json:"invoiceId"`
	Position    int    `json:"position"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Qty         int64  `json:"qty"`
	UnitPrice   int64  `json:"unitPrice"`
	Amount      int64  `json:"amount"` // negative for discounts
}
