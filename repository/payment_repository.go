package repository

import (
	"strings"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *PaymentRepository) ListForInvoice(invoiceID uint) ([]entity.Payment, error) {
	var out []entity.Payment
	err := r.DB.Where("invoice_id = ?", invoiceID).Order("id ASC").Find(&out).Error
	return out, err
}

// GetMethodIDFromKey maps loose client keys onto seeded method names.
func (r *PaymentRepository) GetMethodIDFromKey(key string) (uint, error) {
	if key == "" {
		return 0, nil
	}
	var methodName string
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "cash":
		methodName = "Cash"
	case "card", "credit_card", "credit-card":
		methodName = "Card"
	case "bank", "bank_transfer", "bank-transfer", "bank transfer":
		methodName = "Bank Transfer"
	default:
		methodName = key
	}
	var row struct{ ID uint }
	if err := r.DB.Model(&entity.PaymentMethod{}).
		Select("id").Where("method_name = ?", methodName).
		Limit(1).Scan(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}
