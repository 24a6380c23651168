package repository

import (
	"fmt"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	DB *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

func (r *InvoiceRepository) Create(tx *gorm.DB, inv *entity.Invoice) error {
	return tx.Create(inv).Error
}

func (r *InvoiceRepository) CreateItem(tx *gorm.DB, it *entity.InvoiceItem) error {
	return tx.Create(it).Error
}

func (r *InvoiceRepository) Get(id uint) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := r.DB.First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) GetWithItems(id uint) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Payments").
		First(&inv, id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) GetByBooking(bookingID uint) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := r.DB.Where("booking_id = ?", bookingID).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

type InvoiceSummary struct {
	ID              uint   `json:"id"`
	Number          string `json:"number"`
	BookingID       uint   `json:"bookingId"`
	Total           int64  `json:"total"`
	Balance         int64  `json:"balance"`
	InvoiceStatusID uint   `json:"invoiceStatusId"`
}

func (r *InvoiceRepository) List(statusID *uint, page, limit int) ([]InvoiceSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}

	q := r.DB.Model(&entity.Invoice{})
	if statusID != nil && *statusID != 0 {
		q = q.Where("invoice_status_id = ?", *statusID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []InvoiceSummary
	err := q.Select("id, number, booking_id, total, balance, invoice_status_id").
		Order("id DESC").Limit(limit).Offset((page - 1) * limit).
		Scan(&out).Error
	return out, total, err
}

// NextNumber allocates the next sequential number for the year. Callers run
// it inside the issuing transaction; the unique index on number backs it up.
func (r *InvoiceRepository) NextNumber(tx *gorm.DB, prefix string, year int) (string, error) {
	like := fmt.Sprintf("%s-%d-%%", prefix, year)
	var cnt int64
	if err := tx.Model(&entity.Invoice{}).Where("number LIKE ?", like).Count(&cnt).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, year, cnt+1), nil
}

// ApplyPaymentGuard adds a payment to the invoice totals only while the
// balance still covers it.
func (r *InvoiceRepository) ApplyPaymentGuard(tx *gorm.DB, invoiceID uint, amount int64) (int64, error) {
	res := tx.Model(&entity.Invoice{}).
		Where("id = ? AND balance >= ?", invoiceID, amount).
		Updates(map[string]any{
			"paid_to_date": gorm.Expr("paid_to_date + ?", amount),
			"balance":      gorm.Expr("balance - ?", amount),
		})
	return res.RowsAffected, res.Error
}

func (r *InvoiceRepository) UpdateStatus(tx *gorm.DB, invoiceID, statusID uint) error {
	return tx.Model(&entity.Invoice{}).Where("id = ?", invoiceID).
		Update("invoice_status_id", statusID).Error
}

func (r *InvoiceRepository) GetStatusIDByName(name string) (uint, error) {
	var row struct{ ID uint }
	err := r.DB.Model(&entity.InvoiceStatus{}).
		Select("id").Where("status_name = ?", name).First(&row).Error
	return row.ID, err
}
