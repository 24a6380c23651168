package repository

import (
	"time"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"

	"gorm.io/gorm"
)

type BookingRepository struct {
	DB *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

// ---------------- Bookings ----------------

func (r *BookingRepository) Create(tx *gorm.DB, b *entity.Booking) error {
	return tx.Create(b).Error
}

func (r *BookingRepository) Get(id uint) (*entity.Booking, error) {
	var b entity.Booking
	if err := r.DB.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetForUser(userID, id uint) (*entity.Booking, error) {
	var b entity.Booking
	if err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetWithRelations(id uint) (*entity.Booking, error) {
	var b entity.Booking
	err := r.DB.Preload("Vehicle").Preload("Package").Preload("User").
		Preload("Documents").Preload("BookingStatus").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GET /profile/bookings
type BookingSummary struct {
	ID              uint      `json:"id"`
	VehicleID       uint      `json:"vehicleId"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	BookingStatusID uint      `json:"bookingStatusId"`
	FinalAmount     *int64    `json:"finalAmount,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (r *BookingRepository) ListForUser(userID uint, limit int) ([]BookingSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []BookingSummary
	err := r.DB.Model(&entity.Booking{}).
		Select("id, vehicle_id, start_date, end_date, booking_status_id, final_amount, created_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

// GET /staff/bookings — joins users for the customer name
type StaffBookingSummary struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"userId"`
	CustomerName    string    `json:"customerName"`
	VehicleID       uint      `json:"vehicleId"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	BookingStatusID uint      `json:"bookingStatusId"`
	BalanceDue      *int64    `json:"balanceDue,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (r *BookingRepository) List(statusID *uint, from, to *time.Time, page, limit int) ([]StaffBookingSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	base := func() *gorm.DB {
		q := r.DB.Table("bookings AS b").Where("b.deleted_at IS NULL")
		if statusID != nil && *statusID != 0 {
			q = q.Where("b.booking_status_id = ?", *statusID)
		}
		if from != nil {
			q = q.Where("b.start_date >= ?", *from)
		}
		if to != nil {
			q = q.Where("b.start_date < ?", *to)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		ID              uint
		UserID          uint
		VehicleID       uint
		StartDate       time.Time
		EndDate         time.Time
		BookingStatusID uint
		BalanceDue      *int64
		CreatedAt       time.Time
		FirstName       string
		LastName        string
	}
	err := base().
		Select("b.id, b.user_id, b.vehicle_id, b.start_date, b.end_date, b.booking_status_id, b.balance_due, b.created_at, u.first_name, u.last_name").
		Joins("JOIN users u ON u.id = b.user_id").
		Order("b.id DESC").Limit(limit).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]StaffBookingSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, StaffBookingSummary{
			ID: row.ID, UserID: row.UserID,
			CustomerName:    row.FirstName + " " + row.LastName,
			VehicleID:       row.VehicleID,
			StartDate:       row.StartDate, EndDate: row.EndDate,
			BookingStatusID: row.BookingStatusID,
			BalanceDue:      row.BalanceDue,
			CreatedAt:       row.CreatedAt,
		})
	}
	return out, total, nil
}

// ---------------- Status transitions ----------------

// UpdateStatusGuard is a compare-and-set: the row moves from→to only if it
// is still in `from`. RowsAffected==0 means a lost race or illegal call.
func (r *BookingRepository) UpdateStatusGuard(tx *gorm.DB, bookingID, fromID, toID uint) (int64, error) {
	res := tx.Model(&entity.Booking{}).
		Where("id = ? AND booking_status_id = ?", bookingID, fromID).
		Update("booking_status_id", toID)
	return res.RowsAffected, res.Error
}

// CancelGuard moves to CANCELLED unless the booking already reached a
// terminal status.
func (r *BookingRepository) CancelGuard(tx *gorm.DB, bookingID uint, terminalIDs []uint, toID uint) (int64, error) {
	res := tx.Model(&entity.Booking{}).
		Where("id = ? AND booking_status_id NOT IN ?", bookingID, terminalIDs).
		Update("booking_status_id", toID)
	return res.RowsAffected, res.Error
}

// UpdateStatusIn moves to `toID` from any of `fromIDs`.
func (r *BookingRepository) UpdateStatusIn(tx *gorm.DB, bookingID uint, fromIDs []uint, toID uint) (int64, error) {
	res := tx.Model(&entity.Booking{}).
		Where("id = ? AND booking_status_id IN ?", bookingID, fromIDs).
		Update("booking_status_id", toID)
	return res.RowsAffected, res.Error
}

func (r *BookingRepository) UpdateFields(tx *gorm.DB, bookingID uint, fields map[string]any) error {
	return tx.Model(&entity.Booking{}).Where("id = ?", bookingID).Updates(fields).Error
}

// ---------------- Documents ----------------

func (r *BookingRepository) CreateDocument(tx *gorm.DB, d *entity.BookingDocument) error {
	return tx.Create(d).Error
}

// ---------------- Validations / Helpers ----------------

func (r *BookingRepository) GetVehicleBasics(id uint) (entity.Vehicle, error) {
	var v entity.Vehicle
	err := r.DB.Select("id, day_rate, flat_rate, available").First(&v, id).Error
	return v, err
}

func (r *BookingRepository) GetPackageBasics(id uint) (entity.Package, error) {
	var p entity.Package
	err := r.DB.Select("id, base_price, day_price, active").First(&p, id).Error
	return p, err
}

// PackageOfferedForVehicle checks the many2many join.
func (r *BookingRepository) PackageOfferedForVehicle(packageID, vehicleID uint) (bool, error) {
	var cnt int64
	err := r.DB.Table("vehicle_packages").
		Where("package_id = ? AND vehicle_id = ?", packageID, vehicleID).
		Count(&cnt).Error
	return cnt > 0, err
}

// HasOverlap reports whether the vehicle already has a live booking
// intersecting [start, end).
func (r *BookingRepository) HasOverlap(vehicleID uint, start, end time.Time, liveStatusIDs []uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Booking{}).
		Where("vehicle_id = ? AND booking_status_id IN ?", vehicleID, liveStatusIDs).
		Where("start_date < ? AND end_date > ?", end, start).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *BookingRepository) IncrementVehicleBookings(tx *gorm.DB, vehicleID uint) error {
	return tx.Model(&entity.Vehicle{}).Where("id = ?", vehicleID).
		Update("booking_count", gorm.Expr("booking_count + 1")).Error
}

func (r *BookingRepository) GetStatusIDByName(name string) (uint, error) {
	var row struct{ ID uint }
	err := r.DB.Model(&entity.BookingStatus{}).
		Select("id").Where("status_name = ?", name).First(&row).Error
	return row.ID, err
}
