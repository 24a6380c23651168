package services

import (
	"time"

	"github.com/shanmdahanayaka/vehicle-rental-backend/configs"
	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
	"github.com/shanmdahanayaka/vehicle-rental-backend/repository"

	"gorm.io/gorm"
)

type StatusIDs struct {
	Pending       uint
	Confirmed     uint
	Collected     uint
	Completed     uint
	Invoiced      uint
	PartiallyPaid uint
	Paid          uint
	Cancelled     uint
}

type InvoiceStatusIDs struct {
	Issued        uint
	PartiallyPaid uint
	Paid          uint
}

// Broadcaster tells open admin UIs to refetch. Delivery is best-effort.
type Broadcaster interface {
	Publish(resource string, id uint, action string)
}

type BookingService struct {
	DB      *gorm.DB
	Repo    *repository.BookingRepository
	InvRepo *repository.InvoiceRepository
	PayRepo *repository.PaymentRepository
	Cfg     *configs.Config
	Audit   *AuditService
	Notify  *Notifier
	Hub     Broadcaster

	Status    StatusIDs
	InvStatus InvoiceStatusIDs
}

func NewBookingService(
	db *gorm.DB,
	repo *repository.BookingRepository,
	invRepo *repository.InvoiceRepository,
	payRepo *repository.PaymentRepository,
	cfg *configs.Config,
	audit *AuditService,
	notify *Notifier,
	hub Broadcaster,
) *BookingService {
	s := &BookingService{
		DB: db, Repo: repo, InvRepo: invRepo, PayRepo: payRepo,
		Cfg: cfg, Audit: audit, Notify: notify, Hub: hub,
	}

	if id, err := repo.GetStatusIDByName(entity.BookingPending); err == nil {
		s.Status.Pending = id
	}
	if id, err := repo.GetStatusIDByName(entity.BookingConfirmed); err == nil {
		s.Status.Confirmed = id
	}
	if id, err := repo.GetStatusIDByName(entity.BookingCollected); err == nil {
		s.Status.Collected = id
	}
	if id, err := repo.GetStatusIDByName(entity.BookingCompleted); err == nil {
		s.Status.Completed = id
	}
	if id, err := repo.GetStatusIDByName(entity.BookingInvoiced); err == nil {
		s.Status.Invoiced = id
	}
	if id, err := repo.GetStatusIDByName(entity.BookingPartiallyPaid); err == nil {
		s.Status.PartiallyPaid = id
	}
	if id, err := repo.GetStatusIDByName(entity.BookingPaid); err == nil {
		s.Status.Paid = id
	}
	if id, err := repo.GetStatusIDByName(entity.BookingCancelled); err == nil {
		s.Status.Cancelled = id
	}

	if id, err := invRepo.GetStatusIDByName(entity.InvoiceIssued); err == nil {
		s.InvStatus.Issued = id
	}
	if id, err := invRepo.GetStatusIDByName(entity.InvoicePartiallyPaid); err == nil {
		s.InvStatus.PartiallyPaid = id
	}
	if id, err := invRepo.GetStatusIDByName(entity.InvoicePaid); err == nil {
		s.InvStatus.Paid = id
	}

	return s
}

func (s *BookingService) publish(resource string, id uint, action string) {
	if s.Hub != nil {
		s.Hub.Publish(resource, id, action)
	}
}

// liveStatusIDs are the stages during which the vehicle is tied up.
func (s *BookingService) liveStatusIDs() []uint {
	return []uint{s.Status.Pending, s.Status.Confirmed, s.Status.Collected}
}

// ----- DTOs from Controller -----

type CreateBookingReq struct {
	VehicleID       uint      `json:"vehicleId" binding:"required"`
	PackageID       *uint     `json:"packageId"`
	UseFlatRate     bool      `json:"useFlatRate"`
	StartDate       time.Time `json:"startDate" binding:"required"`
	EndDate         time.Time `json:"endDate" binding:"required"`
	PickupLocation  string    `json:"pickupLocation"`
	DropoffLocation string    `json:"dropoffLocation"`
}

type CreateBookingRes struct {
	ID             uint  `json:"id"`
	Days           int   `json:"days"`
	EstimatedTotal int64 `json:"estimatedTotal"`
}

// ----- Create -----

func (s *BookingService) Create(userID uint, req *CreateBookingReq) (*CreateBookingRes, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, invalid("endDate must be after startDate")
	}

	v, err := s.Repo.GetVehicleBasics(req.VehicleID)
	if err != nil {
		return nil, invalid("vehicle not found")
	}
	if !v.Available {
		return nil, invalid("vehicle not available")
	}

	var pkg *entity.Package
	if req.PackageID != nil {
		p, err := s.Repo.GetPackageBasics(*req.PackageID)
		if err != nil || !p.Active {
			return nil, invalid("package not found")
		}
		ok, err := s.Repo.PackageOfferedForVehicle(p.ID, v.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, invalid("package not offered for this vehicle")
		}
		pkg = &p
	}
	if req.UseFlatRate && req.PackageID == nil {
		return nil, invalid("useFlatRate requires a package booking")
	}

	busy, err := s.Repo.HasOverlap(req.VehicleID, req.StartDate, req.EndDate, s.liveStatusIDs())
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, invalid("vehicle already booked for these dates")
	}

	days := RentalDays(req.StartDate, req.EndDate)
	in := PriceInput{
		DayRate:      v.DayRate,
		FlatRate:     v.FlatRate,
		UseFlatRate:  req.UseFlatRate,
		Days:         days,
		FreeKmPerDay: s.Cfg.FreeKmPerDay,
		ExtraKmRate:  s.Cfg.ExtraKmRate,
	}
	if pkg != nil {
		in.PackageBase = pkg.BasePrice
		in.PackageDayPrice = pkg.DayPrice
	}
	est := Quote(in)

	var out CreateBookingRes
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		b := entity.Booking{
			UserID:          userID,
			VehicleID:       req.VehicleID,
			PackageID:       req.PackageID,
			UseFlatRate:     req.UseFlatRate,
			StartDate:       req.StartDate,
			EndDate:         req.EndDate,
			PickupLocation:  req.PickupLocation,
			DropoffLocation: req.DropoffLocation,
			BookingStatusID: s.Status.Pending,
		}
		if err := s.Repo.Create(tx, &b); err != nil {
			return err
		}
		if err := s.Repo.IncrementVehicleBookings(tx, req.VehicleID); err != nil {
			return err
		}
		out = CreateBookingRes{ID: b.ID, Days: days, EstimatedTotal: est.FinalAmount}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("bookings", out.ID, "created")
	return &out, nil
}

// ----- List & Detail -----

func (s *BookingService) ListForUser(userID uint, limit int) ([]repository.BookingSummary, error) {
	return s.Repo.ListForUser(userID, limit)
}

func (s *BookingService) DetailForUser(userID, bookingID uint) (*entity.Booking, error) {
	b, err := s.Repo.GetForUser(userID, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	return b, nil
}

type StaffBookingListOut struct {
	Items []repository.StaffBookingSummary `json:"items"`
	Total int64                            `json:"total"`
	Page  int                              `json:"page"`
	Limit int                              `json:"limit"`
}

func (s *BookingService) ListForStaff(statusID *uint, from, to *time.Time, page, limit int) (*StaffBookingListOut, error) {
	items, total, err := s.Repo.List(statusID, from, to, page, limit)
	if err != nil {
		return nil, err
	}
	return &StaffBookingListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *BookingService) Detail(bookingID uint) (*entity.Booking, error) {
	b, err := s.Repo.GetWithRelations(bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// CancelOwn lets a customer withdraw a booking that was never confirmed.
func (s *BookingService) CancelOwn(userID, bookingID uint) error {
	b, err := s.Repo.GetForUser(userID, bookingID)
	if err != nil {
		return ErrNotFound
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, b.ID, s.Status.Pending, s.Status.Cancelled)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrIllegalTransition
		}
		now := time.Now()
		return s.Repo.UpdateFields(tx, b.ID, map[string]any{
			"cancel_reason": "cancelled by customer",
			"cancelled_at":  &now,
		})
	})
	if err != nil {
		return err
	}

	s.Audit.Record(userID, "booking.cancel", "booking", b.ID, map[string]any{"reason": "cancelled by customer"})
	s.publish("bookings", b.ID, "cancelled")
	return nil
}
