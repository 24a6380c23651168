package configs

import (
	"log"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
	"golang.org/x/crypto/bcrypt"
)

// first-boot super admin
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      entity.RoleSuperAdmin,
		Status:    entity.UserActive,
	}
	return db.Create(&admin).Error
}

// Seed lookup/status tables and role permission defaults
func SeedLookups() error {
	db := DB()

	// Booking lifecycle
	for _, s := range []string{
		entity.BookingPending, entity.BookingConfirmed, entity.BookingCollected,
		entity.BookingCompleted, entity.BookingInvoiced, entity.BookingPartiallyPaid,
		entity.BookingPaid, entity.BookingCancelled,
	} {
		db.FirstOrCreate(&entity.BookingStatus{}, entity.BookingStatus{StatusName: s})
	}

	// Invoice
	for _, s := range []string{entity.InvoiceIssued, entity.InvoicePartiallyPaid, entity.InvoicePaid} {
		db.FirstOrCreate(&entity.InvoiceStatus{}, entity.InvoiceStatus{StatusName: s})
	}

	// Payment methods
	db.FirstOrCreate(&entity.PaymentMethod{}, entity.PaymentMethod{MethodName: "Cash"})
	db.FirstOrCreate(&entity.PaymentMethod{}, entity.PaymentMethod{MethodName: "Card"})
	db.FirstOrCreate(&entity.PaymentMethod{}, entity.PaymentMethod{MethodName: "Bank Transfer"})

	// Role permission defaults; user-specific overrides are created via the
	// admin API and win over these rows.
	defaults := []entity.Permission{
		{Key: entity.PermBookingsManage, Role: entity.RoleManager, Allowed: true},
		{Key: entity.PermInvoicesManage, Role: entity.RoleManager, Allowed: true},
		{Key: entity.PermVehiclesManage, Role: entity.RoleManager, Allowed: true},
		{Key: entity.PermBookingsManage, Role: entity.RoleAdmin, Allowed: true},
		{Key: entity.PermInvoicesManage, Role: entity.RoleAdmin, Allowed: true},
		{Key: entity.PermVehiclesManage, Role: entity.RoleAdmin, Allowed: true},
		{Key: entity.PermUsersManage, Role: entity.RoleAdmin, Allowed: true},
		{Key: entity.PermAuditView, Role: entity.RoleAdmin, Allowed: true},
	}
	for _, p := range defaults {
		db.Where(&entity.Permission{Key: p.Key, Role: p.Role}).
			Where("user_id IS NULL").
			Attrs(entity.Permission{Allowed: p.Allowed}).
			FirstOrCreate(&p)
	}

	log.Println("lookup tables seeded")
	return nil
}
