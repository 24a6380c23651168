package configs

import (
	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {

	// Migrate the schema
	db.AutoMigrate(
		&entity.User{}, &entity.Permission{},
		&entity.Vehicle{}, &entity.Package{}, &entity.Policy{},
		&entity.BookingStatus{}, &entity.Booking{}, &entity.BookingDocument{},
		&entity.InvoiceStatus{}, &entity.Invoice{}, &entity.InvoiceItem{},
		&entity.PaymentMethod{}, &entity.Payment{},
		&entity.Review{},
		&entity.AuditLog{},
	)
}
