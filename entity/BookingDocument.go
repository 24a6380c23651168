package entity

import (
	"gorm.io/gorm"
)

// BookingDocument references a file uploaded at collection (licence copy,
// signed handover sheet...). Stored on disk, referenced by URL only.
type BookingDocument struct {
	gorm.Model
	BookingID uint   `gorm:"index" json:"bookingId"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Size      int64  `json:"size"`
}
