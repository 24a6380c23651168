package entity

import (
	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	Name        string `json:"name"`
	PlateNumber string `gorm:"uniqueIndex" json:"plateNumber"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`

	// amounts in minor currency units
	DayRate  int64 `json:"dayRate"`
	FlatRate int64 `json:"flatRate"`

	Available bool `gorm:"default:true" json:"available"`
	Featured  bool `gorm:"default:false" json:"featured"`

	// aggregates, maintained on review/booking writes
	RatingSum    int64 `json:"-"`
	ReviewCount  int64 `json:"reviewCount"`
	BookingCount int64 `json:"bookingCount"`

	Packages []Package `gorm:"many2many:vehicle_packages" json:"-"`
	Policies []Policy  `gorm:"many2many:vehicle_policies" json:"-"`
	Bookings []Booking `json:"-"`
	Reviews  []Review  `json:"-"`
}

func (v *Vehicle) AverageRating() float64 {
	if v.ReviewCount == 0 {
		return 0
	}
	return float64(v.RatingSum) / float64(v.ReviewCount)
}
