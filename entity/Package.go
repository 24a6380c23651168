package entity

import (
	"gorm.io/gorm"
)

// Package is an optional add-on bundle (driver, insurance, child seat...)
// priced as a one-off base amount, a per-day amount, or both.
type Package struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	BasePrice   int64  `json:"basePrice"`
	DayPrice    int64  `json:"dayPrice"`
	Active      bool   `gorm:"default:true" json:"active"`

	Vehicles []Vehicle `gorm:"many2many:vehicle_packages" json:"-"`
	Policies []Policy  `gorm:"many2many:package_policies" json:"-"`
}
