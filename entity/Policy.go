package entity

import (
	"gorm.io/gorm"
)

// Policy is a textual term sheet (cancellation, insurance, fuel...)
// attachable to vehicles and packages.
type Policy struct {
	gorm.Model
	Kind     string `gorm:"index" json:"kind"` // cancellation | insurance | fuel | other
	Title    string `json:"title"`
	Body     string `json:"body"`
	Required bool   `gorm:"default:false" json:"required"`

	Vehicles []Vehicle `gorm:"many2many:vehicle_policies" json:"-"`
	Packages []Package `gorm:"many2many:package_policies" json:"-"`
}
