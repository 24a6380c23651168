package entity

import (
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	Rating  int    `json:"rating"` // 1..5
	Comment string `json:"comment"`

	UserID uint `json:"userId"`
	User   User `json:"-"`

	VehicleID uint    `gorm:"index" json:"vehicleId"`
	Vehicle   Vehicle `json:"-"`
}
