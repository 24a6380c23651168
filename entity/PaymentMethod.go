package entity

import (
	"gorm.io/gorm"
)

type PaymentMethod struct {
	gorm.Model
	MethodName string `gorm:"uniqueIndex" json:"methodName"`

	Payments []Payment `json:"-"`
}
