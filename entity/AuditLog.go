package entity

import (
	"gorm.io/gorm"
)

// AuditLog is append-only: rows are created, never updated or deleted.
type AuditLog struct {
	gorm.Model
	ActorID    uint   `gorm:"index" json:"actorId"`
	Action     string `gorm:"index" json:"action"` // e.g. booking.confirm
	Resource   string `json:"resource"`
	ResourceID uint   `json:"resourceId"`
	Detail     string `json:"detail"` // free-form JSON payload
}
