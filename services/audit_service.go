package services

import (
	"encoding/json"
	"log"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"

	"gorm.io/gorm"
)

type AuditService struct {
	DB *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{DB: db}
}

// Record appends an admin action. Best-effort: a failed write is logged and
// never blocks the action it describes.
func (s *AuditService) Record(actorID uint, action, resource string, resourceID uint, detail any) {
	payload := ""
	if detail != nil {
		if b, err := json.Marshal(detail); err == nil {
			payload = string(b)
		}
	}
	row := entity.AuditLog{
		ActorID:    actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Detail:     payload,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		log.Printf("audit write failed (%s %s/%d): %v", action, resource, resourceID, err)
	}
}
