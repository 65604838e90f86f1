package models

import (
	"time"

	"petcare-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a catalog entry. Pricing uses HourlyRate or DailyRate depending
// on the service kind; both are nullable and the pricing engine rejects
// ambiguous configurations.
type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name        string    `gorm:"not null"`
	Description string
	HourlyRate  *float64 `gorm:"type:decimal(10,2)"`
	DailyRate   *float64 `gorm:"type:decimal(10,2)"`
	IsActive    bool     `gorm:"default:true"`

	Items []BookingItem `gorm:"foreignKey:ServiceID"`

	CreatedAt time.Time
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (s *Service) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":          s.ID,
		"name":        s.Name,
		"description": s.Description,
		"hourlyRate":  s.HourlyRate,
		"dailyRate":   s.DailyRate,
		"isActive":    s.IsActive,
		"createdAt":   utils.FormatBookingTime(s.CreatedAt),
	}
}
