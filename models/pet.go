package models

import (
	"time"

	"petcare-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pet struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name     string `gorm:"not null"`
	Breed    string
	Age      int
	Sex      string `gorm:"type:varchar(1)"` // M or F
	Weight   float64
	Neutered bool `gorm:"default:false"`
	Feeding  string
	Health   string
	IsActive bool `gorm:"default:true"`

	Bookings []Booking `gorm:"foreignKey:PetID"`

	CreatedAt time.Time
}

func (p *Pet) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

func (p *Pet) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":        p.ID,
		"userId":    p.UserID,
		"name":      p.Name,
		"breed":     p.Breed,
		"age":       p.Age,
		"sex":       p.Sex,
		"weight":    p.Weight,
		"neutered":  p.Neutered,
		"feeding":   p.Feeding,
		"health":    p.Health,
		"isActive":  p.IsActive,
		"createdAt": utils.FormatBookingTime(p.CreatedAt),
	}
}
