package models

import (
	"time"

	"petcare-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Username   string    `gorm:"uniqueIndex;not null"`
	Email      string    `gorm:"uniqueIndex;not null"`
	Password   string    `gorm:"not null"`
	Name       string    `gorm:"not null"`
	CPF        string    `gorm:"column:cpf;type:varchar(14);uniqueIndex;not null"`
	Address    string
	PostalCode string `gorm:"type:varchar(9);not null"`
	Phone      string `gorm:"type:varchar(20)"`

	IsAdmin   bool `gorm:"default:false"`
	IsActive  bool `gorm:"default:true"`
	LastLogin *time.Time

	Pets     []Pet     `gorm:"foreignKey:UserID"`
	Bookings []Booking `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// Serialize returns the JSON shape of a user, never including the password hash.
func (u *User) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"name":       u.Name,
		"cpf":        u.CPF,
		"address":    u.Address,
		"postalCode": u.PostalCode,
		"phone":      u.Phone,
		"isAdmin":    u.IsAdmin,
		"isActive":   u.IsActive,
		"createdAt":  utils.FormatBookingTime(u.CreatedAt),
	}
}
