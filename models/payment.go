package models

import (
	"time"

	"petcare-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentCancelled  PaymentStatus = "cancelled"
)

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentCancelled:
		return true
	}
	return false
}

// PaymentMethods is the fixed set of accepted payment methods.
var PaymentMethods = []string{"pix", "card", "boleto", "cash"}

func ValidPaymentMethod(m string) bool {
	for _, v := range PaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}

// Payment is one payment event tied to a booking. PaidAt is only set when the
// payment reaches the completed status.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null"`

	Reference string        `gorm:"uniqueIndex;not null"`
	Amount    float64       `gorm:"type:decimal(10,2);not null"`
	Status    PaymentStatus `gorm:"type:varchar(20);default:'pending'"`
	Method    string        `gorm:"type:varchar(50)"`
	PaidAt    *time.Time
	IsActive  bool `gorm:"default:true"`

	CreatedAt time.Time
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

func (p *Payment) Serialize() map[string]interface{} {
	var paidAt interface{}
	if p.PaidAt != nil {
		paidAt = utils.FormatBookingTime(*p.PaidAt)
	}
	return map[string]interface{}{
		"id":        p.ID,
		"bookingId": p.BookingID,
		"reference": p.Reference,
		"amount":    p.Amount,
		"status":    p.Status,
		"method":    p.Method,
		"paidAt":    paidAt,
		"isActive":  p.IsActive,
		"createdAt": utils.FormatBookingTime(p.CreatedAt),
	}
}
