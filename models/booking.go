package models

import (
	"time"

	"petcare-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingScheduled BookingStatus = "scheduled"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s is one of the known booking statuses.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingScheduled, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// ValidBookingTransition reports whether a booking may move from one status
// to another. Completed and cancelled are terminal; cancellation is only
// reachable from scheduled or confirmed.
func ValidBookingTransition(from, to BookingStatus) bool {
	switch from {
	case BookingScheduled:
		return to == BookingConfirmed || to == BookingCompleted || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCompleted || to == BookingCancelled
	}
	return false
}

// Booking is one scheduled occupation of a pet for a service over a time
// interval. Cancellation is a soft delete: IsActive is cleared, the status is
// set to cancelled and the line items are deactivated in the same transaction.
type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	PetID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null"`

	StartAt     time.Time     `gorm:"not null"`
	EndAt       time.Time     `gorm:"not null"`
	Notes       string        `gorm:"type:text"`
	TotalAmount float64       `gorm:"type:decimal(10,2)"`
	Status      BookingStatus `gorm:"type:varchar(20);default:'scheduled'"`
	IsActive    bool          `gorm:"default:true"`

	Items    []BookingItem `gorm:"foreignKey:BookingID"`
	Payments []Payment     `gorm:"foreignKey:BookingID"`

	CreatedAt time.Time
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// Total returns the stored amount, falling back to the sum of the active
// line items when no amount was stored.
func (b *Booking) Total() float64 {
	if b.TotalAmount > 0 {
		return b.TotalAmount
	}
	var sum float64
	for _, item := range b.Items {
		if item.IsActive {
			sum += float64(item.Quantity) * item.UnitPrice
		}
	}
	return sum
}

func (b *Booking) Serialize() map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(b.Items))
	for i := range b.Items {
		items = append(items, b.Items[i].Serialize())
	}
	return map[string]interface{}{
		"id":          b.ID,
		"userId":      b.UserID,
		"petId":       b.PetID,
		"serviceId":   b.ServiceID,
		"startAt":     utils.FormatBookingTime(b.StartAt),
		"endAt":       utils.FormatBookingTime(b.EndAt),
		"notes":       b.Notes,
		"totalAmount": b.Total(),
		"status":      b.Status,
		"isActive":    b.IsActive,
		"items":       items,
		"createdAt":   utils.FormatBookingTime(b.CreatedAt),
	}
}

// BookingItem is one priced component of a booking. The line total is
// Quantity times UnitPrice.
type BookingItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null"`

	Quantity  int     `gorm:"default:1"`
	UnitPrice float64 `gorm:"type:decimal(10,2);not null"`
	Notes     string  `gorm:"type:varchar(255)"`
	IsActive  bool    `gorm:"default:true"`
}

func (i *BookingItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

func (i *BookingItem) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":        i.ID,
		"bookingId": i.BookingID,
		"serviceId": i.ServiceID,
		"quantity":  i.Quantity,
		"unitPrice": i.UnitPrice,
		"total":     float64(i.Quantity) * i.UnitPrice,
		"notes":     i.Notes,
		"isActive":  i.IsActive,
	}
}
