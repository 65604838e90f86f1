// Package repository defines the persistence boundary for the booking core.
// The GORM-backed store is used in production; the in-memory store backs the
// service tests and local development without a database.
package repository

import (
	"context"
	"errors"
	"time"

	"petcare-backend/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned by every lookup that matches no row.
var ErrNotFound = errors.New("record not found")

// BookingFilter narrows booking listings. Nil fields are ignored.
type BookingFilter struct {
	UserID     *uuid.UUID
	PetID      *uuid.UUID
	Status     *models.BookingStatus
	ActiveOnly bool
}

// PaymentFilter narrows payment listings. UserID scopes through the parent
// booking's owner.
type PaymentFilter struct {
	UserID    *uuid.UUID
	BookingID *uuid.UUID
}

// Store is the persistence surface consumed by the services layer. All
// multi-row mutations go through Transaction so partial writes are never
// observed.
type Store interface {
	// Transaction runs fn against a store bound to a single transaction and
	// rolls everything back if fn returns an error.
	Transaction(ctx context.Context, fn func(Store) error) error

	CreateUser(ctx context.Context, u *models.User) error
	CountUsers(ctx context.Context) (int64, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UserByLogin(ctx context.Context, identifier string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)

	CreatePet(ctx context.Context, p *models.Pet) error
	CountPets(ctx context.Context) (int64, error)
	PetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error)
	ListPets(ctx context.Context, ownerID *uuid.UUID) ([]models.Pet, error)
	UpdatePet(ctx context.Context, p *models.Pet) error

	CreateService(ctx context.Context, s *models.Service) error
	ServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error)
	UpdateService(ctx context.Context, s *models.Service) error

	CreateBooking(ctx context.Context, b *models.Booking) error
	BookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListBookings(ctx context.Context, f BookingFilter) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, b *models.Booking) error
	UpdateBookingItem(ctx context.Context, item *models.BookingItem) error
	DeactivateBookingItems(ctx context.Context, bookingID uuid.UUID) error
	CountBookingsByPet(ctx context.Context, petID uuid.UUID) (int64, error)
	LastBookingByPet(ctx context.Context, petID uuid.UUID) (*models.Booking, error)
	BookingsStartingBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	BookingsEndingBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	CountBookingsByStatus(ctx context.Context, status models.BookingStatus) (int64, error)

	CreatePayment(ctx context.Context, p *models.Payment) error
	PaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListPayments(ctx context.Context, f PaymentFilter) ([]models.Payment, error)
	UpdatePayment(ctx context.Context, p *models.Payment) error
	RevenueSince(ctx context.Context, since time.Time) (float64, error)

	CreateReminderLog(ctx context.Context, r *models.ReminderLog) error
}
