package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"petcare-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBooking(t *testing.T, store Store) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		UserID:    uuid.New(),
		PetID:     uuid.New(),
		ServiceID: uuid.New(),
		StartAt:   time.Now().Add(24 * time.Hour),
		EndAt:     time.Now().Add(30 * time.Hour),
		Status:    models.BookingScheduled,
		IsActive:  true,
		Items: []models.BookingItem{{
			Quantity:  1,
			UnitPrice: 70,
			IsActive:  true,
		}},
	}
	require.NoError(t, store.CreateBooking(context.Background(), booking))
	return booking
}

func TestMemoryStore_NotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.UserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.BookingByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.PaymentByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_TransactionRollback(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	booking := seedBooking(t, store)

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx Store) error {
		b, err := tx.BookingByID(ctx, booking.ID)
		if err != nil {
			return err
		}
		b.Status = models.BookingCancelled
		b.IsActive = false
		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}
		if err := tx.CreatePayment(ctx, &models.Payment{BookingID: b.ID, Amount: 50, Status: models.PaymentPending, Method: "pix", IsActive: true}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// every write inside the failed transaction is rolled back
	stored, err := store.BookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingScheduled, stored.Status)
	assert.True(t, stored.IsActive)

	payments, err := store.ListPayments(ctx, PaymentFilter{BookingID: &booking.ID})
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestMemoryStore_TransactionCommit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	booking := seedBooking(t, store)

	err := store.Transaction(ctx, func(tx Store) error {
		b, err := tx.BookingByID(ctx, booking.ID)
		if err != nil {
			return err
		}
		b.Status = models.BookingConfirmed
		return tx.UpdateBooking(ctx, b)
	})
	require.NoError(t, err)

	stored, err := store.BookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
}

func TestMemoryStore_BookingItemsPersist(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	booking := seedBooking(t, store)

	stored, err := store.BookingByID(ctx, booking.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, booking.ID, stored.Items[0].BookingID)
	assert.Equal(t, 70.0, stored.Items[0].UnitPrice)

	require.NoError(t, store.DeactivateBookingItems(ctx, booking.ID))
	stored, err = store.BookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.False(t, stored.Items[0].IsActive)
}

func TestMemoryStore_ListBookingsNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	first := seedBooking(t, store)
	second := seedBooking(t, store)
	third := seedBooking(t, store)

	bookings, err := store.ListBookings(context.Background(), BookingFilter{})
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	assert.Equal(t, third.ID, bookings[0].ID)
	assert.Equal(t, second.ID, bookings[1].ID)
	assert.Equal(t, first.ID, bookings[2].ID)
}

func TestMemoryStore_BookingsStartingBetween(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tomorrow := time.Now().Add(24 * time.Hour)
	inWindow := &models.Booking{
		UserID: uuid.New(), PetID: uuid.New(), ServiceID: uuid.New(),
		StartAt: tomorrow, EndAt: tomorrow.Add(6 * time.Hour),
		Status: models.BookingScheduled, IsActive: true,
	}
	require.NoError(t, store.CreateBooking(ctx, inWindow))

	cancelled := &models.Booking{
		UserID: uuid.New(), PetID: uuid.New(), ServiceID: uuid.New(),
		StartAt: tomorrow, EndAt: tomorrow.Add(6 * time.Hour),
		Status: models.BookingCancelled, IsActive: false,
	}
	require.NoError(t, store.CreateBooking(ctx, cancelled))

	nextWeek := &models.Booking{
		UserID: uuid.New(), PetID: uuid.New(), ServiceID: uuid.New(),
		StartAt: tomorrow.Add(7 * 24 * time.Hour), EndAt: tomorrow.Add(7*24*time.Hour + 6*time.Hour),
		Status: models.BookingScheduled, IsActive: true,
	}
	require.NoError(t, store.CreateBooking(ctx, nextWeek))

	found, err := store.BookingsStartingBetween(ctx, tomorrow.Add(-time.Hour), tomorrow.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, inWindow.ID, found[0].ID)
}

func TestMemoryStore_BookingsEndingBetween(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tomorrow := time.Now().Add(24 * time.Hour)
	endingSoon := &models.Booking{
		UserID: uuid.New(), PetID: uuid.New(), ServiceID: uuid.New(),
		StartAt: tomorrow.Add(-24 * time.Hour), EndAt: tomorrow,
		Status: models.BookingConfirmed, IsActive: true,
	}
	require.NoError(t, store.CreateBooking(ctx, endingSoon))

	endingLater := &models.Booking{
		UserID: uuid.New(), PetID: uuid.New(), ServiceID: uuid.New(),
		StartAt: tomorrow, EndAt: tomorrow.Add(3 * 24 * time.Hour),
		Status: models.BookingScheduled, IsActive: true,
	}
	require.NoError(t, store.CreateBooking(ctx, endingLater))

	found, err := store.BookingsEndingBetween(ctx, tomorrow.Add(-time.Hour), tomorrow.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, endingSoon.ID, found[0].ID)
}

func TestMemoryStore_RevenueSince(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	booking := seedBooking(t, store)

	now := time.Now()
	lastMonth := now.AddDate(0, -1, 0)

	recent := &models.Payment{BookingID: booking.ID, Reference: "PAY-1", Amount: 100, Status: models.PaymentCompleted, Method: "pix", PaidAt: &now, IsActive: true}
	old := &models.Payment{BookingID: booking.ID, Reference: "PAY-2", Amount: 40, Status: models.PaymentCompleted, Method: "pix", PaidAt: &lastMonth, IsActive: true}
	pending := &models.Payment{BookingID: booking.ID, Reference: "PAY-3", Amount: 25, Status: models.PaymentPending, Method: "pix", IsActive: true}
	require.NoError(t, store.CreatePayment(ctx, recent))
	require.NoError(t, store.CreatePayment(ctx, old))
	require.NoError(t, store.CreatePayment(ctx, pending))

	revenue, err := store.RevenueSince(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 100.0, revenue)
}

func TestMemoryStore_UserByLogin(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	user := &models.User{Username: "ana_souza", Email: "ana@example.com", Password: "Secret#123", IsActive: true}
	require.NoError(t, store.CreateUser(ctx, user))

	byUsername, err := store.UserByLogin(ctx, "ANA_SOUZA")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	byEmail, err := store.UserByLogin(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = store.UserByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
