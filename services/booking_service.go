package services

import (
	"context"
	"errors"
	"time"

	"petcare-backend/models"
	"petcare-backend/repository"
	"petcare-backend/utils"

	"github.com/google/uuid"
)

// CreateBookingInput carries a booking creation request. Start and End use
// the DD/MM/YYYY HH:MM format with minutes on the hour or half hour.
type CreateBookingInput struct {
	PetID     uuid.UUID
	ServiceID uuid.UUID
	Start     string
	End       string
	Notes     string
}

// UpdateBookingInput patches a booking; nil fields are left untouched.
// Supplying both Start and End, or changing the service while leaving the
// dates alone, triggers repricing.
type UpdateBookingInput struct {
	PetID       *uuid.UUID
	ServiceID   *uuid.UUID
	Start       *string
	End         *string
	Notes       *string
	Status      *models.BookingStatus
	TotalAmount *float64
}

// BookingListFilter narrows booking listings by status and pet.
type BookingListFilter struct {
	Status *models.BookingStatus
	PetID  *uuid.UUID
}

type BookingService interface {
	Create(ctx context.Context, actor Actor, in CreateBookingInput) (*models.Booking, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Booking, error)
	List(ctx context.Context, actor Actor, f BookingListFilter) ([]models.Booking, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, in UpdateBookingInput) (*models.Booking, error)
	Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*models.Booking, error)
}

type bookingService struct {
	store repository.Store
}

func NewBookingService(store repository.Store) BookingService {
	return &bookingService{store: store}
}

func (s *bookingService) Create(ctx context.Context, actor Actor, in CreateBookingInput) (*models.Booking, error) {
	if in.PetID == uuid.Nil || in.ServiceID == uuid.Nil {
		return nil, NewValidationError("Pet and service are required")
	}
	if in.Start == "" || in.End == "" {
		return nil, NewValidationError("Start and end times are required")
	}

	start, err := utils.ParseSlotTime(in.Start)
	if err != nil {
		return nil, NewValidationError("Start time: " + err.Error())
	}
	end, err := utils.ParseSlotTime(in.End)
	if err != nil {
		return nil, NewValidationError("End time: " + err.Error())
	}
	if start.Before(time.Now()) {
		return nil, NewValidationError("Start time must not be in the past")
	}
	if !start.Before(end) {
		return nil, NewValidationError("Start time must be before end time")
	}

	pet, err := s.store.PetByID(ctx, in.PetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("Pet not found")
		}
		return nil, NewStorageError("booking create", err)
	}
	if !pet.IsActive {
		return nil, NewNotFoundError("Pet not found")
	}
	if !actor.CanAccess(pet.UserID) {
		return nil, NewForbiddenError("Pet belongs to another user")
	}

	svc, err := s.store.ServiceByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("Service not found")
		}
		return nil, NewStorageError("booking create", err)
	}

	amount, err := PriceBooking(svc, start, end)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		UserID:      pet.UserID,
		PetID:       pet.ID,
		ServiceID:   svc.ID,
		StartAt:     start,
		EndAt:       end,
		Notes:       in.Notes,
		TotalAmount: amount,
		Status:      models.BookingScheduled,
		IsActive:    true,
		Items: []models.BookingItem{{
			ServiceID: svc.ID,
			Quantity:  1,
			UnitPrice: amount,
			IsActive:  true,
		}},
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		return tx.CreateBooking(ctx, booking)
	})
	if err != nil {
		return nil, NewStorageError("booking create", err)
	}
	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.store.BookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("Booking not found")
		}
		return nil, NewStorageError("booking get", err)
	}
	if !actor.CanAccess(booking.UserID) {
		return nil, NewForbiddenError("Booking belongs to another user")
	}
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, actor Actor, f BookingListFilter) ([]models.Booking, error) {
	filter := repository.BookingFilter{
		Status:     f.Status,
		PetID:      f.PetID,
		ActiveOnly: true,
	}
	if !actor.IsAdmin {
		filter.UserID = &actor.UserID
	}
	bookings, err := s.store.ListBookings(ctx, filter)
	if err != nil {
		return nil, NewStorageError("booking list", err)
	}
	return bookings, nil
}

func (s *bookingService) Update(ctx context.Context, actor Actor, id uuid.UUID, in UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.PetID != nil {
		pet, err := s.store.PetByID(ctx, *in.PetID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NewNotFoundError("Pet not found")
			}
			return nil, NewStorageError("booking update", err)
		}
		if !actor.CanAccess(pet.UserID) {
			return nil, NewForbiddenError("Pet belongs to another user")
		}
		booking.PetID = pet.ID
		booking.UserID = pet.UserID
	}

	serviceChanged := false
	if in.ServiceID != nil && *in.ServiceID != booking.ServiceID {
		svc, err := s.store.ServiceByID(ctx, *in.ServiceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NewNotFoundError("Service not found")
			}
			return nil, NewStorageError("booking update", err)
		}
		booking.ServiceID = svc.ID
		serviceChanged = true
	}

	if in.Start != nil {
		start, err := utils.ParseSlotTime(*in.Start)
		if err != nil {
			return nil, NewValidationError("Start time: " + err.Error())
		}
		booking.StartAt = start
	}
	if in.End != nil {
		end, err := utils.ParseSlotTime(*in.End)
		if err != nil {
			return nil, NewValidationError("End time: " + err.Error())
		}
		booking.EndAt = end
	}
	if !booking.StartAt.Before(booking.EndAt) {
		return nil, NewValidationError("Start time must be before end time")
	}

	if in.Notes != nil {
		booking.Notes = *in.Notes
	}
	cancelling := false
	if in.Status != nil && *in.Status != booking.Status {
		if !models.ValidBookingStatus(*in.Status) {
			return nil, NewValidationError("Invalid booking status")
		}
		if !models.ValidBookingTransition(booking.Status, *in.Status) {
			return nil, NewConflictError("Booking cannot move from " + string(booking.Status) + " to " + string(*in.Status))
		}
		booking.Status = *in.Status
		cancelling = booking.Status == models.BookingCancelled
	}

	datesSupplied := in.Start != nil && in.End != nil
	if datesSupplied || (serviceChanged && in.Start == nil && in.End == nil) {
		svc, err := s.store.ServiceByID(ctx, booking.ServiceID)
		if err != nil {
			return nil, NewStorageError("booking update", err)
		}
		amount, err := PriceBooking(svc, booking.StartAt, booking.EndAt)
		if err != nil {
			return nil, err
		}
		booking.TotalAmount = amount
	}

	// an explicit amount patch overrides the recomputed price
	if in.TotalAmount != nil {
		if *in.TotalAmount < 0 {
			return nil, NewValidationError("Amount must not be negative")
		}
		booking.TotalAmount = *in.TotalAmount
	}

	// a status patch to cancelled carries the full cancel semantics
	if cancelling {
		booking.IsActive = false
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.UpdateBooking(ctx, booking); err != nil {
			return err
		}
		if cancelling {
			return tx.DeactivateBookingItems(ctx, booking.ID)
		}
		// keep the mirrored line item in sync
		for i := range booking.Items {
			if !booking.Items[i].IsActive {
				continue
			}
			booking.Items[i].ServiceID = booking.ServiceID
			booking.Items[i].Quantity = 1
			booking.Items[i].UnitPrice = booking.TotalAmount
			if err := tx.UpdateBookingItem(ctx, &booking.Items[i]); err != nil {
				return err
			}
			break
		}
		return nil
	})
	if err != nil {
		return nil, NewStorageError("booking update", err)
	}
	if cancelling {
		for i := range booking.Items {
			booking.Items[i].IsActive = false
		}
	}
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if booking.Status == models.BookingCompleted {
		return nil, NewConflictError("Completed bookings cannot be cancelled")
	}
	if !booking.IsActive || booking.Status == models.BookingCancelled {
		return nil, NewConflictError("Booking is already cancelled")
	}

	booking.Status = models.BookingCancelled
	booking.IsActive = false

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.UpdateBooking(ctx, booking); err != nil {
			return err
		}
		return tx.DeactivateBookingItems(ctx, booking.ID)
	})
	if err != nil {
		return nil, NewStorageError("booking cancel", err)
	}
	for i := range booking.Items {
		booking.Items[i].IsActive = false
	}
	return booking, nil
}
