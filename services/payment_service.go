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

type CreatePaymentInput struct {
	BookingID uuid.UUID
	Amount    float64
	Method    string
	Status    *models.PaymentStatus
}

// UpdatePaymentInput patches a payment; nil fields are left untouched.
type UpdatePaymentInput struct {
	Amount *float64
	Method *string
	Status *models.PaymentStatus
}

type PaymentService interface {
	Create(ctx context.Context, actor Actor, in CreatePaymentInput) (*models.Payment, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Payment, error)
	List(ctx context.Context, actor Actor, bookingID *uuid.UUID) ([]models.Payment, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, in UpdatePaymentInput) (*models.Payment, error)
}

type paymentService struct {
	store repository.Store
}

func NewPaymentService(store repository.Store) PaymentService {
	return &paymentService{store: store}
}

func (s *paymentService) Create(ctx context.Context, actor Actor, in CreatePaymentInput) (*models.Payment, error) {
	if in.BookingID == uuid.Nil {
		return nil, NewValidationError("Booking is required")
	}
	if in.Amount <= 0 {
		return nil, NewValidationError("Amount must be greater than zero")
	}
	if !models.ValidPaymentMethod(in.Method) {
		return nil, NewValidationError("Invalid payment method")
	}
	status := models.PaymentPending
	if in.Status != nil {
		if !models.ValidPaymentStatus(*in.Status) {
			return nil, NewValidationError("Invalid payment status")
		}
		status = *in.Status
	}

	booking, err := s.store.BookingByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("Booking not found")
		}
		return nil, NewStorageError("payment create", err)
	}
	if !booking.IsActive || booking.Status == models.BookingCancelled {
		return nil, NewConflictError("Booking is cancelled")
	}
	if !actor.CanAccess(booking.UserID) {
		return nil, NewForbiddenError("Booking belongs to another user")
	}

	payment := &models.Payment{
		BookingID: booking.ID,
		Reference: "PAY-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6),
		Amount:    in.Amount,
		Status:    status,
		Method:    in.Method,
		IsActive:  true,
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if payment.Status == models.PaymentCompleted {
			now := time.Now()
			payment.PaidAt = &now
			if booking.Status == models.BookingScheduled {
				booking.Status = models.BookingConfirmed
				if err := tx.UpdateBooking(ctx, booking); err != nil {
					return err
				}
			}
		}
		return tx.CreatePayment(ctx, payment)
	})
	if err != nil {
		return nil, NewStorageError("payment create", err)
	}
	return payment, nil
}

func (s *paymentService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Payment, error) {
	payment, err := s.store.PaymentByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("Payment not found")
		}
		return nil, NewStorageError("payment get", err)
	}
	booking, err := s.store.BookingByID(ctx, payment.BookingID)
	if err != nil {
		return nil, NewStorageError("payment get", err)
	}
	if !actor.CanAccess(booking.UserID) {
		return nil, NewForbiddenError("Payment belongs to another user")
	}
	return payment, nil
}

func (s *paymentService) List(ctx context.Context, actor Actor, bookingID *uuid.UUID) ([]models.Payment, error) {
	filter := repository.PaymentFilter{BookingID: bookingID}
	if !actor.IsAdmin {
		filter.UserID = &actor.UserID
	}
	payments, err := s.store.ListPayments(ctx, filter)
	if err != nil {
		return nil, NewStorageError("payment list", err)
	}
	return payments, nil
}

func (s *paymentService) Update(ctx context.Context, actor Actor, id uuid.UUID, in UpdatePaymentInput) (*models.Payment, error) {
	if !actor.IsAdmin {
		return nil, NewForbiddenError("Only administrators can update payments")
	}

	payment, err := s.store.PaymentByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("Payment not found")
		}
		return nil, NewStorageError("payment update", err)
	}

	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, NewValidationError("Amount must be greater than zero")
		}
		payment.Amount = *in.Amount
	}
	if in.Method != nil {
		if !models.ValidPaymentMethod(*in.Method) {
			return nil, NewValidationError("Invalid payment method")
		}
		payment.Method = *in.Method
	}

	completing := false
	if in.Status != nil {
		if !models.ValidPaymentStatus(*in.Status) {
			return nil, NewValidationError("Invalid payment status")
		}
		completing = *in.Status == models.PaymentCompleted && payment.Status != models.PaymentCompleted
		payment.Status = *in.Status
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if completing {
			now := time.Now()
			payment.PaidAt = &now
			booking, err := tx.BookingByID(ctx, payment.BookingID)
			if err != nil {
				return err
			}
			if booking.Status == models.BookingScheduled {
				booking.Status = models.BookingConfirmed
				if err := tx.UpdateBooking(ctx, booking); err != nil {
					return err
				}
			}
		}
		return tx.UpdatePayment(ctx, payment)
	})
	if err != nil {
		return nil, NewStorageError("payment update", err)
	}
	return payment, nil
}
