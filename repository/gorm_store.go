package repository

import (
	"context"
	"errors"
	"time"

	"petcare-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a GORM connection in the Store interface.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// --- users ---

func (s *gormStore) CreateUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *gormStore) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (s *gormStore) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &u, nil
}

func (s *gormStore) UserByLogin(ctx context.Context, identifier string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&u).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &u, nil
}

func (s *gormStore) UpdateUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Save(u).Error
}

func (s *gormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

// --- pets ---

func (s *gormStore) CreatePet(ctx context.Context, p *models.Pet) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *gormStore) CountPets(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Pet{}).
		Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (s *gormStore) PetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	var p models.Pet
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &p, nil
}

func (s *gormStore) ListPets(ctx context.Context, ownerID *uuid.UUID) ([]models.Pet, error) {
	q := s.db.WithContext(ctx).Where("is_active = ?", true)
	if ownerID != nil {
		q = q.Where("user_id = ?", *ownerID)
	}
	var pets []models.Pet
	err := q.Order("created_at DESC").Find(&pets).Error
	return pets, err
}

func (s *gormStore) UpdatePet(ctx context.Context, p *models.Pet) error {
	return s.db.WithContext(ctx).Save(p).Error
}

// --- services ---

func (s *gormStore) CreateService(ctx context.Context, svc *models.Service) error {
	return s.db.WithContext(ctx).Create(svc).Error
}

func (s *gormStore) ServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	if err := s.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &svc, nil
}

func (s *gormStore) ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	q := s.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var services []models.Service
	err := q.Order("name ASC").Find(&services).Error
	return services, err
}

func (s *gormStore) UpdateService(ctx context.Context, svc *models.Service) error {
	return s.db.WithContext(ctx).Save(svc).Error
}

// --- bookings ---

func (s *gormStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	// Items are created through the association in the same insert.
	return s.db.WithContext(ctx).Create(b).Error
}

func (s *gormStore) BookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := s.db.WithContext(ctx).Preload("Items").First(&b, "id = ?", id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &b, nil
}

func (s *gormStore) ListBookings(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	q := s.db.WithContext(ctx).Preload("Items")
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.PetID != nil {
		q = q.Where("pet_id = ?", *f.PetID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	var bookings []models.Booking
	err := q.Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

func (s *gormStore) UpdateBooking(ctx context.Context, b *models.Booking) error {
	return s.db.WithContext(ctx).Omit("Items", "Payments").Save(b).Error
}

func (s *gormStore) UpdateBookingItem(ctx context.Context, item *models.BookingItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *gormStore) DeactivateBookingItems(ctx context.Context, bookingID uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.BookingItem{}).
		Where("booking_id = ?", bookingID).
		Update("is_active", false).Error
}

func (s *gormStore) CountBookingsByPet(ctx context.Context, petID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("pet_id = ?", petID).Count(&count).Error
	return count, err
}

func (s *gormStore) LastBookingByPet(ctx context.Context, petID uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := s.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("start_at DESC").
		First(&b).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &b, nil
}

func (s *gormStore) BookingsStartingBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND status IN ? AND start_at >= ? AND start_at < ?",
			true, []models.BookingStatus{models.BookingScheduled, models.BookingConfirmed}, from, to).
		Order("start_at ASC").
		Find(&bookings).Error
	return bookings, err
}

func (s *gormStore) BookingsEndingBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND status IN ? AND end_at >= ? AND end_at < ?",
			true, []models.BookingStatus{models.BookingScheduled, models.BookingConfirmed}, from, to).
		Order("end_at ASC").
		Find(&bookings).Error
	return bookings, err
}

func (s *gormStore) CountBookingsByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

// --- payments ---

func (s *gormStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *gormStore) PaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var p models.Payment
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &p, nil
}

func (s *gormStore) ListPayments(ctx context.Context, f PaymentFilter) ([]models.Payment, error) {
	q := s.db.WithContext(ctx).Model(&models.Payment{})
	if f.BookingID != nil {
		q = q.Where("payments.booking_id = ?", *f.BookingID)
	}
	if f.UserID != nil {
		q = q.Joins("JOIN bookings ON bookings.id = payments.booking_id").
			Where("bookings.user_id = ?", *f.UserID)
	}
	var payments []models.Payment
	err := q.Order("payments.created_at DESC").Find(&payments).Error
	return payments, err
}

func (s *gormStore) UpdatePayment(ctx context.Context, p *models.Payment) error {
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *gormStore) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	var revenue float64
	err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ? AND paid_at >= ?", models.PaymentCompleted, since).
		Select("COALESCE(SUM(amount), 0)").Scan(&revenue).Error
	return revenue, err
}

// --- reminders ---

func (s *gormStore) CreateReminderLog(ctx context.Context, r *models.ReminderLog) error {
	return s.db.WithContext(ctx).Create(r).Error
}
