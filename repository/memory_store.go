package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"petcare-backend/models"
	"petcare-backend/utils"

	"github.com/google/uuid"
)

// memoryStore is a map-backed Store used by the service tests and by local
// development when no database is configured. Transaction restores a snapshot
// on failure so rollback semantics match the GORM store.
type memoryStore struct {
	mu sync.RWMutex

	users    map[uuid.UUID]models.User
	pets     map[uuid.UUID]models.Pet
	services map[uuid.UUID]models.Service
	bookings map[uuid.UUID]models.Booking
	items    map[uuid.UUID]models.BookingItem
	payments map[uuid.UUID]models.Payment
	logs     map[uuid.UUID]models.ReminderLog

	// insertion order, used to keep newest-first listings stable when
	// CreatedAt timestamps collide
	seq  int64
	seqs map[uuid.UUID]int64
}

func NewMemoryStore() Store {
	return &memoryStore{
		users:    make(map[uuid.UUID]models.User),
		pets:     make(map[uuid.UUID]models.Pet),
		services: make(map[uuid.UUID]models.Service),
		bookings: make(map[uuid.UUID]models.Booking),
		items:    make(map[uuid.UUID]models.BookingItem),
		payments: make(map[uuid.UUID]models.Payment),
		logs:     make(map[uuid.UUID]models.ReminderLog),
		seqs:     make(map[uuid.UUID]int64),
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memoryStore) Transaction(ctx context.Context, fn func(Store) error) error {
	s.mu.Lock()
	users := copyMap(s.users)
	pets := copyMap(s.pets)
	services := copyMap(s.services)
	bookings := copyMap(s.bookings)
	items := copyMap(s.items)
	payments := copyMap(s.payments)
	logs := copyMap(s.logs)
	seqs := copyMap(s.seqs)
	seq := s.seq
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.users, s.pets, s.services = users, pets, services
		s.bookings, s.items, s.payments, s.logs = bookings, items, payments, logs
		s.seqs, s.seq = seqs, seq
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memoryStore) stamp(id uuid.UUID) {
	s.seq++
	s.seqs[id] = s.seq
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func ensureCreatedAt(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// --- users ---

func (s *memoryStore) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&u.ID)
	ensureCreatedAt(&u.CreatedAt)
	// mirror the BeforeCreate hook the GORM store runs
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	s.users[u.ID] = *u
	s.stamp(u.ID)
	return nil
}

func (s *memoryStore) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, u := range s.users {
		if u.IsActive {
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *memoryStore) UserByLogin(ctx context.Context, identifier string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, identifier) || strings.EqualFold(u.Email, identifier) {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore) UpdateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = *u
	return nil
}

func (s *memoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.sortNewestFirst(len(users), func(i int) uuid.UUID { return users[i].ID }, func(i, j int) {
		users[i], users[j] = users[j], users[i]
	})
	return users, nil
}

// --- pets ---

func (s *memoryStore) CreatePet(ctx context.Context, p *models.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&p.ID)
	ensureCreatedAt(&p.CreatedAt)
	s.pets[p.ID] = *p
	s.stamp(p.ID)
	return nil
}

func (s *memoryStore) CountPets(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, p := range s.pets {
		if p.IsActive {
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) PetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *memoryStore) ListPets(ctx context.Context, ownerID *uuid.UUID) ([]models.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var pets []models.Pet
	for _, p := range s.pets {
		if !p.IsActive {
			continue
		}
		if ownerID != nil && p.UserID != *ownerID {
			continue
		}
		pets = append(pets, p)
	}
	s.sortNewestFirst(len(pets), func(i int) uuid.UUID { return pets[i].ID }, func(i, j int) {
		pets[i], pets[j] = pets[j], pets[i]
	})
	return pets, nil
}

func (s *memoryStore) UpdatePet(ctx context.Context, p *models.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pets[p.ID] = *p
	return nil
}

// --- services ---

func (s *memoryStore) CreateService(ctx context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&svc.ID)
	ensureCreatedAt(&svc.CreatedAt)
	s.services[svc.ID] = *svc
	s.stamp(svc.ID)
	return nil
}

func (s *memoryStore) ServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.services[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &svc, nil
}

func (s *memoryStore) ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var services []models.Service
	for _, svc := range s.services {
		if activeOnly && !svc.IsActive {
			continue
		}
		services = append(services, svc)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services, nil
}

func (s *memoryStore) UpdateService(ctx context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = *svc
	return nil
}

// --- bookings ---

func (s *memoryStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&b.ID)
	ensureCreatedAt(&b.CreatedAt)
	for i := range b.Items {
		ensureID(&b.Items[i].ID)
		b.Items[i].BookingID = b.ID
		s.items[b.Items[i].ID] = b.Items[i]
	}
	s.bookings[b.ID] = *b
	s.stamp(b.ID)
	return nil
}

func (s *memoryStore) loadItems(b *models.Booking) {
	b.Items = nil
	for _, item := range s.items {
		if item.BookingID == b.ID {
			b.Items = append(b.Items, item)
		}
	}
	sort.Slice(b.Items, func(i, j int) bool {
		return s.seqs[b.Items[i].ID] < s.seqs[b.Items[j].ID]
	})
}

func (s *memoryStore) BookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.loadItems(&b)
	return &b, nil
}

func (s *memoryStore) ListBookings(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bookings []models.Booking
	for _, b := range s.bookings {
		if f.UserID != nil && b.UserID != *f.UserID {
			continue
		}
		if f.PetID != nil && b.PetID != *f.PetID {
			continue
		}
		if f.Status != nil && b.Status != *f.Status {
			continue
		}
		if f.ActiveOnly && !b.IsActive {
			continue
		}
		s.loadItems(&b)
		bookings = append(bookings, b)
	}
	s.sortNewestFirst(len(bookings), func(i int) uuid.UUID { return bookings[i].ID }, func(i, j int) {
		bookings[i], bookings[j] = bookings[j], bookings[i]
	})
	return bookings, nil
}

func (s *memoryStore) UpdateBooking(ctx context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *b
	stored.Items = nil
	stored.Payments = nil
	s.bookings[b.ID] = stored
	return nil
}

func (s *memoryStore) UpdateBookingItem(ctx context.Context, item *models.BookingItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = *item
	return nil
}

func (s *memoryStore) DeactivateBookingItems(ctx context.Context, bookingID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, item := range s.items {
		if item.BookingID == bookingID {
			item.IsActive = false
			s.items[id] = item
		}
	}
	return nil
}

func (s *memoryStore) CountBookingsByPet(ctx context.Context, petID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, b := range s.bookings {
		if b.PetID == petID {
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) LastBookingByPet(ctx context.Context, petID uuid.UUID) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var last *models.Booking
	for _, b := range s.bookings {
		if b.PetID != petID {
			continue
		}
		if last == nil || b.StartAt.After(last.StartAt) {
			booking := b
			last = &booking
		}
	}
	if last == nil {
		return nil, ErrNotFound
	}
	return last, nil
}

func (s *memoryStore) BookingsStartingBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bookings []models.Booking
	for _, b := range s.bookings {
		if !b.IsActive {
			continue
		}
		if b.Status != models.BookingScheduled && b.Status != models.BookingConfirmed {
			continue
		}
		if b.StartAt.Before(from) || !b.StartAt.Before(to) {
			continue
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].StartAt.Before(bookings[j].StartAt) })
	return bookings, nil
}

func (s *memoryStore) BookingsEndingBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bookings []models.Booking
	for _, b := range s.bookings {
		if !b.IsActive {
			continue
		}
		if b.Status != models.BookingScheduled && b.Status != models.BookingConfirmed {
			continue
		}
		if b.EndAt.Before(from) || !b.EndAt.Before(to) {
			continue
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].EndAt.Before(bookings[j].EndAt) })
	return bookings, nil
}

func (s *memoryStore) CountBookingsByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, b := range s.bookings {
		if b.Status == status {
			count++
		}
	}
	return count, nil
}

// --- payments ---

func (s *memoryStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&p.ID)
	ensureCreatedAt(&p.CreatedAt)
	s.payments[p.ID] = *p
	s.stamp(p.ID)
	return nil
}

func (s *memoryStore) PaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *memoryStore) ListPayments(ctx context.Context, f PaymentFilter) ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var payments []models.Payment
	for _, p := range s.payments {
		if f.BookingID != nil && p.BookingID != *f.BookingID {
			continue
		}
		if f.UserID != nil {
			b, ok := s.bookings[p.BookingID]
			if !ok || b.UserID != *f.UserID {
				continue
			}
		}
		payments = append(payments, p)
	}
	s.sortNewestFirst(len(payments), func(i int) uuid.UUID { return payments[i].ID }, func(i, j int) {
		payments[i], payments[j] = payments[j], payments[i]
	})
	return payments, nil
}

func (s *memoryStore) UpdatePayment(ctx context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[p.ID] = *p
	return nil
}

func (s *memoryStore) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var revenue float64
	for _, p := range s.payments {
		if p.Status == models.PaymentCompleted && p.PaidAt != nil && !p.PaidAt.Before(since) {
			revenue += p.Amount
		}
	}
	return revenue, nil
}

// --- reminders ---

func (s *memoryStore) CreateReminderLog(ctx context.Context, r *models.ReminderLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&r.ID)
	s.logs[r.ID] = *r
	s.stamp(r.ID)
	return nil
}

// sortNewestFirst orders a slice by descending insertion sequence.
func (s *memoryStore) sortNewestFirst(n int, id func(int) uuid.UUID, swap func(i, j int)) {
	sort.Sort(&seqSorter{n: n, id: id, swap: swap, seqs: s.seqs})
}

type seqSorter struct {
	n    int
	id   func(int) uuid.UUID
	swap func(i, j int)
	seqs map[uuid.UUID]int64
}

func (s *seqSorter) Len() int           { return s.n }
func (s *seqSorter) Swap(i, j int)      { s.swap(i, j) }
func (s *seqSorter) Less(i, j int) bool { return s.seqs[s.id(i)] > s.seqs[s.id(j)] }
