package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petcare-backend/models"
	"petcare-backend/services"
	"petcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBookingService lets each test script the service behaviour.
type stubBookingService struct {
	createFn func(ctx context.Context, actor services.Actor, in services.CreateBookingInput) (*models.Booking, error)
	getFn    func(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.Booking, error)
	listFn   func(ctx context.Context, actor services.Actor, f services.BookingListFilter) ([]models.Booking, error)
	updateFn func(ctx context.Context, actor services.Actor, id uuid.UUID, in services.UpdateBookingInput) (*models.Booking, error)
	cancelFn func(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.Booking, error)
}

func (s *stubBookingService) Create(ctx context.Context, actor services.Actor, in services.CreateBookingInput) (*models.Booking, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubBookingService) Get(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.Booking, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubBookingService) List(ctx context.Context, actor services.Actor, f services.BookingListFilter) ([]models.Booking, error) {
	return s.listFn(ctx, actor, f)
}

func (s *stubBookingService) Update(ctx context.Context, actor services.Actor, id uuid.UUID, in services.UpdateBookingInput) (*models.Booking, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubBookingService) Cancel(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.Booking, error) {
	return s.cancelFn(ctx, actor, id)
}

// identity injects the caller into the gin context the way the auth
// middleware does.
func identity(userID uuid.UUID, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID.String())
		c.Set("isAdmin", isAdmin)
		c.Next()
	}
}

func bookingRouter(svc services.BookingService, userID uuid.UUID, isAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	bc := NewBookingController(svc)
	group := r.Group("/api", identity(userID, isAdmin))
	group.POST("/bookings", bc.Create)
	group.GET("/bookings", bc.List)
	group.GET("/bookings/:id", bc.Get)
	group.PUT("/bookings/:id", bc.Update)
	group.DELETE("/bookings/:id", bc.Cancel)
	return r
}

func sampleBooking(userID uuid.UUID) *models.Booking {
	start := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	return &models.Booking{
		ID:          uuid.New(),
		UserID:      userID,
		PetID:       uuid.New(),
		ServiceID:   uuid.New(),
		StartAt:     start,
		EndAt:       start.Add(6 * time.Hour),
		TotalAmount: 70,
		Status:      models.BookingScheduled,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
}

func TestBookingCreate_Handler(t *testing.T) {
	userID := uuid.New()
	booking := sampleBooking(userID)

	var gotActor services.Actor
	var gotInput services.CreateBookingInput
	svc := &stubBookingService{
		createFn: func(_ context.Context, actor services.Actor, in services.CreateBookingInput) (*models.Booking, error) {
			gotActor, gotInput = actor, in
			return booking, nil
		},
	}

	body, _ := json.Marshal(gin.H{
		"petId":     booking.PetID,
		"serviceId": booking.ServiceID,
		"start":     "14/09/2026 09:00",
		"end":       "14/09/2026 15:00",
		"notes":     "first visit",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	bookingRouter(svc, userID, false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, userID, gotActor.UserID)
	assert.False(t, gotActor.IsAdmin)
	assert.Equal(t, booking.PetID, gotInput.PetID)
	assert.Equal(t, "14/09/2026 09:00", gotInput.Start)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, booking.ID.String(), resp["id"])
	assert.Equal(t, utils.FormatBookingTime(booking.StartAt), resp["startAt"])
	assert.Equal(t, string(models.BookingScheduled), resp["status"])
}

func TestBookingCreate_MissingFields(t *testing.T) {
	svc := &stubBookingService{
		createFn: func(context.Context, services.Actor, services.CreateBookingInput) (*models.Booking, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	body, _ := json.Marshal(gin.H{"notes": "no pet or service"})
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	bookingRouter(svc, uuid.New(), false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingCreate_ServiceErrorStatusPropagates(t *testing.T) {
	svc := &stubBookingService{
		createFn: func(context.Context, services.Actor, services.CreateBookingInput) (*models.Booking, error) {
			return nil, services.NewForbiddenError("Pet belongs to another user")
		},
	}

	body, _ := json.Marshal(gin.H{
		"petId":     uuid.New(),
		"serviceId": uuid.New(),
		"start":     "14/09/2026 09:00",
		"end":       "14/09/2026 15:00",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	bookingRouter(svc, uuid.New(), false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Pet belongs to another user", resp["error"])
}

func TestBookingList_QueryFilters(t *testing.T) {
	userID := uuid.New()
	petID := uuid.New()

	var gotFilter services.BookingListFilter
	svc := &stubBookingService{
		listFn: func(_ context.Context, _ services.Actor, f services.BookingListFilter) ([]models.Booking, error) {
			gotFilter = f
			return []models.Booking{*sampleBooking(userID)}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bookings?status=scheduled&petId="+petID.String(), nil)
	w := httptest.NewRecorder()
	bookingRouter(svc, userID, false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotFilter.Status)
	assert.Equal(t, models.BookingScheduled, *gotFilter.Status)
	require.NotNil(t, gotFilter.PetID)
	assert.Equal(t, petID, *gotFilter.PetID)
}

func TestBookingList_InvalidStatus(t *testing.T) {
	svc := &stubBookingService{
		listFn: func(context.Context, services.Actor, services.BookingListFilter) ([]models.Booking, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bookings?status=paused", nil)
	w := httptest.NewRecorder()
	bookingRouter(svc, uuid.New(), false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingGet_BadID(t *testing.T) {
	svc := &stubBookingService{
		getFn: func(context.Context, services.Actor, uuid.UUID) (*models.Booking, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/not-a-uuid", nil)
	w := httptest.NewRecorder()
	bookingRouter(svc, uuid.New(), false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingCancel_Handler(t *testing.T) {
	userID := uuid.New()
	booking := sampleBooking(userID)

	svc := &stubBookingService{
		cancelFn: func(_ context.Context, _ services.Actor, id uuid.UUID) (*models.Booking, error) {
			assert.Equal(t, booking.ID, id)
			booking.Status = models.BookingCancelled
			booking.IsActive = false
			return booking, nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/"+booking.ID.String(), nil)
	w := httptest.NewRecorder()
	bookingRouter(svc, userID, false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingCancel_ConflictPropagates(t *testing.T) {
	svc := &stubBookingService{
		cancelFn: func(context.Context, services.Actor, uuid.UUID) (*models.Booking, error) {
			return nil, services.NewConflictError("Completed bookings cannot be cancelled")
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	bookingRouter(svc, uuid.New(), false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
