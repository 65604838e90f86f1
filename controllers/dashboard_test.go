package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petcare-backend/models"
	"petcare-backend/repository"
	"petcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardRouter(store repository.Store, userID uuid.UUID, isAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	dc := NewDashboardController(store)
	r.GET("/api/dashboard", identity(userID, isAdmin), dc.Overview)
	return r
}

func TestDashboardOverview(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()

	owner := models.User{Username: "ana_souza", Email: "ana@example.com", Password: "Secret#123", IsActive: true}
	require.NoError(t, store.CreateUser(ctx, &owner))
	pet := models.Pet{UserID: owner.ID, Name: "Rex", IsActive: true}
	require.NoError(t, store.CreatePet(ctx, &pet))

	noon := utils.BeginningOfDay(time.Now()).Add(12 * time.Hour)

	arriving := &models.Booking{
		UserID: owner.ID, PetID: pet.ID, ServiceID: uuid.New(),
		StartAt: noon, EndAt: noon.Add(24 * time.Hour),
		Status: models.BookingScheduled, IsActive: true,
	}
	require.NoError(t, store.CreateBooking(ctx, arriving))

	leaving := &models.Booking{
		UserID: owner.ID, PetID: pet.ID, ServiceID: uuid.New(),
		StartAt: noon.Add(-24 * time.Hour), EndAt: noon,
		Status: models.BookingConfirmed, IsActive: true,
	}
	require.NoError(t, store.CreateBooking(ctx, leaving))

	paidAt := time.Now()
	require.NoError(t, store.CreatePayment(ctx, &models.Payment{
		BookingID: leaving.ID, Reference: "PAY-1", Amount: 90,
		Status: models.PaymentCompleted, PaidAt: &paidAt, Method: "pix", IsActive: true,
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	w := httptest.NewRecorder()
	dashboardRouter(store, uuid.New(), true).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 1.0, resp["totalUsers"])
	assert.Equal(t, 1.0, resp["totalPets"])
	assert.Equal(t, 2.0, resp["totalBookings"])
	assert.Equal(t, 90.0, resp["monthlyRevenue"])

	byStatus, ok := resp["bookingsByStatus"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1.0, byStatus["scheduled"])
	assert.Equal(t, 1.0, byStatus["confirmed"])

	checkIns, ok := resp["todayCheckIns"].([]interface{})
	require.True(t, ok)
	require.Len(t, checkIns, 1)
	first := checkIns[0].(map[string]interface{})
	assert.Equal(t, arriving.ID.String(), first["id"])

	checkOuts, ok := resp["todayCheckOuts"].([]interface{})
	require.True(t, ok)
	require.Len(t, checkOuts, 1)
	last := checkOuts[0].(map[string]interface{})
	assert.Equal(t, leaving.ID.String(), last["id"])
	assert.Equal(t, utils.FormatBookingTime(leaving.EndAt), last["endAt"])
}

func TestDashboardOverview_AdminOnly(t *testing.T) {
	store := repository.NewMemoryStore()

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	w := httptest.NewRecorder()
	dashboardRouter(store, uuid.New(), false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
