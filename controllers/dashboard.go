package controllers

import (
	"net/http"
	"time"

	"petcare-backend/models"
	"petcare-backend/repository"
	"petcare-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalUsers       int64                    `json:"totalUsers"`
	TotalPets        int64                    `json:"totalPets"`
	TotalBookings    int64                    `json:"totalBookings"`
	BookingsByStatus map[string]int64         `json:"bookingsByStatus"`
	MonthlyRevenue   float64                  `json:"monthlyRevenue"`
	TodayCheckIns    []map[string]interface{} `json:"todayCheckIns"`
	TodayCheckOuts   []map[string]interface{} `json:"todayCheckOuts"`
}

// DashboardController serves the administrator overview.
type DashboardController struct {
	store repository.Store
}

func NewDashboardController(store repository.Store) *DashboardController {
	return &DashboardController{store: store}
}

func (dc *DashboardController) Overview(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if !actor.IsAdmin {
		utils.RespondWithError(c, http.StatusForbidden, "Only administrators can view the dashboard")
		return
	}

	ctx := c.Request.Context()
	overview := DashboardOverview{BookingsByStatus: make(map[string]int64)}

	totalUsers, err := dc.store.CountUsers(ctx)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count users")
		return
	}
	overview.TotalUsers = totalUsers

	totalPets, err := dc.store.CountPets(ctx)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count pets")
		return
	}
	overview.TotalPets = totalPets

	for _, status := range []models.BookingStatus{
		models.BookingScheduled,
		models.BookingConfirmed,
		models.BookingCompleted,
		models.BookingCancelled,
	} {
		count, err := dc.store.CountBookingsByStatus(ctx, status)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count bookings")
			return
		}
		overview.BookingsByStatus[string(status)] = count
		overview.TotalBookings += count
	}

	// This month's completed payment revenue
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	revenue, err := dc.store.RevenueSince(ctx, firstOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute revenue")
		return
	}
	overview.MonthlyRevenue = revenue

	// Bookings checking in today
	today := utils.BeginningOfDay(now)
	checkIns, err := dc.store.BookingsStartingBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve check-ins")
		return
	}
	overview.TodayCheckIns = make([]map[string]interface{}, 0, len(checkIns))
	for i := range checkIns {
		overview.TodayCheckIns = append(overview.TodayCheckIns, map[string]interface{}{
			"id":      checkIns[i].ID,
			"petId":   checkIns[i].PetID,
			"startAt": utils.FormatBookingTime(checkIns[i].StartAt),
			"status":  checkIns[i].Status,
		})
	}

	// Bookings checking out today
	checkOuts, err := dc.store.BookingsEndingBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve check-outs")
		return
	}
	overview.TodayCheckOuts = make([]map[string]interface{}, 0, len(checkOuts))
	for i := range checkOuts {
		overview.TodayCheckOuts = append(overview.TodayCheckOuts, map[string]interface{}{
			"id":     checkOuts[i].ID,
			"petId":  checkOuts[i].PetID,
			"endAt":  utils.FormatBookingTime(checkOuts[i].EndAt),
			"status": checkOuts[i].Status,
		})
	}

	c.JSON(http.StatusOK, overview)
}
