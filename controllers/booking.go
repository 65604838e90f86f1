// controllers/booking.go
package controllers

import (
	"net/http"

	"petcare-backend/models"
	"petcare-backend/services"
	"petcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateBookingInput defines the expected JSON structure for creating a
// booking. Dates use the DD/MM/YYYY HH:MM format.
type CreateBookingInput struct {
	PetID     uuid.UUID `json:"petId" binding:"required"`
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Start     string    `json:"start" binding:"required"`
	End       string    `json:"end" binding:"required"`
	Notes     string    `json:"notes"`
}

// UpdateBookingInput defines the expected JSON structure for patching a
// booking
type UpdateBookingInput struct {
	PetID       *uuid.UUID            `json:"petId"`
	ServiceID   *uuid.UUID            `json:"serviceId"`
	Start       *string               `json:"start"`
	End         *string               `json:"end"`
	Notes       *string               `json:"notes"`
	Status      *models.BookingStatus `json:"status"`
	TotalAmount *float64              `json:"totalAmount"`
}

type BookingController struct {
	svc services.BookingService
}

func NewBookingController(svc services.BookingService) *BookingController {
	return &BookingController{svc: svc}
}

func (bc *BookingController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bc.svc.Create(c.Request.Context(), actor, services.CreateBookingInput{
		PetID:     input.PetID,
		ServiceID: input.ServiceID,
		Start:     input.Start,
		End:       input.End,
		Notes:     input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking.Serialize())
}

// List returns the caller's active bookings newest first, optionally
// filtered by ?status= and ?petId=.
func (bc *BookingController) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var filter services.BookingListFilter
	if raw := c.Query("status"); raw != "" {
		status := models.BookingStatus(raw)
		if !models.ValidBookingStatus(status) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking status")
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("petId"); raw != "" {
		petID, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid pet ID format")
			return
		}
		filter.PetID = &petID
	}

	bookings, err := bc.svc.List(c.Request.Context(), actor, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]map[string]interface{}, 0, len(bookings))
	for i := range bookings {
		out = append(out, bookings[i].Serialize())
	}
	c.JSON(http.StatusOK, out)
}

func (bc *BookingController) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	booking, err := bc.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking.Serialize())
}

func (bc *BookingController) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bc.svc.Update(c.Request.Context(), actor, id, services.UpdateBookingInput{
		PetID:       input.PetID,
		ServiceID:   input.ServiceID,
		Start:       input.Start,
		End:         input.End,
		Notes:       input.Notes,
		Status:      input.Status,
		TotalAmount: input.TotalAmount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking.Serialize())
}

// Cancel soft-deletes a booking and its line items.
func (bc *BookingController) Cancel(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := bc.svc.Cancel(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}
