// controllers/payment.go
package controllers

import (
	"net/http"

	"petcare-backend/models"
	"petcare-backend/services"
	"petcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreatePaymentInput defines the expected JSON structure for recording a
// payment
type CreatePaymentInput struct {
	BookingID uuid.UUID             `json:"bookingId" binding:"required"`
	Amount    float64               `json:"amount" binding:"required"`
	Method    string                `json:"method" binding:"required"`
	Status    *models.PaymentStatus `json:"status"`
}

// UpdatePaymentInput defines the expected JSON structure for updating a
// payment
type UpdatePaymentInput struct {
	Amount *float64              `json:"amount"`
	Method *string               `json:"method"`
	Status *models.PaymentStatus `json:"status"`
}

type PaymentController struct {
	svc services.PaymentService
}

func NewPaymentController(svc services.PaymentService) *PaymentController {
	return &PaymentController{svc: svc}
}

func (pc *PaymentController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	payment, err := pc.svc.Create(c.Request.Context(), actor, services.CreatePaymentInput{
		BookingID: input.BookingID,
		Amount:    input.Amount,
		Method:    input.Method,
		Status:    input.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment.Serialize())
}

// List returns payments visible to the caller, optionally filtered by
// ?bookingId=.
func (pc *PaymentController) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var bookingID *uuid.UUID
	if raw := c.Query("bookingId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
			return
		}
		bookingID = &id
	}

	payments, err := pc.svc.List(c.Request.Context(), actor, bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]map[string]interface{}, 0, len(payments))
	for i := range payments {
		out = append(out, payments[i].Serialize())
	}
	c.JSON(http.StatusOK, out)
}

func (pc *PaymentController) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	payment, err := pc.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment.Serialize())
}

func (pc *PaymentController) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input UpdatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	payment, err := pc.svc.Update(c.Request.Context(), actor, id, services.UpdatePaymentInput{
		Amount: input.Amount,
		Method: input.Method,
		Status: input.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment.Serialize())
}
