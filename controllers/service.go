// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"petcare-backend/models"
	"petcare-backend/repository"
	"petcare-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateServiceInput defines the expected JSON structure for creating a
// catalog entry. Exactly which rate applies depends on the service kind;
// both may not be negative.
type CreateServiceInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	HourlyRate  *float64 `json:"hourlyRate" binding:"omitempty,min=0"`
	DailyRate   *float64 `json:"dailyRate" binding:"omitempty,min=0"`
}

// UpdateServiceInput defines the expected JSON structure for updating a
// catalog entry
type UpdateServiceInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	HourlyRate  *float64 `json:"hourlyRate" binding:"omitempty,min=0"`
	DailyRate   *float64 `json:"dailyRate" binding:"omitempty,min=0"`
	IsActive    *bool    `json:"isActive"`
}

// ServiceController manages the service catalog. Every operation is
// admin-only, matching the upstream authorization model.
type ServiceController struct {
	store repository.Store
}

func NewServiceController(store repository.Store) *ServiceController {
	return &ServiceController{store: store}
}

func (sc *ServiceController) requireAdmin(c *gin.Context) bool {
	actor, ok := currentActor(c)
	if !ok {
		return false
	}
	if !actor.IsAdmin {
		utils.RespondWithError(c, http.StatusForbidden, "Only administrators can manage services")
		return false
	}
	return true
}

func (sc *ServiceController) Create(c *gin.Context) {
	if !sc.requireAdmin(c) {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		Name:        input.Name,
		Description: input.Description,
		HourlyRate:  input.HourlyRate,
		DailyRate:   input.DailyRate,
		IsActive:    true,
	}

	if err := sc.store.CreateService(c.Request.Context(), &service); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service.Serialize())
}

func (sc *ServiceController) List(c *gin.Context) {
	if !sc.requireAdmin(c) {
		return
	}

	services, err := sc.store.ListServices(c.Request.Context(), true)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	out := make([]map[string]interface{}, 0, len(services))
	for i := range services {
		out = append(out, services[i].Serialize())
	}
	c.JSON(http.StatusOK, out)
}

func (sc *ServiceController) Get(c *gin.Context) {
	if !sc.requireAdmin(c) {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	service, err := sc.store.ServiceByID(c.Request.Context(), id)
	if err != nil || !service.IsActive {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, service.Serialize())
}

func (sc *ServiceController) Update(c *gin.Context) {
	if !sc.requireAdmin(c) {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := sc.store.ServiceByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.HourlyRate != nil {
		service.HourlyRate = input.HourlyRate
	}
	if input.DailyRate != nil {
		service.DailyRate = input.DailyRate
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := sc.store.UpdateService(c.Request.Context(), service); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service.Serialize())
}

// Delete marks a service as inactive.
func (sc *ServiceController) Delete(c *gin.Context) {
	if !sc.requireAdmin(c) {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	service, err := sc.store.ServiceByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	service.IsActive = false
	if err := sc.store.UpdateService(c.Request.Context(), service); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate service")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deactivated successfully"})
}
