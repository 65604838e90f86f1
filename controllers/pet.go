package controllers

import (
	"errors"
	"net/http"

	"petcare-backend/models"
	"petcare-backend/repository"
	"petcare-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreatePetInput defines the expected JSON structure for registering a pet
type CreatePetInput struct {
	Name     string  `json:"name" binding:"required"`
	Breed    string  `json:"breed"`
	Age      int     `json:"age" binding:"min=0,max=30"`
	Sex      string  `json:"sex" binding:"omitempty,oneof=M F"`
	Weight   float64 `json:"weight" binding:"min=0,max=100"`
	Neutered bool    `json:"neutered"`
	Feeding  string  `json:"feeding"`
	Health   string  `json:"health"`
}

// UpdatePetInput defines the expected JSON structure for updating a pet
type UpdatePetInput struct {
	Name     *string  `json:"name"`
	Breed    *string  `json:"breed"`
	Age      *int     `json:"age" binding:"omitempty,min=0,max=30"`
	Sex      *string  `json:"sex" binding:"omitempty,oneof=M F"`
	Weight   *float64 `json:"weight" binding:"omitempty,min=0,max=100"`
	Neutered *bool    `json:"neutered"`
	Feeding  *string  `json:"feeding"`
	Health   *string  `json:"health"`
}

type PetController struct {
	store repository.Store
}

func NewPetController(store repository.Store) *PetController {
	return &PetController{store: store}
}

func (pc *PetController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input CreatePetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	pet := models.Pet{
		UserID:   actor.UserID,
		Name:     input.Name,
		Breed:    input.Breed,
		Age:      input.Age,
		Sex:      input.Sex,
		Weight:   input.Weight,
		Neutered: input.Neutered,
		Feeding:  input.Feeding,
		Health:   input.Health,
		IsActive: true,
	}

	if err := pc.store.CreatePet(c.Request.Context(), &pet); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create pet")
		return
	}

	c.JSON(http.StatusCreated, pet.Serialize())
}

// List returns the caller's active pets, or every active pet for admins,
// each annotated with its booking count and last booking.
func (pc *PetController) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	ownerID := &actor.UserID
	if actor.IsAdmin {
		ownerID = nil
	}

	pets, err := pc.store.ListPets(c.Request.Context(), ownerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve pets")
		return
	}

	out := make([]map[string]interface{}, 0, len(pets))
	for i := range pets {
		entry := pets[i].Serialize()

		count, err := pc.store.CountBookingsByPet(c.Request.Context(), pets[i].ID)
		if err == nil {
			entry["totalBookings"] = count
		}

		last, err := pc.store.LastBookingByPet(c.Request.Context(), pets[i].ID)
		if err == nil {
			entry["lastBooking"] = map[string]interface{}{
				"id":      last.ID,
				"startAt": utils.FormatBookingTime(last.StartAt),
				"status":  last.Status,
			}
		} else {
			entry["lastBooking"] = nil
		}

		out = append(out, entry)
	}

	c.JSON(http.StatusOK, out)
}

func (pc *PetController) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	pet, err := pc.store.PetByID(c.Request.Context(), id)
	if err != nil || !pet.IsActive {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		return
	}

	if !actor.CanAccess(pet.UserID) {
		utils.RespondWithError(c, http.StatusForbidden, "Pet belongs to another user")
		return
	}

	c.JSON(http.StatusOK, pet.Serialize())
}

func (pc *PetController) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input UpdatePetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	pet, err := pc.store.PetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !actor.CanAccess(pet.UserID) {
		utils.RespondWithError(c, http.StatusForbidden, "Pet belongs to another user")
		return
	}

	if input.Name != nil {
		pet.Name = *input.Name
	}
	if input.Breed != nil {
		pet.Breed = *input.Breed
	}
	if input.Age != nil {
		pet.Age = *input.Age
	}
	if input.Sex != nil {
		pet.Sex = *input.Sex
	}
	if input.Weight != nil {
		pet.Weight = *input.Weight
	}
	if input.Neutered != nil {
		pet.Neutered = *input.Neutered
	}
	if input.Feeding != nil {
		pet.Feeding = *input.Feeding
	}
	if input.Health != nil {
		pet.Health = *input.Health
	}

	if err := pc.store.UpdatePet(c.Request.Context(), pet); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update pet")
		return
	}

	c.JSON(http.StatusOK, pet.Serialize())
}

// Delete marks a pet as inactive.
func (pc *PetController) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	pet, err := pc.store.PetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !actor.CanAccess(pet.UserID) {
		utils.RespondWithError(c, http.StatusForbidden, "Pet belongs to another user")
		return
	}

	pet.IsActive = false
	if err := pc.store.UpdatePet(c.Request.Context(), pet); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete pet")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pet deactivated successfully"})
}
