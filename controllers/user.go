package controllers

import (
	"errors"
	"net/http"

	"petcare-backend/repository"
	"petcare-backend/utils"

	"github.com/gin-gonic/gin"
)

// UpdateProfileInput defines the expected JSON structure for updating the
// caller's own profile
type UpdateProfileInput struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	PostalCode *string `json:"postalCode"`
	Phone      *string `json:"phone"`
}

type UserController struct {
	store repository.Store
}

func NewUserController(store repository.Store) *UserController {
	return &UserController{store: store}
}

// List returns every user. Admin only.
func (uc *UserController) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if !actor.IsAdmin {
		utils.RespondWithError(c, http.StatusForbidden, "Only administrators can list users")
		return
	}

	users, err := uc.store.ListUsers(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	out := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		out = append(out, users[i].Serialize())
	}
	c.JSON(http.StatusOK, out)
}

func (uc *UserController) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if !actor.CanAccess(id) {
		utils.RespondWithError(c, http.StatusForbidden, "Access denied")
		return
	}

	user, err := uc.store.UserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, user.Serialize())
}

func (uc *UserController) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if !actor.CanAccess(id) {
		utils.RespondWithError(c, http.StatusForbidden, "Access denied")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	user, err := uc.store.UserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.PostalCode != nil {
		if !utils.ValidatePostalCode(*input.PostalCode) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid postal code. Expected format: 12345-678")
			return
		}
		user.PostalCode = *input.PostalCode
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
			return
		}
		user.Phone = *input.Phone
	}

	if err := uc.store.UpdateUser(c.Request.Context(), user); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, user.Serialize())
}

// Delete deactivates a user account. Admin only.
func (uc *UserController) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if !actor.IsAdmin {
		utils.RespondWithError(c, http.StatusForbidden, "Only administrators can deactivate users")
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := uc.store.UserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	user.IsActive = false
	if err := uc.store.UpdateUser(c.Request.Context(), user); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deactivated successfully"})
}
