package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"petcare-backend/models"
	"petcare-backend/repository"
	"petcare-backend/utils"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	Name       string `json:"name" binding:"required"`
	CPF        string `json:"cpf" binding:"required"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode" binding:"required"`
	Phone      string `json:"phone"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // username or email
	Password   string `json:"password" binding:"required"`
}

type AuthController struct {
	store   repository.Store
	revoked utils.RevocationStore
}

func NewAuthController(store repository.Store, revoked utils.RevocationStore) *AuthController {
	return &AuthController{store: store, revoked: revoked}
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateUsername(input.Username) {
		utils.RespondWithError(c, http.StatusBadRequest, "Username must be 4-20 characters of letters, digits and underscore")
		return
	}
	if !utils.ValidateCPF(input.CPF) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid CPF")
		return
	}
	if !utils.ValidatePostalCode(input.PostalCode) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid postal code. Expected format: 12345-678")
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}
	if ok, msg := utils.ValidatePassword(input.Password); !ok {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	// Check if username or email already exists
	if _, err := ac.store.UserByLogin(c.Request.Context(), input.Username); err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Username or email already registered")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if _, err := ac.store.UserByLogin(c.Request.Context(), input.Email); err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Username or email already registered")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	newUser := models.User{
		Username:   input.Username,
		Email:      input.Email,
		Password:   input.Password, // hashed on create
		Name:       input.Name,
		CPF:        input.CPF,
		Address:    input.Address,
		PostalCode: input.PostalCode,
		Phone:      input.Phone,
		IsActive:   true,
	}

	if err := ac.store.CreateUser(c.Request.Context(), &newUser); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String(), newUser.IsAdmin)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    newUser.Serialize(),
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	identifier := strings.TrimSpace(input.Identifier)

	user, err := ac.store.UserByLogin(c.Request.Context(), identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !user.IsActive || !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.IsAdmin)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	if err := ac.store.UpdateUser(c.Request.Context(), user); err != nil {
		log.Printf("Failed to record last login for user %s: %v", user.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.Serialize(),
	})
}

// Logout revokes the current token until it expires.
func (ac *AuthController) Logout(c *gin.Context) {
	jti := c.GetString("jti")
	if jti == "" {
		utils.RespondWithError(c, http.StatusUnauthorized, "Token ID not found in context")
		return
	}
	exp := time.Now().Add(24 * time.Hour)
	if v, exists := c.Get("tokenExp"); exists {
		if t, ok := v.(time.Time); ok {
			exp = t
		}
	}
	ac.revoked.Revoke(jti, exp)

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (ac *AuthController) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	user, err := ac.store.UserByID(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Serialize()})
}
