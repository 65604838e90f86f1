package controllers

import (
	"errors"
	"net/http"

	"petcare-backend/services"
	"petcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentActor resolves the caller identity placed in the context by the
// auth middleware. Responds 401 and returns false when it is missing.
func currentActor(c *gin.Context) (services.Actor, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return services.Actor{}, false
	}

	raw, ok := userID.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid user ID in context")
		return services.Actor{}, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return services.Actor{}, false
	}

	return services.Actor{UserID: id, IsAdmin: c.GetBool("isAdmin")}, true
}

// respondServiceError maps a services.Error to the standard error payload.
func respondServiceError(c *gin.Context, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		utils.RespondWithError(c, svcErr.Status, svcErr.Message)
		return
	}
	utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}
