package handlers

import (
	"net/http"

	"estately/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateGuestSessionHandler issues a guest identity and a bearer token for
// it. The frontend calls this once and sends the token on every API call.
func CreateGuestSessionHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID := uuid.New().String()
	token, err := utils.GenerateToken(userID, utils.GuestTokenTTL)
	if err != nil {
		logger.Error("failed to issue guest token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create session", "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"userId": userID,
		"token":  token,
	})
}
