package handlers

import (
	"net/http"

	"estately/services/chat"
	"estately/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConversationHandler exposes conversation CRUD endpoints.
type ConversationHandler struct {
	Service chat.ConversationService
}

func NewConversationHandler(service chat.ConversationService) *ConversationHandler {
	return &ConversationHandler{Service: service}
}

// requestUserID returns the guest user ID placed in context by the auth
// middleware.
func requestUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// CreateConversationHandler handles POST /api/conversations.
func (h *ConversationHandler) CreateConversationHandler(c *gin.Context) {
	logger := utils.GetLogger()

	conv, err := h.Service.CreateConversation(requestUserID(c))
	if err != nil {
		logger.Error("failed to create conversation", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create conversation", "")
		return
	}
	c.JSON(http.StatusCreated, conv)
}

// ListConversationsHandler handles GET /api/conversations.
func (h *ConversationHandler) ListConversationsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	convs, err := h.Service.ListConversations(requestUserID(c))
	if err != nil {
		logger.Error("failed to list conversations", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list conversations", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

// GetConversationHandler handles GET /api/conversations/:id.
func (h *ConversationHandler) GetConversationHandler(c *gin.Context) {
	id := c.Param("id")

	conv, msgs, err := h.Service.GetConversation(id)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Conversation not found", "")
		return
	}
	if conv.UserID != requestUserID(c) {
		utils.JSONError(c, http.StatusForbidden, "Not your conversation", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation": conv,
		"messages":     msgs,
	})
}

// DeleteConversationHandler handles DELETE /api/conversations/:id.
func (h *ConversationHandler) DeleteConversationHandler(c *gin.Context) {
	id := c.Param("id")

	conv, _, err := h.Service.GetConversation(id)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Conversation not found", "")
		return
	}
	if conv.UserID != requestUserID(c) {
		utils.JSONError(c, http.StatusForbidden, "Not your conversation", "")
		return
	}

	if err := h.Service.DeleteConversation(id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete conversation", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
