// File: estately/handlers/chat.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"estately/models"
	"estately/services/chat"
	ai "estately/services/intelligence"
	"estately/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler streams assistant replies over SSE.
type ChatHandler struct {
	Conversations chat.ConversationService
	AI            ai.AIService
}

func NewChatHandler(conversations chat.ConversationService, aiSvc ai.AIService) *ChatHandler {
	return &ChatHandler{Conversations: conversations, AI: aiSvc}
}

// SendMessageHandler handles POST /api/conversations/:id/messages. The reply
// is streamed as SSE: ordered "chunk" events followed by "done", or "error"
// in place of normal completion.
func (h *ChatHandler) SendMessageHandler(c *gin.Context) {
	logger := utils.GetLogger()
	conversationID := c.Param("id")

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	conv, history, err := h.Conversations.GetConversation(conversationID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Conversation not found", "")
		return
	}
	if conv.UserID != requestUserID(c) {
		utils.JSONError(c, http.StatusForbidden, "Not your conversation", "")
		return
	}

	// The user message is committed before the turn runs; history passed to
	// the policy deliberately excludes it, the policy appends it itself.
	if _, err := h.Conversations.AppendUserMessage(conversationID, req.Text); err != nil {
		logger.Error("failed to persist user message",
			zap.String("conversation", conversationID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to store message", "")
		return
	}

	// Set SSE headers.
	c.Header("Content-Type", "text/event-stream; charset=utf-8")
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		utils.JSONError(c, http.StatusInternalServerError, "Streaming not supported", "")
		return
	}

	emit := func(chunk string) error {
		// Abandon generation when the client went away. Slot state was
		// already committed before streaming began.
		if err := c.Request.Context().Err(); err != nil {
			return err
		}
		sendSSE(c, "chunk", gin.H{"text": chunk})
		flusher.Flush()
		return nil
	}

	reply, err := h.AI.StreamReply(c.Request.Context(), conv.SessionID, history, req.Text, emit)
	if err != nil {
		logger.Error("dialogue turn failed",
			zap.String("conversation", conversationID), zap.Error(err))
		sendSSE(c, "error", gin.H{"error": "Something went wrong. Please try again."})
		flusher.Flush()
		return
	}

	if _, err := h.Conversations.AppendAssistantMessage(conversationID, reply); err != nil {
		logger.Error("failed to persist assistant message",
			zap.String("conversation", conversationID), zap.Error(err))
	}

	sendSSE(c, "done", nil)
	flusher.Flush()
}

// sendSSE sends a Server-Sent Event.
func sendSSE(c *gin.Context, event string, data any) {
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			fmt.Fprintf(c.Writer, "event: error\ndata: {\"error\": \"JSON marshal failed\"}\n\n")
			return
		}
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, string(jsonData))
	} else {
		fmt.Fprintf(c.Writer, "event: %s\ndata: {}\n\n", event)
	}
}
