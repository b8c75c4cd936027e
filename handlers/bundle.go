// File: estately/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Guest session endpoint.
	CreateGuestSessionHandler gin.HandlerFunc

	// Conversation endpoints.
	CreateConversationHandler gin.HandlerFunc
	ListConversationsHandler  gin.HandlerFunc
	GetConversationHandler    gin.HandlerFunc
	DeleteConversationHandler gin.HandlerFunc

	// Chat endpoint (SSE).
	SendMessageHandler gin.HandlerFunc

	// Property endpoints.
	SearchPropertiesHandler gin.HandlerFunc
	AddPropertyHandler      gin.HandlerFunc
}
