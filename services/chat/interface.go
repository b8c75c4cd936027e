package chat

import (
	"estately/models"
)

// ConversationService manages conversations and their append-only messages.
type ConversationService interface {
	// CreateConversation starts a new conversation for a user, binding a
	// fresh dialogue session to it.
	CreateConversation(userID string) (*models.Conversation, error)
	// GetConversation returns a conversation with its messages.
	GetConversation(id string) (*models.Conversation, []models.Message, error)
	// ListConversations returns a user's conversations, newest first.
	ListConversations(userID string) ([]models.Conversation, error)
	// DeleteConversation removes a conversation and its messages.
	DeleteConversation(id string) error
	// AppendUserMessage records a user message; the first one enqueues
	// best-effort title generation.
	AppendUserMessage(conversationID, text string) (*models.Message, error)
	// AppendAssistantMessage records the assistant's reply.
	AppendAssistantMessage(conversationID, text string) (*models.Message, error)
}
