package convRepo

import (
	"estately/models"
)

// ConversationRepository defines methods for conversation and message data access.
type ConversationRepository interface {
	// Create inserts a new conversation record.
	Create(conv *models.Conversation) error
	// GetByID retrieves a conversation by its unique ID.
	GetByID(id string) (*models.Conversation, error)
	// ListByUser retrieves all conversations owned by a user, newest first.
	ListByUser(userID string) ([]models.Conversation, error)
	// UpdateTitle back-fills the title of an existing conversation.
	UpdateTitle(id, title string) error
	// Delete removes a conversation and cascades to its messages.
	Delete(id string) error
	// AppendMessage appends a message to its conversation.
	AppendMessage(msg *models.Message) error
	// GetMessages retrieves a conversation's messages in creation order.
	GetMessages(conversationID string) ([]models.Message, error)
	// CountMessages returns the number of messages in a conversation.
	CountMessages(conversationID string) (int64, error)
}
