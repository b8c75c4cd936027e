package chat

import (
	"fmt"
	"time"

	convRepo "estately/database/repository/conversation"
	"estately/models"
	"estately/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TitleEnqueuer schedules best-effort conversation title generation.
type TitleEnqueuer interface {
	EnqueueTitle(conversationID, firstMessage string) error
}

// DefaultConversationService implements ConversationService on top of the
// conversation repository.
type DefaultConversationService struct {
	Repo   convRepo.ConversationRepository
	Titles TitleEnqueuer
}

// CreateConversation starts a new conversation. Each conversation gets its
// own dialogue session identifier, generated once and never changed.
func (s *DefaultConversationService) CreateConversation(userID string) (*models.Conversation, error) {
	conv := &models.Conversation{
		ID:        uuid.New().String(),
		Title:     "New conversation",
		SessionID: uuid.New().String(),
		UserID:    userID,
	}
	if err := s.Repo.Create(conv); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// GetConversation returns a conversation with its messages in order.
func (s *DefaultConversationService) GetConversation(id string) (*models.Conversation, []models.Message, error) {
	conv, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	msgs, err := s.Repo.GetMessages(id)
	if err != nil {
		return nil, nil, err
	}
	return conv, msgs, nil
}

// ListConversations returns a user's conversations, newest first.
func (s *DefaultConversationService) ListConversations(userID string) ([]models.Conversation, error) {
	return s.Repo.ListByUser(userID)
}

// DeleteConversation removes a conversation; the repository cascades to its
// messages. The bound session expires with the conversation's lifetime.
func (s *DefaultConversationService) DeleteConversation(id string) error {
	return s.Repo.Delete(id)
}

// AppendUserMessage records a user message. The first user message of a
// conversation triggers title generation in the background; failures there
// are logged and dropped.
func (s *DefaultConversationService) AppendUserMessage(conversationID, text string) (*models.Message, error) {
	count, err := s.Repo.CountMessages(conversationID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Role:           models.RoleUser,
		Content:        text,
		CreatedAt:      time.Now(),
	}
	if err := s.Repo.AppendMessage(msg); err != nil {
		return nil, fmt.Errorf("append user message: %w", err)
	}

	if count == 0 && s.Titles != nil {
		if err := s.Titles.EnqueueTitle(conversationID, text); err != nil {
			utils.GetLogger().Warn("failed to enqueue title task",
				zap.String("conversation", conversationID), zap.Error(err))
		}
	}
	return msg, nil
}

// AppendAssistantMessage records the assistant's reply.
func (s *DefaultConversationService) AppendAssistantMessage(conversationID, text string) (*models.Message, error) {
	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Role:           models.RoleAssistant,
		Content:        text,
		CreatedAt:      time.Now(),
	}
	if err := s.Repo.AppendMessage(msg); err != nil {
		return nil, fmt.Errorf("append assistant message: %w", err)
	}
	return msg, nil
}
