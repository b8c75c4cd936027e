package models

import "time"

// Message roles within a conversation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleFunction  = "function"
)

// FunctionCall is a structured request from the model to invoke a named
// capability with JSON arguments.
type FunctionCall struct {
	Name string                 `bson:"name" json:"name"`
	Args map[string]interface{} `bson:"args,omitempty" json:"args,omitempty"`
}

// Message is a single turn in a conversation. Messages are append-only;
// they are never mutated after creation.
type Message struct {
	ID               string                 `bson:"id" json:"id"`
	ConversationID   string                 `bson:"conversationId" json:"conversationId"`
	Role             string                 `bson:"role" json:"role"`
	Content          string                 `bson:"content" json:"content"`
	FunctionCall     *FunctionCall          `bson:"functionCall,omitempty" json:"functionCall,omitempty"`
	FunctionResponse map[string]interface{} `bson:"functionResponse,omitempty" json:"functionResponse,omitempty"`
	CreatedAt        time.Time              `bson:"createdAt" json:"createdAt"`
}

// Conversation is an ordered sequence of messages plus a title and the
// dialogue session bound to it. The title may be back-filled after creation;
// everything else is immutable.
type Conversation struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	SessionID string    `bson:"sessionId" json:"sessionId"`
	UserID    string    `bson:"userId" json:"userId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ChatRequest is the payload coming from the frontend into the chat endpoint.
type ChatRequest struct {
	Text string `json:"text" binding:"required"`
}

// ChatSession is the per-conversation memory of previously extracted, merged
// slots and the user's language preference. Created on the first successful
// extraction, updated on every subsequent one, never field-deleted.
type ChatSession struct {
	SessionID string    `bson:"sessionId" json:"sessionId"`
	Slots     Slots     `bson:"slots" json:"slots"`
	Language  string    `bson:"language,omitempty" json:"language,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
