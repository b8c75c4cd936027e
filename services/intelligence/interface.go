// File: services/intelligence/interface.go
package ai

import (
	"context"

	"estately/models"
)

// ChunkWriter receives reply text fragments in generation order.
type ChunkWriter func(chunk string) error

// ModelReply is the outcome of one language-model call: either free text or
// a structured function-call request, never both.
type ModelReply struct {
	Text string
	Call *models.FunctionCall
}

// ModelClient is the opaque language-model capability. Given role-tagged
// messages and the fixed function schemas it returns either a free-text reply
// or a request to invoke a named function with arguments.
type ModelClient interface {
	// Generate runs a completion with the function schemas attached.
	Generate(ctx context.Context, history []models.Message, userText string) (*ModelReply, error)

	// Stream runs a plain-text completion over the given history and forwards
	// fragments to emit as they are generated. Returns the full reply text.
	Stream(ctx context.Context, history []models.Message, emit ChunkWriter) (string, error)

	// GenerateText runs a one-shot prompt with no history or functions.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// SessionStore persists the merged slot set and language preference per
// dialogue session. Get returns a zero-value session on a miss, not an error.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.ChatSession, error)
	Put(ctx context.Context, sessionID string, slots models.Slots, language string) error
}

// MemoryStore persists free-form notes the model asks to remember.
type MemoryStore interface {
	Save(ctx context.Context, sessionID, note string) error
	List(ctx context.Context, sessionID string) ([]string, error)
}

// PropertySearcher is the downstream property-search collaborator.
type PropertySearcher interface {
	Search(ctx context.Context, slots models.Slots) ([]models.Property, error)
}

// AIService drives one dialogue turn: extraction, slot merging, completeness
// checking and either a follow-up question or a property search.
type AIService interface {
	// StreamReply runs one turn for the given session and forwards the reply
	// via emit, chunk by chunk in generation order. Returns the full reply.
	// Session state is committed before the first chunk is emitted, so a
	// dropped stream never leaves slots half-written.
	StreamReply(ctx context.Context, sessionID string, history []models.Message, userText string, emit ChunkWriter) (string, error)

	// GenerateTitle produces a short conversation title from the first user
	// message. Best effort only.
	GenerateTitle(ctx context.Context, firstMessage string) (string, error)
}
