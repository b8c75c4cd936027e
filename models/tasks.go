package models

// TitlePayload is the asynq task payload for best-effort conversation
// title generation.
type TitlePayload struct {
	ConversationID string `json:"conversationId"`
	FirstMessage   string `json:"firstMessage"`
}
