// File: services/intelligence/mock.go
package ai

import (
	"context"

	"estately/models"
)

// MockModelClient is a test double for ModelClient.
type MockModelClient struct {
	GenerateFunc     func(ctx context.Context, history []models.Message, userText string) (*ModelReply, error)
	StreamFunc       func(ctx context.Context, history []models.Message, emit ChunkWriter) (string, error)
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *MockModelClient) Generate(ctx context.Context, history []models.Message, userText string) (*ModelReply, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, history, userText)
	}
	return &ModelReply{Text: "mock reply"}, nil
}

func (m *MockModelClient) Stream(ctx context.Context, history []models.Message, emit ChunkWriter) (string, error) {
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, history, emit)
	}
	if err := emit("mock stream reply"); err != nil {
		return "", err
	}
	return "mock stream reply", nil
}

func (m *MockModelClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt)
	}
	return "mock title", nil
}
