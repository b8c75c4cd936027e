// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"fmt"
	"strings"

	"estately/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiClient implements ModelClient on top of the Gemini API. Two model
// handles are kept: one with the function schemas attached for dialogue
// turns, one plain for streaming follow-ups and titles.
type GeminiClient struct {
	toolModel *genai.GenerativeModel
	textModel *genai.GenerativeModel
}

func NewGeminiClient(apiKey, modelName string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	toolModel := client.GenerativeModel(modelName)
	toolModel.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	toolModel.Tools = functionSchemas()

	textModel := client.GenerativeModel(modelName)
	textModel.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	return &GeminiClient{toolModel: toolModel, textModel: textModel}
}

// Generate runs one completion with the function schemas attached and
// returns either free text or the first function call the model issued.
func (g *GeminiClient) Generate(ctx context.Context, history []models.Message, userText string) (*ModelReply, error) {
	cs := g.toolModel.StartChat()
	cs.History = toContents(history)

	resp, err := cs.SendMessage(ctx, genai.Text(userText))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.FunctionCall:
			return &ModelReply{Call: &models.FunctionCall{Name: p.Name, Args: p.Args}}, nil
		case genai.Text:
			sb.WriteString(string(p))
		}
	}
	return &ModelReply{Text: sb.String()}, nil
}

// Stream runs a plain completion over the history and forwards text chunks
// in generation order. The last history entry is sent as the message; the
// rest becomes chat history.
func (g *GeminiClient) Stream(ctx context.Context, history []models.Message, emit ChunkWriter) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("stream requires at least one message")
	}
	last := history[len(history)-1]

	cs := g.textModel.StartChat()
	cs.History = toContents(history[:len(history)-1])

	iter := cs.SendMessageStream(ctx, toParts(last)...)

	var sb strings.Builder
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return sb.String(), fmt.Errorf("gemini stream error: %w", err)
		}
		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					if err := emit(string(text)); err != nil {
						return sb.String(), err
					}
					sb.WriteString(string(text))
				}
			}
		}
	}
	return sb.String(), nil
}

// GenerateText runs a one-shot prompt, used for conversation titles.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.textModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// toContents converts stored messages into Gemini chat history.
func toContents(history []models.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := "user"
		switch msg.Role {
		case models.RoleAssistant:
			role = "model"
		case models.RoleFunction:
			role = "function"
		}
		contents = append(contents, &genai.Content{Role: role, Parts: toParts(msg)})
	}
	return contents
}

// toParts converts one stored message into Gemini parts.
func toParts(msg models.Message) []genai.Part {
	if msg.FunctionCall != nil {
		return []genai.Part{genai.FunctionCall{Name: msg.FunctionCall.Name, Args: msg.FunctionCall.Args}}
	}
	if msg.FunctionResponse != nil {
		return []genai.Part{genai.FunctionResponse{Name: msg.Content, Response: msg.FunctionResponse}}
	}
	return []genai.Part{genai.Text(msg.Content)}
}

// functionSchemas declares the four callable functions presented to the
// model on every dialogue turn.
func functionSchemas() []*genai.Tool {
	slotSchema := &genai.Schema{
		Type:        genai.TypeObject,
		Description: "Structured property requirements extracted from the message.",
		Properties: map[string]*genai.Schema{
			"action":     {Type: genai.TypeString, Enum: []string{models.ActionBuy, models.ActionRent}},
			"category":   {Type: genai.TypeString, Enum: []string{models.CategoryResidential, models.CategoryCommercial}},
			"type":       {Type: genai.TypeString, Enum: []string{models.TypeFlat, models.TypeVilla, models.TypePlot, models.TypeHouse}},
			"location":   {Type: genai.TypeString, Description: "City or area the user mentioned."},
			"budget_min": {Type: genai.TypeNumber},
			"budget_max": {Type: genai.TypeNumber},
		},
	}

	return []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        FuncExtractSlots,
				Description: "Extract the user's intent and any property requirements from their message.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"intent": {
							Type: genai.TypeString,
							Enum: []string{models.IntentPropertyQuery, models.IntentGeneralInfo, models.IntentFallback},
						},
						"slots":    slotSchema,
						"language": {Type: genai.TypeString, Description: "Two-letter language code of the message."},
					},
					Required: []string{"intent"},
				},
			},
			{
				Name:        FuncFetchProperties,
				Description: "Fetch property listings matching the given requirements.",
				Parameters: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: map[string]*genai.Schema{"slots": slotSchema},
				},
			},
			{
				Name:        FuncSearchWeb,
				Description: "Search the web for general information.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query": {Type: genai.TypeString},
					},
					Required: []string{"query"},
				},
			},
			{
				Name:        FuncSaveMemory,
				Description: "Remember a fact or preference the user shared for later in the conversation.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"note": {Type: genai.TypeString},
					},
					Required: []string{"note"},
				},
			},
		},
	}}
}
