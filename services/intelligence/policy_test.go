package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"estately/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectChunks returns an emit func that appends every chunk to out.
func collectChunks(out *[]string) ChunkWriter {
	return func(chunk string) error {
		*out = append(*out, chunk)
		return nil
	}
}

// extractionReply builds a Generate response that requests slot extraction.
func extractionReply(slots map[string]interface{}) *ModelReply {
	return &ModelReply{Call: &models.FunctionCall{
		Name: FuncExtractSlots,
		Args: map[string]interface{}{
			"intent": models.IntentPropertyQuery,
			"slots":  slots,
		},
	}}
}

func newTestService(model ModelClient, searcher PropertySearcher) (*DefaultAIService, *InMemorySessionStore) {
	sessions := NewInMemorySessionStore()
	svc := NewDefaultAIService(model, sessions, newTestDispatcher(searcher))
	return svc, sessions
}

func TestStreamReplyFreeText(t *testing.T) {
	model := &MockModelClient{
		GenerateFunc: func(ctx context.Context, history []models.Message, userText string) (*ModelReply, error) {
			return &ModelReply{Text: "Hello! How can I help you find a home?"}, nil
		},
	}
	svc, _ := newTestService(model, &fakeSearcher{})

	var chunks []string
	text, err := svc.StreamReply(context.Background(), "s1", nil, "hi", collectChunks(&chunks))

	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help you find a home?", text)
	assert.Equal(t, []string{text}, chunks)
}

func TestStreamReplyIncompleteSlotsAsksOneQuestion(t *testing.T) {
	model := &MockModelClient{
		GenerateFunc: func(ctx context.Context, history []models.Message, userText string) (*ModelReply, error) {
			return extractionReply(map[string]interface{}{
				"category":   "residential",
				"type":       "flat",
				"location":   "Pune",
				"budget_min": 5000000.0,
			}), nil
		},
	}
	svc, sessions := newTestService(model, &fakeSearcher{})

	var chunks []string
	text, err := svc.StreamReply(context.Background(), "s1", nil, "flat in Pune above 50L", collectChunks(&chunks))

	require.NoError(t, err)
	assert.Equal(t, followUpQuestions[models.FieldAction], text, "asks only the highest-priority missing field")
	assert.Len(t, chunks, 1)

	// Partial slots were persisted even though the turn ended in a question.
	sess, err := sessions.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Pune", sess.Slots.Location)
	assert.Equal(t, models.TypeFlat, sess.Slots.Type)
}

func TestStreamReplyMergeAcrossTurns(t *testing.T) {
	turn := 0
	model := &MockModelClient{
		GenerateFunc: func(ctx context.Context, history []models.Message, userText string) (*ModelReply, error) {
			turn++
			if turn == 1 {
				return extractionReply(map[string]interface{}{
					"action":   "buy",
					"category": "residential",
					"type":     "flat",
				}), nil
			}
			// Second turn supplies only the two remaining fields.
			return extractionReply(map[string]interface{}{
				"location":   "Pune",
				"budget_max": 8000000.0,
			}), nil
		},
	}
	searcher := &fakeSearcher{results: []models.Property{
		{ID: "p1", Title: "2BHK in Kothrud", Location: "Kothrud", City: "Pune", Price: 7500000},
	}}
	svc, _ := newTestService(model, searcher)

	var first []string
	_, err := svc.StreamReply(context.Background(), "s1", nil, "buy a residential flat", collectChunks(&first))
	require.NoError(t, err)
	assert.Equal(t, followUpQuestions[models.FieldLocation], first[0])

	var second []string
	text, err := svc.StreamReply(context.Background(), "s1", nil, "in Pune, up to 80 lakh", collectChunks(&second))
	require.NoError(t, err)

	// Earlier fields survived the merge, so the search ran with all of them.
	require.NotNil(t, searcher.gotSlots)
	assert.Equal(t, models.ActionBuy, searcher.gotSlots.Action)
	assert.Equal(t, models.TypeFlat, searcher.gotSlots.Type)
	assert.Equal(t, "Pune", searcher.gotSlots.Location)
	assert.Contains(t, text, "2BHK in Kothrud")
}

func TestStreamReplyNoMatches(t *testing.T) {
	model := &MockModelClient{
		GenerateFunc: func(ctx context.Context, history []models.Message, userText string) (*ModelReply, error) {
			return extractionReply(map[string]interface{}{
				"action":     "rent",
				"category":   "commercial",
				"type":       "plot",
				"location":   "Antarctica",
				"budget_max": 100.0,
			}), nil
		},
	}
	svc, _ := newTestService(model, &fakeSearcher{results: nil})

	var chunks []string
	text, err := svc.StreamReply(context.Background(), "s1", nil, "anything", collectChunks(&chunks))

	require.NoError(t, err)
	assert.Equal(t, noMatchReply, text)
	assert.Equal(t, []string{noMatchReply}, chunks)
}

func TestStreamReplySearchFailureApologizes(t *testing.T) {
	model := &MockModelClient{
		GenerateFunc: func(ctx context.Context, history []models.Message, userText string) (*ModelReply, error) {
			return extractionReply(map[string]interface{}{
				"action":     "buy",
				"category":   "residential",
				"type":       "villa",
				"location":   "Lonavala",
				"budget_max": 30000000.0,
			}), nil
		},
	}
	svc, _ := newTestService(model, &fakeSearcher{err: errors.New("timeout")})

	var chunks []string
	text, err := svc.StreamReply(context.Background(), "s1", nil, "villa in Lonavala", collectChunks(&chunks))

	require.NoError(t, err, "search failure degrades to an apology, not a turn error")
	assert.Equal(t, searchApologyReply, text)
}

func TestStreamReplyInvalidExtractionClarifies(t *testing.T) {
	model := &MockModelClient{
		GenerateFunc: func(ctx context.Context, history []models.Message, userText string) (*ModelReply, error) {
			return extractionReply(map[string]interface{}{"action": "lease-to-own"}), nil
		},
	}
	svc, sessions := newTestService(model, &fakeSearcher{})

	var chunks []string
	text, err := svc.StreamReply(context.Background(), "s1", nil, "something odd", collectChunks(&chunks))

	require.NoError(t, err)
	assert.Equal(t, clarificationReply, text)

	// Nothing was persisted from the rejected extraction.
	sess, err := sessions.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, sess.Slots.IsEmpty())
}

func TestStreamReplyModelError(t *testing.T) {
	model := &MockModelClient{
		GenerateFunc: func(ctx context.Context, history []models.Message, userText string) (*ModelReply, error) {
			return nil, errors.New("quota exceeded")
		},
	}
	svc, _ := newTestService(model, &fakeSearcher{})

	var chunks []string
	_, err := svc.StreamReply(context.Background(), "s1", nil, "hi", collectChunks(&chunks))

	require.Error(t, err)
	var uerr *UpstreamError
	assert.ErrorAs(t, err, &uerr)
	assert.Empty(t, chunks, "no chunks emitted when the model call fails")
}

func TestStreamReplyFunctionRoundTrip(t *testing.T) {
	model := &MockModelClient{
		GenerateFunc: func(ctx context.Context, history []models.Message, userText string) (*ModelReply, error) {
			return &ModelReply{Call: &models.FunctionCall{
				Name: FuncSaveMemory,
				Args: map[string]interface{}{"note": "likes sea-facing flats"},
			}}, nil
		},
		StreamFunc: func(ctx context.Context, history []models.Message, emit ChunkWriter) (string, error) {
			// The augmented history ends with the function response envelope.
			last := history[len(history)-1]
			require.Equal(t, models.RoleFunction, last.Role)
			require.Equal(t, true, last.FunctionResponse["success"])

			for _, chunk := range []string{"Noted! ", "I'll remember that."} {
				if err := emit(chunk); err != nil {
					return "", err
				}
			}
			return "Noted! I'll remember that.", nil
		},
	}
	svc, _ := newTestService(model, &fakeSearcher{})

	var chunks []string
	text, err := svc.StreamReply(context.Background(), "s7", nil, "remember I like sea-facing flats", collectChunks(&chunks))

	require.NoError(t, err)
	assert.Equal(t, "Noted! I'll remember that.", text)
	assert.Equal(t, []string{"Noted! ", "I'll remember that."}, chunks)

	// The note landed under the caller's session, not a model-chosen one.
	notes, err := svc.Dispatch.Memories.List(context.Background(), "s7")
	require.NoError(t, err)
	assert.Equal(t, []string{"likes sea-facing flats"}, notes)
}

func TestStreamReplyUnknownFunctionStillAnswers(t *testing.T) {
	model := &MockModelClient{
		GenerateFunc: func(ctx context.Context, history []models.Message, userText string) (*ModelReply, error) {
			return &ModelReply{Call: &models.FunctionCall{Name: "book_viewing"}}, nil
		},
		StreamFunc: func(ctx context.Context, history []models.Message, emit ChunkWriter) (string, error) {
			last := history[len(history)-1]
			require.Equal(t, false, last.FunctionResponse["success"])
			require.Equal(t, "Unknown function: book_viewing", last.FunctionResponse["error"])

			reply := "I can't book viewings yet."
			if err := emit(reply); err != nil {
				return "", err
			}
			return reply, nil
		},
	}
	svc, _ := newTestService(model, &fakeSearcher{})

	text, err := svc.StreamReply(context.Background(), "s1", nil, "book a viewing", func(string) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, "I can't book viewings yet.", text)
}

func TestGenerateTitleTrimsQuotes(t *testing.T) {
	model := &MockModelClient{
		GenerateTextFunc: func(ctx context.Context, prompt string) (string, error) {
			assert.True(t, strings.Contains(prompt, "flat in Pune"))
			return "\"Flat hunt in Pune\"\n", nil
		},
	}
	svc, _ := newTestService(model, &fakeSearcher{})

	title, err := svc.GenerateTitle(context.Background(), "I want a flat in Pune")

	require.NoError(t, err)
	assert.Equal(t, "Flat hunt in Pune", title)
}

func TestFormatPropertiesBlocks(t *testing.T) {
	props := []models.Property{
		{Title: "2BHK in Baner", Location: "Baner", City: "Pune", Price: 7500000, AreaSqFt: 1100, Bedrooms: 2, Bathrooms: 2, Contact: "+91 98000 00000"},
		{Title: "Plot near highway", Location: "Wagholi", Price: 3200000},
	}

	text := formatProperties(props)

	assert.Contains(t, text, "I found 2 matching properties")
	assert.Contains(t, text, "1. 2BHK in Baner")
	assert.Contains(t, text, "Location: Baner, Pune")
	assert.Contains(t, text, "Bedrooms: 2")
	assert.Contains(t, text, "2. Plot near highway")
	assert.NotContains(t, strings.Split(text, "2. Plot")[1], "Bedrooms", "optional lines omitted when unknown")
}
