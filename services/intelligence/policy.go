// File: services/intelligence/policy.go
package ai

import (
	"context"
	"strings"
	"time"

	"estately/models"
	"estately/utils"

	"go.uber.org/zap"
)

// DefaultAIService is the dialogue policy. Each turn starts from the model's
// extraction decision and ends in exactly one of: a free-text reply, a
// clarification request, a follow-up question for the single most important
// missing slot, or a property search result.
type DefaultAIService struct {
	Model    ModelClient
	Sessions SessionStore
	Dispatch *Dispatcher
	locks    *sessionLocks
}

func NewDefaultAIService(model ModelClient, sessions SessionStore, dispatch *Dispatcher) *DefaultAIService {
	return &DefaultAIService{
		Model:    model,
		Sessions: sessions,
		Dispatch: dispatch,
		locks:    newSessionLocks(),
	}
}

// StreamReply runs one dialogue turn. The model call is awaited before any
// dispatch because the function-call decision must be known first; session
// state is committed before the first chunk goes out.
func (s *DefaultAIService) StreamReply(ctx context.Context, sessionID string, history []models.Message, userText string, emit ChunkWriter) (string, error) {
	logger := utils.GetLogger()

	reply, err := s.Model.Generate(ctx, history, userText)
	if err != nil {
		return "", NewUpstreamError("model", err)
	}

	// Free-text answer, no function involved.
	if reply.Call == nil {
		if err := emit(reply.Text); err != nil {
			return reply.Text, err
		}
		return reply.Text, nil
	}

	logger.Debug("model requested function",
		zap.String("session", sessionID),
		zap.String("function", reply.Call.Name))

	if reply.Call.Name == FuncExtractSlots {
		return s.handleExtraction(ctx, sessionID, reply.Call.Args, emit)
	}

	// Any other function: dispatch, then hand the envelope back to the model
	// for a natural-language reply, streamed through.
	return s.handleFunctionRoundTrip(ctx, sessionID, history, userText, reply.Call, emit)
}

// handleExtraction is the slot-filling path: validate, merge, persist, then
// either ask the next question or search.
func (s *DefaultAIService) handleExtraction(ctx context.Context, sessionID string, args map[string]interface{}, emit ChunkWriter) (string, error) {
	logger := utils.GetLogger()

	ext, err := ParseExtraction(args)
	if err != nil {
		// Invalid extraction is terminal for this turn; no model retry.
		logger.Warn("extraction failed validation",
			zap.String("session", sessionID), zap.Error(err))
		if emitErr := emit(clarificationReply); emitErr != nil {
			return clarificationReply, emitErr
		}
		return clarificationReply, nil
	}

	merged, err := s.mergeAndPersist(ctx, sessionID, ext)
	if err != nil {
		return "", NewUpstreamError("session store", err)
	}

	if missing := MissingFields(merged); len(missing) > 0 {
		question := followUpQuestions[missing[0]]
		if err := emit(question); err != nil {
			return question, err
		}
		return question, nil
	}

	return s.searchAndRender(ctx, sessionID, merged, emit)
}

// mergeAndPersist runs the read-merge-write cycle under the session lock.
// The merged result is persisted unconditionally, even when incomplete.
func (s *DefaultAIService) mergeAndPersist(ctx context.Context, sessionID string, ext *Extraction) (models.Slots, error) {
	release := s.locks.acquire(sessionID)
	defer release()

	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return models.Slots{}, err
	}

	merged := MergeSlots(sess.Slots, ext.Slots)
	language := sess.Language
	if ext.Language != "" {
		language = ext.Language
	}

	if err := s.Sessions.Put(ctx, sessionID, merged, language); err != nil {
		return models.Slots{}, err
	}
	return merged, nil
}

// searchAndRender runs the property search for complete slots. Search
// failures degrade to an apology; they are never retried here.
func (s *DefaultAIService) searchAndRender(ctx context.Context, sessionID string, slots models.Slots, emit ChunkWriter) (string, error) {
	logger := utils.GetLogger()

	props, err := s.Dispatch.Search.Search(ctx, slots)
	if err != nil {
		logger.Error("property search failed",
			zap.String("session", sessionID), zap.Error(err))
		if emitErr := emit(searchApologyReply); emitErr != nil {
			return searchApologyReply, emitErr
		}
		return searchApologyReply, nil
	}

	if len(props) == 0 {
		if err := emit(noMatchReply); err != nil {
			return noMatchReply, err
		}
		return noMatchReply, nil
	}

	text := formatProperties(props)
	if err := emit(text); err != nil {
		return text, err
	}
	return text, nil
}

// handleFunctionRoundTrip dispatches a non-extraction function call and asks
// the model to phrase the result, forwarding its output chunk by chunk.
func (s *DefaultAIService) handleFunctionRoundTrip(ctx context.Context, sessionID string, history []models.Message, userText string, call *models.FunctionCall, emit ChunkWriter) (string, error) {
	if call.Args == nil {
		call.Args = map[string]interface{}{}
	}
	if call.Name == FuncSaveMemory {
		call.Args["session_id"] = sessionID
	}

	result := s.Dispatch.Dispatch(ctx, call.Name, call.Args)

	now := time.Now()
	augmented := append(append([]models.Message(nil), history...),
		models.Message{Role: models.RoleUser, Content: userText, CreatedAt: now},
		models.Message{Role: models.RoleAssistant, FunctionCall: call, CreatedAt: now},
		models.Message{
			Role:             models.RoleFunction,
			Content:          call.Name,
			FunctionResponse: result.Envelope(),
			CreatedAt:        now,
		},
	)

	text, err := s.Model.Stream(ctx, augmented, emit)
	if err != nil {
		return "", NewUpstreamError("model", err)
	}
	return text, nil
}

// GenerateTitle asks the model for a short conversation title.
func (s *DefaultAIService) GenerateTitle(ctx context.Context, firstMessage string) (string, error) {
	title, err := s.Model.GenerateText(ctx, titlePrompt(firstMessage))
	if err != nil {
		return "", NewUpstreamError("model", err)
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(title), `"`)), nil
}
