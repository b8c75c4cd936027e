// File: services/intelligence/functions.go
package ai

import (
	"context"
	"fmt"
	"strings"
)

// The closed set of functions the model may request.
const (
	FuncExtractSlots    = "extract_intent_and_slots"
	FuncFetchProperties = "fetch_properties"
	FuncSearchWeb       = "search_web"
	FuncSaveMemory      = "save_memory"
)

// Result is the uniform envelope every function handler returns. Callers
// branch on Success instead of inspecting error types.
type Result struct {
	Success bool
	Payload map[string]interface{}
	Error   string
}

func okResult(payload map[string]interface{}) Result {
	return Result{Success: true, Payload: payload}
}

func errResult(format string, args ...interface{}) Result {
	return Result{Success: false, Error: fmt.Sprintf(format, args...)}
}

// Envelope flattens the result into the {success, ...payload | error} shape
// fed back to the model as a function response.
func (r Result) Envelope() map[string]interface{} {
	env := map[string]interface{}{"success": r.Success}
	if !r.Success {
		env["error"] = r.Error
		return env
	}
	for k, v := range r.Payload {
		env[k] = v
	}
	return env
}

// Dispatcher routes a model-issued function call by name. Unknown names yield
// a tagged failure result, never a panic that aborts the caller.
type Dispatcher struct {
	Search   PropertySearcher
	Memories MemoryStore
}

// Dispatch validates the arguments for the named function and runs it. Each
// handler validates its own argument shape before doing any work.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]interface{}) Result {
	switch name {
	case FuncExtractSlots:
		return d.extractIntentAndSlots(args)
	case FuncFetchProperties:
		return d.fetchProperties(ctx, args)
	case FuncSearchWeb:
		return d.searchWeb(args)
	case FuncSaveMemory:
		return d.saveMemory(ctx, args)
	default:
		return errResult("Unknown function: %s", name)
	}
}

func (d *Dispatcher) extractIntentAndSlots(args map[string]interface{}) Result {
	ext, err := ParseExtraction(args)
	if err != nil {
		return errResult("%v", err)
	}
	return okResult(map[string]interface{}{
		"intent": ext.Intent,
		"slots":  ext.Slots,
	})
}

func (d *Dispatcher) fetchProperties(ctx context.Context, args map[string]interface{}) Result {
	raw, _ := args["slots"].(map[string]interface{})
	if raw == nil {
		// Tolerate flat argument shape.
		raw = args
	}
	slots, err := ParseSlots(raw)
	if err != nil {
		return errResult("%v", err)
	}

	props, err := d.Search.Search(ctx, slots)
	if err != nil {
		return errResult("property search failed: %v", err)
	}
	return okResult(map[string]interface{}{
		"properties": props,
		"count":      len(props),
	})
}

// searchWeb is a stub. Real web search is out of scope; the capability exists
// only so the model gets a well-formed answer instead of an unknown-function
// failure.
func (d *Dispatcher) searchWeb(args map[string]interface{}) Result {
	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return errResult("search_web requires a non-empty query")
	}
	return okResult(map[string]interface{}{
		"result": "Web search is not available right now. Please ask me about properties instead.",
	})
}

func (d *Dispatcher) saveMemory(ctx context.Context, args map[string]interface{}) Result {
	sessionID, _ := args["session_id"].(string)
	note, _ := args["note"].(string)
	if strings.TrimSpace(note) == "" {
		return errResult("save_memory requires a non-empty note")
	}

	if err := d.Memories.Save(ctx, sessionID, note); err != nil {
		return errResult("failed to save memory: %v", err)
	}
	return okResult(map[string]interface{}{
		"saved": true,
	})
}
