// File: services/intelligence/slots.go
package ai

import (
	"fmt"
	"strings"

	"estately/models"
)

// slotCheckOrder is the fixed priority in which missing fields are reported.
// The dialogue policy always asks about the first entry, so this order is
// also the question order.
var slotCheckOrder = []models.SlotField{
	models.FieldAction,
	models.FieldCategory,
	models.FieldType,
	models.FieldLocation,
	models.FieldBudget,
}

// MergeSlots combines two partial slot sets. For each field the incoming
// value wins when present, else the existing value carries over. Pure and
// total; absent on both sides stays unset.
func MergeSlots(existing, incoming models.Slots) models.Slots {
	merged := existing
	if incoming.Action != "" {
		merged.Action = incoming.Action
	}
	if incoming.Category != "" {
		merged.Category = incoming.Category
	}
	if incoming.Type != "" {
		merged.Type = incoming.Type
	}
	if incoming.Location != "" {
		merged.Location = incoming.Location
	}
	if incoming.BudgetMin != nil {
		merged.BudgetMin = incoming.BudgetMin
	}
	if incoming.BudgetMax != nil {
		merged.BudgetMax = incoming.BudgetMax
	}
	return merged
}

// MissingFields returns the required fields not yet present, always in the
// fixed check order. Budget counts as present when either bound is set; the
// other four fields each require their own value.
func MissingFields(slots models.Slots) []models.SlotField {
	var missing []models.SlotField
	for _, field := range slotCheckOrder {
		switch field {
		case models.FieldAction:
			if slots.Action == "" {
				missing = append(missing, field)
			}
		case models.FieldCategory:
			if slots.Category == "" {
				missing = append(missing, field)
			}
		case models.FieldType:
			if slots.Type == "" {
				missing = append(missing, field)
			}
		case models.FieldLocation:
			if slots.Location == "" {
				missing = append(missing, field)
			}
		case models.FieldBudget:
			if slots.BudgetMin == nil && slots.BudgetMax == nil {
				missing = append(missing, field)
			}
		}
	}
	return missing
}

// Extraction is the validated output of the extract_intent_and_slots function.
type Extraction struct {
	Intent   string
	Slots    models.Slots
	Language string
}

// ParseExtraction validates the raw JSON arguments of an extraction call
// against the intent enum and the slot model. Validation happens once at this
// boundary; everything downstream operates on typed values.
func ParseExtraction(args map[string]interface{}) (*Extraction, error) {
	intent, _ := args["intent"].(string)
	if !models.ValidIntent(intent) {
		return nil, NewValidationError("intent", fmt.Sprintf("unknown intent %q", intent))
	}

	slots := models.Slots{}
	if raw, ok := args["slots"].(map[string]interface{}); ok {
		parsed, err := ParseSlots(raw)
		if err != nil {
			return nil, err
		}
		slots = parsed
	}

	language, _ := args["language"].(string)

	return &Extraction{Intent: intent, Slots: slots, Language: language}, nil
}

// ParseSlots validates a raw slot map against the slot model. Unknown keys
// are ignored; known keys with illegal values fail the whole extraction.
func ParseSlots(raw map[string]interface{}) (models.Slots, error) {
	var slots models.Slots

	if v, ok := raw["action"]; ok && v != nil {
		action := strings.ToLower(fmt.Sprintf("%v", v))
		if action != "" {
			if action != models.ActionBuy && action != models.ActionRent {
				return slots, NewValidationError("action", fmt.Sprintf("illegal value %q", action))
			}
			slots.Action = action
		}
	}

	if v, ok := raw["category"]; ok && v != nil {
		category := strings.ToLower(fmt.Sprintf("%v", v))
		if category != "" {
			if category != models.CategoryResidential && category != models.CategoryCommercial {
				return slots, NewValidationError("category", fmt.Sprintf("illegal value %q", category))
			}
			slots.Category = category
		}
	}

	if v, ok := raw["type"]; ok && v != nil {
		propType := strings.ToLower(fmt.Sprintf("%v", v))
		if propType != "" {
			switch propType {
			case models.TypeFlat, models.TypeVilla, models.TypePlot, models.TypeHouse:
				slots.Type = propType
			default:
				return slots, NewValidationError("type", fmt.Sprintf("illegal value %q", propType))
			}
		}
	}

	if v, ok := raw["location"].(string); ok {
		slots.Location = strings.TrimSpace(v)
	}

	min, err := parseBudget(raw, "budget_min")
	if err != nil {
		return slots, err
	}
	slots.BudgetMin = min

	max, err := parseBudget(raw, "budget_max")
	if err != nil {
		return slots, err
	}
	slots.BudgetMax = max

	return slots, nil
}

func parseBudget(raw map[string]interface{}, key string) (*float64, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch n := v.(type) {
	case float64:
		return &n, nil
	case int:
		f := float64(n)
		return &f, nil
	case int64:
		f := float64(n)
		return &f, nil
	default:
		return nil, NewValidationError(key, fmt.Sprintf("expected number, got %T", v))
	}
}
