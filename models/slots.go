package models

// Recognized values for the action slot.
const (
	ActionBuy  = "buy"
	ActionRent = "rent"
)

// Recognized values for the category slot.
const (
	CategoryResidential = "residential"
	CategoryCommercial  = "commercial"
)

// Recognized values for the property type slot.
const (
	TypeFlat  = "flat"
	TypeVilla = "villa"
	TypePlot  = "plot"
	TypeHouse = "house"
)

// SlotField identifies one slot in the fixed check order.
type SlotField string

const (
	FieldAction   SlotField = "action"
	FieldCategory SlotField = "category"
	FieldType     SlotField = "type"
	FieldLocation SlotField = "location"
	FieldBudget   SlotField = "budget"
)

// Slots is the structured information extracted from a conversation so far.
// Every field is independently optional; an empty string or nil pointer means
// the slot has not been filled yet. There is no cross-field validation --
// budget_min may exceed budget_max and this layer does not care.
type Slots struct {
	Action    string   `bson:"action,omitempty" json:"action,omitempty"`
	Category  string   `bson:"category,omitempty" json:"category,omitempty"`
	Type      string   `bson:"type,omitempty" json:"type,omitempty"`
	Location  string   `bson:"location,omitempty" json:"location,omitempty"`
	BudgetMin *float64 `bson:"budgetMin,omitempty" json:"budget_min,omitempty"`
	BudgetMax *float64 `bson:"budgetMax,omitempty" json:"budget_max,omitempty"`
}

// IsEmpty reports whether no slot has been filled at all.
func (s Slots) IsEmpty() bool {
	return s.Action == "" && s.Category == "" && s.Type == "" &&
		s.Location == "" && s.BudgetMin == nil && s.BudgetMax == nil
}

// Intent classifications the extraction function may return.
const (
	IntentPropertyQuery = "property_query"
	IntentGeneralInfo   = "general_info"
	IntentFallback      = "fallback"
)

// ValidIntent reports whether the given intent belongs to the closed set.
func ValidIntent(intent string) bool {
	switch intent {
	case IntentPropertyQuery, IntentGeneralInfo, IntentFallback:
		return true
	}
	return false
}
