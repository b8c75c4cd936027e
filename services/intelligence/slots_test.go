package ai

import (
	"testing"

	"estately/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

// --- MergeSlots tests ---

func TestMergeSlotsIncomingWins(t *testing.T) {
	existing := models.Slots{
		Action:    models.ActionBuy,
		Category:  models.CategoryResidential,
		Location:  "Mumbai",
		BudgetMin: floatPtr(1000000),
	}
	incoming := models.Slots{
		Action:   models.ActionRent,
		Location: "Pune",
	}

	merged := MergeSlots(existing, incoming)

	assert.Equal(t, models.ActionRent, merged.Action, "incoming wins over existing")
	assert.Equal(t, "Pune", merged.Location)
	assert.Equal(t, models.CategoryResidential, merged.Category, "existing fills incoming gaps")
	require.NotNil(t, merged.BudgetMin)
	assert.Equal(t, 1000000.0, *merged.BudgetMin)
	assert.Nil(t, merged.BudgetMax, "unset on both sides stays unset")
}

func TestMergeSlotsDisjointCommutes(t *testing.T) {
	a := models.Slots{Action: models.ActionBuy, Type: models.TypeFlat}
	b := models.Slots{Location: "Pune", BudgetMax: floatPtr(8000000)}

	assert.Equal(t, MergeSlots(a, b), MergeSlots(b, a))
}

func TestMergeSlotsEmptyIncoming(t *testing.T) {
	existing := models.Slots{
		Action:    models.ActionBuy,
		Category:  models.CategoryCommercial,
		Type:      models.TypePlot,
		Location:  "Nagpur",
		BudgetMin: floatPtr(500000),
		BudgetMax: floatPtr(900000),
	}

	assert.Equal(t, existing, MergeSlots(existing, models.Slots{}))
}

// --- MissingFields tests ---

func TestMissingFieldsAllUnset(t *testing.T) {
	missing := MissingFields(models.Slots{})

	assert.Equal(t, []models.SlotField{
		models.FieldAction,
		models.FieldCategory,
		models.FieldType,
		models.FieldLocation,
		models.FieldBudget,
	}, missing, "fixed priority order, never reordered")
}

func TestMissingFieldsComplete(t *testing.T) {
	slots := models.Slots{
		Action:    models.ActionBuy,
		Category:  models.CategoryResidential,
		Type:      models.TypeFlat,
		Location:  "Pune",
		BudgetMin: floatPtr(5000000),
	}

	assert.Empty(t, MissingFields(slots))
}

func TestMissingFieldsBudgetEitherBoundCounts(t *testing.T) {
	base := models.Slots{
		Action:   models.ActionRent,
		Category: models.CategoryResidential,
		Type:     models.TypeHouse,
		Location: "Delhi",
	}

	assert.Equal(t, []models.SlotField{models.FieldBudget}, MissingFields(base))

	withMin := base
	withMin.BudgetMin = floatPtr(10000)
	assert.Empty(t, MissingFields(withMin))

	withMax := base
	withMax.BudgetMax = floatPtr(50000)
	assert.Empty(t, MissingFields(withMax))
}

func TestMissingFieldsSingleGapPuneExample(t *testing.T) {
	slots := models.Slots{
		Category:  models.CategoryResidential,
		Type:      models.TypeFlat,
		Location:  "Pune",
		BudgetMin: floatPtr(5000000),
	}

	assert.Equal(t, []models.SlotField{models.FieldAction}, MissingFields(slots))
}

func TestMissingFieldsKeepsPriorityOrder(t *testing.T) {
	// Location and category missing; order is category first regardless of
	// which was filled last.
	slots := models.Slots{
		Action:    models.ActionBuy,
		Type:      models.TypeVilla,
		BudgetMax: floatPtr(20000000),
	}

	assert.Equal(t, []models.SlotField{models.FieldCategory, models.FieldLocation}, MissingFields(slots))
}

// --- ParseExtraction tests ---

func TestParseExtractionValid(t *testing.T) {
	args := map[string]interface{}{
		"intent": models.IntentPropertyQuery,
		"slots": map[string]interface{}{
			"action":     "buy",
			"type":       "flat",
			"location":   "Pune",
			"budget_max": 7500000.0,
		},
		"language": "en",
	}

	ext, err := ParseExtraction(args)
	require.NoError(t, err)
	assert.Equal(t, models.IntentPropertyQuery, ext.Intent)
	assert.Equal(t, models.ActionBuy, ext.Slots.Action)
	assert.Equal(t, models.TypeFlat, ext.Slots.Type)
	assert.Equal(t, "Pune", ext.Slots.Location)
	require.NotNil(t, ext.Slots.BudgetMax)
	assert.Equal(t, 7500000.0, *ext.Slots.BudgetMax)
	assert.Equal(t, "en", ext.Language)
}

func TestParseExtractionRejectsUnknownIntent(t *testing.T) {
	_, err := ParseExtraction(map[string]interface{}{"intent": "world_domination"})
	require.Error(t, err)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestParseExtractionRejectsIllegalSlotValue(t *testing.T) {
	_, err := ParseExtraction(map[string]interface{}{
		"intent": models.IntentPropertyQuery,
		"slots":  map[string]interface{}{"action": "steal"},
	})
	require.Error(t, err)
}

func TestParseSlotsRejectsNonNumericBudget(t *testing.T) {
	_, err := ParseSlots(map[string]interface{}{"budget_min": "cheap"})
	require.Error(t, err)
}

func TestParseSlotsIgnoresUnknownKeys(t *testing.T) {
	slots, err := ParseSlots(map[string]interface{}{
		"location":  "Goa",
		"furnished": true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Goa", slots.Location)
}
