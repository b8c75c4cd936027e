package ai

import (
	"context"
	"errors"
	"testing"

	"estately/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearcher implements PropertySearcher for tests.
type fakeSearcher struct {
	results  []models.Property
	err      error
	gotSlots *models.Slots
}

func (f *fakeSearcher) Search(ctx context.Context, slots models.Slots) ([]models.Property, error) {
	f.gotSlots = &slots
	return f.results, f.err
}

func newTestDispatcher(searcher PropertySearcher) *Dispatcher {
	return &Dispatcher{
		Search:   searcher,
		Memories: NewInMemoryMemoryStore(),
	}
}

func TestDispatchUnknownFunction(t *testing.T) {
	d := newTestDispatcher(&fakeSearcher{})

	res := d.Dispatch(context.Background(), "teleport_user", nil)

	assert.False(t, res.Success)
	assert.Equal(t, "Unknown function: teleport_user", res.Error)

	env := res.Envelope()
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "Unknown function: teleport_user", env["error"])
}

func TestDispatchExtractValid(t *testing.T) {
	d := newTestDispatcher(&fakeSearcher{})

	res := d.Dispatch(context.Background(), FuncExtractSlots, map[string]interface{}{
		"intent": models.IntentPropertyQuery,
		"slots":  map[string]interface{}{"action": "rent", "location": "Pune"},
	})

	require.True(t, res.Success)
	assert.Equal(t, models.IntentPropertyQuery, res.Payload["intent"])
	slots, ok := res.Payload["slots"].(models.Slots)
	require.True(t, ok)
	assert.Equal(t, models.ActionRent, slots.Action)
	assert.Equal(t, "Pune", slots.Location)
}

func TestDispatchExtractInvalidIntent(t *testing.T) {
	d := newTestDispatcher(&fakeSearcher{})

	res := d.Dispatch(context.Background(), FuncExtractSlots, map[string]interface{}{
		"intent": "order_pizza",
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "intent")
}

func TestDispatchFetchProperties(t *testing.T) {
	searcher := &fakeSearcher{results: []models.Property{
		{ID: "p1", Title: "2BHK in Baner", Price: 6000000},
	}}
	d := newTestDispatcher(searcher)

	res := d.Dispatch(context.Background(), FuncFetchProperties, map[string]interface{}{
		"slots": map[string]interface{}{
			"action":     "buy",
			"location":   "Pune",
			"budget_max": 7000000.0,
		},
	})

	require.True(t, res.Success)
	assert.Equal(t, 1, res.Payload["count"])
	require.NotNil(t, searcher.gotSlots)
	assert.Equal(t, models.ActionBuy, searcher.gotSlots.Action)
	require.NotNil(t, searcher.gotSlots.BudgetMax)
	assert.Equal(t, 7000000.0, *searcher.gotSlots.BudgetMax)
}

func TestDispatchFetchPropertiesFlatArgs(t *testing.T) {
	searcher := &fakeSearcher{}
	d := newTestDispatcher(searcher)

	res := d.Dispatch(context.Background(), FuncFetchProperties, map[string]interface{}{
		"location": "Goa",
	})

	require.True(t, res.Success)
	require.NotNil(t, searcher.gotSlots)
	assert.Equal(t, "Goa", searcher.gotSlots.Location)
}

func TestDispatchFetchPropertiesSearchError(t *testing.T) {
	d := newTestDispatcher(&fakeSearcher{err: errors.New("mongo down")})

	res := d.Dispatch(context.Background(), FuncFetchProperties, map[string]interface{}{
		"slots": map[string]interface{}{"location": "Pune"},
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "property search failed")
}

func TestDispatchSearchWebStub(t *testing.T) {
	d := newTestDispatcher(&fakeSearcher{})

	res := d.Dispatch(context.Background(), FuncSearchWeb, map[string]interface{}{
		"query": "stamp duty in Maharashtra",
	})

	require.True(t, res.Success)
	assert.Contains(t, res.Payload["result"], "not available")

	empty := d.Dispatch(context.Background(), FuncSearchWeb, map[string]interface{}{"query": "  "})
	assert.False(t, empty.Success)
}

func TestDispatchSaveMemory(t *testing.T) {
	d := newTestDispatcher(&fakeSearcher{})

	res := d.Dispatch(context.Background(), FuncSaveMemory, map[string]interface{}{
		"session_id": "sess-1",
		"note":       "prefers gated communities",
	})

	require.True(t, res.Success)
	assert.Equal(t, true, res.Payload["saved"])

	notes, err := d.Memories.List(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"prefers gated communities"}, notes)
}

func TestDispatchSaveMemoryEmptyNote(t *testing.T) {
	d := newTestDispatcher(&fakeSearcher{})

	res := d.Dispatch(context.Background(), FuncSaveMemory, map[string]interface{}{
		"session_id": "sess-1",
		"note":       "",
	})

	assert.False(t, res.Success)
}

func TestEnvelopeFlattensPayload(t *testing.T) {
	res := okResult(map[string]interface{}{"count": 2})
	env := res.Envelope()

	assert.Equal(t, true, env["success"])
	assert.Equal(t, 2, env["count"])
}
