package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEvent(t *testing.T) {
	before := time.Now().UTC()
	evt := NewBaseEvent("credit.application.submitted", "app-123", "CreditApplication")
	after := time.Now().UTC()

	assert.NotEmpty(t, evt.EventID())
	assert.Equal(t, "credit.application.submitted", evt.EventType())
	assert.Equal(t, "app-123", evt.AggregateID())
	assert.Equal(t, "CreditApplication", evt.AggregateType())
	assert.False(t, evt.OccurredAt().Before(before))
	assert.False(t, evt.OccurredAt().After(after))
}

func TestBaseEventUniqueIDs(t *testing.T) {
	a := NewBaseEvent("t", "agg", "A")
	b := NewBaseEvent("t", "agg", "A")
	assert.NotEqual(t, a.EventID(), b.EventID())
}

func TestBaseEventJSONRoundTrip(t *testing.T) {
	evt := NewBaseEvent("credit.withdrawn", "app-9", "CreditApplication")

	data, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded BaseEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, evt.EventID(), decoded.EventID())
	assert.Equal(t, evt.EventType(), decoded.EventType())
	assert.Equal(t, evt.AggregateID(), decoded.AggregateID())
}
