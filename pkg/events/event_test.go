package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEvent(t *testing.T) {
	before := time.Now().UTC()
	evt := NewBaseEvent("financing.schedule.confirmed", "sale-001", "Schedule", "project-001")
	after := time.Now().UTC()

	_, err := uuid.Parse(evt.EventID())
	require.NoError(t, err, "event ID should be a valid UUID")

	assert.Equal(t, "financing.schedule.confirmed", evt.EventType())
	assert.Equal(t, "sale-001", evt.AggregateID())
	assert.Equal(t, "Schedule", evt.AggregateType())
	assert.Equal(t, "project-001", evt.ProjectID())

	assert.False(t, evt.OccurredAt().Before(before))
	assert.False(t, evt.OccurredAt().After(after))
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	a := NewBaseEvent("financing.payment.applied", "sale-001", "Installment", "project-001")
	b := NewBaseEvent("financing.payment.applied", "sale-001", "Installment", "project-001")

	assert.NotEqual(t, a.EventID(), b.EventID())
}
