package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntityType(t *testing.T) {
	for _, known := range AllEntityTypes {
		et, err := ParseEntityType(string(known))
		require.NoError(t, err)
		assert.Equal(t, known, et)
	}
}

func TestParseEntityType_NormalizesInput(t *testing.T) {
	et, err := ParseEntityType("  Member ")

	require.NoError(t, err)
	assert.Equal(t, EntityMember, et)
}

func TestParseEntityType_Unknown(t *testing.T) {
	_, err := ParseEntityType("spaceship")

	assert.ErrorIs(t, err, ErrUnknownEntityType)
}

func TestRecordField(t *testing.T) {
	rec := &Record{Fields: map[string]any{"email": "a@b.com"}}

	v, ok := rec.Field("email")
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", v)

	_, ok = rec.Field("phone")
	assert.False(t, ok)

	_, ok = (&Record{}).Field("email")
	assert.False(t, ok)
}

func TestWebhookEventIsDeletion(t *testing.T) {
	assert.True(t, WebhookEvent{Type: EventItemDeleted}.IsDeletion())
	assert.True(t, WebhookEvent{Type: EventItemArchived}.IsDeletion())
	assert.False(t, WebhookEvent{Type: EventItemCreated}.IsDeletion())
	assert.False(t, WebhookEvent{Type: EventColumnValueChange}.IsDeletion())
}

func TestSyncReportAdd(t *testing.T) {
	report := &SyncReport{EntityType: EntityMember, Direction: DirectionOutbound}

	report.Add(SyncResult{LocalID: "a", Outcome: OutcomeSynced})
	report.Add(SyncResult{LocalID: "b", Outcome: OutcomeFailed, Error: "boom"})
	report.Add(SyncResult{LocalID: "c", Outcome: OutcomeSkipped})

	assert.Equal(t, 3, report.TotalProcessed)
	assert.Equal(t, 1, report.Successful)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Skipped)
	assert.Len(t, report.Results, 3)
}
