package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventKeyTimed(t *testing.T) {
	e := Event{Summary: "Standup", StartsAt: "2024-06-03T10:00:00Z"}

	key, ok := e.Key("Busy")
	require.True(t, ok)
	assert.Equal(t, EventKey{Anchor: "2024-06-03T10:00:00Z", Title: "Busy"}, key)
	assert.False(t, key.AllDay)
}

func TestEventKeyAllDay(t *testing.T) {
	e := Event{Summary: "Offsite", StartDate: "2024-06-01"}

	key, ok := e.Key("Busy (synced)")
	require.True(t, ok)
	assert.Equal(t, EventKey{Anchor: "2024-06-01", Title: "Busy (synced)", AllDay: true}, key)
}

func TestEventKeyPrefersTimestamp(t *testing.T) {
	// An event carrying both forms keys on the timestamp.
	e := Event{StartsAt: "2024-06-03T10:00:00Z", StartDate: "2024-06-03"}

	key, ok := e.Key("Busy")
	require.True(t, ok)
	assert.Equal(t, "2024-06-03T10:00:00Z", key.Anchor)
	assert.False(t, key.AllDay)
}

func TestEventKeyDegenerate(t *testing.T) {
	_, ok := Event{Summary: "No start"}.Key("Busy")
	assert.False(t, ok)
}

func TestEventKeyDeterministic(t *testing.T) {
	e := Event{Summary: "Standup", StartsAt: "2024-06-03T10:00:00+02:00"}

	k1, ok1 := e.Key("Busy")
	k2, ok2 := e.Key("Busy")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, k1, k2)
	// The upstream representation is reused verbatim, offset included.
	assert.Equal(t, "2024-06-03T10:00:00+02:00", k1.Anchor)
}

func TestEventKeyShapesNeverCollide(t *testing.T) {
	timed, _ := Event{StartsAt: "2024-06-01"}.Key("Busy")
	allDay, _ := Event{StartDate: "2024-06-01"}.Key("Busy")
	assert.NotEqual(t, timed, allDay)
}

func TestEventKeyString(t *testing.T) {
	assert.Equal(t, "2024-06-01 Busy (allday)",
		EventKey{Anchor: "2024-06-01", Title: "Busy", AllDay: true}.String())
	assert.Equal(t, "2024-06-03T10:00:00Z Busy",
		EventKey{Anchor: "2024-06-03T10:00:00Z", Title: "Busy"}.String())
}

func TestEventAllDay(t *testing.T) {
	assert.True(t, Event{StartDate: "2024-06-01"}.AllDay())
	assert.False(t, Event{StartsAt: "2024-06-03T10:00:00Z"}.AllDay())
	assert.False(t, Event{}.AllDay())
}

func TestRuleEffectiveTitle(t *testing.T) {
	renamed := Rule{Source: "a", Destination: "b", NewSummary: "Busy"}
	assert.Equal(t, "Busy", renamed.EffectiveTitle("Standup"))
	assert.False(t, renamed.Passthrough())

	passthrough := Rule{Source: "a", Destination: "b"}
	assert.Equal(t, "Standup", passthrough.EffectiveTitle("Standup"))
	assert.True(t, passthrough.Passthrough())
}
