package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"pending":     StatusPending,
		"processing":  StatusProcessing,
		"in_progress": StatusProcessing, // legacy admin label
		"COMPLETED":   StatusCompleted,
		" cancelled ":  StatusCancelled,
	}
	for input, want := range cases {
		got, ok := ParseStatus(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, ok := ParseStatus("shipped")
	assert.False(t, ok)
}

func TestTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusProcessing))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusProcessing.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusProcessing.CanTransitionTo(StatusCancelled))

	assert.False(t, StatusPending.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusProcessing.CanTransitionTo(StatusPending))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusPending))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusProcessing))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))
}

func TestValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled} {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("in_progress").Valid()) // only canonical labels are stored
	assert.False(t, Status("").Valid())
}
