package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range KnownStatuses {
		parsed, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStatus("en_attente_piece")
	assert.Error(t, err)
	_, err = ParseStatus("")
	assert.Error(t, err)
	_, err = ParseStatus("PENDING")
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.False(t, StatusPostponed.IsTerminal())
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPostponed, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusPostponed, true},
		{StatusInProgress, StatusPending, false},
		{StatusPostponed, StatusInProgress, true},
		{StatusPostponed, StatusCompleted, true},
		{StatusPostponed, StatusPending, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusInProgress, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	// Self transitions are always allowed.
	for _, s := range KnownStatuses {
		assert.True(t, CanTransition(s, s))
	}
}

func TestParseEnums(t *testing.T) {
	for _, s := range []string{"AM", "AP", "AN", "CM"} {
		_, err := ParseStopType(s)
		assert.NoError(t, err)
	}
	_, err := ParseStopType("XX")
	assert.Error(t, err)

	for _, s := range []string{"mechanical", "electrical", "hydraulic", "pneumatic"} {
		_, err := ParseProblemType(s)
		assert.NoError(t, err)
	}
	_, err = ParseProblemType("software")
	assert.Error(t, err)

	for _, s := range []string{"low", "medium", "high"} {
		_, err := ParsePriority(s)
		assert.NoError(t, err)
	}
	_, err = ParsePriority("urgent")
	assert.Error(t, err)
}

func TestReference(t *testing.T) {
	assert.Equal(t, "INT-000001", Reference(1))
	assert.Equal(t, "INT-000042", Reference(42))
	assert.Equal(t, "INT-123456", Reference(123456))
	// Ids wider than six digits keep every digit.
	assert.Equal(t, "INT-1000000", Reference(1000000))
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "Waiting for assignment", StatusMessage(StatusPending))
	assert.Equal(t, "Intervention completed", StatusMessage(StatusCompleted))
	assert.Equal(t, "Unknown status", StatusMessage(Status("bogus")))
}

func TestSummarize(t *testing.T) {
	counts := Summarize(nil)
	require.Len(t, counts, len(KnownStatuses))
	for _, s := range KnownStatuses {
		assert.Equal(t, 0, counts[string(s)])
	}

	counts = Summarize([]string{"pending", "pending", "completed", "weird"})
	assert.Equal(t, 2, counts["pending"])
	assert.Equal(t, 1, counts["completed"])
	assert.Equal(t, 0, counts["in_progress"])
	// Unexpected values are counted, not dropped.
	assert.Equal(t, 1, counts["weird"])
}
