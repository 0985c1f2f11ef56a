package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNote(t *testing.T, title, category string, priority Priority) *Note {
	t.Helper()
	note, err := NewNote("user123", title, "content", category, priority)
	require.NoError(t, err)
	return note
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Equal(t, 0, stats.TotalNotes)
	assert.Equal(t, 0, stats.HighPriority)
	assert.Equal(t, 0, stats.Categories)
	assert.Empty(t, stats.ByCategory)
	// Every priority level is present even with no notes
	assert.Equal(t, map[string]int{"High": 0, "Medium": 0, "Low": 0}, stats.ByPriority)
}

func TestComputeStats_TwoNotes(t *testing.T) {
	// Arrange: one High in the default category, one Low in Work
	userNotes := []*Note{
		mustNote(t, "urgent", "", PriorityHigh),
		mustNote(t, "later", "Work", PriorityLow),
	}

	// Act
	stats := ComputeStats(userNotes)

	// Assert
	assert.Equal(t, 2, stats.TotalNotes)
	assert.Equal(t, 1, stats.HighPriority)
	assert.Equal(t, 2, stats.Categories)
	assert.Equal(t, map[string]int{DefaultCategory: 1, "Work": 1}, stats.ByCategory)
	assert.Equal(t, map[string]int{"High": 1, "Medium": 0, "Low": 1}, stats.ByPriority)
}

func TestComputeStats_SharedDefaultCategory(t *testing.T) {
	// Two notes both falling back to the default category count as one
	userNotes := []*Note{
		mustNote(t, "urgent", "", PriorityHigh),
		mustNote(t, "later", "", PriorityLow),
	}

	stats := ComputeStats(userNotes)

	assert.Equal(t, 2, stats.TotalNotes)
	assert.Equal(t, 1, stats.HighPriority)
	assert.Equal(t, 1, stats.Categories)
	assert.Equal(t, map[string]int{"High": 1, "Medium": 0, "Low": 1}, stats.ByPriority)
}

func TestComputeStats_CategoryCounting(t *testing.T) {
	userNotes := []*Note{
		mustNote(t, "a", "Work", PriorityMedium),
		mustNote(t, "b", "Work", PriorityMedium),
		mustNote(t, "c", "Ideas", PriorityHigh),
	}

	stats := ComputeStats(userNotes)

	assert.Equal(t, 3, stats.TotalNotes)
	assert.Equal(t, 2, stats.Categories)
	assert.Equal(t, 2, stats.ByCategory["Work"])
	assert.Equal(t, 1, stats.ByCategory["Ideas"])
	assert.Equal(t, 1, stats.HighPriority)
}
