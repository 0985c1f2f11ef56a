package notes

// Stats summarizes a user's notes. Values are derived, never stored.
type Stats struct {
	TotalNotes   int            `json:"totalNotes"`
	HighPriority int            `json:"highPriority"`
	Categories   int            `json:"categories"`
	ByCategory   map[string]int `json:"byCategory"`
	ByPriority   map[string]int `json:"byPriority"`
}

// ComputeStats derives aggregate counts from a user's notes. Every priority
// level appears in ByPriority even when its count is zero.
func ComputeStats(userNotes []*Note) *Stats {
	stats := &Stats{
		ByCategory: make(map[string]int),
		ByPriority: make(map[string]int),
	}

	for _, p := range Priorities() {
		stats.ByPriority[string(p)] = 0
	}

	for _, note := range userNotes {
		stats.TotalNotes++
		stats.ByCategory[note.Category()]++
		stats.ByPriority[string(note.Priority())]++

		if note.Priority() == PriorityHigh {
			stats.HighPriority++
		}
	}

	stats.Categories = len(stats.ByCategory)

	return stats
}
