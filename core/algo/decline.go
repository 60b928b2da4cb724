package algo

import (
	"slices"

	"github.com/huangsam/dealsense/schema"
)

// declineWindow is how many of the most recent events the trend looks at.
const declineWindow = 5

// SortedEvents returns a copy of events ordered by timestamp ascending.
func SortedEvents(events []schema.EngagementEvent) []schema.EngagementEvent {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b schema.EngagementEvent) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return sorted
}

// AnalyzeDecline detects a sudden drop or a gradual fade in engagement depth
// across the most recent events. Fewer than two events yields no signal.
func AnalyzeDecline(events []schema.EngagementEvent) schema.DeclineAnalysis {
	if len(events) < 2 {
		return schema.DeclineAnalysis{}
	}

	sorted := SortedEvents(events)
	if len(sorted) > declineWindow {
		sorted = sorted[len(sorted)-declineWindow:]
	}

	first := clamp01(sorted[0].Depth)
	last := clamp01(sorted[len(sorted)-1].Depth)
	var sum float64
	for _, e := range sorted {
		sum += clamp01(e.Depth)
	}
	avg := sum / float64(len(sorted))

	return schema.DeclineAnalysis{
		SuddenDrop:  last < first*0.3,
		GradualFade: avg < first*0.6 && last > first*0.2,
	}
}
