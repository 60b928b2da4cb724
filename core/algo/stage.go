// Package algo holds the pure decision functions shared by the three pipelines.
package algo

import (
	"math"
	"time"

	"github.com/huangsam/dealsense/schema"
)

// DaysSince returns whole days elapsed between last and now.
// A last engagement in the future counts as zero days.
func DaysSince(last, now time.Time) int {
	hours := now.Sub(last).Hours()
	if hours <= 0 {
		return 0
	}
	return int(math.Floor(hours / 24))
}

// ClassifyStage maps days since the last engagement onto a dormancy stage.
func ClassifyStage(days int, t schema.StageThresholds) schema.Stage {
	switch {
	case days <= t.Cooling:
		return schema.CoolingStage
	case days <= t.Dormant:
		return schema.DormantStage
	case days <= t.DeepDormant:
		return schema.DeepDormantStage
	case days <= t.Hibernating:
		return schema.HibernatingStage
	default:
		return schema.FossilizedStage
	}
}
