package algo

import (
	"testing"
	"time"

	"github.com/huangsam/dealsense/schema"
	"github.com/stretchr/testify/assert"
)

func TestPeakMoment(t *testing.T) {
	saturday := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC), PeakMoment(saturday, time.Tuesday))
	assert.Equal(t, saturday, PeakMoment(saturday, time.Saturday))
	assert.Equal(t, time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC), PeakMoment(saturday, time.Sunday))
}

func TestDormancyWindow(t *testing.T) {
	cfg := schema.DefaultEngineConfig()

	w := DormancyWindow(testNow, schema.DormantStage, schema.TimingMismatch, nil, cfg)

	assert.Equal(t, time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 6, 27, 12, 0, 0, 0, time.UTC), w.End)
	assert.Equal(t, time.Date(2024, 6, 25, 12, 0, 0, 0, time.UTC), w.Peak)
	assert.Contains(t, w.Reasoning, "dormant stage waits 5d plus 14d for timing_mismatch")
	assert.Contains(t, w.Reasoning, "Tuesday")
	assert.Empty(t, w.AvoidPeriods)
}

func TestDormancyWindowUsesBestResponseDay(t *testing.T) {
	cfg := schema.DefaultEngineConfig()
	patterns := []schema.ResponsePattern{
		{DayOfWeek: 1, EngagementQuality: 0.5},
		{DayOfWeek: 5, EngagementQuality: 0.9},
		{DayOfWeek: 3, EngagementQuality: 0.9},
	}

	w := DormancyWindow(testNow, schema.DormantStage, schema.TimingMismatch, patterns, cfg)

	assert.Equal(t, time.Friday, w.Peak.Weekday())
	assert.Equal(t, time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC), w.Peak)
}

func TestReversalWindow(t *testing.T) {
	cfg := schema.DefaultEngineConfig()
	lostAt := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	deal := schema.LostDeal{ID: "deal-1", LostAt: lostAt}

	w := ReversalWindow(testNow, deal, schema.BudgetConstraints, cfg)

	assert.Equal(t, time.Date(2024, 6, 29, 12, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, w.Start.AddDate(0, 0, 7), w.End)
	assert.Len(t, w.AvoidPeriods, 2)
	assert.Equal(t, EmotionalProximityReason, w.AvoidPeriods[0].Reason)
	assert.Equal(t, lostAt.AddDate(0, 0, 14), w.AvoidPeriods[0].End)
	assert.Equal(t, time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC), w.AvoidPeriods[1].Start)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), w.AvoidPeriods[1].End)
}

func TestAvoidPeriodsEarlyJanuary(t *testing.T) {
	start := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	periods := AvoidPeriods(start.AddDate(0, -1, 0), start)

	assert.Equal(t, time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC), periods[1].Start)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), periods[1].End)
}

func TestAvoidPeriodsHolidayCoversFifthOfJanuary(t *testing.T) {
	fifth := time.Date(2025, 1, 5, 15, 0, 0, 0, time.UTC)
	holiday := AvoidPeriods(fifth.AddDate(0, -2, 0), fifth)[1]

	assert.Equal(t, HolidayReason, holiday.Reason)
	assert.False(t, fifth.Before(holiday.Start))
	assert.True(t, fifth.Before(holiday.End))

	sixth := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	next := AvoidPeriods(sixth.AddDate(0, -2, 0), sixth)[1]
	assert.Equal(t, time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC), next.Start)
}
