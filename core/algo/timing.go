package algo

import (
	"fmt"
	"time"

	"github.com/huangsam/dealsense/schema"
)

const day = 24 * time.Hour

// Avoid period labels.
const (
	EmotionalProximityReason = "emotional proximity to the loss decision"
	HolidayReason            = "end-of-year holiday period"
)

// defaultPeakDay is used when no response pattern is available.
const defaultPeakDay = time.Tuesday

// bestResponseDay returns the weekday of the highest-quality pattern. The first pattern wins ties.
func bestResponseDay(patterns []schema.ResponsePattern) (time.Weekday, bool) {
	if len(patterns) == 0 {
		return defaultPeakDay, false
	}
	best := patterns[0]
	for _, p := range patterns[1:] {
		if p.EngagementQuality > best.EngagementQuality {
			best = p
		}
	}
	return time.Weekday(best.DayOfWeek), true
}

// PeakMoment advances start to the next occurrence of target, staying put when it already matches.
func PeakMoment(start time.Time, target time.Weekday) time.Time {
	offset := (int(target) - int(start.Weekday()) + 7) % 7
	return start.AddDate(0, 0, offset)
}

// buildWindow assembles a window of cfg.WindowDays from start with its peak.
func buildWindow(start time.Time, patterns []schema.ResponsePattern, cfg schema.EngineConfig, why string) schema.TimingWindow {
	target, learned := bestResponseDay(patterns)
	peakNote := fmt.Sprintf("peak on %s (default day, no response history)", target)
	if learned {
		peakNote = fmt.Sprintf("peak on %s, the best historical response day", target)
	}
	return schema.TimingWindow{
		Start:     start,
		End:       start.Add(time.Duration(cfg.WindowDays) * day),
		Peak:      PeakMoment(start, target),
		Reasoning: why + "; " + peakNote,
	}
}

// DormancyWindow plans the re-engagement window for a dormant lead.
func DormancyWindow(now time.Time, stage schema.Stage, primary schema.Reason, patterns []schema.ResponsePattern, cfg schema.EngineConfig) schema.TimingWindow {
	stageDelay := cfg.StageDelayDays[stage]
	reasonDelay := cfg.ReasonDelayDays[primary]
	start := now.Add(time.Duration(stageDelay+reasonDelay) * day)

	why := fmt.Sprintf("%s stage waits %dd", stage, stageDelay)
	if reasonDelay > 0 {
		why += fmt.Sprintf(" plus %dd for %s", reasonDelay, primary)
	}
	return buildWindow(start, patterns, cfg, why)
}

// ReversalWindow plans the re-entry window for a lost deal and surfaces the periods to avoid.
func ReversalWindow(now time.Time, deal schema.LostDeal, reason schema.Reason, cfg schema.EngineConfig) schema.TimingWindow {
	reasonDelay := cfg.ReversalDelay[reason]
	start := now.Add(time.Duration(cfg.ReversalBaseDays+reasonDelay) * day)

	why := fmt.Sprintf("base re-entry delay %dd", cfg.ReversalBaseDays)
	if reasonDelay > 0 {
		why += fmt.Sprintf(" plus %dd for %s", reasonDelay, reason)
	}
	w := buildWindow(start, deal.Signals.ResponsePatterns, cfg, why)
	w.AvoidPeriods = AvoidPeriods(deal.LostAt, start)
	return w
}

// AvoidPeriods returns the emotional proximity window after the loss and the
// end-of-year holiday window surrounding start. Period ends are exclusive, so
// the holiday window covers Dec 20 through Jan 5 inclusive.
func AvoidPeriods(lostAt, start time.Time) []schema.AvoidPeriod {
	year := start.Year()
	if start.Month() == time.January && start.Day() <= 5 {
		year--
	}
	loc := start.Location()
	return []schema.AvoidPeriod{
		{
			Start:  lostAt,
			End:    lostAt.Add(schema.DefaultEmotionalProximity * day),
			Reason: EmotionalProximityReason,
		},
		{
			Start:  time.Date(year, time.December, 20, 0, 0, 0, 0, loc),
			End:    time.Date(year+1, time.January, 6, 0, 0, 0, 0, loc),
			Reason: HolidayReason,
		},
	}
}
