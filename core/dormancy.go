package core

import (
	"github.com/huangsam/dealsense/core/algo"
	"github.com/huangsam/dealsense/schema"
)

// ClassifyDormantLead places a lead on the dormancy ladder and recommends how to re-engage it.
func (e *Engine) ClassifyDormantLead(lead schema.DormantLead) (schema.Classification, error) {
	if err := lead.Validate(); err != nil {
		return schema.Classification{}, err
	}
	now := e.now()
	s := lead.Signals

	// 1. State
	days := algo.DaysSince(s.LastEngagement, now)
	stage := algo.ClassifyStage(days, e.cfg.Stages)
	decline := algo.AnalyzeDecline(s.EngagementEvents)

	// 2. Reasons
	reasons := algo.InferReasons(s, decline)

	// 3. Scores
	engagement := algo.EngagementFactor(s.EngagementEvents)
	response := algo.ResponseFactor(s.ResponsePatterns)
	depth := algo.DormancyDepth(stage, engagement, response, e.cfg)
	potential := algo.ReactivationPotential(stage, reasons.Primary, engagement, e.cfg)

	// 4. Timing, risks and strategy
	window := algo.DormancyWindow(now, stage, reasons.Primary, s.ResponsePatterns, e.cfg)
	risks := algo.DormancyRisks(stage, reasons, s)
	approach := algo.DormancyApproach(stage, reasons.Primary, potential, s.CommunicationPreferences)

	return schema.Classification{
		EntityID:              lead.ID,
		Stage:                 stage,
		DaysSinceEngagement:   days,
		PrimaryReason:         reasons.Primary,
		SecondaryReasons:      reasons.Secondary,
		ReasonScores:          reasons.Scores,
		Depth:                 depth,
		ReactivationPotential: potential,
		OptimalWindow:         window,
		Risks:                 risks,
		Approach:              approach,
		ClassifiedAt:          now,
	}, nil
}
