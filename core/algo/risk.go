package algo

import (
	"strings"

	"github.com/huangsam/dealsense/schema"
)

const objectionFatigueCount = 5

// DormancyRisks evaluates each dormancy rule independently, in a fixed order.
func DormancyRisks(stage schema.Stage, reasons ReasonInference, signals schema.BehaviorSignals) []schema.Risk {
	risks := []schema.Risk{}
	if stage == schema.FossilizedStage {
		risks = append(risks, schema.Risk{
			Type:        "extreme_dormancy",
			Severity:    schema.CriticalSeverity,
			Description: "No engagement for longer than the hibernating threshold",
			Mitigation:  "Treat as a fresh lead and re-qualify before any pitch",
		})
	}
	if reasons.HasReason(schema.TrustDeficit) {
		risks = append(risks, schema.Risk{
			Type:        "trust_deficit",
			Severity:    schema.HighSeverity,
			Description: "Signals suggest the lead doubts credibility",
			Mitigation:  "Lead with third-party proof and avoid hard claims",
		})
	}
	if reasons.HasReason(schema.GhostingHabit) {
		risks = append(risks, schema.Risk{
			Type:        "ghosting_pattern",
			Severity:    schema.HighSeverity,
			Description: "The lead has a history of going silent",
			Mitigation:  "Keep messages short with a single low-effort ask",
		})
	}
	if len(signals.ObjectionHistory) > objectionFatigueCount {
		risks = append(risks, schema.Risk{
			Type:        "objection_fatigue",
			Severity:    schema.MediumSeverity,
			Description: "Many objections have been raised already",
			Mitigation:  "Do not re-argue past objections; offer something new",
		})
	}
	return risks
}

// DealRisks evaluates the lost-deal rules. contact_moved_on is emitted only when no other rule fires.
func DealRisks(deal schema.LostDeal) []schema.Risk {
	risks := []schema.Risk{}
	if deal.TrustLevel == schema.BrokenTrust {
		risks = append(risks, schema.Risk{
			Type:        "broken_trust",
			Severity:    schema.HighSeverity,
			Description: "The relationship ended with trust broken",
			Mitigation:  "Acknowledge what went wrong before proposing anything",
		})
	}
	if strings.TrimSpace(deal.CompetitorName) != "" {
		risks = append(risks, schema.Risk{
			Type:        "competitor_entrenched",
			Severity:    schema.MediumSeverity,
			Description: deal.CompetitorName + " may now be embedded in their workflow",
			Mitigation:  "Wait for a renewal or pain point before displacing",
		})
	}
	if len(risks) == 0 {
		risks = append(risks, schema.Risk{
			Type:        "contact_moved_on",
			Severity:    schema.LowSeverity,
			Description: "The original contact may have changed role or company",
			Mitigation:  "Confirm the contact is still in place before reaching out",
		})
	}
	return risks
}
