package core

import (
	"github.com/huangsam/dealsense/core/algo"
	"github.com/huangsam/dealsense/schema"
)

// ScoreAndRouteLead computes the EAR score of an inbound lead and routes it.
func (e *Engine) ScoreAndRouteLead(lead schema.InboundLead) (schema.ScoreResult, error) {
	if err := lead.Validate(); err != nil {
		return schema.ScoreResult{}, err
	}
	now := e.now()

	trust := algo.SourceTrust(lead.Source, e.cfg)
	intent := algo.IntentScore(lead)
	capacity := algo.CapacityScore(lead)
	efficiency := algo.EfficiencyScore(lead, trust)
	ear := algo.ComputeEAR(intent, capacity, efficiency)
	decision := algo.Route(ear, e.cfg.Routing)

	return schema.ScoreResult{
		EntityID:          lead.ID,
		IntentScore:       intent,
		CapacityScore:     capacity,
		EfficiencyScore:   efficiency,
		EARScore:          ear,
		RoutingDecision:   decision,
		RoutingReasoning:  algo.RoutingReasoning(decision, ear, intent, capacity, efficiency, e.cfg.Routing),
		IdentitySignals:   algo.IdentitySignalsOf(lead.Identity),
		WebsiteSignals:    websiteSignalsOf(lead.Website),
		BehavioralSignals: algo.BehavioralSignalsOf(lead.Behavior),
		SourceTrustWeight: trust,
		EconomicPotential: algo.EconomicPotential(lead.Website),
		RiskFlags:         algo.RiskFlags(lead, trust),
		ScoredAt:          now,
	}, nil
}

func websiteSignalsOf(w schema.LeadWebsite) schema.WebsiteSignals {
	return schema.WebsiteSignals{
		OfferClarity:   w.OfferClarity,
		PricingVisible: w.PricingVisible,
		CompanySize:    w.CompanySize,
		EstimatedACV:   w.EstimatedACV,
	}
}
