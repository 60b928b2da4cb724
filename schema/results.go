package schema

import "time"

// ReasonScore is the accumulated evidence for a single reason.
type ReasonScore struct {
	Reason Reason  `json:"reason"`
	Score  float64 `json:"score"`
}

// DeclineAnalysis describes the recent trend of engagement depth.
type DeclineAnalysis struct {
	SuddenDrop  bool `json:"sudden_drop"`
	GradualFade bool `json:"gradual_fade"`
}

// AvoidPeriod is a span the caller should not schedule outreach in.
type AvoidPeriod struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Reason string    `json:"reason"`
}

// TimingWindow is a recommended re-engagement window.
type TimingWindow struct {
	Start        time.Time     `json:"start"`
	End          time.Time     `json:"end"`
	Peak         time.Time     `json:"peak"`
	Reasoning    string        `json:"reasoning"`
	AvoidPeriods []AvoidPeriod `json:"avoid_periods,omitempty"`
}

// Risk is a categorical risk flag with mitigation guidance.
type Risk struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Mitigation  string   `json:"mitigation"`
}

// Approach holds the strategy parameters handed to message generation.
type Approach struct {
	Strategy   string    `json:"strategy"`
	Channel    Channel   `json:"channel"`
	Tone       Tone      `json:"tone"`
	Intensity  Intensity `json:"intensity"`
	Framing    string    `json:"framing"`
	Avoidances []string  `json:"avoidances"`
}

// Classification is the result of the dormancy pipeline for one lead.
type Classification struct {
	EntityID              string        `json:"entity_id"`
	Stage                 Stage         `json:"stage"`
	DaysSinceEngagement   int           `json:"days_since_engagement"`
	PrimaryReason         Reason        `json:"primary_reason"`
	SecondaryReasons      []Reason      `json:"secondary_reasons"`
	ReasonScores          []ReasonScore `json:"reason_scores"`
	Depth                 float64       `json:"depth"`
	ReactivationPotential float64       `json:"reactivation_potential"`
	OptimalWindow         TimingWindow  `json:"optimal_window"`
	Risks                 []Risk        `json:"risks"`
	Approach              Approach      `json:"approach"`
	ClassifiedAt          time.Time     `json:"classified_at"`
}

// IdentitySignals summarizes the identity part of an inbound lead.
type IdentitySignals struct {
	HasEmail         bool `json:"has_email"`
	HasPhone         bool `json:"has_phone"`
	HasCompany       bool `json:"has_company"`
	HasJobTitle      bool `json:"has_job_title"`
	CorporateDomain  bool `json:"corporate_domain"`
	CompletenessRate int  `json:"completeness_rate"` // percent of identity fields present
}

// WebsiteSignals summarizes the website part of an inbound lead.
type WebsiteSignals struct {
	OfferClarity   string  `json:"offer_clarity"`
	PricingVisible bool    `json:"pricing_visible"`
	CompanySize    int     `json:"company_size"`
	EstimatedACV   float64 `json:"estimated_acv"`
}

// BehavioralSignals summarizes the behavior part of an inbound lead.
type BehavioralSignals struct {
	HighIntentCount    int      `json:"high_intent_count"`
	HighIntentMatched  []string `json:"high_intent_matched"`
	EngagementVelocity string   `json:"engagement_velocity"`
	FrictionCount      int      `json:"friction_count"`
}

// ScoreResult is the result of the scoring pipeline for one inbound lead.
type ScoreResult struct {
	EntityID          string            `json:"entity_id"`
	IntentScore       float64           `json:"intent_score"`
	CapacityScore     float64           `json:"capacity_score"`
	EfficiencyScore   float64           `json:"efficiency_score"`
	EARScore          float64           `json:"ear_score"`
	RoutingDecision   RoutingDecision   `json:"routing_decision"`
	RoutingReasoning  string            `json:"routing_reasoning"`
	IdentitySignals   IdentitySignals   `json:"identity_signals"`
	WebsiteSignals    WebsiteSignals    `json:"website_signals"`
	BehavioralSignals BehavioralSignals `json:"behavioral_signals"`
	SourceTrustWeight float64           `json:"source_trust_weight"`
	EconomicPotential string            `json:"economic_potential"`
	RiskFlags         []string          `json:"risk_flags"`
	ScoredAt          time.Time         `json:"scored_at"`
}

// ReentryApproach describes how to re-open a lost deal.
type ReentryApproach struct {
	Contact string  `json:"contact"`
	Channel Channel `json:"channel"`
	Tone    Tone    `json:"tone"`
	Opener  string  `json:"opener"`
}

// ReversalOpportunity is the result of the reversal pipeline for one lost deal.
type ReversalOpportunity struct {
	DealID                string          `json:"deal_id"`
	LossReason            Reason          `json:"loss_reason"`
	ReversalProbability   float64         `json:"reversal_probability"`
	OptimalTiming         TimingWindow    `json:"optimal_timing"`
	PrimaryStrategy       string          `json:"primary_strategy"`
	AlternativeStrategies []string        `json:"alternative_strategies"`
	TriggerEvents         []string        `json:"trigger_events"`
	ReentryApproach       ReentryApproach `json:"reentry_approach"`
	RiskFactors           []Risk          `json:"risk_factors"`
	EstimatedValue        float64         `json:"estimated_value"`
	ConfidenceLevel       float64         `json:"confidence_level"`
	AnalyzedAt            time.Time       `json:"analyzed_at"`
}

// ReversalOutcome is append-only feedback about a reversal attempt.
type ReversalOutcome struct {
	ID           string      `json:"id"`
	DealID       string      `json:"deal_id"`
	Outcome      OutcomeKind `json:"outcome"`
	StrategyUsed string      `json:"strategy_used,omitempty"`
	Revenue      float64     `json:"revenue"`
	Notes        string      `json:"notes,omitempty"`
	RecordedAt   time.Time   `json:"recorded_at"`
}

// Validate checks an outcome before it is appended.
func (o ReversalOutcome) Validate() error {
	if o.DealID == "" {
		return invalidf("outcome deal id is required")
	}
	if _, ok := ValidOutcomeKinds[o.Outcome]; !ok {
		return invalidf("outcome for deal %s: unknown kind %q", o.DealID, o.Outcome)
	}
	if o.Revenue < 0 {
		return invalidf("outcome for deal %s: revenue must be non-negative", o.DealID)
	}
	return nil
}
