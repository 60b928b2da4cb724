package schema

import (
	"math"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// EngagementEvent is a single recorded interaction with an entity.
type EngagementEvent struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Depth     float64   `json:"depth"`     // 0..1
	Sentiment float64   `json:"sentiment"` // 0..1
}

// ResponsePattern summarizes how an entity historically responds on a given weekday.
type ResponsePattern struct {
	DayOfWeek         int     `json:"day_of_week"` // 0 = Sunday
	TimeOfDay         string  `json:"time_of_day,omitempty"`
	ResponseSpeed     float64 `json:"response_speed"` // hours
	EngagementQuality float64 `json:"engagement_quality"`
}

// PriceReaction records how an entity reacted when shown a price.
type PriceReaction struct {
	PricePoint float64  `json:"price_point"`
	Reaction   Reaction `json:"reaction"`
	Context    string   `json:"context,omitempty"`
}

// CommunicationPreference records an entity's observed affinity for a channel.
type CommunicationPreference struct {
	Channel         Channel `json:"channel"`
	PreferenceScore float64 `json:"preference_score"`
	ResponseRate    float64 `json:"response_rate"`
}

// BehaviorSignals is the behavioral history assembled by the caller for one entity.
// The engine never mutates it; events may arrive in any order.
type BehaviorSignals struct {
	LastEngagement           time.Time                 `json:"last_engagement"`
	EngagementEvents         []EngagementEvent         `json:"engagement_events,omitempty"`
	ResponsePatterns         []ResponsePattern         `json:"response_patterns,omitempty"`
	PriceReactions           []PriceReaction           `json:"price_reactions,omitempty"`
	ObjectionHistory         []string                  `json:"objection_history,omitempty"`
	CommunicationPreferences []CommunicationPreference `json:"communication_preferences,omitempty"`
}

// DormantLead is the input of the dormancy pipeline.
type DormantLead struct {
	ID      string          `json:"id"`
	Name    string          `json:"name,omitempty"`
	Signals BehaviorSignals `json:"signals"`
}

// LeadIdentity holds who the inbound lead claims to be.
type LeadIdentity struct {
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	FullName      string `json:"full_name,omitempty"`
	CompanyName   string `json:"company_name,omitempty"`
	CompanyDomain string `json:"company_domain,omitempty"`
	JobTitle      string `json:"job_title,omitempty"`
}

// LeadWebsite holds what is known about the lead's company from its web presence.
type LeadWebsite struct {
	OfferClarity   string  `json:"offer_clarity,omitempty"` // high, medium, low
	PricingVisible bool    `json:"pricing_visible"`
	CompanySize    int     `json:"company_size"` // employees
	EstimatedACV   float64 `json:"estimated_acv"`
}

// LeadBehavior holds on-site behavior of the inbound lead.
type LeadBehavior struct {
	HighIntentActivities []string `json:"high_intent_activities,omitempty"`
	EngagementVelocity   string   `json:"engagement_velocity,omitempty"` // high, medium, low
	FrictionSignals      []string `json:"friction_signals,omitempty"`
}

// InboundLead is the input of the scoring pipeline.
type InboundLead struct {
	ID        string       `json:"id"`
	Source    string       `json:"source,omitempty"`
	Identity  LeadIdentity `json:"identity"`
	Website   LeadWebsite  `json:"website"`
	Behavior  LeadBehavior `json:"behavior"`
	RiskFlags []string     `json:"risk_flags,omitempty"`
}

// LostDeal is the input of the reversal pipeline.
type LostDeal struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name,omitempty"`
	OriginalValue      float64         `json:"original_value"`
	LostAt             time.Time       `json:"lost_at"`
	LossReason         string          `json:"loss_reason,omitempty"`
	CompetitorName     string          `json:"competitor_name,omitempty"`
	TrustLevel         TrustLevel      `json:"trust_level,omitempty"`
	ChampionIdentified bool            `json:"champion_identified"`
	ExecutiveAccess    bool            `json:"executive_access"`
	Objections         []string        `json:"objections,omitempty"`
	Signals            BehaviorSignals `json:"signals"`
}

// Validate checks the behavioral history for malformed fields.
// requireLastEngagement is false for lost deals, where contact history is optional.
func (s BehaviorSignals) Validate(requireLastEngagement bool) error {
	if requireLastEngagement && s.LastEngagement.IsZero() {
		return invalidf("last_engagement is required")
	}
	for i, e := range s.EngagementEvents {
		if e.Timestamp.IsZero() {
			return invalidf("engagement_events[%d]: timestamp is required", i)
		}
		if math.IsNaN(e.Depth) || math.IsNaN(e.Sentiment) {
			return invalidf("engagement_events[%d]: depth and sentiment must be numbers", i)
		}
	}
	for i, p := range s.ResponsePatterns {
		if p.DayOfWeek < 0 || p.DayOfWeek > 6 {
			return invalidf("response_patterns[%d]: day_of_week must be within 0..6 (received %d)", i, p.DayOfWeek)
		}
		if math.IsNaN(p.ResponseSpeed) || p.ResponseSpeed < 0 {
			return invalidf("response_patterns[%d]: response_speed must be non-negative", i)
		}
		if math.IsNaN(p.EngagementQuality) {
			return invalidf("response_patterns[%d]: engagement_quality must be a number", i)
		}
	}
	for i, r := range s.PriceReactions {
		if _, ok := ValidReactions[r.Reaction]; !ok {
			return invalidf("price_reactions[%d]: unknown reaction %q", i, r.Reaction)
		}
	}
	for i, c := range s.CommunicationPreferences {
		if c.Channel == "" {
			return invalidf("communication_preferences[%d]: channel is required", i)
		}
		if math.IsNaN(c.ResponseRate) || math.IsNaN(c.PreferenceScore) {
			return invalidf("communication_preferences[%d]: scores must be numbers", i)
		}
	}
	return nil
}

// Validate checks a dormant lead before classification.
func (l DormantLead) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return invalidf("lead id is required")
	}
	if err := l.Signals.Validate(true); err != nil {
		return eris.Wrapf(err, "lead %s", l.ID)
	}
	return nil
}

// Validate checks an inbound lead before scoring.
func (l InboundLead) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return invalidf("lead id is required")
	}
	if l.Website.CompanySize < 0 {
		return invalidf("lead %s: company_size must be non-negative", l.ID)
	}
	if math.IsNaN(l.Website.EstimatedACV) || l.Website.EstimatedACV < 0 {
		return invalidf("lead %s: estimated_acv must be non-negative", l.ID)
	}
	return nil
}

// Validate checks a lost deal before reversal analysis.
func (d LostDeal) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return invalidf("deal id is required")
	}
	if d.LostAt.IsZero() {
		return invalidf("deal %s: lost_at is required", d.ID)
	}
	if math.IsNaN(d.OriginalValue) || d.OriginalValue < 0 {
		return invalidf("deal %s: original_value must be non-negative", d.ID)
	}
	if _, ok := ValidTrustLevels[d.TrustLevel]; !ok {
		return invalidf("deal %s: unknown trust_level %q", d.ID, d.TrustLevel)
	}
	if err := d.Signals.Validate(false); err != nil {
		return eris.Wrapf(err, "deal %s", d.ID)
	}
	return nil
}
