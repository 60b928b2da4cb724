package algo

import (
	"slices"

	"github.com/huangsam/dealsense/schema"
)

// Strategy names for the dormancy pipeline.
const softCheckIn = "soft_check_in"

var dormancyStrategies = map[schema.Reason]string{
	schema.PriceShock:            "value_reminder",
	schema.TrustDeficit:          "social_proof_injection",
	schema.DecisionParalysis:     "direct_ask",
	schema.TimingMismatch:        "timing_revisit",
	schema.CompetitorDistraction: "differentiation_highlight",
	schema.UrgencyLacking:        "urgency_creation",
	schema.FearOfCommitment:      "risk_reversal",
	schema.AuthorityGap:          "stakeholder_enablement",
	schema.BudgetConstraints:     "flexible_terms",
	schema.PriorityShift:         "priority_realignment",
	schema.InternalPolitics:      "champion_support",
	schema.FeatureGap:            "product_update",
	schema.GhostingHabit:         "pattern_interrupt",
	schema.BadExperience:         "service_recovery",
}

var dormancyFraming = map[schema.Reason]string{
	schema.PriceShock:            "Lead with outcomes and ROI before any number is mentioned",
	schema.TrustDeficit:          "Share a peer case study and verifiable customer results",
	schema.DecisionParalysis:     "Narrow the choice to one clear recommendation and a yes/no question",
	schema.TimingMismatch:        "Acknowledge the earlier timing and check whether the window has opened",
	schema.CompetitorDistraction: "Highlight the one or two differences that matter for their use case",
	schema.UrgencyLacking:        "Connect the problem to a concrete cost of waiting",
	schema.FearOfCommitment:      "Offer a low-commitment pilot or guarantee",
	schema.AuthorityGap:          "Provide material that helps them sell internally to the decision maker",
	schema.BudgetConstraints:     "Present phased or flexible payment options",
	schema.PriorityShift:         "Tie the offer to their current top priority",
	schema.InternalPolitics:      "Equip the champion with talking points for each stakeholder",
	schema.FeatureGap:            "Share what has shipped since the last conversation",
	schema.GhostingHabit:         "Use a short, unexpected message that is easy to answer",
	schema.BadExperience:         "Acknowledge what went wrong and what has changed",
}

const defaultFraming = "Light check-in that offers something useful without asking for anything"

var dormancyAvoidances = map[schema.Reason][]string{
	schema.PriceShock:            {"Leading with price or discounts"},
	schema.TrustDeficit:          {"Unverifiable claims or superlatives"},
	schema.DecisionParalysis:     {"Adding more options to compare"},
	schema.TimingMismatch:        {"Pushing for an immediate decision"},
	schema.CompetitorDistraction: {"Disparaging the competitor"},
	schema.UrgencyLacking:        {"Artificial deadlines"},
	schema.FearOfCommitment:      {"Long contract terms up front"},
	schema.AuthorityGap:          {"Bypassing the contact to reach their boss"},
	schema.BudgetConstraints:     {"Upselling to a larger plan"},
	schema.PriorityShift:         {"Ignoring their new priorities"},
	schema.InternalPolitics:      {"Taking sides between stakeholders"},
	schema.FeatureGap:            {"Promising roadmap dates"},
	schema.GhostingHabit:         {"Long emails with multiple asks"},
	schema.BadExperience:         {"Minimizing the earlier problem"},
}

// UniversalAvoidances apply to every recommended outreach.
var UniversalAvoidances = []string{
	"Referencing the silence or lack of response negatively",
	"Guilt framing or pressure about missed replies",
}

// preferredResponseRate is the minimum response rate for a learned channel preference.
const preferredResponseRate = schema.DefaultChannelResponseFloor

// PreferredChannel returns the channel with the highest response rate above the floor.
// The first preference wins ties.
func PreferredChannel(prefs []schema.CommunicationPreference) (schema.Channel, bool) {
	var best *schema.CommunicationPreference
	for i := range prefs {
		if best == nil || prefs[i].ResponseRate > best.ResponseRate {
			best = &prefs[i]
		}
	}
	if best == nil || best.ResponseRate <= preferredResponseRate {
		return "", false
	}
	return best.Channel, true
}

// DormancyChannel picks a channel from preferences, falling back on the stage.
func DormancyChannel(stage schema.Stage, prefs []schema.CommunicationPreference) schema.Channel {
	if ch, ok := PreferredChannel(prefs); ok {
		return ch
	}
	if stage == schema.CoolingStage || stage == schema.DormantStage {
		return schema.EmailChannel
	}
	return schema.PhoneChannel
}

// DormancyTone picks a tone. Reason overrides come before stage overrides.
func DormancyTone(stage schema.Stage, primary schema.Reason) schema.Tone {
	switch primary {
	case schema.TrustDeficit:
		return schema.ProfessionalTone
	case schema.FearOfCommitment, schema.BadExperience:
		return schema.EmpatheticTone
	}
	switch stage {
	case schema.FossilizedStage:
		return schema.WarmTone
	case schema.CoolingStage:
		return schema.CasualTone
	}
	return schema.ProfessionalTone
}

// DormancyIntensity maps reactivation potential onto intensity.
// Leads with lower potential get the more assertive push.
func DormancyIntensity(potential float64) schema.Intensity {
	switch {
	case potential > 0.7:
		return schema.ModerateIntensity
	case potential > 0.4:
		return schema.SoftIntensity
	default:
		return schema.AssertiveIntensity
	}
}

// DormancyApproach assembles the strategy parameters for a dormant lead.
func DormancyApproach(stage schema.Stage, primary schema.Reason, potential float64, prefs []schema.CommunicationPreference) schema.Approach {
	strategy, ok := dormancyStrategies[primary]
	if !ok {
		strategy = softCheckIn
	}
	framing, ok := dormancyFraming[primary]
	if !ok {
		framing = defaultFraming
	}
	avoidances := slices.Concat(dormancyAvoidances[primary], UniversalAvoidances)

	return schema.Approach{
		Strategy:   strategy,
		Channel:    DormancyChannel(stage, prefs),
		Tone:       DormancyTone(stage, primary),
		Intensity:  DormancyIntensity(potential),
		Framing:    framing,
		Avoidances: avoidances,
	}
}

// Reversal strategies.
const (
	relationshipNurture    = "relationship_nurture"
	competitorDisplacement = "competitor_displacement"
	maxAlternatives        = 2
)

// ReversalStrategy maps a loss reason onto a re-entry strategy.
// A named competitor selects displacement when the reason has no specific play ahead of it.
func ReversalStrategy(reason schema.Reason, competitorNamed bool) string {
	switch {
	case reason == schema.TimingMismatch:
		return "timing_reconnect"
	case reason == schema.BudgetConstraints:
		return "budget_cycle_reentry"
	case reason == schema.PriorityShift:
		return "priority_realignment"
	case reason == schema.InternalPolitics:
		return "champion_enablement"
	case reason == schema.CompetitorDistraction || competitorNamed:
		return competitorDisplacement
	case reason == schema.PriceShock:
		return "value_reframe"
	case reason == schema.FeatureGap:
		return "product_update_showcase"
	case reason == schema.TrustDeficit:
		return "proof_of_value"
	default:
		return relationshipNurture
	}
}

// AlternativeStrategies returns up to two fallbacks from secondary reasons, then relationship nurture.
func AlternativeStrategies(primary string, secondary []schema.Reason) []string {
	candidates := make([]string, 0, len(secondary)+1)
	for _, r := range secondary {
		candidates = append(candidates, ReversalStrategy(r, false))
	}
	candidates = append(candidates, relationshipNurture)

	out := []string{}
	for _, c := range dedupe(candidates) {
		if c == primary {
			continue
		}
		out = append(out, c)
		if len(out) == maxAlternatives {
			break
		}
	}
	return out
}

var reversalTriggers = map[schema.Reason][]string{
	schema.TimingMismatch:        {"New fiscal quarter begins", "Project they deferred is back on the roadmap"},
	schema.BudgetConstraints:     {"New budget cycle or fiscal year", "Funding round or revenue milestone announced"},
	schema.PriorityShift:         {"Strategic plan or leadership change announced", "Initiative tied to the original need is restarted"},
	schema.InternalPolitics:      {"Key stakeholder leaves or changes role", "Reorganization consolidates decision making"},
	schema.CompetitorDistraction: {"Competitor contract nears renewal", "Public complaints or outages at the competitor"},
	schema.PriceShock:            {"New pricing tier or packaging released", "Their usage grows to where ROI is clear"},
	schema.FeatureGap:            {"Missing feature or integration ships"},
	schema.TrustDeficit:          {"New case study in their industry is published"},
}

const championTrigger = "Champion changes role or gets promoted"

// TriggerEvents lists events that should prompt a re-entry attempt.
func TriggerEvents(reason schema.Reason, champion bool) []string {
	triggers := slices.Clone(reversalTriggers[reason])
	if len(triggers) == 0 {
		triggers = []string{"Contact engages with new content or events"}
	}
	if champion {
		triggers = append(triggers, championTrigger)
	}
	return dedupe(triggers)
}

var reentryOpeners = map[schema.Reason]string{
	schema.TimingMismatch:        "You mentioned the timing was off. Has anything changed on your side?",
	schema.BudgetConstraints:     "With the new budget cycle, is this worth revisiting?",
	schema.PriorityShift:         "How has the new focus shaped what you need this year?",
	schema.InternalPolitics:      "Would it help if we put together material for the wider team?",
	schema.CompetitorDistraction: "How is the current solution working out against your original goals?",
	schema.PriceShock:            "We have new options that may fit what you had in mind on cost.",
	schema.FeatureGap:            "The capability you were missing is now available.",
	schema.TrustDeficit:          "A team like yours recently shared results we thought you would want to see.",
}

const defaultOpener = "Checking in to see how things have evolved since we last spoke."

// ReentryApproach picks who to contact and how.
func ReentryApproach(deal schema.LostDeal, reason schema.Reason) schema.ReentryApproach {
	contact := "original_contact"
	switch {
	case deal.ExecutiveAccess:
		contact = "executive_sponsor"
	case deal.ChampionIdentified:
		contact = "champion"
	}

	channel, ok := PreferredChannel(deal.Signals.CommunicationPreferences)
	if !ok {
		channel = schema.EmailChannel
	}

	tone := schema.ConsultativeTone
	if deal.TrustLevel == schema.BrokenTrust {
		tone = schema.EmpatheticTone
	}

	opener, ok := reentryOpeners[reason]
	if !ok {
		opener = defaultOpener
	}
	return schema.ReentryApproach{Contact: contact, Channel: channel, Tone: tone, Opener: opener}
}
