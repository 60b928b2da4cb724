package algo

import (
	"fmt"
	"math"
	"strings"

	"github.com/huangsam/dealsense/schema"
)

// Score bounds for the EAR sub-scores.
const (
	subScoreBase      = 50.0
	subScoreMax       = 100.0
	efficiencyFloor   = 10.0
	highFrictionCount = 3
	trustedSource     = 0.7
	untrustedSource   = 0.4
)

// freeMailDomains are consumer mail providers that do not indicate a company.
var freeMailDomains = map[string]struct{}{
	"gmail.com":      {},
	"googlemail.com": {},
	"yahoo.com":      {},
	"hotmail.com":    {},
	"outlook.com":    {},
	"live.com":       {},
	"icloud.com":     {},
	"aol.com":        {},
	"proton.me":      {},
	"protonmail.com": {},
	"gmx.com":        {},
}

// SourceTrust returns the trust weight for a lead source, falling back to the unknown weight.
func SourceTrust(source string, cfg schema.EngineConfig) float64 {
	if w, ok := cfg.SourceTrust[strings.ToLower(strings.TrimSpace(source))]; ok {
		return w
	}
	return cfg.UnknownTrust
}

// dedupe returns the non-empty items of values in first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// MatchedActivities returns the recognised high-intent activities, deduped.
func MatchedActivities(activities []string) []string {
	matched := []string{}
	for _, a := range dedupe(activities) {
		if _, ok := schema.HighIntentActivities[strings.ToLower(a)]; ok {
			matched = append(matched, strings.ToLower(a))
		}
	}
	return dedupe(matched)
}

// IntentScore measures how actively the lead is buying.
func IntentScore(lead schema.InboundLead) float64 {
	score := subScoreBase
	score += 10 * float64(len(MatchedActivities(lead.Behavior.HighIntentActivities)))

	switch strings.ToLower(lead.Behavior.EngagementVelocity) {
	case "high":
		score += 15
	case "medium":
		score += 5
	}

	switch strings.ToLower(lead.Website.OfferClarity) {
	case "high":
		score += 10
	case "low":
		score -= 10
	}

	for _, flag := range lead.RiskFlags {
		if flag == schema.LowUrgencyRiskFlag {
			score -= 15
			break
		}
	}
	return clamp(score, 0, subScoreMax)
}

// CapacityScore measures whether the lead's company can afford a deal.
func CapacityScore(lead schema.InboundLead) float64 {
	score := subScoreBase
	if lead.Identity.CompanyName != "" || lead.Identity.CompanyDomain != "" {
		score += 10
	}

	switch size := lead.Website.CompanySize; {
	case size >= 1000:
		score += 20
	case size >= 100:
		score += 15
	case size >= 10:
		score += 5
	}

	if lead.Website.PricingVisible {
		score += 5
	}

	switch acv := lead.Website.EstimatedACV; {
	case acv >= 50000:
		score += 15
	case acv >= 10000:
		score += 10
	case acv >= 1000:
		score += 5
	}
	return clamp(score, 0, subScoreMax)
}

// EfficiencyScore measures the cost of working the lead. Higher is more expensive.
func EfficiencyScore(lead schema.InboundLead, trust float64) float64 {
	score := subScoreBase
	score += 10 * float64(len(dedupe(lead.RiskFlags)))
	if lead.Identity.Email == "" {
		score += 15
	}
	if lead.Identity.Phone == "" {
		score += 10
	}
	if len(lead.Behavior.FrictionSignals) >= highFrictionCount {
		score += 10
	}
	if trust > trustedSource {
		score -= 10
	}
	return clamp(score, efficiencyFloor, subScoreMax)
}

// ComputeEAR returns round(intent × capacity ÷ efficiency) bounded to [0, MaxEARScore].
func ComputeEAR(intent, capacity, efficiency float64) float64 {
	if efficiency <= 0 {
		efficiency = efficiencyFloor
	}
	return clamp(math.Round(intent*capacity/efficiency), 0, schema.MaxEARScore)
}

// Route maps an EAR score onto a routing decision.
func Route(ear float64, t schema.RoutingThresholds) schema.RoutingDecision {
	switch {
	case ear >= t.Sales:
		return schema.SalesRouting
	case ear >= t.Nurture:
		return schema.NurtureRouting
	default:
		return schema.RejectRouting
	}
}

// RoutingReasoning explains a routing decision in terms of the three sub-scores.
func RoutingReasoning(decision schema.RoutingDecision, ear, intent, capacity, efficiency float64, t schema.RoutingThresholds) string {
	base := fmt.Sprintf("EAR %.0f from intent %.0f x capacity %.0f / efficiency %.0f", ear, intent, capacity, efficiency)
	switch decision {
	case schema.SalesRouting:
		return fmt.Sprintf("%s meets the sales threshold of %.0f", base, t.Sales)
	case schema.NurtureRouting:
		return fmt.Sprintf("%s is below sales (%.0f) but meets the nurture threshold of %.0f", base, t.Sales, t.Nurture)
	default:
		return fmt.Sprintf("%s is below the nurture threshold of %.0f", base, t.Nurture)
	}
}

// EconomicPotential buckets the lead into a revenue tier.
func EconomicPotential(w schema.LeadWebsite) string {
	switch {
	case w.EstimatedACV >= 50000 || w.CompanySize >= 1000:
		return "enterprise"
	case w.EstimatedACV >= 10000 || w.CompanySize >= 100:
		return "mid_market"
	case w.EstimatedACV > 0 || w.CompanySize > 0:
		return "smb"
	default:
		return "unknown"
	}
}

// RiskFlags returns the input flags followed by derived ones, deduped in first-seen order.
func RiskFlags(lead schema.InboundLead, trust float64) []string {
	flags := append([]string{}, lead.RiskFlags...)
	if lead.Identity.Email == "" {
		flags = append(flags, schema.MissingEmailFlag)
	}
	if lead.Identity.Phone == "" {
		flags = append(flags, schema.MissingPhoneFlag)
	}
	if len(lead.Behavior.FrictionSignals) >= highFrictionCount {
		flags = append(flags, schema.HighFrictionFlag)
	}
	if trust < untrustedSource {
		flags = append(flags, schema.UntrustedSourceFlag)
	}
	return dedupe(flags)
}

// IdentitySignalsOf summarizes identity completeness.
func IdentitySignalsOf(id schema.LeadIdentity) schema.IdentitySignals {
	fields := []string{id.Email, id.Phone, id.FullName, id.CompanyName, id.CompanyDomain, id.JobTitle}
	present := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			present++
		}
	}
	return schema.IdentitySignals{
		HasEmail:         id.Email != "",
		HasPhone:         id.Phone != "",
		HasCompany:       id.CompanyName != "" || id.CompanyDomain != "",
		HasJobTitle:      id.JobTitle != "",
		CorporateDomain:  isCorporateEmail(id.Email),
		CompletenessRate: int(math.Round(float64(present) * 100 / float64(len(fields)))),
	}
}

func isCorporateEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	_, free := freeMailDomains[strings.ToLower(email[at+1:])]
	return !free
}

// BehavioralSignalsOf summarizes on-site behavior.
func BehavioralSignalsOf(b schema.LeadBehavior) schema.BehavioralSignals {
	matched := MatchedActivities(b.HighIntentActivities)
	return schema.BehavioralSignals{
		HighIntentCount:    len(matched),
		HighIntentMatched:  matched,
		EngagementVelocity: b.EngagementVelocity,
		FrictionCount:      len(b.FrictionSignals),
	}
}
