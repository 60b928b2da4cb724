package schema

// Reasons in the closed taxonomy. Declaration order is the ranking tie-break.
const (
	PriceShock            Reason = "price_shock"
	TimingMismatch        Reason = "timing_mismatch"
	TrustDeficit          Reason = "trust_deficit"
	DecisionParalysis     Reason = "decision_paralysis"
	CompetitorDistraction Reason = "competitor_distraction"
	UrgencyLacking        Reason = "urgency_lacking"
	FearOfCommitment      Reason = "fear_of_commitment"
	AuthorityGap          Reason = "authority_gap"
	BudgetConstraints     Reason = "budget_constraints"
	PriorityShift         Reason = "priority_shift"
	InternalPolitics      Reason = "internal_politics"
	FeatureGap            Reason = "feature_gap"
	GhostingHabit         Reason = "ghosting_habit"
	BadExperience         Reason = "bad_experience"
	UnknownReason         Reason = "unknown"
)

// AllReasons lists the taxonomy in declaration order.
var AllReasons = []Reason{
	PriceShock,
	TimingMismatch,
	TrustDeficit,
	DecisionParalysis,
	CompetitorDistraction,
	UrgencyLacking,
	FearOfCommitment,
	AuthorityGap,
	BudgetConstraints,
	PriorityShift,
	InternalPolitics,
	FeatureGap,
	GhostingHabit,
	BadExperience,
	UnknownReason,
}

// reasonOrder maps a reason to its declaration index.
var reasonOrder = func() map[Reason]int {
	m := make(map[Reason]int, len(AllReasons))
	for i, r := range AllReasons {
		m[r] = i
	}
	return m
}()

// ReasonOrder returns the declaration index of a reason, or len(AllReasons) if unknown.
func ReasonOrder(r Reason) int {
	if i, ok := reasonOrder[r]; ok {
		return i
	}
	return len(AllReasons)
}

// IsValidReason reports whether r belongs to the taxonomy.
func IsValidReason(r Reason) bool {
	_, ok := reasonOrder[r]
	return ok
}

// KeywordGroup maps a set of lowercase substrings onto a reason.
type KeywordGroup struct {
	Reason   Reason
	Keywords []string
}

// ReasonKeywords is the ordered keyword table. The first matching group wins per objection.
var ReasonKeywords = []KeywordGroup{
	{PriceShock, []string{"expensive", "price", "pricing", "cost", "afford", "too much", "pricey"}},
	{BudgetConstraints, []string{"budget", "funding", "no money", "cash flow", "spend freeze"}},
	{TimingMismatch, []string{"timing", "not now", "next quarter", "next year", "later", "busy", "bad time"}},
	{FearOfCommitment, []string{"think about", "not sure", "commitment", "contract", "lock in", "risky"}},
	{TrustDeficit, []string{"trust", "scam", "reviews", "proof", "guarantee", "legit"}},
	{DecisionParalysis, []string{"options", "compare", "decide", "overwhelm", "too many"}},
	{AuthorityGap, []string{"boss", "approval", "sign off", "manager", "the board", "partner"}},
	{CompetitorDistraction, []string{"competitor", "another vendor", "alternative", "already using", "other provider"}},
	{FeatureGap, []string{"feature", "missing", "integration", "does not support", "doesn't support"}},
	{PriorityShift, []string{"priority", "priorities", "focus", "reorg"}},
	{InternalPolitics, []string{"politics", "stakeholder", "internal", "alignment"}},
	{BadExperience, []string{"bad experience", "last time", "disappointed", "poor support"}},
	{GhostingHabit, []string{"ghost", "no reply", "never responded", "went silent", "unresponsive"}},
	{UrgencyLacking, []string{"no rush", "no hurry", "not urgent", "someday"}},
}

// ReversibleReasons are loss reasons that tend to resolve on their own.
var ReversibleReasons = map[Reason]struct{}{
	TimingMismatch:    {},
	BudgetConstraints: {},
	PriorityShift:     {},
	InternalPolitics:  {},
}

// GetDefaultRecoverability returns the default recoverability weight per reason.
func GetDefaultRecoverability() map[Reason]float64 {
	return map[Reason]float64{
		PriceShock:            0.70,
		TimingMismatch:        0.85,
		TrustDeficit:          0.40,
		DecisionParalysis:     0.75,
		CompetitorDistraction: 0.50,
		UrgencyLacking:        0.65,
		FearOfCommitment:      0.60,
		AuthorityGap:          0.55,
		BudgetConstraints:     0.60,
		PriorityShift:         0.70,
		InternalPolitics:      0.45,
		FeatureGap:            0.50,
		GhostingHabit:         0.25,
		BadExperience:         0.30,
		UnknownReason:         0.50,
	}
}
