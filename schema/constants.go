package schema

// Custom string types for type safety.
type (
	// Stage represents the dormancy lifecycle stage of a lead.
	Stage string

	// Reason represents an abandonment or loss reason from the closed taxonomy.
	Reason string

	// Reaction represents how an entity reacted to a price point.
	Reaction string

	// Channel represents an outreach channel.
	Channel string

	// Tone represents the voice of a recommended outreach.
	Tone string

	// Intensity represents how hard a recommended outreach pushes.
	Intensity string

	// Severity represents the severity of a risk flag.
	Severity string

	// RoutingDecision represents where an inbound lead is routed.
	RoutingDecision string

	// TrustLevel represents the relationship trust left after a lost deal.
	TrustLevel string

	// Pipeline names one of the three decision pipelines.
	Pipeline string

	// OutcomeKind represents a recorded result of a reversal attempt.
	OutcomeKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for analysis tracking.
	DatabaseBackend string
)

// Dormancy stages ordered from least to most severe.
const (
	CoolingStage     Stage = "cooling"
	DormantStage     Stage = "dormant"
	DeepDormantStage Stage = "deep_dormant"
	HibernatingStage Stage = "hibernating"
	FossilizedStage  Stage = "fossilized"
)

// AllStages lists the stages in severity order.
var AllStages = []Stage{CoolingStage, DormantStage, DeepDormantStage, HibernatingStage, FossilizedStage}

// Price reactions.
const (
	PositiveReaction Reaction = "positive"
	NeutralReaction  Reaction = "neutral"
	HesitantReaction Reaction = "hesitant"
	NegativeReaction Reaction = "negative"
	ShockReaction    Reaction = "shock"
)

// ValidReactions lists all valid price reactions.
var ValidReactions = map[Reaction]struct{}{
	PositiveReaction: {},
	NeutralReaction:  {},
	HesitantReaction: {},
	NegativeReaction: {},
	ShockReaction:    {},
}

// Outreach channels.
const (
	EmailChannel    Channel = "email"
	PhoneChannel    Channel = "phone"
	SMSChannel      Channel = "sms"
	LinkedInChannel Channel = "linkedin"
)

// Outreach tones.
const (
	ProfessionalTone Tone = "professional"
	EmpatheticTone   Tone = "empathetic"
	WarmTone         Tone = "warm"
	CasualTone       Tone = "casual"
	ConsultativeTone Tone = "consultative"
)

// Outreach intensities.
const (
	SoftIntensity      Intensity = "soft"
	ModerateIntensity  Intensity = "moderate"
	AssertiveIntensity Intensity = "assertive"
)

// Risk severities.
const (
	LowSeverity      Severity = "low"
	MediumSeverity   Severity = "medium"
	HighSeverity     Severity = "high"
	CriticalSeverity Severity = "critical"
)

// Routing decisions for inbound leads.
const (
	SalesRouting   RoutingDecision = "sales"
	NurtureRouting RoutingDecision = "nurture"
	RejectRouting  RoutingDecision = "reject"
)

// Trust levels for lost deals.
const (
	HighTrust   TrustLevel = "high"
	MediumTrust TrustLevel = "medium"
	LowTrust    TrustLevel = "low"
	BrokenTrust TrustLevel = "broken"
)

// ValidTrustLevels lists all valid trust levels. Empty means unknown.
var ValidTrustLevels = map[TrustLevel]struct{}{
	"":          {},
	HighTrust:   {},
	MediumTrust: {},
	LowTrust:    {},
	BrokenTrust: {},
}

// Decision pipelines.
const (
	DormancyPipeline Pipeline = "dormancy"
	ScoringPipeline  Pipeline = "scoring"
	ReversalPipeline Pipeline = "reversal"
)

// Reversal outcome kinds.
const (
	ReopenedOutcome   OutcomeKind = "reopened"
	WonOutcome        OutcomeKind = "won"
	LostAgainOutcome  OutcomeKind = "lost_again"
	NoResponseOutcome OutcomeKind = "no_response"
)

// ValidOutcomeKinds lists all valid outcome kinds.
var ValidOutcomeKinds = map[OutcomeKind]struct{}{
	ReopenedOutcome:   {},
	WonOutcome:        {},
	LostAgainOutcome:  {},
	NoResponseOutcome: {},
}

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All analysis backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid analysis backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// High-intent website activities recognised by the intent score.
const (
	PricingPageView     = "pricing_page_view"
	DemoRequest         = "demo_request"
	TrialSignup         = "trial_signup"
	ContactSales        = "contact_sales"
	CaseStudyDownload   = "case_study_download"
	ROICalculatorUsage  = "roi_calculator"
	LowUrgencyRiskFlag  = "low_urgency"
	MissingEmailFlag    = "missing_email"
	MissingPhoneFlag    = "missing_phone"
	HighFrictionFlag    = "high_friction"
	UntrustedSourceFlag = "untrusted_source"
)

// HighIntentActivities is the set of activities that raise intent.
var HighIntentActivities = map[string]struct{}{
	PricingPageView:    {},
	DemoRequest:        {},
	TrialSignup:        {},
	ContactSales:       {},
	CaseStudyDownload:  {},
	ROICalculatorUsage: {},
}
