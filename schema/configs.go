package schema

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
)

// Default engine constants.
const (
	DefaultCoolingDays     = 7
	DefaultDormantDays     = 30
	DefaultDeepDormantDays = 90
	DefaultHibernatingDays = 180

	DefaultSalesThreshold   = 70.0
	DefaultNurtureThreshold = 40.0

	DefaultWindowDays           = 7
	DefaultReversalBaseDelay    = 7
	DefaultUnknownSourceTrust   = 0.4
	MaxEARScore                 = 1000.0
	weightSumTolerance          = 0.001
	DefaultEmotionalProximity   = 14
	DefaultChannelResponseFloor = 0.3
)

// StageThresholds are the upper bounds in days of each non-terminal stage.
type StageThresholds struct {
	Cooling     int `json:"cooling"`
	Dormant     int `json:"dormant"`
	DeepDormant int `json:"deep_dormant"`
	Hibernating int `json:"hibernating"`
}

// DepthWeights weigh the dormancy depth components.
type DepthWeights struct {
	Stage      float64 `json:"stage"`
	Engagement float64 `json:"engagement"`
	Response   float64 `json:"response"`
}

// PotentialWeights weigh the reactivation potential components.
type PotentialWeights struct {
	Stage          float64 `json:"stage"`
	Recoverability float64 `json:"recoverability"`
	Engagement     float64 `json:"engagement"`
}

// RoutingThresholds are the EAR cut-offs for routing.
type RoutingThresholds struct {
	Sales   float64 `json:"sales"`
	Nurture float64 `json:"nurture"`
}

// EngineConfig holds every table the decision engine reads.
// It is built once, validated, and never mutated by the engine.
type EngineConfig struct {
	Stages           StageThresholds    `json:"stages"`
	DepthWeights     DepthWeights       `json:"depth_weights"`
	PotentialWeights PotentialWeights   `json:"potential_weights"`
	Routing          RoutingThresholds  `json:"routing"`
	StageWeights     map[Stage]float64  `json:"stage_weights"`
	StagePotentials  map[Stage]float64  `json:"stage_potentials"`
	StageDelayDays   map[Stage]int      `json:"stage_delay_days"`
	ReasonDelayDays  map[Reason]int     `json:"reason_delay_days"`
	ReversalBaseDays int                `json:"reversal_base_days"`
	ReversalDelay    map[Reason]int     `json:"reversal_delay_days"`
	WindowDays       int                `json:"window_days"`
	Recoverability   map[Reason]float64 `json:"recoverability"`
	SourceTrust      map[string]float64 `json:"source_trust"`
	UnknownTrust     float64            `json:"unknown_source_trust"`
}

// DefaultEngineConfig returns the stock tables.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Stages: StageThresholds{
			Cooling:     DefaultCoolingDays,
			Dormant:     DefaultDormantDays,
			DeepDormant: DefaultDeepDormantDays,
			Hibernating: DefaultHibernatingDays,
		},
		DepthWeights:     DepthWeights{Stage: 0.5, Engagement: 0.3, Response: 0.2},
		PotentialWeights: PotentialWeights{Stage: 0.4, Recoverability: 0.4, Engagement: 0.2},
		Routing:          RoutingThresholds{Sales: DefaultSalesThreshold, Nurture: DefaultNurtureThreshold},
		StageWeights: map[Stage]float64{
			CoolingStage:     0.2,
			DormantStage:     0.4,
			DeepDormantStage: 0.6,
			HibernatingStage: 0.8,
			FossilizedStage:  1.0,
		},
		StagePotentials: map[Stage]float64{
			CoolingStage:     0.9,
			DormantStage:     0.7,
			DeepDormantStage: 0.5,
			HibernatingStage: 0.3,
			FossilizedStage:  0.15,
		},
		StageDelayDays: map[Stage]int{
			CoolingStage:     2,
			DormantStage:     5,
			DeepDormantStage: 14,
			HibernatingStage: 30,
			FossilizedStage:  60,
		},
		ReasonDelayDays: map[Reason]int{
			TimingMismatch:    14,
			BudgetConstraints: 21,
			PriorityShift:     14,
			InternalPolitics:  7,
			DecisionParalysis: 3,
		},
		ReversalBaseDays: DefaultReversalBaseDelay,
		ReversalDelay: map[Reason]int{
			BudgetConstraints:     21,
			TimingMismatch:        30,
			PriorityShift:         14,
			InternalPolitics:      14,
			CompetitorDistraction: 45,
			FeatureGap:            30,
		},
		WindowDays:     DefaultWindowDays,
		Recoverability: GetDefaultRecoverability(),
		SourceTrust: map[string]float64{
			"referral":    0.9,
			"partner":     0.85,
			"event":       0.75,
			"organic":     0.7,
			"paid_search": 0.6,
			"social":      0.5,
			"cold_list":   0.3,
		},
		UnknownTrust: DefaultUnknownSourceTrust,
	}
}

// Clone returns a deep copy of the EngineConfig.
func (c EngineConfig) Clone() EngineConfig {
	clone := c
	clone.StageWeights = maps.Clone(c.StageWeights)
	clone.StagePotentials = maps.Clone(c.StagePotentials)
	clone.StageDelayDays = maps.Clone(c.StageDelayDays)
	clone.ReasonDelayDays = maps.Clone(c.ReasonDelayDays)
	clone.ReversalDelay = maps.Clone(c.ReversalDelay)
	clone.Recoverability = maps.Clone(c.Recoverability)
	clone.SourceTrust = maps.Clone(c.SourceTrust)
	return clone
}

// Validate reports every problem with the configuration as a single ErrConfiguration.
func (c EngineConfig) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	t := c.Stages
	if t.Cooling <= 0 || t.Cooling >= t.Dormant || t.Dormant >= t.DeepDormant || t.DeepDormant >= t.Hibernating {
		add("stage thresholds must be positive and strictly increasing (got %d/%d/%d/%d)",
			t.Cooling, t.Dormant, t.DeepDormant, t.Hibernating)
	}

	if sum := c.DepthWeights.Stage + c.DepthWeights.Engagement + c.DepthWeights.Response; !sumsToOne(sum) {
		add("depth weights must sum to 1.0, got %.3f", sum)
	}
	if sum := c.PotentialWeights.Stage + c.PotentialWeights.Recoverability + c.PotentialWeights.Engagement; !sumsToOne(sum) {
		add("potential weights must sum to 1.0, got %.3f", sum)
	}
	for _, w := range []float64{
		c.DepthWeights.Stage, c.DepthWeights.Engagement, c.DepthWeights.Response,
		c.PotentialWeights.Stage, c.PotentialWeights.Recoverability, c.PotentialWeights.Engagement,
	} {
		if w < 0 {
			add("weights must be non-negative (got %.3f)", w)
			break
		}
	}

	if !isFinite(c.Routing.Nurture) || !isFinite(c.Routing.Sales) {
		add("routing thresholds must be finite numbers (got nurture=%v sales=%v)", c.Routing.Nurture, c.Routing.Sales)
	} else if c.Routing.Nurture < 0 || c.Routing.Sales <= c.Routing.Nurture || c.Routing.Sales > MaxEARScore {
		add("routing thresholds must satisfy 0 <= nurture < sales <= %.0f (got nurture=%.1f sales=%.1f)",
			MaxEARScore, c.Routing.Nurture, c.Routing.Sales)
	}

	for _, s := range AllStages {
		if v, ok := c.StageWeights[s]; !ok || !inUnit(v) {
			add("stage weight for %s must be within [0,1]", s)
		}
		if v, ok := c.StagePotentials[s]; !ok || !inUnit(v) {
			add("stage potential for %s must be within [0,1]", s)
		}
		if v, ok := c.StageDelayDays[s]; !ok || v < 0 {
			add("stage delay for %s must be a non-negative number of days", s)
		}
	}

	for _, r := range slices.Sorted(maps.Keys(c.ReasonDelayDays)) {
		if d := c.ReasonDelayDays[r]; !IsValidReason(r) {
			add("reason delay references unknown reason %q", r)
		} else if d < 0 {
			add("reason delay for %s must be non-negative", r)
		}
	}
	for _, r := range slices.Sorted(maps.Keys(c.ReversalDelay)) {
		if d := c.ReversalDelay[r]; !IsValidReason(r) {
			add("reversal delay references unknown reason %q", r)
		} else if d < 0 {
			add("reversal delay for %s must be non-negative", r)
		}
	}
	if c.ReversalBaseDays < 0 {
		add("reversal base delay must be non-negative")
	}
	if c.WindowDays <= 0 {
		add("window length must be positive")
	}

	for _, r := range AllReasons {
		if v, ok := c.Recoverability[r]; !ok || !inUnit(v) {
			add("recoverability for %s must be within [0,1]", r)
		}
	}
	for _, r := range slices.Sorted(maps.Keys(c.Recoverability)) {
		if !IsValidReason(r) {
			add("recoverability references unknown reason %q", r)
		}
	}
	for _, src := range slices.Sorted(maps.Keys(c.SourceTrust)) {
		if !inUnit(c.SourceTrust[src]) {
			add("source trust for %q must be within [0,1]", src)
		}
	}
	if !inUnit(c.UnknownTrust) {
		add("unknown source trust must be within [0,1]")
	}

	if len(problems) == 0 {
		return nil
	}
	return eris.Wrapf(ErrConfiguration, "%s", strings.Join(problems, "; "))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func sumsToOne(sum float64) bool {
	return math.Abs(sum-1.0) <= weightSumTolerance
}

func inUnit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
