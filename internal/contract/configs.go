package contract

import (
	"maps"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/dealsense/schema"
	"github.com/rotisserie/eris"
)

// Default values for configuration.
const (
	DefaultPrecision  = 2
	DefaultServeAddr  = ":8080"
	DefaultTopic      = "dealsense.decisions"
	weightSumLowerTol = 0.999
	weightSumUpperTol = 1.001
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// StagesRawInput holds stage threshold overrides in days.
type StagesRawInput struct {
	Cooling     *int `mapstructure:"cooling"`
	Dormant     *int `mapstructure:"dormant"`
	DeepDormant *int `mapstructure:"deep_dormant"`
	Hibernating *int `mapstructure:"hibernating"`
}

// DepthWeightsRaw holds custom dormancy depth weights.
type DepthWeightsRaw struct {
	Stage      *float64 `mapstructure:"stage"`
	Engagement *float64 `mapstructure:"engagement"`
	Response   *float64 `mapstructure:"response"`
}

// PotentialWeightsRaw holds custom reactivation potential weights.
type PotentialWeightsRaw struct {
	Stage          *float64 `mapstructure:"stage"`
	Recoverability *float64 `mapstructure:"recoverability"`
	Engagement     *float64 `mapstructure:"engagement"`
}

// WeightsRawInput holds all custom weight groups from the YAML config file.
type WeightsRawInput struct {
	Depth     *DepthWeightsRaw     `mapstructure:"depth"`
	Potential *PotentialWeightsRaw `mapstructure:"potential"`
}

// RoutingRawInput holds EAR routing threshold overrides.
type RoutingRawInput struct {
	Sales   *float64 `mapstructure:"sales"`
	Nurture *float64 `mapstructure:"nurture"`
}

// DelaysRawInput holds delay table overrides in days, keyed by stage or reason.
type DelaysRawInput struct {
	Stage    map[string]int `mapstructure:"stage"`
	Reason   map[string]int `mapstructure:"reason"`
	Reversal map[string]int `mapstructure:"reversal"`
}

// Config holds the runtime configuration for the CLI.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath  string
	Workers    int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	// Now overrides the engine clock when non-zero.
	Now time.Time

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	PublishBrokers []string
	PublishTopic   string

	LogLevel string
	LogJSON  bool

	ServeAddr string

	// Engine is the validated engine configuration with per-org overrides applied.
	Engine schema.EngineConfig
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile        string `mapstructure:"output-file"`
	Workers           int    `mapstructure:"workers"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	Now               string `mapstructure:"now"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
	PublishBrokers    string `mapstructure:"publish-brokers"`
	PublishTopic      string `mapstructure:"publish-topic"`
	LogLevel          string `mapstructure:"log-level"`
	LogJSON           bool   `mapstructure:"log-json"`

	// --- Fields from scoreCmd.Flags() ---
	RoutingOverride string `mapstructure:"routing-override"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`

	// --- Engine overrides from config file ---
	Stages         StagesRawInput     `mapstructure:"stages"`
	Weights        WeightsRawInput    `mapstructure:"weights"`
	Routing        RoutingRawInput    `mapstructure:"routing"`
	Delays         DelaysRawInput     `mapstructure:"delays"`
	Recoverability map[string]float64 `mapstructure:"recoverability"`
	SourceTrust    map[string]float64 `mapstructure:"source_trust"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.PublishBrokers != nil {
		clone.PublishBrokers = append([]string(nil), c.PublishBrokers...)
	}
	clone.Engine = c.Engine.Clone()
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processClock(cfg, input); err != nil {
		return err
	}
	if err := processPublishing(cfg, input); err != nil {
		return err
	}
	return processEngineOverrides(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return eris.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return eris.New("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return eris.New("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return eris.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return eris.New("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return eris.New("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.InputPath = strings.TrimSpace(input.InputPathStr)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.LogJSON = input.LogJSON

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return eris.Wrap(err, "invalid --color value")
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return eris.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > 4 {
		return eris.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return eris.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return eris.New("parquet output requires --output-file")
	}

	cfg.LogLevel = input.LogLevel
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	cfg.ServeAddr = input.Addr
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}

	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		cfg.AnalysisBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return eris.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	return ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect)
}

// processClock resolves the optional --now override.
func processClock(cfg *Config, input *ConfigRawInput) error {
	now, err := ParseClock(input.Now, time.Now())
	if err != nil {
		return err
	}
	cfg.Now = now
	return nil
}

// processPublishing splits the broker list. An empty list disables publishing.
func processPublishing(cfg *Config, input *ConfigRawInput) error {
	cfg.PublishBrokers = nil
	for b := range strings.SplitSeq(input.PublishBrokers, ",") {
		if trimmed := strings.TrimSpace(b); trimmed != "" {
			cfg.PublishBrokers = append(cfg.PublishBrokers, trimmed)
		}
	}
	cfg.PublishTopic = strings.TrimSpace(input.PublishTopic)
	if cfg.PublishTopic == "" {
		cfg.PublishTopic = DefaultTopic
	}
	return nil
}

// processEngineOverrides layers config file overrides onto the default engine tables
// and validates the result once.
func processEngineOverrides(cfg *Config, input *ConfigRawInput) error {
	engine := schema.DefaultEngineConfig()

	applyInt(&engine.Stages.Cooling, input.Stages.Cooling)
	applyInt(&engine.Stages.Dormant, input.Stages.Dormant)
	applyInt(&engine.Stages.DeepDormant, input.Stages.DeepDormant)
	applyInt(&engine.Stages.Hibernating, input.Stages.Hibernating)

	if err := processCustomWeights(&engine, input.Weights); err != nil {
		return err
	}

	applyFloat(&engine.Routing.Sales, input.Routing.Sales)
	applyFloat(&engine.Routing.Nurture, input.Routing.Nurture)
	if input.RoutingOverride != "" {
		parsed, err := parseRoutingOverrideString(input.RoutingOverride)
		if err != nil {
			return eris.Wrap(err, "invalid --routing-override format")
		}
		if v, ok := parsed[schema.SalesRouting]; ok {
			engine.Routing.Sales = v
		}
		if v, ok := parsed[schema.NurtureRouting]; ok {
			engine.Routing.Nurture = v
		}
	}

	for k, v := range input.Delays.Stage {
		engine.StageDelayDays[schema.Stage(strings.ToLower(k))] = v
	}
	for k, v := range input.Delays.Reason {
		engine.ReasonDelayDays[schema.Reason(strings.ToLower(k))] = v
	}
	for k, v := range input.Delays.Reversal {
		engine.ReversalDelay[schema.Reason(strings.ToLower(k))] = v
	}
	for k, v := range input.Recoverability {
		engine.Recoverability[schema.Reason(strings.ToLower(k))] = v
	}
	for k, v := range input.SourceTrust {
		engine.SourceTrust[strings.ToLower(k)] = v
	}

	for s := range engine.StageDelayDays {
		if !isKnownStage(s) {
			return eris.Wrapf(schema.ErrConfiguration, "stage delay references unknown stage %q", s)
		}
	}

	if err := engine.Validate(); err != nil {
		return err
	}
	cfg.Engine = engine
	return nil
}

// processCustomWeights merges the provided weight groups and checks that each
// provided group sums to 1.0.
func processCustomWeights(engine *schema.EngineConfig, weights WeightsRawInput) error {
	if d := weights.Depth; d != nil {
		merged := engine.DepthWeights
		applyFloat(&merged.Stage, d.Stage)
		applyFloat(&merged.Engagement, d.Engagement)
		applyFloat(&merged.Response, d.Response)
		if sum := merged.Stage + merged.Engagement + merged.Response; sum < weightSumLowerTol || sum > weightSumUpperTol {
			return eris.Wrapf(schema.ErrConfiguration, "custom depth weights must sum to 1.0, got %.3f", sum)
		}
		engine.DepthWeights = merged
	}
	if p := weights.Potential; p != nil {
		merged := engine.PotentialWeights
		applyFloat(&merged.Stage, p.Stage)
		applyFloat(&merged.Recoverability, p.Recoverability)
		applyFloat(&merged.Engagement, p.Engagement)
		if sum := merged.Stage + merged.Recoverability + merged.Engagement; sum < weightSumLowerTol || sum > weightSumUpperTol {
			return eris.Wrapf(schema.ErrConfiguration, "custom potential weights must sum to 1.0, got %.3f", sum)
		}
		engine.PotentialWeights = merged
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// parseRoutingOverrideString parses a string like "sales:80,nurture:50"
// into a map of RoutingDecision to threshold.
func parseRoutingOverrideString(s string) (map[schema.RoutingDecision]float64, error) {
	thresholds := make(map[schema.RoutingDecision]float64)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, eris.Errorf("invalid threshold format '%s', expected 'route:value'", part)
		}

		var route schema.RoutingDecision
		switch strings.ToLower(strings.TrimSpace(keyValue[0])) {
		case "sales":
			route = schema.SalesRouting
		case "nurture":
			route = schema.NurtureRouting
		default:
			return nil, eris.Errorf("invalid route '%s', must be sales or nurture", keyValue[0])
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(keyValue[1]), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid threshold value '%s' for route %s", keyValue[1], route)
		}
		thresholds[route] = value
	}

	return thresholds, nil
}

func isKnownStage(s schema.Stage) bool {
	for _, known := range schema.AllStages {
		if s == known {
			return true
		}
	}
	return false
}

func applyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func applyFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// EngineParams returns the engine configuration as a flat map for run tracking.
func (c *Config) EngineParams() map[string]any {
	params := map[string]any{
		"workers":           c.Workers,
		"stages":            c.Engine.Stages,
		"depth_weights":     c.Engine.DepthWeights,
		"potential_weights": c.Engine.PotentialWeights,
		"routing":           c.Engine.Routing,
	}
	if !c.Now.IsZero() {
		params["now"] = c.Now.Format(DateTimeFormat)
	}
	if c.InputPath != "" {
		params["input"] = c.InputPath
	}
	return maps.Clone(params)
}
