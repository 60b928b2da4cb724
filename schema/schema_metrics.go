package schema

// PipelineModel describes one decision pipeline for display purposes.
type PipelineModel struct {
	Name    string             `json:"name"`
	Purpose string             `json:"purpose"`
	Factors []string           `json:"factors"`
	Weights map[string]float64 `json:"weights,omitempty"`
	Formula string             `json:"formula"`
}

// MetricsRenderModel contains all processed data needed for displaying the active model.
type MetricsRenderModel struct {
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Pipelines      []PipelineModel    `json:"pipelines"`
	Stages         StageThresholds    `json:"stages"`
	Routing        RoutingThresholds  `json:"routing"`
	StageDelays    map[Stage]int      `json:"stage_delay_days"`
	ReasonDelays   map[Reason]int     `json:"reason_delay_days"`
	ReversalDelays map[Reason]int     `json:"reversal_delay_days"`
	Recoverability map[Reason]float64 `json:"recoverability"`
	SourceTrust    map[string]float64 `json:"source_trust"`
}
