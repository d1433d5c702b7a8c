package specs

// Default segment names used when no boundaries are configured.
const (
	SegmentChampion       = "Champion"
	SegmentLoyal          = "Loyal"
	SegmentNeedsAttention = "Needs Attention"
	SegmentAtRisk         = "At Risk"
	SegmentLost           = "Lost"
)

// PipelineConfigSpec carries every recognized pipeline option. Zero values
// select documented defaults; anything explicitly set must be valid or the
// run fails before any record is processed (a bad configuration invalidates
// the entire output).
type PipelineConfigSpec struct {
	// TierCount is the number of quantile bins used for each RFM dimension.
	// 0 selects the default of 5. A customer population smaller than the
	// tier count degrades gracefully by reducing the number of bins.
	TierCount int `json:"tierCount"`

	// NonProductStockCodes lists administrative stock codes (fees,
	// adjustments) to reject with reason NonProductCode. nil selects the
	// default set; an empty non-nil slice disables the rule.
	NonProductStockCodes []string `json:"nonProductStockCodes"`

	// Granularities selects which period KPI tables to produce. Empty
	// selects all of them.
	Granularities []string `json:"granularities"`

	// SegmentScoreBoundaries maps composite-score ranges to segment names,
	// ordered by strictly descending MinScore. A customer is assigned the
	// first segment whose MinScore its composite score reaches; the last
	// entry catches everything below.
	SegmentScoreBoundaries []SegmentBoundarySpec `json:"segmentScoreBoundaries"`

	// RFMWeights weight the three tier scores in the composite. Empty
	// strings select weight 1 for each dimension.
	RFMWeights RFMWeightsSpec `json:"rfmWeights"`
}

// SegmentBoundarySpec maps one composite-score range to a segment name.
type SegmentBoundarySpec struct {
	// MinScore is the inclusive lower bound of the range, as a decimal
	// string.
	MinScore string `json:"minScore"`

	// Segment is the name assigned to scores in this range.
	Segment string `json:"segment"`
}

// RFMWeightsSpec holds the per-dimension weights (decimal strings) used when
// combining recency, frequency and monetary tier scores into the composite.
type RFMWeightsSpec struct {
	Recency   string `json:"recency"`
	Frequency string `json:"frequency"`
	Monetary  string `json:"monetary"`
}
