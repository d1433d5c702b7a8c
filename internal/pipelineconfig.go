package internal

import (
	"fmt"

	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"
)

const defaultTierCount = 5

// DefaultNonProductCodes are the administrative stock codes the source data
// is known to carry: postage, discounts, manual adjustments, bank charges,
// charity and marketplace fees. Overridable per run.
var DefaultNonProductCodes = []string{"S", "D", "BANK CHARGES", "CRUK", "M", "AMAZONFEE"}

// PipelineConfig is the validated run configuration. A config that does not
// validate is fatal: it invalidates the entire output, so it surfaces before
// any record is processed.
type PipelineConfig struct {
	tierCount       TierCount
	nonProductCodes map[string]bool
	granularities   []Granularity
	boundaries      []SegmentBoundary
	weights         RFMWeights
}

func NewPipelineConfig(spec specs.PipelineConfigSpec) (PipelineConfig, error) {
	tierCount, err := NewTierCount(spec.TierCount)
	if err != nil {
		return PipelineConfig{}, fmt.Errorf("invalid tier count: %w", err)
	}

	codes := spec.NonProductStockCodes
	if codes == nil {
		codes = DefaultNonProductCodes
	}
	codeSet := make(map[string]bool, len(codes))
	for _, code := range codes {
		codeSet[code] = true
	}

	granularitySpecs := spec.Granularities
	if len(granularitySpecs) == 0 {
		granularitySpecs = []string{
			specs.GranularityDay,
			specs.GranularityMonth,
			specs.GranularityHourOfWeek,
			specs.GranularityCountry,
			specs.GranularityProduct,
		}
	}
	granularities := make([]Granularity, 0, len(granularitySpecs))
	for _, g := range granularitySpecs {
		granularity, err := NewGranularity(g)
		if err != nil {
			return PipelineConfig{}, fmt.Errorf("invalid granularity: %w", err)
		}
		granularities = append(granularities, granularity)
	}

	boundaries, err := NewSegmentBoundaries(spec.SegmentScoreBoundaries)
	if err != nil {
		return PipelineConfig{}, fmt.Errorf("invalid segment boundaries: %w", err)
	}

	weights, err := NewRFMWeights(spec.RFMWeights)
	if err != nil {
		return PipelineConfig{}, fmt.Errorf("invalid rfm weights: %w", err)
	}

	return PipelineConfig{
		tierCount:       tierCount,
		nonProductCodes: codeSet,
		granularities:   granularities,
		boundaries:      boundaries,
		weights:         weights,
	}, nil
}

func (c PipelineConfig) TierCount() TierCount {
	return c.tierCount
}

func (c PipelineConfig) IsNonProductCode(code string) bool {
	return c.nonProductCodes[code]
}

func (c PipelineConfig) Granularities() []Granularity {
	return c.granularities
}

func (c PipelineConfig) Boundaries() []SegmentBoundary {
	return c.boundaries
}

func (c PipelineConfig) Weights() RFMWeights {
	return c.weights
}

type TierCount struct {
	value int
}

// NewTierCount validates the quantile bin count. Zero selects the default;
// anything negative or above ten is a configuration error (the composite
// score boundaries assume single-digit tier scores).
func NewTierCount(value int) (TierCount, error) {
	if value == 0 {
		value = defaultTierCount
	}
	if value < 2 || value > 10 {
		return TierCount{}, fmt.Errorf("tier count must be between 2 and 10, got %d", value)
	}
	return TierCount{value: value}, nil
}

func (t TierCount) ToInt() int {
	return t.value
}

type Granularity struct {
	value string
}

func NewGranularity(value string) (Granularity, error) {
	switch value {
	case specs.GranularityDay,
		specs.GranularityMonth,
		specs.GranularityHourOfWeek,
		specs.GranularityCountry,
		specs.GranularityProduct:
		// Valid
	default:
		return Granularity{}, fmt.Errorf("unknown granularity: %q", value)
	}
	return Granularity{value: value}, nil
}

func (g Granularity) ToString() string {
	return g.value
}

// SegmentBoundary maps an inclusive composite-score lower bound to a segment
// name.
type SegmentBoundary struct {
	minScore Decimal
	segment  string
}

func (b SegmentBoundary) MinScore() Decimal {
	return b.minScore
}

func (b SegmentBoundary) Segment() string {
	return b.segment
}

// NewSegmentBoundaries validates the ordered boundary list. Empty selects the
// default five-segment ladder. MinScores must be strictly descending so the
// first-match lookup is unambiguous.
func NewSegmentBoundaries(boundarySpecs []specs.SegmentBoundarySpec) ([]SegmentBoundary, error) {
	if len(boundarySpecs) == 0 {
		boundarySpecs = []specs.SegmentBoundarySpec{
			{MinScore: "4.5", Segment: specs.SegmentChampion},
			{MinScore: "3.5", Segment: specs.SegmentLoyal},
			{MinScore: "2.5", Segment: specs.SegmentNeedsAttention},
			{MinScore: "1.5", Segment: specs.SegmentAtRisk},
			{MinScore: "0", Segment: specs.SegmentLost},
		}
	}

	boundaries := make([]SegmentBoundary, 0, len(boundarySpecs))
	for i, spec := range boundarySpecs {
		if spec.Segment == "" {
			return nil, fmt.Errorf("boundary %d: segment name is required", i)
		}
		minScore, err := NewDecimal(spec.MinScore)
		if err != nil {
			return nil, fmt.Errorf("boundary %d: %w", i, err)
		}
		if i > 0 && minScore.Cmp(boundaries[i-1].minScore) >= 0 {
			return nil, fmt.Errorf("boundary %d: min scores must be strictly descending", i)
		}
		boundaries = append(boundaries, SegmentBoundary{
			minScore: minScore,
			segment:  spec.Segment,
		})
	}
	return boundaries, nil
}

// RFMWeights weight the three tier scores when combining them into the
// composite score.
type RFMWeights struct {
	recency   Decimal
	frequency Decimal
	monetary  Decimal
}

func NewRFMWeights(spec specs.RFMWeightsSpec) (RFMWeights, error) {
	recency, err := parseWeight(spec.Recency)
	if err != nil {
		return RFMWeights{}, fmt.Errorf("recency: %w", err)
	}
	frequency, err := parseWeight(spec.Frequency)
	if err != nil {
		return RFMWeights{}, fmt.Errorf("frequency: %w", err)
	}
	monetary, err := parseWeight(spec.Monetary)
	if err != nil {
		return RFMWeights{}, fmt.Errorf("monetary: %w", err)
	}

	total := recency.Add(frequency).Add(monetary)
	if total.IsZero() {
		return RFMWeights{}, fmt.Errorf("at least one weight must be positive")
	}

	return RFMWeights{
		recency:   recency,
		frequency: frequency,
		monetary:  monetary,
	}, nil
}

// Composite combines the three tier scores into a weighted average.
func (w RFMWeights) Composite(recencyScore, frequencyScore, monetaryScore int) Decimal {
	weighted := w.recency.MulInt64(int64(recencyScore)).
		Add(w.frequency.MulInt64(int64(frequencyScore))).
		Add(w.monetary.MulInt64(int64(monetaryScore)))
	total := w.recency.Add(w.frequency).Add(w.monetary)
	return weighted.Div(total)
}

func parseWeight(value string) (Decimal, error) {
	if value == "" {
		return NewDecimalFromInt64(1), nil
	}
	d, err := NewDecimal(value)
	if err != nil {
		return Decimal{}, err
	}
	if d.IsNegative() {
		return Decimal{}, fmt.Errorf("weight cannot be negative")
	}
	return d, nil
}
