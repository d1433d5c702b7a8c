package internal

import (
	"fmt"
	"time"

	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"
)

// RunPipeline implements specs.RunPipeline.
// Converts specs to domain objects, transforms, and converts back to specs.
//
// Configuration problems are the only error condition and surface before any
// record is processed. Malformed individual records are reported in the
// result's rejection list, never raised as failures; the output triple is
// always complete and consistent or absent entirely.
func RunPipeline(
	rawRecords []specs.RawRecordSpec,
	asOf time.Time,
	configSpec specs.PipelineConfigSpec,
) (specs.PipelineResultSpec, error) {
	config, err := NewPipelineConfig(configSpec)
	if err != nil {
		return specs.PipelineResultSpec{}, fmt.Errorf("invalid config: %w", err)
	}
	if asOf.IsZero() {
		return specs.PipelineResultSpec{}, fmt.Errorf("as-of timestamp is required")
	}

	validation := NewValidator(config).Validate(rawRecords)
	classified := ClassifyAll(validation.Clean)
	enriched := EnrichAll(classified)

	periodKPIs := make(map[string][]specs.PeriodKPISpec, len(config.Granularities()))
	for _, granularity := range config.Granularities() {
		periodKPIs[granularity.ToString()] = AggregatePeriods(enriched, granularity)
	}

	summaries := Segment(BuildCustomerSummaries(enriched, asOf), config)

	cleanSpecs := make([]specs.CleanRecordSpec, len(validation.Clean))
	for i, record := range validation.Clean {
		cleanSpecs[i] = record.ToSpec()
	}
	enrichedSpecs := make([]specs.EnrichedRecordSpec, len(enriched))
	for i, record := range enriched {
		enrichedSpecs[i] = record.ToSpec()
	}
	summarySpecs := make([]specs.CustomerSummarySpec, len(summaries))
	for i, summary := range summaries {
		summarySpecs[i] = summary.ToSpec()
	}

	return specs.PipelineResultSpec{
		CleanRecords:      cleanSpecs,
		EnrichedRecords:   enrichedSpecs,
		Rejected:          validation.Rejected,
		RejectionCounts:   validation.RejectionCounts,
		PeriodKPIs:        periodKPIs,
		CustomerSummaries: summarySpecs,
		AsOf:              asOf,
	}, nil
}

// RecomputeSegmentation implements specs.RecomputeSegmentation.
// Re-runs segmentation alone over already-computed customer summaries, for
// tier configuration changes that do not require re-running the pipeline.
func RecomputeSegmentation(
	summarySpecs []specs.CustomerSummarySpec,
	configSpec specs.PipelineConfigSpec,
) ([]specs.CustomerSummarySpec, error) {
	config, err := NewPipelineConfig(configSpec)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	summaries := make([]CustomerSummary, len(summarySpecs))
	for i, spec := range summarySpecs {
		summary, err := NewCustomerSummary(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid summary at index %d: %w", i, err)
		}
		summaries[i] = summary
	}

	segmented := Segment(summaries, config)

	result := make([]specs.CustomerSummarySpec, len(segmented))
	for i, summary := range segmented {
		result[i] = summary.ToSpec()
	}
	return result, nil
}
