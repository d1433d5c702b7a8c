package specs

import "time"

// RunPipeline is the full batch transform: raw records in, the complete
// derived dataset out.
//
// Process:
//  1. Validate raw records against the ordered rejection rule list
//  2. Classify surviving records as sales or returns by quantity sign
//  3. Compute per-record revenue features
//  4. Reduce into period KPI tables (one per requested granularity) and
//     per-customer summaries
//  5. Assign RFM segments across the customer population
//
// The transform is pure and total: malformed individual records are reported
// in the result's Rejected list, never raised as failures. The only error
// condition is an invalid configuration, surfaced before any record is
// processed. Running twice on the same input and as-of timestamp produces
// identical output.
//
// This is the spec-level interface using only primitive types.
// See internal.RunPipeline for the reference implementation.
type RunPipeline func(
	rawRecords []RawRecordSpec,
	asOf time.Time,
	config PipelineConfigSpec,
) (PipelineResultSpec, error)

// RecomputeSegmentation re-runs segmentation alone over already-computed
// customer summaries, for when tier configuration changes without the full
// pipeline being re-run. Scores and segment labels are reassigned; all other
// summary fields pass through untouched.
//
// See internal.RecomputeSegmentation for the reference implementation.
type RecomputeSegmentation func(
	summaries []CustomerSummarySpec,
	config PipelineConfigSpec,
) ([]CustomerSummarySpec, error)

// PipelineResultSpec is the complete, consistent output of one pipeline run.
// The pipeline never partially produces it: either every table is present, or
// the run failed before touching any of them.
type PipelineResultSpec struct {
	// CleanRecords are the validated records, in input order.
	CleanRecords []CleanRecordSpec `json:"cleanRecords"`

	// EnrichedRecords carry the computed revenue features, in input order.
	EnrichedRecords []EnrichedRecordSpec `json:"enrichedRecords"`

	// Rejected lists every excluded raw record with its reason.
	Rejected []RejectedRecordSpec `json:"rejected"`

	// RejectionCounts summarizes Rejected by reason. Always populated on a
	// successful run so report consumers can judge data-quality impact.
	RejectionCounts map[string]int `json:"rejectionCounts"`

	// PeriodKPIs holds one KPI table per requested granularity, each sorted
	// by bucket key.
	PeriodKPIs map[string][]PeriodKPISpec `json:"periodKPIs"`

	// CustomerSummaries holds one segmented row per identified customer,
	// sorted by customer identifier.
	CustomerSummaries []CustomerSummarySpec `json:"customerSummaries"`

	// AsOf is the reference timestamp recency was computed against.
	AsOf time.Time `json:"asOf"`
}
