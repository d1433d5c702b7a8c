package internal

import "sort"

// Segment assigns RFM tier scores and a segment label to every customer
// summary. Scoring is population-relative: each dimension is ranked across
// the full population of the run and bucketed into quantile bins, so tier
// boundaries move with the data and are recomputed whenever the population
// changes.
//
// Determinism: ranking ties are broken by customer identifier, so the same
// input population always yields the same tier assignment regardless of
// input row order.
func Segment(summaries []CustomerSummary, config PipelineConfig) []CustomerSummary {
	segmented := make([]CustomerSummary, len(summaries))
	copy(segmented, summaries)
	sort.Slice(segmented, func(i, j int) bool {
		return segmented[i].CustomerID < segmented[j].CustomerID
	})

	if len(segmented) == 0 {
		return segmented
	}

	// A population smaller than the configured tier count degrades to one
	// bin per customer rather than failing.
	bins := config.TierCount().ToInt()
	if len(segmented) < bins {
		bins = len(segmented)
	}

	recencyScores := quantileScores(segmented, bins, func(a, b CustomerSummary) bool {
		// Inverted: a larger recency (longer since last purchase) ranks
		// lower, so the most recent customers land in the top bin.
		if a.RecencyDays != b.RecencyDays {
			return a.RecencyDays > b.RecencyDays
		}
		return a.CustomerID < b.CustomerID
	})
	frequencyScores := quantileScores(segmented, bins, func(a, b CustomerSummary) bool {
		if cmp := a.PurchaseFrequency.Cmp(b.PurchaseFrequency); cmp != 0 {
			return cmp < 0
		}
		return a.CustomerID < b.CustomerID
	})
	monetaryScores := quantileScores(segmented, bins, func(a, b CustomerSummary) bool {
		if cmp := a.Gross.Cmp(b.Gross); cmp != 0 {
			return cmp < 0
		}
		return a.CustomerID < b.CustomerID
	})

	weights := config.Weights()
	boundaries := config.Boundaries()

	for i := range segmented {
		id := segmented[i].CustomerID
		segmented[i].RecencyScore = recencyScores[id]
		segmented[i].FrequencyScore = frequencyScores[id]
		segmented[i].MonetaryScore = monetaryScores[id]

		composite := weights.Composite(
			segmented[i].RecencyScore,
			segmented[i].FrequencyScore,
			segmented[i].MonetaryScore,
		).Round(2)
		segmented[i].CompositeScore = composite
		segmented[i].Segment = segmentFor(composite, boundaries)
	}

	return segmented
}

// quantileScores ranks the population under the given ordering (worst first)
// and assigns each customer a bin from 1 (worst) to bins (best). Bins are
// equal-count up to integer division remainder.
func quantileScores(population []CustomerSummary, bins int, less func(a, b CustomerSummary) bool) map[string]int {
	ranked := make([]CustomerSummary, len(population))
	copy(ranked, population)
	sort.Slice(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j])
	})

	scores := make(map[string]int, len(ranked))
	for position, summary := range ranked {
		scores[summary.CustomerID] = position*bins/len(ranked) + 1
	}
	return scores
}

// segmentFor maps a composite score to the first boundary it reaches. The
// boundary list is validated to descend, so the first match is the tightest.
func segmentFor(composite Decimal, boundaries []SegmentBoundary) string {
	for _, boundary := range boundaries {
		if composite.Cmp(boundary.MinScore()) >= 0 {
			return boundary.Segment()
		}
	}
	// Below every configured range: the loosest boundary still names the
	// catch-all segment.
	return boundaries[len(boundaries)-1].Segment()
}
