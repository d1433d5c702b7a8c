package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"
)

func rfmSummary(t *testing.T, customerID string, recencyDays int, frequency, gross string) CustomerSummary {
	t.Helper()

	frequencyValue, err := NewDecimal(frequency)
	require.NoError(t, err)
	grossValue, err := NewDecimal(gross)
	require.NoError(t, err)

	return CustomerSummary{
		CustomerID:        customerID,
		Gross:             grossValue,
		RecencyDays:       recencyDays,
		PurchaseFrequency: frequencyValue,
	}
}

// Five customers strictly ordered on every dimension: C1 is the best on all
// three, C5 the worst.
func gradedPopulation(t *testing.T) []CustomerSummary {
	t.Helper()
	return []CustomerSummary{
		rfmSummary(t, "C1", 1, "0.50", "500.00"),
		rfmSummary(t, "C2", 2, "0.40", "400.00"),
		rfmSummary(t, "C3", 3, "0.30", "300.00"),
		rfmSummary(t, "C4", 4, "0.20", "200.00"),
		rfmSummary(t, "C5", 5, "0.10", "100.00"),
	}
}

func TestSegment(t *testing.T) {
	config := mustConfig(t, specs.PipelineConfigSpec{})

	t.Run("strictly graded population spans all tiers", func(t *testing.T) {
		segmented := Segment(gradedPopulation(t), config)

		require.Len(t, segmented, 5)
		for i, expected := range []struct {
			customerID string
			score      int
			composite  string
			segment    string
		}{
			{"C1", 5, "5.00", specs.SegmentChampion},
			{"C2", 4, "4.00", specs.SegmentLoyal},
			{"C3", 3, "3.00", specs.SegmentNeedsAttention},
			{"C4", 2, "2.00", specs.SegmentAtRisk},
			{"C5", 1, "1.00", specs.SegmentLost},
		} {
			assert.Equal(t, expected.customerID, segmented[i].CustomerID)
			assert.Equal(t, expected.score, segmented[i].RecencyScore)
			assert.Equal(t, expected.score, segmented[i].FrequencyScore)
			assert.Equal(t, expected.score, segmented[i].MonetaryScore)
			assert.Equal(t, expected.composite, segmented[i].CompositeScore.String())
			assert.Equal(t, expected.segment, segmented[i].Segment)
		}
	})

	t.Run("input row order does not change the outcome", func(t *testing.T) {
		population := gradedPopulation(t)
		reversed := make([]CustomerSummary, 0, len(population))
		for i := len(population) - 1; i >= 0; i-- {
			reversed = append(reversed, population[i])
		}

		assert.Equal(t, Segment(population, config), Segment(reversed, config))
	})

	t.Run("metric ties break by customer identifier", func(t *testing.T) {
		population := []CustomerSummary{
			rfmSummary(t, "C2", 3, "0.20", "100.00"),
			rfmSummary(t, "C1", 3, "0.20", "100.00"),
		}

		segmented := Segment(population, config)

		require.Len(t, segmented, 2)
		assert.Equal(t, "C1", segmented[0].CustomerID)
		assert.Equal(t, 1, segmented[0].MonetaryScore)
		assert.Equal(t, 2, segmented[1].MonetaryScore)
	})

	t.Run("population smaller than tier count degrades to fewer bins", func(t *testing.T) {
		population := []CustomerSummary{
			rfmSummary(t, "C1", 1, "0.50", "500.00"),
			rfmSummary(t, "C2", 9, "0.10", "100.00"),
		}

		segmented := Segment(population, config)

		require.Len(t, segmented, 2)
		assert.Equal(t, 2, segmented[0].RecencyScore)
		assert.Equal(t, 1, segmented[1].RecencyScore)
		assert.Equal(t, "2.00", segmented[0].CompositeScore.String())
		assert.Equal(t, "1.00", segmented[1].CompositeScore.String())
	})

	t.Run("single customer lands in the top bin of one", func(t *testing.T) {
		segmented := Segment([]CustomerSummary{
			rfmSummary(t, "C1", 30, "0.10", "100.00"),
		}, config)

		require.Len(t, segmented, 1)
		assert.Equal(t, 1, segmented[0].RecencyScore)
		assert.Equal(t, "1.00", segmented[0].CompositeScore.String())
		assert.Equal(t, specs.SegmentLost, segmented[0].Segment)
	})

	t.Run("empty population yields an empty result", func(t *testing.T) {
		assert.Empty(t, Segment(nil, config))
	})

	t.Run("weights tilt the composite toward a dimension", func(t *testing.T) {
		weighted := mustConfig(t, specs.PipelineConfigSpec{
			RFMWeights: specs.RFMWeightsSpec{Recency: "1", Frequency: "0", Monetary: "0"},
		})

		population := []CustomerSummary{
			rfmSummary(t, "C1", 1, "0.10", "100.00"),
			rfmSummary(t, "C2", 9, "0.50", "500.00"),
		}

		segmented := Segment(population, weighted)

		require.Len(t, segmented, 2)
		assert.Equal(t, "2.00", segmented[0].CompositeScore.String())
		assert.Equal(t, "1.00", segmented[1].CompositeScore.String())
	})

	t.Run("custom boundary ladder overrides the default labels", func(t *testing.T) {
		custom := mustConfig(t, specs.PipelineConfigSpec{
			SegmentScoreBoundaries: []specs.SegmentBoundarySpec{
				{MinScore: "3", Segment: "Keep"},
				{MinScore: "0", Segment: "Review"},
			},
		})

		segmented := Segment(gradedPopulation(t), custom)

		require.Len(t, segmented, 5)
		assert.Equal(t, "Keep", segmented[0].Segment)
		assert.Equal(t, "Keep", segmented[2].Segment)
		assert.Equal(t, "Review", segmented[3].Segment)
		assert.Equal(t, "Review", segmented[4].Segment)
	})
}
