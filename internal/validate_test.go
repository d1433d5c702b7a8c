package internal

import (
	"testing"
	"time"

	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRecord(overrides func(*specs.RawRecordSpec)) specs.RawRecordSpec {
	record := specs.RawRecordSpec{
		InvoiceNo:   "536365",
		StockCode:   "85123A",
		Description: "WHITE HANGING HEART T-LIGHT HOLDER",
		Quantity:    6,
		UnitPrice:   "2.55",
		CustomerID:  "17850",
		Country:     "United Kingdom",
		InvoiceDate: time.Date(2011, 12, 1, 8, 26, 0, 0, time.UTC),
	}
	if overrides != nil {
		overrides(&record)
	}
	return record
}

func mustConfig(t *testing.T, spec specs.PipelineConfigSpec) PipelineConfig {
	t.Helper()
	config, err := NewPipelineConfig(spec)
	require.NoError(t, err)
	return config
}

func TestValidator(t *testing.T) {
	t.Run("accepts a well-formed record", func(t *testing.T) {
		validator := NewValidator(mustConfig(t, specs.PipelineConfigSpec{}))

		result := validator.Validate([]specs.RawRecordSpec{rawRecord(nil)})

		require.Len(t, result.Clean, 1)
		assert.Empty(t, result.Rejected)
		assert.Empty(t, result.RejectionCounts)
		assert.Equal(t, "536365", result.Clean[0].InvoiceNo.ToString())
		assert.Equal(t, "2.55", result.Clean[0].UnitPrice.ToDecimal().String())
	})

	t.Run("rejects zero price with reason InvalidPrice", func(t *testing.T) {
		validator := NewValidator(mustConfig(t, specs.PipelineConfigSpec{}))

		result := validator.Validate([]specs.RawRecordSpec{
			rawRecord(func(r *specs.RawRecordSpec) { r.UnitPrice = "0" }),
		})

		assert.Empty(t, result.Clean)
		require.Len(t, result.Rejected, 1)
		assert.Equal(t, specs.ReasonInvalidPrice, result.Rejected[0].Reason)
		assert.Equal(t, 1, result.RejectionCounts[specs.ReasonInvalidPrice])
	})

	t.Run("rejects negative, missing and unparseable prices", func(t *testing.T) {
		validator := NewValidator(mustConfig(t, specs.PipelineConfigSpec{}))

		result := validator.Validate([]specs.RawRecordSpec{
			rawRecord(func(r *specs.RawRecordSpec) { r.UnitPrice = "-1.00" }),
			rawRecord(func(r *specs.RawRecordSpec) { r.UnitPrice = "" }),
			rawRecord(func(r *specs.RawRecordSpec) { r.UnitPrice = "abc" }),
		})

		assert.Empty(t, result.Clean)
		require.Len(t, result.Rejected, 3)
		for _, rejected := range result.Rejected {
			assert.Equal(t, specs.ReasonInvalidPrice, rejected.Reason)
		}
	})

	t.Run("rejects zero quantity with reason ZeroQuantity", func(t *testing.T) {
		validator := NewValidator(mustConfig(t, specs.PipelineConfigSpec{}))

		result := validator.Validate([]specs.RawRecordSpec{
			rawRecord(func(r *specs.RawRecordSpec) { r.Quantity = 0 }),
		})

		require.Len(t, result.Rejected, 1)
		assert.Equal(t, specs.ReasonZeroQuantity, result.Rejected[0].Reason)
	})

	t.Run("retains negative quantity as a valid record", func(t *testing.T) {
		validator := NewValidator(mustConfig(t, specs.PipelineConfigSpec{}))

		result := validator.Validate([]specs.RawRecordSpec{
			rawRecord(func(r *specs.RawRecordSpec) { r.Quantity = -3 }),
		})

		require.Len(t, result.Clean, 1)
		assert.Empty(t, result.Rejected)
		assert.Equal(t, int64(-3), result.Clean[0].Quantity.ToInt64())
	})

	t.Run("rejects configured non-product stock codes", func(t *testing.T) {
		validator := NewValidator(mustConfig(t, specs.PipelineConfigSpec{}))

		result := validator.Validate([]specs.RawRecordSpec{
			rawRecord(func(r *specs.RawRecordSpec) { r.StockCode = "BANK CHARGES" }),
			rawRecord(func(r *specs.RawRecordSpec) { r.StockCode = "AMAZONFEE" }),
		})

		assert.Empty(t, result.Clean)
		assert.Equal(t, 2, result.RejectionCounts[specs.ReasonNonProductCode])
	})

	t.Run("empty non-nil code set disables the non-product rule", func(t *testing.T) {
		validator := NewValidator(mustConfig(t, specs.PipelineConfigSpec{
			NonProductStockCodes: []string{},
		}))

		result := validator.Validate([]specs.RawRecordSpec{
			rawRecord(func(r *specs.RawRecordSpec) { r.StockCode = "BANK CHARGES" }),
		})

		assert.Len(t, result.Clean, 1)
		assert.Empty(t, result.Rejected)
	})

	t.Run("rejects exact duplicates keeping the first occurrence", func(t *testing.T) {
		validator := NewValidator(mustConfig(t, specs.PipelineConfigSpec{}))

		result := validator.Validate([]specs.RawRecordSpec{
			rawRecord(nil),
			rawRecord(nil),
			rawRecord(nil),
		})

		assert.Len(t, result.Clean, 1)
		require.Len(t, result.Rejected, 2)
		assert.Equal(t, specs.ReasonDuplicateRecord, result.Rejected[0].Reason)
		assert.Equal(t, 2, result.RejectionCounts[specs.ReasonDuplicateRecord])
	})

	t.Run("a differing field is not a duplicate", func(t *testing.T) {
		validator := NewValidator(mustConfig(t, specs.PipelineConfigSpec{}))

		result := validator.Validate([]specs.RawRecordSpec{
			rawRecord(nil),
			rawRecord(func(r *specs.RawRecordSpec) { r.Quantity = 7 }),
		})

		assert.Len(t, result.Clean, 2)
		assert.Empty(t, result.Rejected)
	})

	t.Run("a sub-second timestamp difference is not a duplicate", func(t *testing.T) {
		validator := NewValidator(mustConfig(t, specs.PipelineConfigSpec{}))

		result := validator.Validate([]specs.RawRecordSpec{
			rawRecord(nil),
			rawRecord(func(r *specs.RawRecordSpec) {
				r.InvoiceDate = r.InvoiceDate.Add(500 * time.Millisecond)
			}),
		})

		assert.Len(t, result.Clean, 2)
		assert.Empty(t, result.Rejected)
	})

	t.Run("reports the first matched reason when several rules apply", func(t *testing.T) {
		validator := NewValidator(mustConfig(t, specs.PipelineConfigSpec{}))

		// Zero price and zero quantity together: price rule runs first.
		result := validator.Validate([]specs.RawRecordSpec{
			rawRecord(func(r *specs.RawRecordSpec) {
				r.UnitPrice = "0"
				r.Quantity = 0
			}),
		})

		require.Len(t, result.Rejected, 1)
		assert.Equal(t, specs.ReasonInvalidPrice, result.Rejected[0].Reason)
	})

	t.Run("missing customer identifier is retained as guest, never rejected", func(t *testing.T) {
		validator := NewValidator(mustConfig(t, specs.PipelineConfigSpec{}))

		result := validator.Validate([]specs.RawRecordSpec{
			rawRecord(func(r *specs.RawRecordSpec) { r.CustomerID = "" }),
		})

		require.Len(t, result.Clean, 1)
		assert.Empty(t, result.Rejected)
		assert.True(t, result.Clean[0].Customer.IsGuest())
	})

	t.Run("normalizes missing description and country", func(t *testing.T) {
		validator := NewValidator(mustConfig(t, specs.PipelineConfigSpec{}))

		result := validator.Validate([]specs.RawRecordSpec{
			rawRecord(func(r *specs.RawRecordSpec) {
				r.Description = ""
				r.Country = ""
			}),
		})

		require.Len(t, result.Clean, 1)
		assert.Equal(t, "Unknown Product", result.Clean[0].Description.ToString())
		assert.Equal(t, "Unspecified", result.Clean[0].Country.ToString())
	})
}
