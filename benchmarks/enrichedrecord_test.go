package benchmarks

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"
)

func realisticEnrichedRecord() specs.EnrichedRecordSpec {
	record := specs.EnrichedRecordSpec{
		Class:          specs.ClassSale,
		LineRevenue:    "15.30",
		LineNetRevenue: "15.30",
		SaleQty:        6,
		ReturnQty:      0,
		TotalItems:     6,
	}
	record.InvoiceNo = "536365"
	record.StockCode = "85123A"
	record.Description = "WHITE HANGING HEART T-LIGHT HOLDER"
	record.Quantity = 6
	record.UnitPrice = "2.55"
	record.CustomerID = "17850"
	record.Country = "United Kingdom"
	record.InvoiceDate = time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)
	return record
}

// Benchmark EnrichedRecordSpec with minimal data
func BenchmarkEnrichedRecord_Minimal_Memory(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = specs.EnrichedRecordSpec{}
	}
}

// Benchmark EnrichedRecordSpec with realistic data
func BenchmarkEnrichedRecord_Realistic_Memory(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = realisticEnrichedRecord()
	}
}

// Benchmark JSON marshaling of a realistic record
func BenchmarkEnrichedRecord_Realistic_JSONMarshal(b *testing.B) {
	record := realisticEnrichedRecord()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := json.Marshal(record)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark JSON unmarshaling of a realistic record
func BenchmarkEnrichedRecord_Realistic_JSONUnmarshal(b *testing.B) {
	data, err := json.Marshal(realisticEnrichedRecord())
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var record specs.EnrichedRecordSpec
		if err := json.Unmarshal(data, &record); err != nil {
			b.Fatal(err)
		}
	}
}

// Report the serialized size of a realistic record
func BenchmarkEnrichedRecord_JSONSize(b *testing.B) {
	data, err := json.Marshal(realisticEnrichedRecord())
	if err != nil {
		b.Fatal(err)
	}
	b.ReportMetric(float64(len(data)), "bytes/record")
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = json.Marshal(realisticEnrichedRecord())
	}
}
