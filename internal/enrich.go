package internal

import "github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"

// EnrichedRecord is a classified record plus its computed revenue features.
// LineRevenue keeps the quantity sign, so any aggregate net revenue is just a
// sum of line revenues and the identity net == gross − returns holds exactly
// at every level.
type EnrichedRecord struct {
	ClassifiedRecord
	LineRevenue Decimal
}

// Enrich computes the derived fields for one classified record.
func Enrich(record ClassifiedRecord) EnrichedRecord {
	lineRevenue := record.UnitPrice.ToDecimal().MulInt64(record.Quantity.ToInt64())
	return EnrichedRecord{
		ClassifiedRecord: record,
		LineRevenue:      lineRevenue,
	}
}

// EnrichAll computes features for a batch, preserving order.
func EnrichAll(records []ClassifiedRecord) []EnrichedRecord {
	enriched := make([]EnrichedRecord, len(records))
	for i, record := range records {
		enriched[i] = Enrich(record)
	}
	return enriched
}

// SaleQty returns the quantity when the record is a sale, zero otherwise.
func (r EnrichedRecord) SaleQty() int64 {
	if r.Class.IsSale() {
		return r.Quantity.ToInt64()
	}
	return 0
}

// ReturnQty returns the absolute quantity when the record is a return, zero
// otherwise.
func (r EnrichedRecord) ReturnQty() int64 {
	if r.Class.IsReturn() {
		return -r.Quantity.ToInt64()
	}
	return 0
}

func (r EnrichedRecord) ToSpec() specs.EnrichedRecordSpec {
	revenue := r.LineRevenue.String()
	return specs.EnrichedRecordSpec{
		CleanRecordSpec: r.CleanRecord.ToSpec(),
		Class:           r.Class.ToString(),
		LineRevenue:     revenue,
		LineNetRevenue:  revenue,
		SaleQty:         r.SaleQty(),
		ReturnQty:       r.ReturnQty(),
		TotalItems:      r.SaleQty() + r.ReturnQty(),
	}
}
