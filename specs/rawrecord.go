package specs

import "time"

// RawRecordSpec represents one line item of one invoice, exactly as delivered
// by the record source (file import, upstream feed). It is the source of truth
// for every derived dataset: raw records are never mutated, and every clean or
// enriched record traces back to exactly one raw record.
//
// Raw records arrive in any order. The pipeline sorts internally wherever
// order matters (first/last purchase, recency).
type RawRecordSpec struct {
	// Invoice this line item belongs to. One invoice usually spans several
	// line items (one per product).
	InvoiceNo string `json:"invoiceNo"`

	// Stock/product code. Some codes identify administrative rows (fees,
	// manual adjustments) rather than products; those are rejected when
	// listed in the pipeline configuration's non-product code set.
	StockCode string `json:"stockCode"`

	// Human-readable product description. May be empty in source data.
	Description string `json:"description"`

	// Signed unit count. Positive for sales, negative for returns. The sign
	// is meaningful, not an error; only an exact zero is rejected.
	Quantity int64 `json:"quantity"`

	// Unit price as a decimal string.
	//
	// Stored as string to preserve arbitrary precision across language
	// boundaries and avoid floating-point representation issues. Must be
	// parseable as a decimal number and strictly positive to pass
	// validation. Examples: "2.55", "0.85", "165.00".
	UnitPrice string `json:"unitPrice"`

	// Customer identifier. Empty means a guest transaction: the record is
	// retained and included in transaction-level aggregates, but excluded
	// from customer-level summaries (no stable identity to aggregate).
	CustomerID string `json:"customerID"`

	// Country the transaction was placed from.
	Country string `json:"country"`

	// Business timestamp of the invoice.
	InvoiceDate time.Time `json:"invoiceDate"`
}
