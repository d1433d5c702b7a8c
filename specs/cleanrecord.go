package specs

import "time"

// Transaction classes assigned by the classifier. Classification is purely
// sign-based: every negative-quantity record is a return, every positive one
// a sale. Zero-quantity records are rejected during validation and never
// reach the classifier.
const (
	ClassSale   = "SALE"
	ClassReturn = "RETURN"
)

// CleanRecordSpec is a raw record that passed validation, with normalized
// fields. Invalid raw records never appear downstream of the validator.
type CleanRecordSpec struct {
	InvoiceNo   string    `json:"invoiceNo"`
	StockCode   string    `json:"stockCode"`
	Description string    `json:"description"`
	Quantity    int64     `json:"quantity"`
	UnitPrice   string    `json:"unitPrice"`
	CustomerID  string    `json:"customerID,omitempty"`
	Guest       bool      `json:"guest"`
	Country     string    `json:"country"`
	InvoiceDate time.Time `json:"invoiceDate"`
}

// EnrichedRecordSpec is a classified clean record plus the computed revenue
// features consumed by aggregation and persistence.
//
// LineRevenue preserves the quantity sign, so net revenue at any aggregation
// level is simply the sum of signed line revenues. This guarantees
// net == gross − returns exactly at every level, with no separately derived
// formula that could drift.
type EnrichedRecordSpec struct {
	CleanRecordSpec

	// Class is ClassSale or ClassReturn.
	Class string `json:"class"`

	// LineRevenue is quantity × unit price as a decimal string. Negative for
	// returns.
	LineRevenue string `json:"lineRevenue"`

	// LineNetRevenue equals LineRevenue; returns subtract from net by virtue
	// of their negative sign.
	LineNetRevenue string `json:"lineNetRevenue"`

	// SaleQty and ReturnQty split the signed quantity for reporting:
	// SaleQty is the quantity when positive, ReturnQty its absolute value
	// when negative.
	SaleQty   int64 `json:"saleQty"`
	ReturnQty int64 `json:"returnQty"`

	// TotalItems is SaleQty + ReturnQty (total units moved either way).
	TotalItems int64 `json:"totalItems"`
}
