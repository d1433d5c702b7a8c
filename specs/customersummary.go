package specs

import "time"

// CustomerSummarySpec is one row per distinct customer identifier present in
// any enriched record. Guest transactions are excluded; they have no stable
// identity to aggregate.
type CustomerSummarySpec struct {
	CustomerID string `json:"customerID"`

	// GrossRevenue, NetRevenue and ReturnAmount follow the same fixed rules
	// as period buckets, applied with the customer identifier as the key.
	GrossRevenue string `json:"grossRevenue"`
	NetRevenue   string `json:"netRevenue"`
	ReturnAmount string `json:"returnAmount"`

	// ReturnRate is ReturnAmount / GrossRevenue, 0 when gross is 0.
	ReturnRate string `json:"returnRate"`

	// TransactionCount is the number of line-item records for this customer.
	TransactionCount int `json:"transactionCount"`

	// InvoiceCount is the number of distinct invoices.
	InvoiceCount int `json:"invoiceCount"`

	// FirstPurchase and LastPurchase are taken over SALE records when the
	// customer has any, otherwise over all of the customer's records.
	FirstPurchase time.Time `json:"firstPurchase"`
	LastPurchase  time.Time `json:"lastPurchase"`

	// RecencyDays is the number of whole days between LastPurchase and the
	// run's reference as-of timestamp, clamped at zero.
	RecencyDays int `json:"recencyDays"`

	// PurchaseFrequency is InvoiceCount divided by the active lifetime in
	// days (LastPurchase − FirstPurchase), or TransactionCount when the
	// lifetime is zero. Decimal string.
	PurchaseFrequency string `json:"purchaseFrequency"`

	// RFM tier scores (1..tier count) and the weighted composite, assigned
	// by the segmentation engine. Zero / empty before segmentation runs.
	RecencyScore   int    `json:"recencyScore"`
	FrequencyScore int    `json:"frequencyScore"`
	MonetaryScore  int    `json:"monetaryScore"`
	CompositeScore string `json:"compositeScore"`

	// Segment name assigned from the composite score via the configured
	// score-range boundaries.
	Segment string `json:"segment"`
}
