package specs

// Aggregation granularities. Day, month and hour-of-week bucket by the
// invoice timestamp; country and product are categorical groupings.
const (
	GranularityDay        = "day"
	GranularityMonth      = "month"
	GranularityHourOfWeek = "hour_of_week"
	GranularityCountry    = "country"
	GranularityProduct    = "product"
)

// PeriodKPISpec is one aggregation bucket. Buckets are owned and produced
// solely by the aggregator and recomputed fully on each pipeline run; there
// is no incremental mutation.
//
// All monetary figures are decimal strings. Invariant for every bucket:
// NetRevenue == GrossRevenue − ReturnAmount, exactly.
type PeriodKPISpec struct {
	// Granularity this bucket belongs to (one of the Granularity constants).
	Granularity string `json:"granularity"`

	// Bucket key. Format depends on granularity:
	//   day          "2011-12-01"
	//   month        "2011-12"
	//   hour_of_week "Monday-15"
	//   country      country name
	//   product      stock code
	Bucket string `json:"bucket"`

	// GrossRevenue is the sum of line revenue over SALE records.
	GrossRevenue string `json:"grossRevenue"`

	// ReturnAmount is the absolute value of the summed RETURN line revenue.
	ReturnAmount string `json:"returnAmount"`

	// NetRevenue is the sum of signed line revenue over all records.
	NetRevenue string `json:"netRevenue"`

	// ReturnRate is ReturnAmount / GrossRevenue, 0 when gross is 0.
	ReturnRate string `json:"returnRate"`

	// TransactionCount is the number of line-item records in the bucket.
	TransactionCount int `json:"transactionCount"`

	// SaleInvoiceCount is the number of distinct invoices with at least one
	// SALE record in the bucket.
	SaleInvoiceCount int `json:"saleInvoiceCount"`

	// DistinctCustomers counts distinct customer identifiers in the bucket.
	// Guest transactions are excluded.
	DistinctCustomers int `json:"distinctCustomers"`

	// AvgOrderValue is GrossRevenue / SaleInvoiceCount, 0 when there are no
	// sale invoices.
	AvgOrderValue string `json:"avgOrderValue"`
}

// RevenueGrowthSpec is the period-over-period comparison between two buckets
// of the same granularity. Growth is undefined (reported, never computed)
// when the previous bucket's net revenue is zero.
type RevenueGrowthSpec struct {
	// Defined is false when the previous period's net revenue is zero.
	Defined bool `json:"defined"`

	// Value is (current − previous) / previous as a decimal string. Empty
	// when Defined is false.
	Value string `json:"value,omitempty"`
}
