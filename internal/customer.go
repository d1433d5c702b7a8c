package internal

import (
	"sort"
	"time"

	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"
)

// CustomerSummary is the per-customer reduction of enriched records, before
// segmentation annotates it. Same aggregation machinery as period buckets,
// applied with the customer identifier as the key; guests never appear here.
type CustomerSummary struct {
	CustomerID        string
	Gross             Decimal
	ReturnAmount      Decimal
	Net               Decimal
	ReturnRate        Decimal
	TransactionCount  int
	InvoiceCount      int
	FirstPurchase     time.Time
	LastPurchase      time.Time
	RecencyDays       int
	PurchaseFrequency Decimal

	RecencyScore   int
	FrequencyScore int
	MonetaryScore  int
	CompositeScore Decimal
	Segment        string
}

type customerAccumulator struct {
	gross      Decimal
	returnSum  Decimal
	txCount    int
	invoices   map[string]bool
	firstSale  time.Time
	lastSale   time.Time
	firstAny   time.Time
	lastAny    time.Time
}

// BuildCustomerSummaries reduces enriched records into one summary per
// distinct customer identifier, sorted by identifier. Recency is measured
// against the run's as-of timestamp.
func BuildCustomerSummaries(records []EnrichedRecord, asOf time.Time) []CustomerSummary {
	accumulators := make(map[string]*customerAccumulator)

	for _, record := range records {
		if record.Customer.IsGuest() {
			continue
		}
		id := record.Customer.ID()
		acc, ok := accumulators[id]
		if !ok {
			acc = &customerAccumulator{
				gross:     ZeroDecimal(),
				returnSum: ZeroDecimal(),
				invoices:  make(map[string]bool),
			}
			accumulators[id] = acc
		}

		acc.txCount++
		acc.invoices[record.InvoiceNo.ToString()] = true

		when := record.InvoiceDate.ToTime()
		if acc.firstAny.IsZero() || when.Before(acc.firstAny) {
			acc.firstAny = when
		}
		if when.After(acc.lastAny) {
			acc.lastAny = when
		}

		if record.Class.IsSale() {
			acc.gross = acc.gross.Add(record.LineRevenue)
			if acc.firstSale.IsZero() || when.Before(acc.firstSale) {
				acc.firstSale = when
			}
			if when.After(acc.lastSale) {
				acc.lastSale = when
			}
		} else {
			acc.returnSum = acc.returnSum.Add(record.LineRevenue)
		}
	}

	summaries := make([]CustomerSummary, 0, len(accumulators))
	for id, acc := range accumulators {
		summaries = append(summaries, acc.summarize(id, asOf))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CustomerID < summaries[j].CustomerID
	})
	return summaries
}

func (a *customerAccumulator) summarize(id string, asOf time.Time) CustomerSummary {
	returnAmount := a.returnSum.Abs()
	net := a.gross.Add(a.returnSum)

	returnRate := ZeroDecimal()
	if !a.gross.IsZero() {
		returnRate = returnAmount.Div(a.gross).Round(4)
	}

	// Purchase dates prefer sale records; a customer with only returns
	// falls back to the full record range so the fields stay populated.
	first, last := a.firstSale, a.lastSale
	if first.IsZero() {
		first, last = a.firstAny, a.lastAny
	}

	recencyDays := int(asOf.Sub(last).Hours() / 24)
	if recencyDays < 0 {
		recencyDays = 0
	}

	lifetimeDays := int64(last.Sub(first).Hours() / 24)
	frequency := NewDecimalFromInt64(int64(a.txCount))
	if lifetimeDays > 0 {
		frequency = NewDecimalFromInt64(int64(len(a.invoices))).
			Div(NewDecimalFromInt64(lifetimeDays)).Round(4)
	}

	return CustomerSummary{
		CustomerID:        id,
		Gross:             a.gross,
		ReturnAmount:      returnAmount,
		Net:               net,
		ReturnRate:        returnRate,
		TransactionCount:  a.txCount,
		InvoiceCount:      len(a.invoices),
		FirstPurchase:     first,
		LastPurchase:      last,
		RecencyDays:       recencyDays,
		PurchaseFrequency: frequency,
		CompositeScore:    ZeroDecimal(),
	}
}

func (s CustomerSummary) ToSpec() specs.CustomerSummarySpec {
	return specs.CustomerSummarySpec{
		CustomerID:        s.CustomerID,
		GrossRevenue:      s.Gross.String(),
		NetRevenue:        s.Net.String(),
		ReturnAmount:      s.ReturnAmount.String(),
		ReturnRate:        s.ReturnRate.String(),
		TransactionCount:  s.TransactionCount,
		InvoiceCount:      s.InvoiceCount,
		FirstPurchase:     s.FirstPurchase,
		LastPurchase:      s.LastPurchase,
		RecencyDays:       s.RecencyDays,
		PurchaseFrequency: s.PurchaseFrequency.String(),
		RecencyScore:      s.RecencyScore,
		FrequencyScore:    s.FrequencyScore,
		MonetaryScore:     s.MonetaryScore,
		CompositeScore:    s.CompositeScore.String(),
		Segment:           s.Segment,
	}
}

// NewCustomerSummary rebuilds the domain summary from its spec form, used
// when segmentation is recomputed without re-running the pipeline.
func NewCustomerSummary(spec specs.CustomerSummarySpec) (CustomerSummary, error) {
	gross, err := NewDecimal(spec.GrossRevenue)
	if err != nil {
		return CustomerSummary{}, err
	}
	net, err := NewDecimal(spec.NetRevenue)
	if err != nil {
		return CustomerSummary{}, err
	}
	returnAmount, err := NewDecimal(spec.ReturnAmount)
	if err != nil {
		return CustomerSummary{}, err
	}
	returnRate, err := NewDecimal(spec.ReturnRate)
	if err != nil {
		return CustomerSummary{}, err
	}
	frequency, err := NewDecimal(spec.PurchaseFrequency)
	if err != nil {
		return CustomerSummary{}, err
	}

	return CustomerSummary{
		CustomerID:        spec.CustomerID,
		Gross:             gross,
		Net:               net,
		ReturnAmount:      returnAmount,
		ReturnRate:        returnRate,
		TransactionCount:  spec.TransactionCount,
		InvoiceCount:      spec.InvoiceCount,
		FirstPurchase:     spec.FirstPurchase,
		LastPurchase:      spec.LastPurchase,
		RecencyDays:       spec.RecencyDays,
		PurchaseFrequency: frequency,
		CompositeScore:    ZeroDecimal(),
	}, nil
}
