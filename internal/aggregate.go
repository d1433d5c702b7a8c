package internal

import (
	"fmt"
	"sort"

	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"
)

// bucketKey computes the grouping key for one record under one granularity.
func bucketKey(granularity Granularity, record EnrichedRecord) string {
	when := record.InvoiceDate.ToTime()
	switch granularity.ToString() {
	case specs.GranularityDay:
		return when.Format("2006-01-02")
	case specs.GranularityMonth:
		return when.Format("2006-01")
	case specs.GranularityHourOfWeek:
		return fmt.Sprintf("%s-%02d", when.Weekday(), when.Hour())
	case specs.GranularityCountry:
		return record.Country.ToString()
	case specs.GranularityProduct:
		return record.StockCode.ToString()
	}
	return ""
}

// periodAccumulator collects one bucket's running sums during the reduction.
// Gross and return sums are kept separately so the net is always their exact
// combination, never a separately derived figure.
type periodAccumulator struct {
	gross        Decimal
	returnSum    Decimal
	txCount      int
	saleInvoices map[string]bool
	customers    map[string]bool
}

func newPeriodAccumulator() *periodAccumulator {
	return &periodAccumulator{
		gross:        ZeroDecimal(),
		returnSum:    ZeroDecimal(),
		saleInvoices: make(map[string]bool),
		customers:    make(map[string]bool),
	}
}

func (a *periodAccumulator) add(record EnrichedRecord) {
	a.txCount++
	if record.Class.IsSale() {
		a.gross = a.gross.Add(record.LineRevenue)
		a.saleInvoices[record.InvoiceNo.ToString()] = true
	} else {
		a.returnSum = a.returnSum.Add(record.LineRevenue)
	}
	if !record.Customer.IsGuest() {
		a.customers[record.Customer.ID()] = true
	}
}

func (a *periodAccumulator) toSpec(granularity Granularity, bucket string) specs.PeriodKPISpec {
	returnAmount := a.returnSum.Abs()
	net := a.gross.Add(a.returnSum)

	returnRate := ZeroDecimal()
	if !a.gross.IsZero() {
		returnRate = returnAmount.Div(a.gross).Round(4)
	}

	avgOrderValue := ZeroDecimal()
	if len(a.saleInvoices) > 0 {
		avgOrderValue = a.gross.Div(NewDecimalFromInt64(int64(len(a.saleInvoices)))).Round(2)
	}

	return specs.PeriodKPISpec{
		Granularity:       granularity.ToString(),
		Bucket:            bucket,
		GrossRevenue:      a.gross.String(),
		ReturnAmount:      returnAmount.String(),
		NetRevenue:        net.String(),
		ReturnRate:        returnRate.String(),
		TransactionCount:  a.txCount,
		SaleInvoiceCount:  len(a.saleInvoices),
		DistinctCustomers: len(a.customers),
		AvgOrderValue:     avgOrderValue.String(),
	}
}

// AggregatePeriods reduces enriched records into one KPI row per distinct
// bucket key, sorted by key. The reduction is a single deterministic pass;
// nothing is retained between runs.
func AggregatePeriods(records []EnrichedRecord, granularity Granularity) []specs.PeriodKPISpec {
	buckets := make(map[string]*periodAccumulator)
	for _, record := range records {
		key := bucketKey(granularity, record)
		acc, ok := buckets[key]
		if !ok {
			acc = newPeriodAccumulator()
			buckets[key] = acc
		}
		acc.add(record)
	}

	kpis := make([]specs.PeriodKPISpec, 0, len(buckets))
	for key, acc := range buckets {
		kpis = append(kpis, acc.toSpec(granularity, key))
	}
	sort.Slice(kpis, func(i, j int) bool {
		return kpis[i].Bucket < kpis[j].Bucket
	})
	return kpis
}

// RevenueGrowth compares two already-computed buckets of the same
// granularity: (current − previous) / previous. Growth is undefined when the
// previous net revenue is zero; that is reported via Defined, not computed.
func RevenueGrowth(current, previous specs.PeriodKPISpec) (specs.RevenueGrowthSpec, error) {
	if current.Granularity != previous.Granularity {
		return specs.RevenueGrowthSpec{}, fmt.Errorf(
			"granularity mismatch: %q vs %q", current.Granularity, previous.Granularity)
	}

	currentNet, err := NewDecimal(current.NetRevenue)
	if err != nil {
		return specs.RevenueGrowthSpec{}, fmt.Errorf("invalid current net revenue: %w", err)
	}
	previousNet, err := NewDecimal(previous.NetRevenue)
	if err != nil {
		return specs.RevenueGrowthSpec{}, fmt.Errorf("invalid previous net revenue: %w", err)
	}

	if previousNet.IsZero() {
		return specs.RevenueGrowthSpec{Defined: false}, nil
	}

	growth := currentNet.Sub(previousNet).Div(previousNet).Round(4)
	return specs.RevenueGrowthSpec{
		Defined: true,
		Value:   growth.String(),
	}, nil
}
