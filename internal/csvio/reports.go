package csvio

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/internal"
	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// TopCountryCount caps the country ranking report, matching the historical
// eight-country chart.
const TopCountryCount = 8

// CleanedDataReport lists every enriched record with its computed features,
// in the shape the persistence table ingests.
func CleanedDataReport(records []specs.EnrichedRecordSpec) Report {
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			record.InvoiceNo,
			record.StockCode,
			record.Description,
			strconv.FormatInt(record.Quantity, 10),
			record.InvoiceDate.UTC().Format(dateTimeLayout),
			record.UnitPrice,
			record.CustomerID,
			record.Country,
			record.Class,
			strconv.FormatInt(record.SaleQty, 10),
			strconv.FormatInt(record.ReturnQty, 10),
			strconv.FormatInt(record.TotalItems, 10),
			record.LineRevenue,
			record.LineNetRevenue,
		}
	}
	return Report{
		BaseName: "cleaned_retail_data",
		Header: []string{
			"InvoiceNo", "StockCode", "Description", "Quantity", "InvoiceDate",
			"UnitPrice", "CustomerID", "Country", "Class",
			"Sale_Qty", "Return_Qty", "Total_Items", "Revenue", "Net_Revenue",
		},
		Rows: rows,
	}
}

// CustomerSummaryReport lists the segmented customer population.
func CustomerSummaryReport(summaries []specs.CustomerSummarySpec) Report {
	rows := make([][]string, len(summaries))
	for i, summary := range summaries {
		rows[i] = []string{
			summary.CustomerID,
			summary.GrossRevenue,
			summary.ReturnAmount,
			summary.NetRevenue,
			summary.ReturnRate,
			strconv.Itoa(summary.TransactionCount),
			strconv.Itoa(summary.InvoiceCount),
			summary.FirstPurchase.UTC().Format(dateTimeLayout),
			summary.LastPurchase.UTC().Format(dateTimeLayout),
			strconv.Itoa(summary.RecencyDays),
			summary.PurchaseFrequency,
			strconv.Itoa(summary.RecencyScore),
			strconv.Itoa(summary.FrequencyScore),
			strconv.Itoa(summary.MonetaryScore),
			summary.CompositeScore,
			summary.Segment,
		}
	}
	return Report{
		BaseName: "customer_summary",
		Header: []string{
			"CustomerID", "Gross_Revenue", "Return_Amount", "Net_Revenue",
			"Return_Rate", "Transactions", "Invoices",
			"First_Purchase", "Last_Purchase", "RecencyDays",
			"Purchase_Frequency", "Recency_Score", "Frequency_Score",
			"Monetary_Score", "Composite_Score", "Segment",
		},
		Rows: rows,
	}
}

// MonthlyRevenueReport lists net revenue per month bucket.
func MonthlyRevenueReport(monthKPIs []specs.PeriodKPISpec) Report {
	rows := make([][]string, len(monthKPIs))
	for i, bucket := range monthKPIs {
		rows[i] = []string{bucket.Bucket, bucket.NetRevenue, bucket.GrossRevenue, bucket.ReturnAmount}
	}
	return Report{
		BaseName: "monthly_revenue",
		Header:   []string{"month", "net_revenue", "gross_revenue", "return_amount"},
		Rows:     rows,
	}
}

// TopCountriesReport ranks countries by net revenue, highest first, skipping
// the Unspecified placeholder bucket.
func TopCountriesReport(countryKPIs []specs.PeriodKPISpec) (Report, error) {
	ranked, err := rankByNet(countryKPIs, "Unspecified")
	if err != nil {
		return Report{}, fmt.Errorf("rank countries: %w", err)
	}
	if len(ranked) > TopCountryCount {
		ranked = ranked[:TopCountryCount]
	}

	rows := make([][]string, len(ranked))
	for i, bucket := range ranked {
		rows[i] = []string{bucket.Bucket, bucket.NetRevenue, strconv.Itoa(bucket.TransactionCount)}
	}
	return Report{
		BaseName: "top_countries",
		Header:   []string{"country", "revenue", "transactions"},
		Rows:     rows,
	}, nil
}

// ProductPerformanceReport ranks products by net revenue, highest first.
func ProductPerformanceReport(productKPIs []specs.PeriodKPISpec) (Report, error) {
	ranked, err := rankByNet(productKPIs, "")
	if err != nil {
		return Report{}, fmt.Errorf("rank products: %w", err)
	}

	rows := make([][]string, len(ranked))
	for i, bucket := range ranked {
		rows[i] = []string{
			bucket.Bucket,
			bucket.NetRevenue,
			bucket.GrossRevenue,
			bucket.ReturnAmount,
			bucket.ReturnRate,
			strconv.Itoa(bucket.TransactionCount),
		}
	}
	return Report{
		BaseName: "product_performance",
		Header: []string{
			"stock_code", "net_revenue", "gross_revenue",
			"return_amount", "return_rate", "transactions",
		},
		Rows: rows,
	}, nil
}

// RejectionSummaryReport lists the per-reason rejection counts that accompany
// every run, even when nothing was rejected.
func RejectionSummaryReport(counts map[string]int) Report {
	reasons := make([]string, 0, len(counts))
	for reason := range counts {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)

	rows := make([][]string, len(reasons))
	for i, reason := range reasons {
		rows[i] = []string{reason, strconv.Itoa(counts[reason])}
	}
	return Report{
		BaseName: "rejection_summary",
		Header:   []string{"reason", "count"},
		Rows:     rows,
	}
}

// DashboardMetricsReport computes the headline figures the sales dashboard
// shows: total net revenue, average order value, customer and transaction
// counts, and how many products made versus lost money.
func DashboardMetricsReport(result specs.PipelineResultSpec, runStamp string) (Report, error) {
	gross := internal.ZeroDecimal()
	net := internal.ZeroDecimal()
	saleInvoices := map[string]bool{}
	for _, record := range result.EnrichedRecords {
		lineNet, err := internal.NewDecimal(record.LineNetRevenue)
		if err != nil {
			return Report{}, fmt.Errorf("record %s: %w", record.InvoiceNo, err)
		}
		net = net.Add(lineNet)
		if record.Class == specs.ClassSale {
			gross = gross.Add(lineNet)
			saleInvoices[record.InvoiceNo] = true
		}
	}

	avgOrderValue := internal.ZeroDecimal()
	if len(saleInvoices) > 0 {
		avgOrderValue = gross.Div(internal.NewDecimalFromInt64(int64(len(saleInvoices)))).Round(2)
	}

	profitable, lossMaking := 0, 0
	for _, bucket := range result.PeriodKPIs[specs.GranularityProduct] {
		bucketNet, err := internal.NewDecimal(bucket.NetRevenue)
		if err != nil {
			return Report{}, fmt.Errorf("bucket %s: %w", bucket.Bucket, err)
		}
		switch {
		case bucketNet.IsNegative():
			lossMaking++
		case !bucketNet.IsZero():
			profitable++
		}
	}

	rows := [][]string{
		{"Total Revenue", net.String(), "currency", runStamp},
		{"Avg Order Value", avgOrderValue.String(), "currency", runStamp},
		{"Total Customers", strconv.Itoa(len(result.CustomerSummaries)), "count", runStamp},
		{"Total Transactions", strconv.Itoa(len(result.EnrichedRecords)), "count", runStamp},
		{"Profitable Products", strconv.Itoa(profitable), "count", runStamp},
		{"Loss-Making Products", strconv.Itoa(lossMaking), "count", runStamp},
	}
	return Report{
		BaseName: "dashboard_metrics",
		Header:   []string{"metric", "value", "format", "run_timestamp"},
		Rows:     rows,
	}, nil
}

func rankByNet(buckets []specs.PeriodKPISpec, skip string) ([]specs.PeriodKPISpec, error) {
	type rankedBucket struct {
		bucket specs.PeriodKPISpec
		net    internal.Decimal
	}

	ranked := make([]rankedBucket, 0, len(buckets))
	for _, bucket := range buckets {
		if skip != "" && bucket.Bucket == skip {
			continue
		}
		net, err := internal.NewDecimal(bucket.NetRevenue)
		if err != nil {
			return nil, fmt.Errorf("bucket %s: %w", bucket.Bucket, err)
		}
		ranked = append(ranked, rankedBucket{bucket: bucket, net: net})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if cmp := ranked[i].net.Cmp(ranked[j].net); cmp != 0 {
			return cmp > 0
		}
		return ranked[i].bucket.Bucket < ranked[j].bucket.Bucket
	})

	result := make([]specs.PeriodKPISpec, len(ranked))
	for i, r := range ranked {
		result[i] = r.bucket
	}
	return result, nil
}
