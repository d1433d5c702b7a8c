package store

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"

	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"
)

var salesColumns = []string{
	"InvoiceNo", "StockCode", "Description", "Quantity", "InvoiceDate",
	"UnitPrice", "CustomerID", "Country", "Class",
	"Sale_Qty", "Return_Qty", "Total_Items", "Revenue", "Net_Revenue", "Run_ID",
}

var summaryColumns = []string{
	"CustomerID", "Gross_Revenue", "Return_Amount", "Net_Revenue", "Return_Rate",
	"Transactions", "Invoices", "First_Purchase", "Last_Purchase", "RecencyDays",
	"Purchase_Frequency", "Recency_Score", "Frequency_Score", "Monetary_Score",
	"Composite_Score", "Segment", "Run_ID",
}

// ReplaceRun replaces both tables with one run's output.
func (s *Store) ReplaceRun(ctx context.Context, result specs.PipelineResultSpec, runID string) error {
	for _, table := range []string{"customer_summary", "sales_data"} {
		if err := s.Truncate(ctx, table); err != nil {
			return err
		}
	}
	if err := s.UploadSalesData(ctx, result.EnrichedRecords, runID); err != nil {
		return err
	}
	return s.UploadCustomerSummaries(ctx, result.CustomerSummaries, runID)
}

// UploadSalesData appends enriched records to sales_data in chunks.
func (s *Store) UploadSalesData(ctx context.Context, records []specs.EnrichedRecordSpec, runID string) error {
	rows := make([][]any, len(records))
	for i, record := range records {
		rows[i] = []any{
			record.InvoiceNo,
			record.StockCode,
			record.Description,
			record.Quantity,
			record.InvoiceDate.UTC(),
			record.UnitPrice,
			nullableCustomer(record.CustomerID),
			record.Country,
			record.Class,
			record.SaleQty,
			record.ReturnQty,
			record.TotalItems,
			record.LineRevenue,
			record.LineNetRevenue,
			runID,
		}
	}
	if err := s.insertChunked(ctx, "sales_data", salesColumns, rows); err != nil {
		return fmt.Errorf("upload sales data: %w", err)
	}
	return nil
}

// UploadCustomerSummaries appends segmented summaries to customer_summary in
// chunks.
func (s *Store) UploadCustomerSummaries(ctx context.Context, summaries []specs.CustomerSummarySpec, runID string) error {
	rows := make([][]any, len(summaries))
	for i, summary := range summaries {
		rows[i] = []any{
			summary.CustomerID,
			summary.GrossRevenue,
			summary.ReturnAmount,
			summary.NetRevenue,
			summary.ReturnRate,
			summary.TransactionCount,
			summary.InvoiceCount,
			summary.FirstPurchase.UTC(),
			summary.LastPurchase.UTC(),
			summary.RecencyDays,
			summary.PurchaseFrequency,
			summary.RecencyScore,
			summary.FrequencyScore,
			summary.MonetaryScore,
			summary.CompositeScore,
			summary.Segment,
			runID,
		}
	}
	if err := s.insertChunked(ctx, "customer_summary", summaryColumns, rows); err != nil {
		return fmt.Errorf("upload customer summaries: %w", err)
	}
	return nil
}

func nullableCustomer(customerID string) any {
	if customerID == "" {
		return nil
	}
	return customerID
}

func newProgress(total int64, table string) *progressbar.ProgressBar {
	return progressbar.Default(total, "uploading "+table)
}
