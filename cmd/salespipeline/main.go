package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/internal"
	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/internal/csvio"
	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/internal/infra"
	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/internal/store"
	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"
)

func main() {
	_ = godotenv.Load() // Ignore error - .env is optional

	config, err := InitConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(config.LogLevel)
	if err := run(config, logger); err != nil {
		logger.WithError(err).Fatal("run failed")
	}
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}

func run(config *Config, logger *logrus.Logger) error {
	runID := uuid.NewString()
	runTime := time.Now().UTC()

	bus := infra.NewBus()
	bus.SubscribeAll(func(e infra.Event) {
		logger.WithField("run_id", runID).Info(e.EventType().String())
	})

	// Load
	source, err := os.Open(config.RawCSV)
	if err != nil {
		return fmt.Errorf("open raw csv: %w", err)
	}
	defer source.Close()

	rawRecords, err := csvio.NewReader(logger).ReadAll(source)
	if err != nil {
		return fmt.Errorf("read raw csv: %w", err)
	}
	bus.Publish(infra.RunStartedEvent{RunID: runID, RawRows: len(rawRecords)})

	asOf, err := resolveAsOf(config.AsOf, rawRecords)
	if err != nil {
		return err
	}

	// Transform
	result, err := internal.RunPipeline(rawRecords, asOf, config.PipelineConfigSpec())
	if err != nil {
		return err
	}
	bus.Publish(infra.RecordsValidatedEvent{
		RunID:           runID,
		CleanRows:       len(result.CleanRecords),
		RejectedRows:    len(result.Rejected),
		RejectionCounts: result.RejectionCounts,
	})
	bus.Publish(infra.RecordsEnrichedEvent{RunID: runID, Rows: len(result.EnrichedRecords)})
	for granularity, buckets := range result.PeriodKPIs {
		bus.Publish(infra.KPIsAggregatedEvent{
			RunID:       runID,
			Granularity: granularity,
			Buckets:     len(buckets),
		})
	}
	bus.Publish(infra.CustomersSegmentedEvent{RunID: runID, Customers: len(result.CustomerSummaries)})

	// Report
	writer := csvio.NewReportWriter(config.ReportDir, runTime, logger)
	reports, err := buildReports(result, writer.RunStamp())
	if err != nil {
		return err
	}
	for _, report := range reports {
		path, err := writer.Write(report)
		if err != nil {
			return err
		}
		if path != "" {
			bus.Publish(infra.ReportWrittenEvent{RunID: runID, Path: path})
		}
	}

	// Persist
	if config.DSN != "" {
		if err := upload(context.Background(), config.DSN, result, runID, logger, bus); err != nil {
			return err
		}
	} else {
		logger.Info("no dsn configured, skipping database upload")
	}

	bus.Publish(infra.RunCompletedEvent{RunID: runID})
	return nil
}

// resolveAsOf parses the configured as-of timestamp, falling back to the
// latest invoice date in the batch the way the original analysis anchored
// recency.
func resolveAsOf(configured string, records []specs.RawRecordSpec) (time.Time, error) {
	if configured != "" {
		asOf, err := time.Parse(time.RFC3339, configured)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse as-of: %w", err)
		}
		return asOf.UTC(), nil
	}

	var latest time.Time
	for _, record := range records {
		if record.InvoiceDate.After(latest) {
			latest = record.InvoiceDate
		}
	}
	if latest.IsZero() {
		return time.Time{}, fmt.Errorf("as-of not configured and no dated records to derive it from")
	}
	return latest.UTC(), nil
}

func buildReports(result specs.PipelineResultSpec, runStamp string) ([]csvio.Report, error) {
	topCountries, err := csvio.TopCountriesReport(result.PeriodKPIs[specs.GranularityCountry])
	if err != nil {
		return nil, err
	}
	products, err := csvio.ProductPerformanceReport(result.PeriodKPIs[specs.GranularityProduct])
	if err != nil {
		return nil, err
	}
	dashboard, err := csvio.DashboardMetricsReport(result, runStamp)
	if err != nil {
		return nil, err
	}

	return []csvio.Report{
		csvio.CleanedDataReport(result.EnrichedRecords),
		csvio.CustomerSummaryReport(result.CustomerSummaries),
		csvio.MonthlyRevenueReport(result.PeriodKPIs[specs.GranularityMonth]),
		topCountries,
		products,
		csvio.RejectionSummaryReport(result.RejectionCounts),
		dashboard,
	}, nil
}

func upload(
	ctx context.Context,
	dsn string,
	result specs.PipelineResultSpec,
	runID string,
	logger *logrus.Logger,
	bus *infra.Bus,
) error {
	db, err := store.Open(dsn, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CreateTables(ctx); err != nil {
		return err
	}
	if err := db.ReplaceRun(ctx, result, runID); err != nil {
		return err
	}

	bus.Publish(infra.TableUploadedEvent{RunID: runID, Table: "sales_data", Rows: len(result.EnrichedRecords)})
	bus.Publish(infra.TableUploadedEvent{RunID: runID, Table: "customer_summary", Rows: len(result.CustomerSummaries)})
	return nil
}
