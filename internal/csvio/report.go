package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Report is a named table ready to be written out.
type Report struct {
	BaseName string
	Header   []string
	Rows     [][]string
}

// ReportWriter emits each report twice: once under a run-stamped name for
// history and once as the _latest copy that downstream consumers point at.
type ReportWriter struct {
	dir      string
	runStamp string
	logger   *logrus.Logger
}

func NewReportWriter(dir string, runTime time.Time, logger *logrus.Logger) *ReportWriter {
	return &ReportWriter{
		dir:      dir,
		runStamp: runTime.Format("20060102_150405"),
		logger:   logger,
	}
}

func (w *ReportWriter) RunStamp() string {
	return w.runStamp
}

// Write writes the stamped and latest copies and returns the stamped path.
// Empty reports are skipped.
func (w *ReportWriter) Write(report Report) (string, error) {
	if len(report.Rows) == 0 {
		w.logger.WithField("report", report.BaseName).Warn("no rows, report skipped")
		return "", nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	stampedPath := filepath.Join(w.dir, fmt.Sprintf("%s_%s.csv", report.BaseName, w.runStamp))
	latestPath := filepath.Join(w.dir, fmt.Sprintf("%s_latest.csv", report.BaseName))

	for _, path := range []string{stampedPath, latestPath} {
		if err := writeCSV(path, report.Header, report.Rows); err != nil {
			return "", fmt.Errorf("report %s: %w", report.BaseName, err)
		}
	}

	w.logger.WithFields(logrus.Fields{
		"report": report.BaseName,
		"rows":   len(report.Rows),
		"path":   stampedPath,
	}).Info("report written")
	return stampedPath, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
