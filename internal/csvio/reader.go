package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"
)

// Raw transaction exports carry these eight columns, in this order.
var rawHeader = []string{
	"InvoiceNo", "StockCode", "Description", "Quantity",
	"InvoiceDate", "UnitPrice", "CustomerID", "Country",
}

// Timestamps appear either as ISO datetimes or in the export's original
// month/day/year short form.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04",
}

// Reader turns a raw transaction CSV into RawRecord rows. It never drops a
// row: fields it cannot parse are carried as their zero value so the
// validator can reject the row with a reason instead of it vanishing here.
type Reader struct {
	logger *logrus.Logger
}

func NewReader(logger *logrus.Logger) *Reader {
	return &Reader{logger: logger}
}

func (r *Reader) ReadAll(source io.Reader) ([]specs.RawRecordSpec, error) {
	reader := csv.NewReader(source)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !headerMatches(header) {
		return nil, fmt.Errorf("unexpected header %v, want %v", header, rawHeader)
	}

	var records []specs.RawRecordSpec
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, r.toRawRecord(row, line))
	}

	r.logger.WithField("rows", len(records)).Info("raw records loaded")
	return records, nil
}

func (r *Reader) toRawRecord(row []string, line int) specs.RawRecordSpec {
	quantity, err := strconv.ParseInt(strings.TrimSpace(row[3]), 10, 64)
	if err != nil {
		r.logger.WithField("line", line).Debug("unparsable quantity, row will be rejected")
		quantity = 0
	}

	invoiceDate, err := parseDate(strings.TrimSpace(row[4]))
	if err != nil {
		r.logger.WithField("line", line).Debug("unparsable invoice date, row will be rejected")
	}

	customerID := strings.TrimSpace(row[6])
	// Excel exports render missing customers as float-formatted blanks.
	if customerID == "Unknown" || customerID == "nan" {
		customerID = ""
	}

	return specs.RawRecordSpec{
		InvoiceNo:   strings.TrimSpace(row[0]),
		StockCode:   strings.TrimSpace(row[1]),
		Description: strings.TrimSpace(row[2]),
		Quantity:    quantity,
		UnitPrice:   strings.TrimSpace(row[5]),
		CustomerID:  customerID,
		Country:     strings.TrimSpace(row[7]),
		InvoiceDate: invoiceDate,
	}
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func headerMatches(header []string) bool {
	if len(header) != len(rawHeader) {
		return false
	}
	for i, column := range rawHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), column) {
			return false
		}
	}
	return true
}
