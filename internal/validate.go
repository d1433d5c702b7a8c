package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"
)

// RejectionRule pairs a reason with the predicate that triggers it. Rules are
// evaluated in a fixed order per record; the first match wins so a record
// matching several rules is reported once, with a stable reason.
type RejectionRule struct {
	Reason  string
	Applies func(record specs.RawRecordSpec) bool
}

// ValidationResult carries everything the validator produced: the surviving
// records, the audit trail of rejections, and the per-reason counts that must
// accompany every successful run.
type ValidationResult struct {
	Clean           []CleanRecord
	Rejected        []specs.RejectedRecordSpec
	RejectionCounts map[string]int
}

// Validator filters and repairs raw records. No record is ever silently
// dropped: every exclusion lands in the rejection report with its reason.
type Validator struct {
	rules []RejectionRule
	seen  map[string]bool
}

func NewValidator(config PipelineConfig) *Validator {
	v := &Validator{
		seen: make(map[string]bool),
	}
	v.rules = []RejectionRule{
		{
			Reason:  specs.ReasonInvalidPrice,
			Applies: invalidPrice,
		},
		{
			Reason: specs.ReasonZeroQuantity,
			Applies: func(record specs.RawRecordSpec) bool {
				return record.Quantity == 0
			},
		},
		{
			Reason: specs.ReasonNonProductCode,
			Applies: func(record specs.RawRecordSpec) bool {
				return config.IsNonProductCode(record.StockCode)
			},
		},
		{
			Reason:  specs.ReasonDuplicateRecord,
			Applies: v.isDuplicate,
		},
	}
	return v
}

// Validate applies the rule list to every raw record independently. It never
// returns an error: per-record data problems are values in the rejection
// report, not failures.
func (v *Validator) Validate(rawRecords []specs.RawRecordSpec) ValidationResult {
	result := ValidationResult{
		Clean:           make([]CleanRecord, 0, len(rawRecords)),
		Rejected:        []specs.RejectedRecordSpec{},
		RejectionCounts: make(map[string]int),
	}

	for _, raw := range rawRecords {
		reason, rejected := v.firstMatch(raw)
		if rejected {
			result.Rejected = append(result.Rejected, specs.RejectedRecordSpec{
				Record: raw,
				Reason: reason,
			})
			result.RejectionCounts[reason]++
			continue
		}

		// Duplicate detection keys on every identifying field; the first
		// occurrence was just admitted, so later identical rows match the
		// DuplicateRecord rule above.
		v.seen[dedupKey(raw)] = true

		clean, err := NewCleanRecord(specs.CleanRecordSpec{
			InvoiceNo:   raw.InvoiceNo,
			StockCode:   raw.StockCode,
			Description: raw.Description,
			Quantity:    raw.Quantity,
			UnitPrice:   raw.UnitPrice,
			CustomerID:  raw.CustomerID,
			Guest:       raw.CustomerID == "",
			Country:     raw.Country,
			InvoiceDate: raw.InvoiceDate,
		})
		if err != nil {
			// Rows missing an invoice, stock code or timestamp are
			// administrative noise, not product transactions.
			result.Rejected = append(result.Rejected, specs.RejectedRecordSpec{
				Record: raw,
				Reason: specs.ReasonNonProductCode,
			})
			result.RejectionCounts[specs.ReasonNonProductCode]++
			continue
		}

		result.Clean = append(result.Clean, clean)
	}

	return result
}

func (v *Validator) firstMatch(record specs.RawRecordSpec) (string, bool) {
	for _, rule := range v.rules {
		if rule.Applies(record) {
			return rule.Reason, true
		}
	}
	return "", false
}

func (v *Validator) isDuplicate(record specs.RawRecordSpec) bool {
	return v.seen[dedupKey(record)]
}

// invalidPrice flags missing, unparseable and non-positive unit prices.
func invalidPrice(record specs.RawRecordSpec) bool {
	if record.UnitPrice == "" {
		return true
	}
	d, err := NewDecimal(record.UnitPrice)
	if err != nil {
		return true
	}
	return d.IsZero() || d.IsNegative()
}

func dedupKey(record specs.RawRecordSpec) string {
	return strings.Join([]string{
		record.InvoiceNo,
		record.StockCode,
		fmt.Sprintf("%d", record.Quantity),
		record.UnitPrice,
		record.InvoiceDate.UTC().Format(time.RFC3339Nano),
		record.CustomerID,
	}, "|")
}
