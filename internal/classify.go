package internal

import "github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"

// TransactionClass tags a record as a sale or a return.
type TransactionClass struct {
	value string
}

func (c TransactionClass) ToString() string {
	return c.value
}

func (c TransactionClass) IsSale() bool {
	return c.value == specs.ClassSale
}

func (c TransactionClass) IsReturn() bool {
	return c.value == specs.ClassReturn
}

// ClassifiedRecord is a clean record plus its transaction class.
type ClassifiedRecord struct {
	CleanRecord
	Class TransactionClass
}

// Classify relabels a clean record by quantity sign. No heuristics: every
// negative quantity is a return, every positive one a sale. Zero quantities
// were rejected upstream, so this stage loses nothing.
func Classify(record CleanRecord) ClassifiedRecord {
	class := TransactionClass{value: specs.ClassSale}
	if record.Quantity.IsNegative() {
		class = TransactionClass{value: specs.ClassReturn}
	}
	return ClassifiedRecord{
		CleanRecord: record,
		Class:       class,
	}
}

// ClassifyAll relabels a batch, preserving order.
func ClassifyAll(records []CleanRecord) []ClassifiedRecord {
	classified := make([]ClassifiedRecord, len(records))
	for i, record := range records {
		classified[i] = Classify(record)
	}
	return classified
}
