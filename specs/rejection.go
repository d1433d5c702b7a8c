package specs

// Rejection reasons. Rules are evaluated in a fixed order and a record can
// match several; only the first match is reported.
const (
	ReasonInvalidPrice    = "InvalidPrice"
	ReasonZeroQuantity    = "ZeroQuantity"
	ReasonNonProductCode  = "NonProductCode"
	ReasonDuplicateRecord = "DuplicateRecord"
)

// RejectedRecordSpec pairs a rejected raw record with the reason it was
// excluded. The validator never silently drops a record: every exclusion is
// recorded here so downstream report consumers can judge the data-quality
// impact on the numbers.
type RejectedRecordSpec struct {
	Record RawRecordSpec `json:"record"`
	Reason string        `json:"reason"`
}
