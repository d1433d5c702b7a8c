package internal

import (
	"fmt"
	"time"

	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"
)

// CleanRecord is a validated transaction line item. Every CleanRecord traces
// to exactly one raw record; the validator is the only producer.
type CleanRecord struct {
	InvoiceNo   InvoiceNo
	StockCode   StockCode
	Description ProductDescription
	Quantity    Quantity
	UnitPrice   UnitPrice
	Customer    CustomerRef
	Country     Country
	InvoiceDate InvoiceDate
}

func NewCleanRecord(spec specs.CleanRecordSpec) (CleanRecord, error) {
	invoiceNo, err := NewInvoiceNo(spec.InvoiceNo)
	if err != nil {
		return CleanRecord{}, fmt.Errorf("invalid invoice no: %w", err)
	}

	stockCode, err := NewStockCode(spec.StockCode)
	if err != nil {
		return CleanRecord{}, fmt.Errorf("invalid stock code: %w", err)
	}

	description := NewProductDescription(spec.Description)

	quantity, err := NewQuantity(spec.Quantity)
	if err != nil {
		return CleanRecord{}, fmt.Errorf("invalid quantity: %w", err)
	}

	unitPrice, err := NewUnitPrice(spec.UnitPrice)
	if err != nil {
		return CleanRecord{}, fmt.Errorf("invalid unit price: %w", err)
	}

	customer := NewCustomerRef(spec.CustomerID)
	country := NewCountry(spec.Country)

	invoiceDate, err := NewInvoiceDate(spec.InvoiceDate)
	if err != nil {
		return CleanRecord{}, fmt.Errorf("invalid invoice date: %w", err)
	}

	return CleanRecord{
		InvoiceNo:   invoiceNo,
		StockCode:   stockCode,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Customer:    customer,
		Country:     country,
		InvoiceDate: invoiceDate,
	}, nil
}

func (r CleanRecord) ToSpec() specs.CleanRecordSpec {
	return specs.CleanRecordSpec{
		InvoiceNo:   r.InvoiceNo.ToString(),
		StockCode:   r.StockCode.ToString(),
		Description: r.Description.ToString(),
		Quantity:    r.Quantity.ToInt64(),
		UnitPrice:   r.UnitPrice.ToDecimal().String(),
		CustomerID:  r.Customer.ID(),
		Guest:       r.Customer.IsGuest(),
		Country:     r.Country.ToString(),
		InvoiceDate: r.InvoiceDate.ToTime(),
	}
}

type InvoiceNo struct {
	value string
}

func NewInvoiceNo(value string) (InvoiceNo, error) {
	if value == "" {
		return InvoiceNo{}, fmt.Errorf("invoice no is required")
	}
	return InvoiceNo{value: value}, nil
}

func (n InvoiceNo) ToString() string {
	return n.value
}

type StockCode struct {
	value string
}

func NewStockCode(value string) (StockCode, error) {
	if value == "" {
		return StockCode{}, fmt.Errorf("stock code is required")
	}
	return StockCode{value: value}, nil
}

func (c StockCode) ToString() string {
	return c.value
}

type ProductDescription struct {
	value string
}

// NewProductDescription never fails; missing descriptions normalize to a
// placeholder so downstream reports always have a label.
func NewProductDescription(value string) ProductDescription {
	if value == "" {
		value = "Unknown Product"
	}
	return ProductDescription{value: value}
}

func (d ProductDescription) ToString() string {
	return d.value
}

type Quantity struct {
	value int64
}

func NewQuantity(value int64) (Quantity, error) {
	if value == 0 {
		return Quantity{}, fmt.Errorf("quantity cannot be zero")
	}
	return Quantity{value: value}, nil
}

func (q Quantity) ToInt64() int64 {
	return q.value
}

func (q Quantity) IsNegative() bool {
	return q.value < 0
}

type UnitPrice struct {
	value Decimal
}

func NewUnitPrice(value string) (UnitPrice, error) {
	d, err := NewDecimal(value)
	if err != nil {
		return UnitPrice{}, err
	}
	if d.IsZero() || d.IsNegative() {
		return UnitPrice{}, fmt.Errorf("unit price must be positive")
	}
	return UnitPrice{value: d}, nil
}

func (p UnitPrice) ToDecimal() Decimal {
	return p.value
}

// CustomerRef identifies the customer on a record. An empty identifier marks
// a guest transaction: retained in transaction-level aggregates, excluded
// from customer-level summaries.
type CustomerRef struct {
	id string
}

func NewCustomerRef(id string) CustomerRef {
	return CustomerRef{id: id}
}

func (c CustomerRef) ID() string {
	return c.id
}

func (c CustomerRef) IsGuest() bool {
	return c.id == ""
}

type Country struct {
	value string
}

// NewCountry never fails; missing countries normalize to "Unspecified".
func NewCountry(value string) Country {
	if value == "" {
		value = "Unspecified"
	}
	return Country{value: value}
}

func (c Country) ToString() string {
	return c.value
}

type InvoiceDate struct {
	value time.Time
}

func NewInvoiceDate(value time.Time) (InvoiceDate, error) {
	if value.IsZero() {
		return InvoiceDate{}, fmt.Errorf("invoice date is required")
	}
	return InvoiceDate{value: value}, nil
}

func (d InvoiceDate) ToTime() time.Time {
	return d.value
}
