package costsheet

import (
	"fmt"
	"strings"
)

// Field identifies an editable column of a line item.
//
// The amount is not a field: it is always derived from quantity and unit price.
type Field int

const (
	FieldProcessCategory Field = iota
	FieldItemName
	FieldSpec
	FieldUnit
	FieldQuantity
	FieldUnitPrice
	FieldVendor
	FieldNote
)

// fieldRule describes how a field is named, labelled and coerced.
type fieldRule struct {
	name    string // canonical record key
	label   string // column header on statements
	numeric bool   // written through ParseNumber
}

var fieldRules = [...]fieldRule{
	FieldProcessCategory: {name: "processCategory", label: "공정"},
	FieldItemName:        {name: "itemName", label: "품목"},
	FieldSpec:            {name: "spec", label: "규격"},
	FieldUnit:            {name: "unit", label: "단위"},
	FieldQuantity:        {name: "quantity", label: "수량", numeric: true},
	FieldUnitPrice:       {name: "unitPrice", label: "단가", numeric: true},
	FieldVendor:          {name: "vendor", label: "업체"},
	FieldNote:            {name: "note", label: "비고"},
}

// AmountLabel is the column header of the derived amount.
const AmountLabel = "금액"

// Fields returns all editable fields in column order.
func Fields() []Field {
	fields := make([]Field, len(fieldRules))
	for i := range fieldRules {
		fields[i] = Field(i)
	}
	return fields
}

func (f Field) valid() bool { return f >= 0 && int(f) < len(fieldRules) }

// String returns the canonical name of the field, as used in state records.
func (f Field) String() string {
	if !f.valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldRules[f].name
}

// Label returns the column header of the field.
func (f Field) Label() string {
	if !f.valid() {
		return ""
	}
	return fieldRules[f].label
}

// Numeric reports whether writes to the field go through ParseNumber.
func (f Field) Numeric() bool { return f.valid() && fieldRules[f].numeric }

// ParseField finds a field by its canonical name (case insensitive) or its label.
func ParseField(s string) (Field, error) {
	s = strings.TrimSpace(s)
	for i, r := range fieldRules {
		if strings.EqualFold(s, r.name) || s == r.label {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// LineItem is one cost entry of the ledger.
type LineItem struct {
	ID              int     `json:"id"`
	ProcessCategory string  `json:"processCategory"`
	ItemName        string  `json:"itemName"`
	Spec            string  `json:"spec"`
	Unit            string  `json:"unit"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	Vendor          string  `json:"vendor"`
	Note            string  `json:"note"`
}

// Amount returns quantity times unit price, or 0 when that is not a finite number.
func (it LineItem) Amount() float64 {
	return finite(it.Quantity * it.UnitPrice)
}

// With returns a copy of the item with the field set from raw input.
//
// Numeric fields are coerced with ParseNumber, text fields are stored verbatim.
func (it LineItem) With(f Field, raw string) (LineItem, error) {
	if !f.valid() {
		return it, fmt.Errorf("%w: %v", ErrUnknownField, f)
	}
	switch f {
	case FieldProcessCategory:
		it.ProcessCategory = raw
	case FieldItemName:
		it.ItemName = raw
	case FieldSpec:
		it.Spec = raw
	case FieldUnit:
		it.Unit = raw
	case FieldQuantity:
		it.Quantity = ParseNumber(raw)
	case FieldUnitPrice:
		it.UnitPrice = ParseNumber(raw)
	case FieldVendor:
		it.Vendor = raw
	case FieldNote:
		it.Note = raw
	}
	return it, nil
}

// Text renders a field for display. Numbers use FormatNumber.
func (it LineItem) Text(f Field) string {
	switch f {
	case FieldProcessCategory:
		return it.ProcessCategory
	case FieldItemName:
		return it.ItemName
	case FieldSpec:
		return it.Spec
	case FieldUnit:
		return it.Unit
	case FieldQuantity:
		return FormatNumber(it.Quantity)
	case FieldUnitPrice:
		return FormatNumber(it.UnitPrice)
	case FieldVendor:
		return it.Vendor
	case FieldNote:
		return it.Note
	}
	return ""
}

// sanitized returns the item with non-finite numbers replaced by 0, so it can be encoded.
func (it LineItem) sanitized() LineItem {
	it.Quantity = finite(it.Quantity)
	it.UnitPrice = finite(it.UnitPrice)
	return it
}
