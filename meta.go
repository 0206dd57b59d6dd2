package costsheet

import (
	"fmt"
	"strings"

	"github.com/etnz/costsheet/date"
)

// ProjectMeta is the header of an execution statement.
type ProjectMeta struct {
	ProjectName string
	// Date is display text, it is never parsed by the calculations.
	Date string
	// ContractAmount is kept as text with separators stripped, parsed on demand.
	ContractAmount   string
	ContractCapacity float64
	// RevenueAmount is an optional manual figure, the revenue is derived when empty.
	RevenueAmount string
}

// DefaultMeta returns the metadata of a fresh statement, dated today.
func DefaultMeta() ProjectMeta {
	return ProjectMeta{Date: date.Today().Korean()}
}

// Contract returns the parsed contract amount, false when absent or unparseable.
func (m ProjectMeta) Contract() (float64, bool) { return parseFinite(m.ContractAmount) }

// Revenue returns the parsed manual revenue amount, false when absent or unparseable.
func (m ProjectMeta) Revenue() (float64, bool) { return parseFinite(m.RevenueAmount) }

// MetaField identifies an editable field of the project metadata.
type MetaField int

const (
	MetaProjectName MetaField = iota
	MetaDate
	MetaContractAmount
	MetaContractCapacity
	MetaRevenueAmount
)

var metaRules = [...]fieldRule{
	MetaProjectName:      {name: "projectName", label: "공사명"},
	MetaDate:             {name: "date", label: "작성일"},
	MetaContractAmount:   {name: "contractAmount", label: "계약금액"},
	MetaContractCapacity: {name: "contractCapacity", label: "계약용량", numeric: true},
	MetaRevenueAmount:    {name: "revenueAmount", label: "수익금액"},
}

// MetaFields returns all metadata fields in statement order.
func MetaFields() []MetaField {
	fields := make([]MetaField, len(metaRules))
	for i := range metaRules {
		fields[i] = MetaField(i)
	}
	return fields
}

func (f MetaField) valid() bool { return f >= 0 && int(f) < len(metaRules) }

// String returns the canonical name of the field, as used in state records.
func (f MetaField) String() string {
	if !f.valid() {
		return fmt.Sprintf("MetaField(%d)", int(f))
	}
	return metaRules[f].name
}

// Label returns the label printed in front of the value on statements.
func (f MetaField) Label() string {
	if !f.valid() {
		return ""
	}
	return metaRules[f].label
}

// ParseMetaField finds a metadata field by its canonical name (case insensitive) or its label.
func ParseMetaField(s string) (MetaField, error) {
	s = strings.TrimSpace(s)
	for i, r := range metaRules {
		if strings.EqualFold(s, r.name) || s == r.label {
			return MetaField(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// With returns a copy of the metadata with the field set from raw input.
//
// Amounts are stored with their separators stripped, the capacity goes through
// ParseNumber and the other fields are stored verbatim.
func (m ProjectMeta) With(f MetaField, raw string) (ProjectMeta, error) {
	switch f {
	case MetaProjectName:
		m.ProjectName = raw
	case MetaDate:
		m.Date = raw
	case MetaContractAmount:
		m.ContractAmount = StripSeparators(raw)
	case MetaContractCapacity:
		m.ContractCapacity = ParseNumber(raw)
	case MetaRevenueAmount:
		m.RevenueAmount = StripSeparators(raw)
	default:
		return m, fmt.Errorf("%w: %v", ErrUnknownField, f)
	}
	return m, nil
}

// Text renders a field for display.
func (m ProjectMeta) Text(f MetaField) string {
	switch f {
	case MetaProjectName:
		return m.ProjectName
	case MetaDate:
		return m.Date
	case MetaContractAmount:
		if v, ok := m.Contract(); ok {
			return FormatNumber(v)
		}
		return m.ContractAmount
	case MetaContractCapacity:
		return FormatNumber(m.ContractCapacity)
	case MetaRevenueAmount:
		if v, ok := m.Revenue(); ok {
			return FormatNumber(v)
		}
		return m.RevenueAmount
	}
	return ""
}
