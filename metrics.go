package costsheet

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Sentinel is how an undefined metric is displayed and exported.
const Sentinel = "-"

// Metric is a derived figure that may be undefined, for instance a ratio over
// a zero or missing denominator. An undefined Metric renders as Sentinel.
type Metric struct {
	value float64
	valid bool
}

func known(d decimal.Decimal) Metric { return Metric{value: d.InexactFloat64(), valid: true} }

// Value returns the figure and whether it is defined.
func (m Metric) Value() (float64, bool) { return m.value, m.valid }

// Valid reports whether the figure is defined.
func (m Metric) Valid() bool { return m.valid }

// String renders the figure with FormatNumber, or Sentinel.
func (m Metric) String() string {
	if !m.valid {
		return Sentinel
	}
	return FormatNumber(m.value)
}

// Won renders the figure as an amount in won, or Sentinel.
func (m Metric) Won() string {
	if !m.valid {
		return Sentinel
	}
	return Won(m.value)
}

// MarshalJSON encodes the figure as a number, or as the Sentinel string.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.valid {
		return json.Marshal(Sentinel)
	}
	return json.Marshal(m.value)
}

// Metrics are the figures derived from a ledger and its project metadata.
type Metrics struct {
	Total         float64 `json:"total"`         // 실행금액
	Revenue       Metric  `json:"revenue"`       // 수익금액
	UnitPrice     Metric  `json:"unitPrice"`     // 실행단가, per unit of capacity
	ExecutionRate Metric  `json:"executionRate"` // 실행율, percent of the contract
}

// Total returns the sum of the row amounts.
func (l Ledger) Total() float64 { return l.total().InexactFloat64() }

func (l Ledger) total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range l.items {
		sum = sum.Add(dec(it.Amount()))
	}
	return sum
}

// Compute derives the metrics of a ledger.
//
// The revenue is the contract amount minus the total, unless the metadata
// carries a manual revenue amount. The unit price is the total over the
// contract capacity rounded down, and the execution rate is the total as a
// percentage of the contract amount rounded to two decimals. Any figure whose
// input is missing or whose denominator is zero is undefined.
func Compute(l Ledger, m ProjectMeta) Metrics {
	total := l.total()
	res := Metrics{Total: total.InexactFloat64()}

	contract, hasContract := m.Contract()
	if manual, ok := m.Revenue(); ok {
		res.Revenue = known(dec(manual))
	} else if hasContract {
		res.Revenue = known(dec(contract).Sub(total))
	}

	if capacity := finite(m.ContractCapacity); capacity > 0 {
		res.UnitPrice = known(total.Div(dec(capacity)).Floor())
	}

	if hasContract && contract != 0 {
		res.ExecutionRate = known(total.Div(dec(contract)).Mul(decimal.NewFromInt(100)).Round(2))
	}
	return res
}
