package costsheet

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Won formats an amount in Korean won, rounded to the unit (e.g. "₩30,760,000").
// Non-finite amounts render as "-".
func Won(amount float64) string {
	if !isFinite(amount) {
		return "-"
	}
	return money.New(decimal.NewFromFloat(amount).Round(0).IntPart(), money.KRW).Display()
}

// dec converts f to a decimal, non-finite values count as zero.
func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(finite(f)) }
