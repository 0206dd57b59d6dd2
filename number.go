package costsheet

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// separators are removed from numeric input before parsing.
var separators = strings.NewReplacer(",", "", " ", "", "\u00a0", "", "\t", "")

// StripSeparators removes thousands separators and blanks from a numeric text.
func StripSeparators(s string) string {
	return separators.Replace(strings.TrimSpace(s))
}

// parseFinite parses the number s starts with, reporting false when there is
// none or when it is not finite. Trailing text such as a unit is ignored.
func parseFinite(s string) (float64, bool) {
	s = leadingNumber(StripSeparators(s))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(f) {
		return 0, false
	}
	return f, true
}

// leadingNumber returns the longest prefix of s that reads as a decimal
// number: an optional sign, digits with an optional fraction, and an optional
// exponent. It returns "" when s does not start with a number.
func leadingNumber(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return ""
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			end = j
		}
	}
	return s[:end]
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// ParseNumber is the coercion rule for quantities and unit prices.
//
// Thousands separators are stripped and the leading number is parsed as a
// floating point number, so "12개" reads as 12. Anything that does not start
// with a finite number yields 0; it never fails.
func ParseNumber(s string) float64 {
	f, _ := parseFinite(s)
	return f
}

// FormatNumber renders n with Korean thousands separators and at most three
// fraction digits. Non-finite values render as "-".
func FormatNumber(n float64) string { return FormatNumberOr(n, "-") }

// FormatNumberOr is like FormatNumber but renders non-finite values as blank.
func FormatNumberOr(n float64, blank string) string {
	if !isFinite(n) {
		return blank
	}
	p := message.NewPrinter(language.Korean)
	return p.Sprintf("%v", number.Decimal(n, number.MaxFractionDigits(3)))
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// finite returns f, or 0 when f is not finite.
func finite(f float64) float64 {
	if !isFinite(f) {
		return 0
	}
	return f
}
