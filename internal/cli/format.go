// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/theirongolddev/finquest/internal/catalog"
	"github.com/theirongolddev/finquest/internal/model"
)

// FormatMoney formats whole currency units with digit grouping.
// e.g., (1234567, "฿") -> "฿1,234,567", (-50, "$") -> "-$50"
func FormatMoney(n int64, symbol string) string {
	if n < 0 {
		if n == math.MinInt64 {
			return "-" + symbol + humanize.Comma(n)[1:]
		}
		return "-" + symbol + humanize.Comma(-n)
	}
	return symbol + humanize.Comma(n)
}

// FormatAmount rounds a fractional amount and formats it as money.
func FormatAmount(f float64, symbol string) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return symbol + "?"
	}
	return FormatMoney(int64(math.Round(f)), symbol)
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatXP formats an XP total.
func FormatXP(xp int) string {
	return humanize.Comma(int64(xp)) + " XP"
}

// FormatYears formats a count of years.
func FormatYears(n int) string {
	if n == 1 {
		return "1 year"
	}
	return strconv.Itoa(n) + " years"
}

// Label renders an answer value for display: the option label for a
// choice, money for currency questions, else the number and its suffix.
func Label(q model.QuestionSpec, v model.Value, symbol string) string {
	if o, ok := q.Option(v); ok {
		return o.Label
	}
	f, ok := v.Float()
	if !ok {
		return v.String()
	}
	if q.Suffix == catalog.CurrencySuffix {
		return FormatAmount(f, symbol)
	}
	s := humanize.Commaf(f)
	if q.Suffix != "" {
		s += " " + q.Suffix
	}
	return s
}
