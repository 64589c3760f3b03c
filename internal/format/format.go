// Package format renders backend values for the terminal UI and the CLI.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/dustin/go-humanize"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CHF": "CHF ",
}

// Money formats an amount with thousands separators and two decimals,
// prefixed by the currency symbol or code.
func Money(v float64, currency string) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = math.Abs(v)
	}
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = "$"
		if currency != "" {
			symbol = strings.ToUpper(currency) + " "
		}
	}
	return sign + symbol + humanize.FormatFloat("#,###.##", v)
}

// Number formats a plain quantity with thousands separators.
func Number(v float64) string {
	return humanize.Commaf(v)
}

// Percent formats a value already expressed in percent.
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

// SignedPercent is Percent with an explicit plus sign for gains.
func SignedPercent(v float64) string {
	if v > 0 {
		return "+" + Percent(v)
	}
	return Percent(v)
}

// Weight formats a 0..1 fraction as a percentage.
func Weight(v float64) string {
	return Percent(v * 100)
}

// Confidence formats a confidence level such as 0.95 as "95%".
func Confidence(level float64) string {
	return strconv.FormatFloat(level*100, 'f', -1, 64) + "%"
}

// Horizon formats a horizon in days.
func Horizon(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// Threshold formats a limit threshold in the unit of its limit type.
func Threshold(t domain.LimitType, v float64) string {
	switch t.Unit() {
	case domain.UnitPercent:
		return strconv.FormatFloat(v, 'f', -1, 64) + "%"
	case domain.UnitCount:
		return strconv.FormatFloat(v, 'f', -1, 64) + " assets"
	default:
		return Money(v, "USD")
	}
}

// Ago renders a timestamp relative to now. Zero times render as "-".
func Ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

// Date renders a timestamp in local time. Zero times render as "-".
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// Parameters renders scenario parameters as sorted key=value pairs.
func Parameters(p domain.Parameters) string {
	if len(p) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(p))
	for _, k := range p.Keys() {
		if f, ok := p.Float(k); ok {
			parts = append(parts, k+"="+strconv.FormatFloat(f, 'f', -1, 64))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, p[k]))
	}
	return strings.Join(parts, " ")
}

// Active renders a limit's active flag.
func Active(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
