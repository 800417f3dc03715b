package view

import (
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Money formats an amount the way every table and receipt shows it: "$12.30".
func Money(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$" + nonFinite(amount)
	}
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}

// Fixed formats a finite value with the given number of decimals.
func Fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nonFinite(v)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Percent prints an operator-entered percentage without trailing zeros: 10, 12.5
func Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func nonFinite(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	default:
		return "NaN"
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC1123,
}

// DateTime renders a server timestamp; unparseable values are shown as sent.
func DateTime(raw string) string {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("1/2/2006, 3:04:05 PM")
		}
	}
	return raw
}

// Date renders a server date ("2025-03-09" or a full timestamp) as 3/9/2025.
func Date(raw string) string {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.Format("1/2/2006")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("1/2/2006")
		}
	}
	return raw
}
