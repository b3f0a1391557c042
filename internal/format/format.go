// Package format renders market numbers the way the dashboard displays them.
package format

import (
	"github.com/shopspring/decimal"
)

// NotAvailable is shown where a figure does not apply
const NotAvailable = "N/A"

var (
	hundred  = decimal.NewFromInt(100)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
	trillion = decimal.NewFromInt(1_000_000_000_000)
)

// Currency formats a price as dollars and cents, e.g. $175.43
func Currency(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// SignedChange prefixes non-negative changes with a plus sign, e.g. +2.15
func SignedChange(v float64) string {
	return signed(decimal.NewFromFloat(v), 2)
}

// SignedPercent formats a percent change, e.g. +1.24% or -3.20%
func SignedPercent(v float64) string {
	return signed(decimal.NewFromFloat(v), 2) + "%"
}

// Volume abbreviates share counts in millions, e.g. 52.8M
func Volume(v int64) string {
	return decimal.NewFromInt(v).Div(million).StringFixed(1) + "M"
}

// MarketCap abbreviates a capitalization, e.g. $2.75T or $790.0B
func MarketCap(v int64) string {
	d := decimal.NewFromInt(v)
	switch {
	case d.GreaterThanOrEqual(trillion):
		return "$" + d.Div(trillion).StringFixed(2) + "T"
	case d.GreaterThanOrEqual(billion):
		return "$" + d.Div(billion).StringFixed(1) + "B"
	default:
		return "$" + d.Div(million).StringFixed(1) + "M"
	}
}

// DividendYield is the annual dividend as a percent of price, or N/A
func DividendYield(dividend, price float64) string {
	if dividend <= 0 || price <= 0 {
		return NotAvailable
	}
	yield := decimal.NewFromFloat(dividend).Div(decimal.NewFromFloat(price)).Mul(hundred)
	return yield.StringFixed(2) + "%"
}

// PercentFrom is the distance of price from ref in percent, one decimal,
// e.g. -11.5% from a 52-week high
func PercentFrom(price, ref float64) string {
	if ref == 0 {
		return NotAvailable
	}
	p := decimal.NewFromFloat(price)
	r := decimal.NewFromFloat(ref)
	return p.Sub(r).Div(r).Mul(hundred).StringFixed(1) + "%"
}

// PE formats a price-earnings ratio
func PE(v float64) string {
	if v <= 0 {
		return NotAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(1)
}

func signed(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	if !d.IsNegative() {
		return "+" + s
	}
	return s
}
