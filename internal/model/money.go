package model

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// RoundMoney rounds v to cents. Infinite values pass through unchanged so
// the never-pays-off sentinel survives.
func RoundMoney(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Money formats v as "$1,234.56", or "never" for the sentinel.
func Money(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "never"
	}
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.IntPart()
	cents := d.Sub(decimal.NewFromInt(whole)).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(whole), cents)
}

// Percent formats an annual rate as "21.99%".
func Percent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate)
}
