// Package money provides a fixed-point representation for monetary amounts.
// Amounts are stored as integer minor units (cents) to avoid the rounding
// drift of binary floating point.
package money

import (
	"fmt"
	"math"
)

// Money is an amount in minor units (cents). 1500.00 ZAR == Money(150000).
type Money int64

// FromRands converts a whole-rand amount to Money.
func FromRands(rands int64) Money {
	return Money(rands * 100)
}

// FromFloat converts a float amount in rands to Money, rounding half away
// from zero. Only intended for boundary conversion (JSON input, catalog
// responses); internal arithmetic stays in minor units.
func FromFloat(rands float64) Money {
	return Money(math.Round(rands * 100))
}

// Rands returns the amount as a float64 for serialization.
func (m Money) Rands() float64 {
	return float64(m) / 100
}

// Cents returns the raw minor-unit value.
func (m Money) Cents() int64 {
	return int64(m)
}

// Percent returns the given percentage of the amount, truncated toward zero.
func (m Money) Percent(p int64) Money {
	return Money(int64(m) * p / 100)
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return m - other
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m > 0
}

// Min returns the smaller of two amounts.
func Min(a, b Money) Money {
	if a < b {
		return a
	}
	return b
}

// String formats the amount as rands with two decimals, e.g. "R1375.00".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%sR%d.%02d", sign, v/100, v%100)
}
