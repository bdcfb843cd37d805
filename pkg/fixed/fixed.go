// Package fixed provides two-decimal money arithmetic for prices and
// amounts. Every operation re-rounds to 2 fractional places with
// half-away-from-zero semantics, so repeated partial fills never accumulate
// sub-cent residue.
package fixed

import "github.com/shopspring/decimal"

// Places is the number of fractional digits carried by every price and
// amount in the engine.
const Places = 2

// Round normalizes d to 2 fractional places, rounding half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Min returns the smaller of a and b, rounded to 2 places.
func Min(a, b decimal.Decimal) decimal.Decimal {
	return Round(decimal.Min(a, b))
}

// Sub returns a-b rounded to 2 places.
func Sub(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Sub(b))
}

// Cents returns d scaled by 100 as an integer. Values produced by Round
// convert exactly; this is the key used for price levels.
func Cents(d decimal.Decimal) int64 {
	return d.Shift(Places).IntPart()
}

// FromCents is the inverse of Cents.
func FromCents(c int64) decimal.Decimal {
	return decimal.New(c, -Places)
}

// Valid reports whether d is positive and carries at most 2 fractional
// digits, i.e. it is representable without rounding.
func Valid(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(Places))
}
