package stocks

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// Precision is the number of significant digits kept by every metric division.
	Precision = 34
	// guardDigits are computed past Precision so the final rounding sees the exact tail.
	guardDigits = 3
)

// magnitude is the power of ten just above the leading digit of d: 1 for 5, 3 for 123, -1 for 0.05.
func magnitude(d decimal.Decimal) int32 {
	return int32(d.NumDigits()) + d.Exponent()
}

// roundSignificant rounds d half-even to Precision significant digits.
func roundSignificant(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return d.RoundBank(Precision - magnitude(d))
}

// divide returns a / b rounded half-even to Precision significant digits,
// whatever the magnitude of either operand. b must not be zero.
func divide(a, b decimal.Decimal) decimal.Decimal {
	if a.IsZero() {
		return decimal.Zero
	}
	scale := Precision - (magnitude(a) - magnitude(b)) + guardDigits
	q, r := a.QuoRem(b, scale)
	if !r.IsZero() {
		// a non-zero remainder must never be read as an exact tie
		sticky := decimal.New(1, -scale-1)
		if a.Sign()*b.Sign() < 0 {
			q = q.Sub(sticky)
		} else {
			q = q.Add(sticky)
		}
	}
	return roundSignificant(q)
}

// nthRoot takes the n-th root of a positive d without leaving float64 range for tiny or huge values.
func nthRoot(d decimal.Decimal, n int) float64 {
	if !d.IsPositive() || n <= 0 {
		return 0
	}
	exp10 := magnitude(d) - 1
	mantissa := d.Shift(-exp10).InexactFloat64()
	return math.Pow(mantissa, 1/float64(n)) * math.Pow(10, float64(exp10)/float64(n))
}
