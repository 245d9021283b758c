package fixed

import (
	"math"
	"strconv"
)

// Shift is the number of fractional bits in a Num.
const Shift = 8

// One is the Num representation of 1.0.
const One Num = 1 << Shift

// Num is a signed fixed-point number with 24 integer bits and 8 fractional
// bits. Cursors, increments, volumes and panning all use this type so the
// mixer touches no floating point at all.
type Num int32

// FromInt converts an integer to a Num.
func FromInt(i int) Num {
	return Num(i) << Shift
}

// FromFloat converts a float to the nearest representable Num.
// Meant for tools and tests, not per-sample work.
func FromFloat(f float64) Num {
	return Num(math.Round(f * float64(One)))
}

// Ratio returns num/den as a Num. The denominator must be non-zero.
func Ratio(num, den int) Num {
	return Num((int64(num) << Shift) / int64(den))
}

// Mul returns the fixed-point product of n and m.
func (n Num) Mul(m Num) Num {
	return Num((int64(n) * int64(m)) >> Shift)
}

// Div returns the fixed-point quotient of n and m.
func (n Num) Div(m Num) Num {
	return Num((int64(n) << Shift) / int64(m))
}

// Floor returns the largest integer less than or equal to n.
// The arithmetic shift rounds toward negative infinity, so this is exact
// for negative values too.
func (n Num) Floor() int {
	return int(n >> Shift)
}

// Frac returns the non-negative fractional part of n, so that
// FromInt(n.Floor()) + n.Frac() == n.
func (n Num) Frac() Num {
	return n & (One - 1)
}

// Float converts n to a float64. Meant for display and tools.
func (n Num) Float() float64 {
	return float64(n) / float64(One)
}

func (n Num) String() string {
	return strconv.FormatFloat(n.Float(), 'f', -1, 64)
}
