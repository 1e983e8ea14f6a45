// Package ratio provides exact rational arithmetic for clock frequency
// and sample timing math, where floating point would drift from the
// documented truncated values.
package ratio

// Ratio is an exact rational number (numerator/denominator).
//
// The zero value is 0/0 and is not valid; construct values with New.
// Operands are reduced before multiplying so intermediate products stay
// inside int64 wherever the mathematical result does.
type Ratio struct {
	num int64
	den int64
}

// New returns num/den. The ratio is stored as given, without reduction,
// so Num and Den report the raw components.
//
// Panics if den is zero.
func New(num, den int64) Ratio {
	if den == 0 {
		panic("ratio: zero denominator")
	}
	return Ratio{num: num, den: den}
}

// Num returns the numerator.
func (r Ratio) Num() int64 { return r.num }

// Den returns the denominator.
func (r Ratio) Den() int64 { return r.den }

// gcd returns the greatest common divisor of |a| and |b|.
func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// addChecked adds a+b and panics if the sum overflows int64.
func addChecked(a, b int64) int64 {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		panic("ratio: overflow")
	}
	return s
}

// mulChecked multiplies a*b and panics if the product overflows int64.
func mulChecked(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	if p/b != a {
		panic("ratio: overflow")
	}
	return p
}

// Mul returns r*o with cross-reduction to avoid spurious overflow.
func (r Ratio) Mul(o Ratio) Ratio {
	// Reduce r.num/o.den and o.num/r.den before multiplying.
	g1 := gcd(r.num, o.den)
	g2 := gcd(o.num, r.den)
	return Ratio{
		num: mulChecked(r.num/g1, o.num/g2),
		den: mulChecked(r.den/g2, o.den/g1),
	}
}

// MulInt returns r*n.
func (r Ratio) MulInt(n int64) Ratio {
	return r.Mul(Ratio{num: n, den: 1})
}

// Div returns r/o. Panics if o is zero.
func (r Ratio) Div(o Ratio) Ratio {
	if o.num == 0 {
		panic("ratio: division by zero")
	}
	return r.Mul(Ratio{num: o.den, den: o.num})
}

// DivInt returns r/n. Panics if n is zero.
func (r Ratio) DivInt(n int64) Ratio {
	if n == 0 {
		panic("ratio: division by zero")
	}
	return r.Mul(Ratio{num: 1, den: n})
}

// AddInt returns r+n.
func (r Ratio) AddInt(n int64) Ratio {
	return Ratio{num: addChecked(r.num, mulChecked(n, r.den)), den: r.den}
}

// Trunc converts the ratio to an integer, truncating toward zero.
func (r Ratio) Trunc() int64 {
	return r.num / r.den
}

// Float64 returns an approximate floating point value. Driver math never
// uses this; it exists for display code.
func (r Ratio) Float64() float64 {
	return float64(r.num) / float64(r.den)
}
