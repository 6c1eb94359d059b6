package rational

import "math/big"

// Rational is an exact fraction of two Integers, always kept in lowest
// terms with a positive denominator (the math/big.Rat invariant, carried
// through unchanged).
type Rational struct {
	v *big.Rat
}

// RatZero returns a new Rational equal to 0.
func RatZero() *Rational { return &Rational{v: new(big.Rat)} }

// NewRational returns num/den in lowest terms. ErrDivisionByZero is
// returned when den == 0.
func NewRational(num, den *Integer) (*Rational, error) {
	if den.IsZero() {
		return nil, ErrDivisionByZero
	}
	r := new(big.Rat).SetFrac(num.v, den.v)
	return &Rational{v: r}, nil
}

// NewRationalInt returns an exact copy of n as a Rational.
func NewRationalInt(n *Integer) *Rational {
	return &Rational{v: new(big.Rat).SetInt(n.v)}
}

// Clone returns an independent copy of r.
func (r *Rational) Clone() *Rational { return &Rational{v: new(big.Rat).Set(r.v)} }

// Num returns the numerator of r in lowest terms.
func (r *Rational) Num() *Integer { return &Integer{v: new(big.Int).Set(r.v.Num())} }

// Den returns the (always positive) denominator of r in lowest terms.
func (r *Rational) Den() *Integer { return &Integer{v: new(big.Int).Set(r.v.Denom())} }

// Sign returns -1, 0 or +1 depending on the sign of r.
func (r *Rational) Sign() int { return r.v.Sign() }

// Cmp compares r and x, returning -1, 0 or +1.
func (r *Rational) Cmp(x *Rational) int { return r.v.Cmp(x.v) }

// Equal reports whether r == x.
func (r *Rational) Equal(x *Rational) bool { return r.v.Cmp(x.v) == 0 }

// Add sets z = a + b and returns z.
func (z *Rational) Add(a, b *Rational) *Rational { z.v.Add(a.v, b.v); return z }

// Sub sets z = a - b and returns z.
func (z *Rational) Sub(a, b *Rational) *Rational { z.v.Sub(a.v, b.v); return z }

// Mul sets z = a * b and returns z.
func (z *Rational) Mul(a, b *Rational) *Rational { z.v.Mul(a.v, b.v); return z }

// Quo sets z = a / b and returns (z, error); ErrDivisionByZero if b == 0.
func (z *Rational) Quo(a, b *Rational) (*Rational, error) {
	if b.Sign() == 0 {
		return z, ErrDivisionByZero
	}
	z.v.Quo(a.v, b.v)
	return z, nil
}

// Float64 returns the nearest float64 to r, for use only in non-exact
// contexts such as the bounding-box pseudo-volume heuristic.
func (r *Rational) Float64() float64 {
	f, _ := r.v.Float64()
	return f
}

// String returns r in "num/den" form, or the plain integer when den == 1.
func (r *Rational) String() string { return r.v.RatString() }
