package rational

import (
	"math/big"
)

// Integer is an arbitrary-precision signed integer. The zero value is not
// usable; construct with NewInt, NewIntFromBig or Zero.
//
// Most methods follow math/big's receiver-mutates convention: the receiver
// is both mutated and returned, so expressions chain. Use Clone to obtain
// an independent copy before mutating in place.
type Integer struct {
	v *big.Int
}

// Zero returns a new Integer equal to 0.
func Zero() *Integer { return &Integer{v: new(big.Int)} }

// NewInt returns a new Integer with the value of n.
func NewInt(n int64) *Integer { return &Integer{v: big.NewInt(n)} }

// NewIntFromBig returns a new Integer that takes ownership of b. The
// caller must not mutate b afterwards.
func NewIntFromBig(b *big.Int) *Integer { return &Integer{v: b} }

// Big returns the underlying *big.Int. Callers must treat it as read-only;
// mutate via the Integer's own methods instead.
func (z *Integer) Big() *big.Int { return z.v }

// Clone returns an independent deep copy of z.
func (z *Integer) Clone() *Integer { return &Integer{v: new(big.Int).Set(z.v)} }

// Set assigns x's value to z and returns z.
func (z *Integer) Set(x *Integer) *Integer { z.v.Set(x.v); return z }

// SetInt64 assigns n to z and returns z.
func (z *Integer) SetInt64(n int64) *Integer { z.v.SetInt64(n); return z }

// IsZero reports whether z == 0.
func (z *Integer) IsZero() bool { return z.v.Sign() == 0 }

// Sign returns -1, 0 or +1 depending on the sign of z.
func (z *Integer) Sign() int { return z.v.Sign() }

// Cmp compares z and x, returning -1, 0 or +1.
func (z *Integer) Cmp(x *Integer) int { return z.v.Cmp(x.v) }

// Equal reports whether z == x.
func (z *Integer) Equal(x *Integer) bool { return z.v.Cmp(x.v) == 0 }

// Add sets z = a + b and returns z.
func (z *Integer) Add(a, b *Integer) *Integer { z.v.Add(a.v, b.v); return z }

// Sub sets z = a - b and returns z.
func (z *Integer) Sub(a, b *Integer) *Integer { z.v.Sub(a.v, b.v); return z }

// Mul sets z = a * b and returns z.
func (z *Integer) Mul(a, b *Integer) *Integer { z.v.Mul(a.v, b.v); return z }

// Neg sets z = -x and returns z.
func (z *Integer) Neg(x *Integer) *Integer { z.v.Neg(x.v); return z }

// Negate negates z in place and returns z.
func (z *Integer) Negate() *Integer { z.v.Neg(z.v); return z }

// Abs sets z = |x| and returns z.
func (z *Integer) Abs(x *Integer) *Integer { z.v.Abs(x.v); return z }

// AddMul sets z = z + a*b and returns z. Used heavily by the conversion
// core for linear combinations of rows.
func (z *Integer) AddMul(a, b *Integer) *Integer {
	var t big.Int
	t.Mul(a.v, b.v)
	z.v.Add(z.v, &t)
	return z
}

// SubMul sets z = z - a*b and returns z.
func (z *Integer) SubMul(a, b *Integer) *Integer {
	var t big.Int
	t.Mul(a.v, b.v)
	z.v.Sub(z.v, &t)
	return z
}

// Div sets z = a / b, truncating towards zero, and returns (z, error).
// ErrDivisionByZero is returned when b == 0; z is left unchanged.
func (z *Integer) Div(a, b *Integer) (*Integer, error) {
	if b.IsZero() {
		return z, ErrDivisionByZero
	}
	z.v.Quo(a.v, b.v)
	return z, nil
}

// ExactDiv sets z = a / b under the precondition that b evenly divides a.
// It returns ErrDivisionByZero if b == 0 and ErrNotDivisible if the
// division is not exact; in both error cases z is left unchanged. This
// mirrors the spec's "exact division with non-divisible arguments is a
// precondition violation" note: callers inside the conversion core that
// have already established exactness may discard the error.
func (z *Integer) ExactDiv(a, b *Integer) (*Integer, error) {
	if b.IsZero() {
		return z, ErrDivisionByZero
	}
	var q, r big.Int
	q.QuoRem(a.v, b.v, &r)
	if r.Sign() != 0 {
		return z, ErrNotDivisible
	}
	z.v.Set(&q)
	return z, nil
}

// GCD sets z = gcd(|a|, |b|) and returns z. GCD(0, 0) = 0.
func (z *Integer) GCD(a, b *Integer) *Integer {
	z.v.GCD(nil, nil, new(big.Int).Abs(a.v), new(big.Int).Abs(b.v))
	return z
}

// LCM sets z = lcm(|a|, |b|) and returns z. LCM(0, _) = 0.
func (z *Integer) LCM(a, b *Integer) *Integer {
	if a.IsZero() || b.IsZero() {
		z.v.SetInt64(0)
		return z
	}
	var g, prod big.Int
	g.GCD(nil, nil, new(big.Int).Abs(a.v), new(big.Int).Abs(b.v))
	prod.Mul(a.v, b.v)
	prod.Abs(&prod)
	z.v.Quo(&prod, &g)
	return z
}

// Lsh sets z = x << n (multiplication by 2^n) and returns z.
func (z *Integer) Lsh(x *Integer, n uint) *Integer { z.v.Lsh(x.v, n); return z }

// Int64 returns the int64 value of z, truncated if z does not fit.
func (z *Integer) Int64() int64 { return z.v.Int64() }

// String returns the base-10 representation of z.
func (z *Integer) String() string { return z.v.String() }
