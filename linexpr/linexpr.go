package linexpr

import (
	"github.com/polylib/ppl/rational"
)

// LinExpr is an integer linear expression over space dimension Dim():
// coeffs[i] is the coefficient of Var(i), and inhomo is the constant term.
// The tuple (coeffs..., inhomo) is exactly the spec's
// "(c_0, ..., c_{d-1}, k)".
type LinExpr struct {
	coeffs []*rational.Integer
	inhomo *rational.Integer
}

// New returns the zero expression over dim dimensions (dim >= 0).
func New(dim int) *LinExpr {
	e := &LinExpr{
		coeffs: make([]*rational.Integer, dim),
		inhomo: rational.Zero(),
	}
	for i := range e.coeffs {
		e.coeffs[i] = rational.Zero()
	}
	return e
}

// FromCoeffs builds a LinExpr from an explicit coefficient slice (cloned)
// and inhomogeneous term.
func FromCoeffs(coeffs []*rational.Integer, inhomo *rational.Integer) *LinExpr {
	e := &LinExpr{
		coeffs: make([]*rational.Integer, len(coeffs)),
		inhomo: inhomo.Clone(),
	}
	for i, c := range coeffs {
		e.coeffs[i] = c.Clone()
	}
	return e
}

// Dim returns the space dimension (number of coefficient slots).
func (e *LinExpr) Dim() int { return len(e.coeffs) }

// Coeff returns the coefficient of Var(v). v must be in [0, Dim()).
func (e *LinExpr) Coeff(v Var) *rational.Integer {
	return e.coeffs[int(v)]
}

// SetCoeff writes c into the slot for Var(v), cloning c.
func (e *LinExpr) SetCoeff(v Var, c *rational.Integer) {
	e.coeffs[int(v)] = c.Clone()
}

// Inhomo returns the inhomogeneous term.
func (e *LinExpr) Inhomo() *rational.Integer { return e.inhomo }

// SetInhomo writes the inhomogeneous term, cloning k.
func (e *LinExpr) SetInhomo(k *rational.Integer) { e.inhomo = k.Clone() }

// Clone returns a deep, independent copy of e.
func (e *LinExpr) Clone() *LinExpr {
	c := &LinExpr{
		coeffs: make([]*rational.Integer, len(e.coeffs)),
		inhomo: e.inhomo.Clone(),
	}
	for i, x := range e.coeffs {
		c.coeffs[i] = x.Clone()
	}
	return c
}

// ExtendDim grows e to newDim (>= Dim()), padding with zero coefficients.
// A no-op if newDim <= Dim().
func (e *LinExpr) ExtendDim(newDim int) {
	if newDim <= len(e.coeffs) {
		return
	}
	grown := make([]*rational.Integer, newDim)
	copy(grown, e.coeffs)
	for i := len(e.coeffs); i < newDim; i++ {
		grown[i] = rational.Zero()
	}
	e.coeffs = grown
}

// SwapDims exchanges the coefficients of Var(i) and Var(j).
func (e *LinExpr) SwapDims(i, j Var) {
	e.coeffs[int(i)], e.coeffs[int(j)] = e.coeffs[int(j)], e.coeffs[int(i)]
}

// ShiftFrom inserts n fresh zero coefficients starting at dimension pivot,
// shifting every coefficient at or beyond pivot rightward by n. Used when
// add_space_dims inserts new dimensions in the middle of a space.
func (e *LinExpr) ShiftFrom(pivot Var, n int) {
	if n <= 0 {
		return
	}
	newLen := len(e.coeffs) + n
	grown := make([]*rational.Integer, newLen)
	copy(grown, e.coeffs[:int(pivot)])
	for i := 0; i < n; i++ {
		grown[int(pivot)+i] = rational.Zero()
	}
	copy(grown[int(pivot)+n:], e.coeffs[int(pivot):])
	e.coeffs = grown
}

// DropDims removes the coefficients named by the sorted, duplicate-free
// dims slice, compacting the remainder leftward. Used by
// remove_space_dims.
func (e *LinExpr) DropDims(dims []Var) {
	if len(dims) == 0 {
		return
	}
	drop := make(map[Var]bool, len(dims))
	for _, d := range dims {
		drop[d] = true
	}
	out := make([]*rational.Integer, 0, len(e.coeffs)-len(dims))
	for i, c := range e.coeffs {
		if !drop[Var(i)] {
			out = append(out, c)
		}
	}
	e.coeffs = out
}

// Permute rewrites e under perm: perm[v] is the new dimension for the
// coefficient currently at v, or NotADim to drop it. perm must be
// injective over its non-NotADim entries; violating this is a
// precondition error (ErrBadPermutation).
func (e *LinExpr) Permute(perm []Var) error {
	maxOut := -1
	seen := map[Var]bool{}
	for _, p := range perm {
		if p == NotADim {
			continue
		}
		if seen[p] {
			return ErrBadPermutation
		}
		seen[p] = true
		if int(p) > maxOut {
			maxOut = int(p)
		}
	}
	out := make([]*rational.Integer, maxOut+1)
	for i := range out {
		out[i] = rational.Zero()
	}
	for i, p := range perm {
		if p == NotADim || i >= len(e.coeffs) {
			continue
		}
		out[int(p)] = e.coeffs[i]
	}
	e.coeffs = out
	return nil
}

// IsZero reports whether every coefficient and the inhomogeneous term are
// zero.
func (e *LinExpr) IsZero() bool {
	if !e.inhomo.IsZero() {
		return false
	}
	for _, c := range e.coeffs {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// Equal reports whether e and other have identical dimension,
// coefficients and inhomogeneous term.
func (e *LinExpr) Equal(other *LinExpr) bool {
	if len(e.coeffs) != len(other.coeffs) {
		return false
	}
	if !e.inhomo.Equal(other.inhomo) {
		return false
	}
	for i := range e.coeffs {
		if !e.coeffs[i].Equal(other.coeffs[i]) {
			return false
		}
	}
	return true
}

// ProportionalEqual reports whether e and other are scalar multiples of
// one another (by a positive or negative rational factor) when restricted
// to coefficients [0, upto); upto == -1 means the whole coefficient vector
// plus the inhomogeneous term, which is compared only in that case. Used
// to canonicalize rows (spec §3.4 rule
// 4) and to detect redundant constraints/generators.
func (e *LinExpr) ProportionalEqual(other *LinExpr, upto int) bool {
	n := upto
	if n < 0 || n > len(e.coeffs) {
		n = len(e.coeffs)
	}
	if len(e.coeffs) != len(other.coeffs) {
		return false
	}
	// Find a nonzero component to fix the ratio.
	type comp struct{ a, b *rational.Integer }
	var ref *comp
	check := func(a, b *rational.Integer) bool {
		if a.IsZero() != b.IsZero() {
			return false
		}
		if a.IsZero() {
			return true
		}
		if ref == nil {
			ref = &comp{a, b}
			return true
		}
		// a*ref.b == ref.a*b  <=>  proportional with the same ratio
		lhs := rational.Zero().Mul(a, ref.b)
		rhs := rational.Zero().Mul(ref.a, b)
		return lhs.Equal(rhs)
	}
	for i := 0; i < n; i++ {
		if !check(e.coeffs[i], other.coeffs[i]) {
			return false
		}
	}
	if upto < 0 {
		if !check(e.inhomo, other.inhomo) {
			return false
		}
	}
	return true
}

// GCDRange returns the gcd of |coeffs[lo:hi]| (0 if the range is all
// zero).
func (e *LinExpr) GCDRange(lo, hi int) *rational.Integer {
	g := rational.Zero()
	for i := lo; i < hi; i++ {
		g.GCD(g, e.coeffs[i])
	}
	return g
}

// FirstNonzero returns the smallest dimension index with a nonzero
// coefficient, or -1 if all coefficients are zero.
func (e *LinExpr) FirstNonzero() int {
	for i, c := range e.coeffs {
		if !c.IsZero() {
			return i
		}
	}
	return -1
}

// LastNonzero returns the largest dimension index with a nonzero
// coefficient, or -1 if all coefficients are zero.
func (e *LinExpr) LastNonzero() int {
	for i := len(e.coeffs) - 1; i >= 0; i-- {
		if !e.coeffs[i].IsZero() {
			return i
		}
	}
	return -1
}

// Negate flips the sign of every coefficient and the inhomogeneous term.
func (e *LinExpr) Negate() {
	for _, c := range e.coeffs {
		c.Negate()
	}
	e.inhomo.Negate()
}

// AddMulAssign sets e = e + k*other, the workhorse of the conversion
// core's row combinations (spec §4.3 step 3).
func (e *LinExpr) AddMulAssign(k *rational.Integer, other *LinExpr) {
	for i := range e.coeffs {
		e.coeffs[i].AddMul(k, other.coeffs[i])
	}
	e.inhomo.AddMul(k, other.inhomo)
}

// NormalizeSign negates e in place if its first nonzero component
// (scanning coefficients then the inhomogeneous term) is negative, so
// that the canonical form always has a positive leading term (spec §3.2
// invariant).
func (e *LinExpr) NormalizeSign() {
	fn := e.FirstNonzero()
	if fn >= 0 {
		if e.coeffs[fn].Sign() < 0 {
			e.Negate()
		}
		return
	}
	if e.inhomo.Sign() < 0 {
		e.Negate()
	}
}

// ReduceByGCD divides every coefficient and the inhomogeneous term by the
// gcd of all of them, leaving e unchanged if that gcd is 0 or 1.
func (e *LinExpr) ReduceByGCD() {
	g := e.GCDRange(0, len(e.coeffs))
	g.GCD(g, e.inhomo)
	if g.IsZero() || g.Cmp(rational.NewInt(1)) == 0 {
		return
	}
	for i, c := range e.coeffs {
		q, _ := rational.Zero().ExactDiv(c, g)
		e.coeffs[i] = q
	}
	q, _ := rational.Zero().ExactDiv(e.inhomo, g)
	e.inhomo = q
}

// Compare performs a lexicographic comparison of e and other over
// coefficients [0, Dim()) followed by the inhomogeneous term, returning
// -1, 0 or +1. Used to sort rows into the canonical order required by
// spec §3.4 rule 4. Expressions of different Dim() compare by the
// shorter one's coefficients first and are never equal.
func (e *LinExpr) Compare(other *LinExpr) int {
	n := e.Dim()
	if other.Dim() < n {
		n = other.Dim()
	}
	for i := 0; i < n; i++ {
		if c := e.coeffs[i].Cmp(other.coeffs[i]); c != 0 {
			return c
		}
	}
	if e.Dim() != other.Dim() {
		if e.Dim() < other.Dim() {
			return -1
		}
		return 1
	}
	return e.inhomo.Cmp(other.inhomo)
}

// Value evaluates e at the rational point given by num/den (den > 0,
// len(num) == Dim()): returns sum(coeffs[i]*num[i])/den + inhomo.
func (e *LinExpr) Value(num []*rational.Integer, den *rational.Integer) (*rational.Rational, error) {
	acc := rational.Zero()
	for i, c := range e.coeffs {
		acc.AddMul(c, num[i])
	}
	acc.AddMul(e.inhomo, den)
	return rational.NewRational(acc, den)
}
