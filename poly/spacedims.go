package poly

import (
	"sort"

	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/convert"
	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/rational"
)

// AddSpaceDims appends n fresh dimensions (spec §4.5 add_space_dims). The
// new dimensions are left unconstrained unless project is true, in which
// case each is pinned to zero by an added equality. Extending the
// constraint system's dimension without adding a row already leaves the
// new coordinates free, since nothing in C mentions them; project's
// equalities are the only extra step needed for the pinned case.
func (p *Poly) AddSpaceDims(n int, project bool) error {
	if n < 0 {
		return ErrIndexOutOfRange
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if n == 0 {
		return nil
	}
	newDim := p.dim + n
	p.c.ExtendDim(newDim)
	if p.g != nil {
		p.g.ExtendDim(newDim)
	}
	oldDim := p.dim
	p.dim = newDim
	p.minimal = false
	if project {
		for i := oldDim; i < newDim; i++ {
			e := linexpr.New(newDim)
			e.SetCoeff(linexpr.Var(i), rational.NewInt(1))
			if err := p.addConsLocked(conset.NewCon(e, conset.Equality)); err != nil {
				return err
			}
		}
	}
	return nil
}

// RemoveSpaceDims projects indices away (spec §4.5 remove_space_dims) by
// dropping the named coordinates from every generator and re-deriving
// the constraint dual — Fourier-Motzkin elimination expressed as the
// standard generator-side projection, which needs no elimination loop of
// its own because dropping a generator's coordinate is exact.
func (p *Poly) RemoveSpaceDims(indices []int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(indices) == 0 {
		return nil
	}
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	for i, idx := range sorted {
		if idx < 0 || idx >= p.dim {
			return ErrIndexOutOfRange
		}
		if i > 0 && sorted[i-1] == idx {
			return ErrIndexOutOfRange
		}
	}
	if err := p.ensureMinimalLocked(); err != nil {
		return err
	}
	vars := make([]linexpr.Var, len(sorted))
	for i, idx := range sorted {
		vars[i] = linexpr.Var(idx)
	}
	newDim := p.dim - len(sorted)
	g2 := conset.NewGenSys(newDim)
	dropGen := func(g *conset.Gen) *conset.Gen {
		e := g.Expr().Clone()
		e.DropDims(vars)
		switch g.Kind() {
		case conset.Line:
			return conset.NewLine(e)
		case conset.Ray:
			return conset.NewRay(e)
		case conset.ClosurePoint:
			ng, _ := conset.NewClosurePoint(e, g.Divisor())
			return ng
		default:
			ng, _ := conset.NewPoint(e, g.Divisor())
			return ng
		}
	}
	for i := 0; i < p.g.NumSing(); i++ {
		if err := g2.AppendGen(dropGen(p.g.Sing(i))); err != nil {
			return err
		}
	}
	for i := 0; i < p.g.NumSk(); i++ {
		if err := g2.AppendGen(dropGen(p.g.Sk(i))); err != nil {
			return err
		}
	}
	newCons, err := convert.GensToCons(p.topo, g2)
	if err != nil {
		return err
	}
	p.dim = newDim
	p.c = newCons
	p.g = g2
	p.minimal = false
	return nil
}

// RemoveHigherSpaceDims truncates the space to the first n dimensions
// (spec §4.5), a special case of RemoveSpaceDims over [n, dim).
func (p *Poly) RemoveHigherSpaceDims(n int) error {
	p.mu.RLock()
	dim := p.dim
	p.mu.RUnlock()
	if n < 0 || n > dim {
		return ErrIndexOutOfRange
	}
	if n == dim {
		return nil
	}
	idx := make([]int, 0, dim-n)
	for i := n; i < dim; i++ {
		idx = append(idx, i)
	}
	return p.RemoveSpaceDims(idx)
}

// MapSpaceDims renames dimensions under perm (spec §4.5 map_space_dims):
// perm[i] is the new index for old dimension i, or linexpr.NotADim to
// drop it. perm must be injective over its defined entries.
func (p *Poly) MapSpaceDims(perm []linexpr.Var) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(perm) != p.dim {
		return ErrDimensionMismatch
	}
	newDim := 0
	seen := map[linexpr.Var]bool{}
	for _, v := range perm {
		if v == linexpr.NotADim {
			continue
		}
		if seen[v] {
			return ErrBadPermutation
		}
		seen[v] = true
		if int(v)+1 > newDim {
			newDim = int(v) + 1
		}
	}
	c2 := conset.NewConSys(newDim)
	permuteCon := func(c *conset.Con) error {
		e := c.Expr().Clone()
		if err := e.Permute(perm); err != nil {
			return ErrBadPermutation
		}
		e.ExtendDim(newDim)
		return c2.AppendCon(conset.NewCon(e, c.Kind()))
	}
	for i := 0; i < p.c.NumSing(); i++ {
		if err := permuteCon(p.c.Sing(i)); err != nil {
			return err
		}
	}
	for i := 0; i < p.c.NumSk(); i++ {
		if err := permuteCon(p.c.Sk(i)); err != nil {
			return err
		}
	}
	p.dim = newDim
	p.c = c2
	p.g = conset.NewGenSys(newDim)
	p.minimal = false
	return nil
}

// ExpandSpaceDim duplicates v into n fresh copies (spec §4.5
// expand_space_dim): each fresh dimension gets its own copy of every
// constraint that mentions v, with v replaced by that dimension, rather
// than being linked to v by an equality — the copies are independent
// variables that merely inherit v's per-variable constraint shape.
func (p *Poly) ExpandSpaceDim(v linexpr.Var, n int) error {
	if n < 0 {
		return ErrIndexOutOfRange
	}
	p.mu.Lock()
	if int(v) < 0 || int(v) >= p.dim {
		p.mu.Unlock()
		return ErrIndexOutOfRange
	}
	if err := p.ensureMinimalLocked(); err != nil {
		p.mu.Unlock()
		return err
	}
	oldDim := p.dim
	origRows := make([]*conset.Con, 0, p.c.NumSing()+p.c.NumSk())
	for i := 0; i < p.c.NumSing(); i++ {
		origRows = append(origRows, p.c.Sing(i))
	}
	for i := 0; i < p.c.NumSk(); i++ {
		origRows = append(origRows, p.c.Sk(i))
	}
	p.mu.Unlock()

	if n == 0 {
		return nil
	}
	if err := p.AddSpaceDims(n, false); err != nil {
		return err
	}
	newDim := oldDim + n
	var extra []*conset.Con
	for _, row := range origRows {
		if row.Expr().Coeff(v).IsZero() {
			continue
		}
		for i := 0; i < n; i++ {
			fresh := linexpr.Var(oldDim + i)
			e := row.Expr().Clone()
			e.ExtendDim(newDim)
			cv := e.Coeff(v)
			e.SetCoeff(v, rational.Zero())
			e.SetCoeff(fresh, cv)
			extra = append(extra, conset.NewCon(e, row.Kind()))
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addConsLocked(extra...)
}

// FoldSpaceDims replaces the dimensions in set by their convex hull with
// v (spec §4.5 fold_space_dims): for each w in set, a copy of the
// polyhedron with v overwritten by w's value (via AffineImage) and every
// folded dimension then projected away is hulled together with the
// base polyhedron (itself projected the same way), so the result at v's
// slot ranges over every value any folded dimension, or v itself, could
// have taken.
func (p *Poly) FoldSpaceDims(set []int, v linexpr.Var) error {
	if len(set) == 0 {
		return nil
	}
	sorted := append([]int(nil), set...)
	sort.Ints(sorted)
	drop := make([]int, len(sorted))
	copy(drop, sorted)

	p.mu.RLock()
	dim := p.dim
	p.mu.RUnlock()
	if int(v) < 0 || int(v) >= dim {
		return ErrIndexOutOfRange
	}

	base := p.Clone()
	if err := base.RemoveSpaceDims(drop); err != nil {
		return err
	}

	for _, w := range sorted {
		if linexpr.Var(w) == v {
			continue
		}
		tmp := p.Clone()
		e := linexpr.New(dim)
		e.SetCoeff(linexpr.Var(w), rational.NewInt(1))
		if err := tmp.AffineImage(v, e, rational.NewInt(1)); err != nil {
			return err
		}
		if err := tmp.RemoveSpaceDims(drop); err != nil {
			return err
		}
		if err := base.PolyHullAssign(tmp); err != nil {
			return err
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	base.mu.RLock()
	defer base.mu.RUnlock()
	p.dim = base.dim
	p.c = base.c.Clone()
	p.g = base.g
	if base.g != nil {
		p.g = base.g.Clone()
	}
	p.minimal = base.minimal
	p.empty = base.empty
	return nil
}
