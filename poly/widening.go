package poly

import (
	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/topology"
)

// wideningCertificate is the lexicographic tuple of spec §4.5.2 bounding
// BHRZ03's extra heuristics: affine dimension, sk constraint count, sk
// generator count, ns row count. Smaller is "more widened".
type wideningCertificate struct {
	affineDim, skCons, skGens, nsRows int
}

func (a wideningCertificate) lessThan(b wideningCertificate) bool {
	if a.affineDim != b.affineDim {
		return a.affineDim < b.affineDim
	}
	if a.skCons != b.skCons {
		return a.skCons < b.skCons
	}
	if a.skGens != b.skGens {
		return a.skGens < b.skGens
	}
	return a.nsRows < b.nsRows
}

// certificateLocked reads p's certificate. p must already be minimal.
func (p *Poly) certificateLocked() wideningCertificate {
	affineDim := p.dim - p.c.NumSing()
	if p.empty {
		affineDim = -1
	}
	return wideningCertificate{
		affineDim: affineDim,
		skCons:    p.c.NumSk(),
		skGens:    p.g.NumSk(),
		nsRows:    p.c.NumNS() + p.g.NumNS(),
	}
}

// WideningAssign replaces p with widen(prev, p) (spec §4.5.2). Under the
// Risky specification, prev ⊆ p is a precondition the caller must
// already have established; under Safe there is none, since p is first
// replaced by prev ⊔ p (poly_hull) so prev ⊆ p holds going in.
func (p *Poly) WideningAssign(prev *Poly, impl topology.WidenImpl, wspec topology.WidenSpec) error {
	if p.dim != prev.dim {
		return ErrDimensionMismatch
	}
	if wspec == topology.Safe {
		if err := p.PolyHullAssign(prev); err != nil {
			return err
		}
	}
	unlock := lockPair(p, prev)
	defer unlock()
	if p.topo != prev.topo {
		return ErrTopologyMismatch
	}
	if err := p.ensureMinimalLocked(); err != nil {
		return err
	}
	if err := prev.ensureMinimalLocked(); err != nil {
		return err
	}
	if p.empty || prev.empty {
		return nil
	}

	h79 := h79Rows(p, prev)
	if impl == topology.H79 {
		p.c = h79
		p.minimal = false
		return nil
	}

	curCert := p.certificateLocked()
	candidate := h79.Clone()
	for i := 0; i < prev.c.NumSk(); i++ {
		c := prev.c.Sk(i)
		if rowFoundIn(c, candidate) {
			continue
		}
		withC := candidate.Clone()
		_ = withC.AppendCon(c)
		trial := FromCons(p.topo, withC)
		if err := trial.ensureMinimalLocked(); err != nil {
			continue
		}
		if trial.empty {
			continue
		}
		// heuristic 1: keep c back only if it does not shrink the affine
		// dimension p already settled on.
		if trial.dim-trial.c.NumSing() == curCert.affineDim {
			_ = candidate.AppendCon(c)
		}
	}

	trial := FromCons(p.topo, candidate)
	if err := trial.ensureMinimalLocked(); err != nil {
		return err
	}
	cand := trial.certificateLocked()
	if !cand.lessThan(curCert) {
		p.c = h79
	} else {
		p.c = candidate
	}
	p.minimal = false
	return nil
}

// h79Rows returns the constraints of p's minimized system that prev also
// satisfies (spec §4.5.2 H79: "exactly those constraints of self that are
// also satisfied by prev").
func h79Rows(p, prev *Poly) *conset.ConSys {
	kept := conset.NewConSys(p.dim)
	for i := 0; i < p.c.NumSing(); i++ {
		c := p.c.Sing(i)
		if conRowImpliedBy(c, prev.g) {
			_ = kept.AppendCon(c)
		}
	}
	for i := 0; i < p.c.NumSk(); i++ {
		c := p.c.Sk(i)
		if conRowImpliedBy(c, prev.g) {
			_ = kept.AppendCon(c)
		}
	}
	return kept
}
