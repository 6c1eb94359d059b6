package poly

import (
	"unsafe"

	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/satmat"
)

// TotalMemoryInBytes estimates p's heap footprint (spec §5's
// total_memory_in_bytes introspection): the fixed struct overhead plus
// one machine word per stored coefficient/bitset word across both
// systems and the saturation matrix. This is a size estimate for
// diagnostics, not an exact allocator accounting.
func (p *Poly) TotalMemoryInBytes() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	total := int(unsafe.Sizeof(*p))
	total += conSysBytes(p.c)
	total += genSysBytes(p.g)
	if p.sat != nil {
		total += satBytes(p.sat)
	}
	return total
}

const wordSize = int(unsafe.Sizeof(uintptr(0)))

func conSysBytes(c *conset.ConSys) int {
	if c == nil {
		return 0
	}
	rows := c.NumSing() + c.NumSk()
	return rows*(c.Dim()+2)*wordSize + c.NumNS()*wordSize
}

func genSysBytes(g *conset.GenSys) int {
	if g == nil {
		return 0
	}
	rows := g.NumSing() + g.NumSk()
	return rows*(g.Dim()+2)*wordSize + g.NumNS()*wordSize
}

func satBytes(sat *satmat.SatMatrix) int {
	return sat.NumCons() * ((sat.NumGens()/64 + 1) * wordSize)
}
