// Package topology defines the small enumerations shared across every
// layer of this module: Topol (closed vs. not-necessarily-closed),
// SpecElem (the two ways to seed a polyhedron), WidenImpl and WidenSpec
// (spec §6.1, §9). They live in their own package purely to avoid import
// cycles — conset, poly, fpoly and pset all need them, and config (the
// process-wide settings holder, spec §5) needs them too.
package topology

// Topol is the topology of a polyhedron or of one of its constituent
// systems: Closed admits only non-strict inequalities and equalities;
// NNC ("not necessarily closed") additionally admits strict inequalities
// and closure points.
type Topol int

const (
	Closed Topol = iota
	NNC
)

// String renders the topology the way this module's ASCII dumps do.
func (t Topol) String() string {
	switch t {
	case Closed:
		return "CLOSED"
	case NNC:
		return "NNC"
	default:
		return "UNKNOWN_TOPOLOGY"
	}
}

// SpecElem selects the initial content of a freshly constructed
// polyhedron: the empty set or the whole space (spec §3.7).
type SpecElem int

const (
	Empty SpecElem = iota
	Universe
)

// WidenImpl selects a widening strategy (spec §4.5.2).
type WidenImpl int

const (
	H79 WidenImpl = iota
	BHRZ03
)

// WidenSpec selects the precondition regime under which a widening call
// operates (spec §4.5.2): Risky requires prev subseteq self; Safe has no
// precondition and joins first.
type WidenSpec int

const (
	Risky WidenSpec = iota
	Safe
)
