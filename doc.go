// Package ppl is a library for exact convex polyhedra over the
// rationals, built around the double-description method: every
// polyhedron is kept simultaneously as a constraint system and a
// generator system, converted between the two by an incremental
// Chernikova-style pivot step.
//
// Quick tour of the subpackages:
//
//	rational/   — arbitrary-precision Integer and Rational values
//	linexpr/    — linear and affine expressions over rational.Integer
//	bitset/     — packed bitsets for saturation rows and generator subsets
//	topology/   — the Closed/NNC (not-necessarily-closed) enum
//	conset/     — Con/Gen rows and their ConSys/GenSys containers
//	satmat/     — the constraint-vs-generator saturation matrix
//	convert/    — the constraint<->generator conversion core
//	minimize/   — redundancy removal and canonicalization
//	bbox/       — interval-product bounding boxes
//	poly/       — the closed and not-necessarily-closed convex polyhedron
//	fpoly/      — the Cartesian-factored polyhedron
//	pset/       — the finite-union (powerset) polyhedron
//	config/     — process-wide tunables (default topology, widening choice)
//
// A typical caller only ever imports poly (or fpoly/pset for the
// decomposed representations); the lower layers exist to keep the
// conversion algorithm's invariants in one place.
package ppl
