// Package pset implements the finite-union (powerset) polyhedron of
// spec §4.8: a non-redundant ordered list of disjuncts, each a non-empty
// poly.Poly of matching topology and space dimension, denoting their
// set union. No disjunct may be contained in another; the empty list
// denotes the empty set.
package pset
