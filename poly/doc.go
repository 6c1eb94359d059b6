// Package poly implements Poly, the convex polyhedron that every other
// type in this module (fpoly's factors, pset's disjuncts) is eventually
// built from. A Poly keeps both the double-description representations
// (ConSys and GenSys) lazily consistent: operations that only need one
// side (AddCon only ever touches C) defer the matching conversion until
// something actually asks for the other side or for minimized form
// (spec §3.6, §4.2).
//
// The public surface follows the operation table of spec §4.5:
// add_con(s)/add_gen(s), intersection_assign, poly_hull_assign,
// con_hull_assign, poly_difference_assign, the affine image/preimage
// family, widening_assign, split/integral_split, the space-dimension
// manipulation family, constrains/is_bounded/min/max/get_bounding_box,
// time_elapse_assign and topological_closure_assign/set_topology, plus
// the relation queries of spec §6.2 and the ASCII round-trip of §6.3.
package poly
