// Package minimize implements the normal-form pass that the double
// description core defers to lazily (spec §4.4): merging pending rows,
// dropping syntactic duplicates and rows dominated by sing rows, testing
// each sk row for redundancy by temporary removal plus a dual-saturation
// recheck, pruning ns rows, and finally sorting canonically and
// recomputing both saturation matrices from scratch.
//
// Full exactness of the NNC ns-row construction (spec §4.3's "NNC
// extension") is explicitly out of scope ("exact minimization of
// strict-inequality bases beyond what the conversion guarantees", spec
// §1 Non-goals); Cons/Gens here synthesize ns rows with a conservative,
// best-effort heuristic (synthesizeNSRows) rather than the full
// combinatorial closure-point analysis, and document that choice inline.
package minimize
