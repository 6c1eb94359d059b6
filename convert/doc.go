// Package convert implements the incremental double-description
// conversion core: turning a constraint system into its generator-system
// dual and back (spec §4.3).
//
// ConsToGens is the primitive: starting from the universe {origin} ∪
// {line per axis}, it feeds constraints one at a time through a
// classify-by-sign/drop/combine pivot step, using conset.EvalValue for
// the dot products. GensToCons does not repeat that loop against the
// symmetric Con/Gen pair; a naive mirror has to "split" a violated
// equality the way ConsToGens splits a violated line, but an equality
// carries a position (it has a nonzero inhomogeneous term) where a line
// is pure direction, and splitting throws that position away. Instead
// GensToCons lifts the generator system one dimension up (point (x, den)
// and direction x both become the coefficient vector (x, den)), runs
// ConsToGens on the lifted system to get the polar cone's generators,
// and truncates the extra coordinate back out — the standard
// homogenization/polarity construction, and the one already-correct
// pivot loop doing the real work for both directions.
//
// This package always recomputes the dual from the full row set rather
// than reusing a previously-converted dual across calls. The incremental
// pivot step is defined one row at a time regardless of where those rows
// came from, so running it over the whole accumulated system on every
// call is equivalent to resuming from a prior dual — it only forgoes the
// performance benefit of not redoing earlier work. Given the scope here,
// simplicity of a single well-tested code path won out over that reuse.
package convert
