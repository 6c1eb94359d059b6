// Package config holds this module's process-wide mutable settings (spec
// §5, §9): the default topology new polyhedra are built with, the
// default widening implementation and specification, and the
// dimension-to-name function used by String() methods throughout.
//
// These are modeled as a single package-level struct guarded by a
// sync.RWMutex with functional setters, the way lvlath/builder/options.go
// threads GraphOption values through construction — except here the
// "construction" is process-wide and global, per spec §5's explicit
// requirement that these be singletons set before construction and never
// mutated concurrently with computation. Callers needing per-call
// overrides (e.g. a one-off widening call with a different spec) pass
// the enum explicitly to the operation instead of touching this package.
package config
