// Package satmat implements the saturation matrix (spec §3.5): for a
// constraint system C with m rows and a generator system G with n rows,
// sat_c[i][j] records whether C_i evaluates to zero on G_j. Both
// transposed views (by-constraint-row and by-generator-row) are
// maintained so that the conversion core (package convert) can scan
// "which generators does this constraint saturate" and "which
// constraints does this generator saturate" equally cheaply — exactly
// the access pattern lvlath/matrix keeps two representations
// (adjacency and incidence) for.
package satmat
