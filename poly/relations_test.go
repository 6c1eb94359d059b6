package poly

import (
	"testing"

	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/rational"
	"github.com/polylib/ppl/topology"
	"github.com/stretchr/testify/require"
)

func unitSquare(t *testing.T) *Poly {
	t.Helper()
	p := NewUniverse(2, topology.Closed)
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(1, -1, 0), conset.NonStrict)))
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(0, 0, 1), conset.NonStrict)))
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(1, 0, -1), conset.NonStrict)))
	return p
}

func TestRelation_SaturatesOnBoundaryConstraint(t *testing.T) {
	p := unitSquare(t)
	// Flatten the square onto its x = 0 edge, so every generator lies on
	// the boundary of x >= 0.
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.Equality)))
	rel, err := p.Relation(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict))
	require.NoError(t, err)
	require.True(t, rel.Has(RelIsIncluded))
	require.True(t, rel.Has(RelSaturates))
	require.False(t, rel.Has(RelIsDisjoint))
}

func TestRelation_IsDisjointWhenConOutsideBox(t *testing.T) {
	p := unitSquare(t)
	// x <= -1 never holds inside the unit square.
	rel, err := p.Relation(conset.NewCon(conExpr(-1, -1, 0), conset.NonStrict))
	require.NoError(t, err)
	require.True(t, rel.Has(RelIsDisjoint))
	require.False(t, rel.Has(RelIsIncluded))
}

func TestRelation_StrictlyIntersectsWhenConCutsThrough(t *testing.T) {
	p := unitSquare(t)
	// x <= 0.5 cuts the square in two.
	half := conExpr(1, -2, 0)
	rel, err := p.Relation(conset.NewCon(half, conset.NonStrict))
	require.NoError(t, err)
	require.True(t, rel.Has(RelStrictlyIntersects))
	require.False(t, rel.Has(RelIsIncluded))
	require.False(t, rel.Has(RelIsDisjoint))
}

func TestRelation_EmptyPolyhedronCanonicalEncoding(t *testing.T) {
	p := NewEmpty(2, topology.Closed)
	rel, err := p.Relation(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict))
	require.NoError(t, err)
	require.True(t, rel.Has(RelSaturates))
	require.True(t, rel.Has(RelIsIncluded))
	require.True(t, rel.Has(RelIsDisjoint))
	require.False(t, rel.Has(RelStrictlyIntersects))
}

func TestRelationGen_SubsumesRedundantGenerator(t *testing.T) {
	p := unitSquare(t)
	interior, err := conset.NewPoint(mkExpr(1, 1), rational.NewInt(2))
	require.NoError(t, err)
	rel, err := p.RelationGen(interior)
	require.NoError(t, err)
	require.Equal(t, RelSubsumes, rel)
}

func TestRelationGen_NothingWhenGeneratorExtendsPoly(t *testing.T) {
	p := unitSquare(t)
	outside, err := conset.NewPoint(mkExpr(5, 5), rational.NewInt(1))
	require.NoError(t, err)
	rel, err := p.RelationGen(outside)
	require.NoError(t, err)
	require.Equal(t, RelNothing, rel)
}

func TestRelation_DimensionMismatch(t *testing.T) {
	p := unitSquare(t)
	_, err := p.Relation(conset.NewCon(conExpr(0, 1, 0, 0), conset.NonStrict))
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestEntails_TrueForImpliedConstraint(t *testing.T) {
	p := unitSquare(t)
	ok, err := p.Entails(conset.NewCon(conExpr(1, -1, 0), conset.NonStrict))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEntails_FalseForUnrelatedConstraint(t *testing.T) {
	p := unitSquare(t)
	ok, err := p.Entails(conset.NewCon(conExpr(-1, -1, 0), conset.NonStrict))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestContains_SubBoxIsContained(t *testing.T) {
	p := unitSquare(t)
	q := NewUniverse(2, topology.Closed)
	require.NoError(t, q.AddCon(conset.NewCon(conExpr(0, 4, 0), conset.NonStrict)))
	require.NoError(t, q.AddCon(conset.NewCon(conExpr(1, -4, 0), conset.NonStrict)))
	require.NoError(t, q.AddCon(conset.NewCon(conExpr(0, 0, 4), conset.NonStrict)))
	require.NoError(t, q.AddCon(conset.NewCon(conExpr(1, 0, -4), conset.NonStrict)))

	ok, err := p.Contains(q)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = q.Contains(p)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestContains_DimensionMismatch(t *testing.T) {
	p := unitSquare(t)
	q := NewUniverse(3, topology.Closed)
	_, err := p.Contains(q)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestEquals_SameBoxIsEqual(t *testing.T) {
	p := unitSquare(t)
	q := unitSquare(t)
	ok, err := p.Equals(q)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEquals_DifferentBoxIsNotEqual(t *testing.T) {
	p := unitSquare(t)
	q := NewUniverse(2, topology.Closed)
	require.NoError(t, q.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))
	require.NoError(t, q.AddCon(conset.NewCon(conExpr(2, -1, 0), conset.NonStrict)))
	require.NoError(t, q.AddCon(conset.NewCon(conExpr(0, 0, 1), conset.NonStrict)))
	require.NoError(t, q.AddCon(conset.NewCon(conExpr(2, 0, -1), conset.NonStrict)))

	ok, err := p.Equals(q)
	require.NoError(t, err)
	require.False(t, ok)
}
