package poly

import (
	"testing"

	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/topology"
	"github.com/stretchr/testify/require"
)

func TestWideningAssign_H79_KeepsOnlyConstraintsSatisfiedByPrev(t *testing.T) {
	// prev: 0 <= x <= 2, 0 <= y <= 2 (a square).
	prev := NewUniverse(2, topology.Closed)
	require.NoError(t, prev.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))
	require.NoError(t, prev.AddCon(conset.NewCon(conExpr(2, -1, 0), conset.NonStrict)))
	require.NoError(t, prev.AddCon(conset.NewCon(conExpr(0, 0, 1), conset.NonStrict)))
	require.NoError(t, prev.AddCon(conset.NewCon(conExpr(2, 0, -1), conset.NonStrict)))

	// self: 0 <= x <= 3, 0 <= y <= 2 (x bound relaxed, y bound unchanged).
	self := NewUniverse(2, topology.Closed)
	require.NoError(t, self.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))
	require.NoError(t, self.AddCon(conset.NewCon(conExpr(3, -1, 0), conset.NonStrict)))
	require.NoError(t, self.AddCon(conset.NewCon(conExpr(0, 0, 1), conset.NonStrict)))
	require.NoError(t, self.AddCon(conset.NewCon(conExpr(2, 0, -1), conset.NonStrict)))

	require.NoError(t, self.WideningAssign(prev, topology.H79, topology.Risky))

	// prev satisfies every constraint of self (including x <= 3, since
	// 2 <= 3), so all of them survive; in particular y <= 2 does.
	relYHi, err := self.Relation(conset.NewCon(conExpr(2, 0, -1), conset.NonStrict))
	require.NoError(t, err)
	require.True(t, relYHi.Has(RelIsIncluded))
}

func TestWideningAssign_DropsConstraintPrevViolates(t *testing.T) {
	prev := NewUniverse(2, topology.Closed)
	require.NoError(t, prev.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))
	require.NoError(t, prev.AddCon(conset.NewCon(conExpr(2, -1, 0), conset.NonStrict))) // x <= 2

	self := NewUniverse(2, topology.Closed)
	require.NoError(t, self.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))
	require.NoError(t, self.AddCon(conset.NewCon(conExpr(1, -1, 0), conset.NonStrict))) // x <= 1, tighter than prev

	require.NoError(t, self.WideningAssign(prev, topology.H79, topology.Safe))

	// self's x<=1 is not satisfied throughout prev (prev has points with
	// x up to 2), so it must be dropped: self should now be unbounded
	// above in x.
	bounded, err := self.IsBoundedExpr(Maximize, mkExpr(1, 0))
	require.NoError(t, err)
	require.False(t, bounded)
}

func TestWideningAssign_BHRZ03NeverLessPreciseThanH79(t *testing.T) {
	prev := NewUniverse(2, topology.Closed)
	require.NoError(t, prev.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))
	require.NoError(t, prev.AddCon(conset.NewCon(conExpr(2, -1, 0), conset.NonStrict)))
	require.NoError(t, prev.AddCon(conset.NewCon(conExpr(0, 0, 1), conset.NonStrict)))
	require.NoError(t, prev.AddCon(conset.NewCon(conExpr(2, 0, -1), conset.NonStrict)))

	self := NewUniverse(2, topology.Closed)
	require.NoError(t, self.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))
	require.NoError(t, self.AddCon(conset.NewCon(conExpr(3, -1, 0), conset.NonStrict)))
	require.NoError(t, self.AddCon(conset.NewCon(conExpr(0, 0, 1), conset.NonStrict)))
	require.NoError(t, self.AddCon(conset.NewCon(conExpr(2, 0, -1), conset.NonStrict)))

	require.NoError(t, self.WideningAssign(prev, topology.BHRZ03, topology.Risky))

	relYHi, err := self.Relation(conset.NewCon(conExpr(2, 0, -1), conset.NonStrict))
	require.NoError(t, err)
	require.True(t, relYHi.Has(RelIsIncluded))
}
