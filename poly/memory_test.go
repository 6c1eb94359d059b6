package poly

import (
	"testing"

	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/topology"
	"github.com/stretchr/testify/require"
)

func TestTotalMemoryInBytes_PositiveForNonemptyPoly(t *testing.T) {
	p := unitSquare(t)
	require.Greater(t, p.TotalMemoryInBytes(), 0)
}

func TestTotalMemoryInBytes_GrowsWithConstraintCount(t *testing.T) {
	small := NewUniverse(2, topology.Closed)
	require.NoError(t, small.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))

	big := NewUniverse(2, topology.Closed)
	require.NoError(t, big.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))
	require.NoError(t, big.AddCon(conset.NewCon(conExpr(1, -1, 0), conset.NonStrict)))
	require.NoError(t, big.AddCon(conset.NewCon(conExpr(0, 0, 1), conset.NonStrict)))
	require.NoError(t, big.AddCon(conset.NewCon(conExpr(1, 0, -1), conset.NonStrict)))

	require.GreaterOrEqual(t, big.TotalMemoryInBytes(), small.TotalMemoryInBytes())
}

func TestTotalMemoryInBytes_ZeroDimPoly(t *testing.T) {
	p := NewUniverse(0, topology.Closed)
	require.GreaterOrEqual(t, p.TotalMemoryInBytes(), 0)
}
