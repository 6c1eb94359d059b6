package poly

import (
	"strings"
	"testing"

	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/topology"
	"github.com/stretchr/testify/require"
)

func TestAsciiDump_ContainsTopologyAndDims(t *testing.T) {
	p := unitSquare(t)
	dump := p.AsciiDump()
	require.Contains(t, dump, "topology: Closed")
	require.Contains(t, dump, "dim: 2")
	require.Contains(t, dump, "status: nonempty")
}

func TestAsciiDump_EmptyPolyStatus(t *testing.T) {
	p := NewEmpty(2, topology.Closed)
	dump := p.AsciiDump()
	require.Contains(t, dump, "status: empty")
}

func TestAsciiLoadPoly_RoundTripsThroughDump(t *testing.T) {
	p := unitSquare(t)
	dump := p.AsciiDump()

	loaded, ok := AsciiLoadPoly(dump)
	require.True(t, ok)
	require.Equal(t, topology.Closed, loaded.Topology())
	require.Equal(t, 2, loaded.SpaceDimension())

	relLo, err := loaded.Relation(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict))
	require.NoError(t, err)
	require.True(t, relLo.Has(RelIsIncluded))

	relHi, err := loaded.Relation(conset.NewCon(conExpr(1, -1, 0), conset.NonStrict))
	require.NoError(t, err)
	require.True(t, relHi.Has(RelIsIncluded))
}

func TestAsciiLoadPoly_RejectsMalformedInput(t *testing.T) {
	_, ok := AsciiLoadPoly("not a valid dump")
	require.False(t, ok)
}

func TestAsciiLoadPoly_RejectsEmptyInput(t *testing.T) {
	_, ok := AsciiLoadPoly("")
	require.False(t, ok)
}

func TestAsciiDump_NNCTopologyRoundTrips(t *testing.T) {
	p := openUnitSquare(t)
	dump := p.AsciiDump()
	require.True(t, strings.Contains(dump, "topology: NNC"))
	loaded, ok := AsciiLoadPoly(dump)
	require.True(t, ok)
	require.Equal(t, topology.NNC, loaded.Topology())
}
