package conset

import (
	"testing"

	"github.com/polylib/ppl/bitset"
	"github.com/stretchr/testify/require"
)

func TestConSys_AppendAndPartition(t *testing.T) {
	s := NewConSys(2)
	require.NoError(t, s.AppendCon(NewCon(expr(1, 0), NonStrict)))
	require.NoError(t, s.AppendCon(NewCon(expr(0, 1), Equality)))
	require.Equal(t, 1, s.NumSk())
	require.Equal(t, 1, s.NumSing())
}

func TestConSys_AppendNS_RejectsSingleton(t *testing.T) {
	s := NewConSys(1)
	require.NoError(t, s.AppendCon(NewCon(expr(1), Strict)))
	err := s.AppendNS(bitset.FromSlice([]int{0}))
	require.ErrorIs(t, err, ErrSingletonNSRow)
}

func TestConSys_RemoveSk_RemapsNS(t *testing.T) {
	s := NewConSys(1)
	require.NoError(t, s.AppendCon(NewCon(expr(1), Strict)))
	require.NoError(t, s.AppendCon(NewCon(expr(1), Strict)))
	require.NoError(t, s.AppendCon(NewCon(expr(1), Strict)))
	require.NoError(t, s.AppendNS(bitset.FromSlice([]int{1, 2})))

	require.NoError(t, s.RemoveSk(0))
	require.Equal(t, 2, s.NumSk())
	require.Equal(t, 1, s.NumNS())
	require.Equal(t, []int{0, 1}, s.NS(0).Slice())
}

func TestConSys_RemoveSk_DropsReferencingNS(t *testing.T) {
	s := NewConSys(1)
	require.NoError(t, s.AppendCon(NewCon(expr(1), Strict)))
	require.NoError(t, s.AppendCon(NewCon(expr(1), Strict)))
	require.NoError(t, s.AppendNS(bitset.FromSlice([]int{0, 1})))

	require.NoError(t, s.RemoveSk(0))
	require.Equal(t, 0, s.NumNS())
}

func TestConSys_SortCanonical(t *testing.T) {
	s := NewConSys(1)
	require.NoError(t, s.AppendCon(NewCon(expr(2), NonStrict)))
	require.NoError(t, s.AppendCon(NewCon(expr(1), NonStrict)))
	s.SortCanonical()
	require.Equal(t, "1", s.Sk(0).Expr().Coeff(0).String())
	require.Equal(t, "2", s.Sk(1).Expr().Coeff(0).String())
}
