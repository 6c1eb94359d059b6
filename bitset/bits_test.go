package bitset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBits_SetTestReset(t *testing.T) {
	b := New(0)
	b.Set(3)
	b.Set(130)
	require.True(t, b.Test(3))
	require.True(t, b.Test(130))
	require.False(t, b.Test(4))

	b.Reset(3)
	require.False(t, b.Test(3))
	require.True(t, b.Test(130))
}

func TestBits_SetUntilResetFrom(t *testing.T) {
	b := New(0)
	b.SetUntil(5)
	for i := 0; i < 5; i++ {
		require.True(t, b.Test(i), "bit %d", i)
	}
	require.False(t, b.Test(5))

	b.ResetFrom(2)
	require.True(t, b.Test(0))
	require.True(t, b.Test(1))
	require.False(t, b.Test(2))
	require.False(t, b.Test(3))
}

func TestBits_OrAndDiff(t *testing.T) {
	a := FromSlice([]int{0, 2, 4})
	b := FromSlice([]int{2, 3})

	require.Equal(t, []int{0, 2, 3, 4}, Or(a, b).Slice())
	require.Equal(t, []int{2}, And(a, b).Slice())
	require.Equal(t, []int{0, 4}, Diff(a, b).Slice())
}

func TestBits_SubsetEqual(t *testing.T) {
	a := FromSlice([]int{1, 2})
	b := FromSlice([]int{1, 2, 3})

	require.True(t, a.IsSubsetOf(b))
	require.False(t, b.IsSubsetOf(a))
	require.True(t, a.Equal(FromSlice([]int{2, 1})))
	require.False(t, a.Equal(b))
}

func TestBits_SizeAndEach(t *testing.T) {
	s := FromSlice([]int{5, 1, 9, 1})
	require.Equal(t, 3, s.Size())

	var seen []int
	s.Each(func(i int) bool {
		seen = append(seen, i)
		return true
	})
	require.Equal(t, []int{1, 5, 9}, seen)
}

func TestBits_HashStableAcrossTrailingZeroWords(t *testing.T) {
	a := FromSlice([]int{1, 2})
	b := New(300)
	b.Set(1)
	b.Set(2)
	require.Equal(t, a.Hash(), b.Hash())
}
