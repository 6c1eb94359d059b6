package conset

import (
	"testing"

	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/rational"
	"github.com/stretchr/testify/require"
)

func expr(cs ...int64) *linexpr.LinExpr {
	e := linexpr.New(len(cs))
	for i, c := range cs {
		e.SetCoeff(linexpr.Var(i), rational.NewInt(c))
	}
	return e
}

func TestCon_NormalizeSignAndGCD(t *testing.T) {
	c := NewCon(expr(-2, -4), Equality)
	require.Equal(t, "1", c.Expr().Coeff(0).String())
	require.Equal(t, "2", c.Expr().Coeff(1).String())
}

func TestCon_IsInconsistent(t *testing.T) {
	bad := NewCon(linexpr.New(2), NonStrict)
	bad.Expr().SetInhomo(rational.NewInt(-1))
	require.True(t, bad.IsInconsistent())

	ok := NewCon(linexpr.New(2), NonStrict)
	ok.Expr().SetInhomo(rational.NewInt(1))
	require.False(t, ok.IsInconsistent())

	strictBad := NewCon(linexpr.New(1), Strict)
	strictBad.Expr().SetInhomo(rational.NewInt(0))
	require.True(t, strictBad.IsInconsistent())
}

func TestGen_NewPoint_RequiresPositiveDivisor(t *testing.T) {
	_, err := NewPoint(expr(1, 1), rational.NewInt(0))
	require.ErrorIs(t, err, ErrNonPositiveDivisor)

	p, err := NewPoint(expr(2, 4), rational.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, "1", p.Expr().Coeff(0).String())
	require.Equal(t, "2", p.Expr().Coeff(1).String())
	require.Equal(t, "1", p.Divisor().String())
}

func TestGen_LineRayDivisorIsZero(t *testing.T) {
	l := NewLine(expr(1, 0))
	require.True(t, l.Divisor().IsZero())
	require.False(t, l.Kind().HasDivisor())
}
