package milp_test

import (
	"testing"

	. "github.com/IBM/socratic-logic/internal/milp"
	"github.com/stretchr/testify/require"
)

func TestContinuousVarIdempotent(t *testing.T) {
	m := NewModel()
	v1 := m.ContinuousVar(0, 1, "x")
	v2 := m.ContinuousVar(0, 1, "x")
	require.Same(t, v1, v2)
}

func TestContinuousVarKindMismatchPanics(t *testing.T) {
	m := NewModel()
	m.ContinuousVar(0, 1, "b")
	require.PanicsWithError(t, ErrKindMismatch.Error()+": \"b\" is continuous, not binary", func() {
		m.BinaryVar("b")
	})
}

func TestSolveSimpleMaximize(t *testing.T) {
	m := NewModel()
	x := m.ContinuousVar(0, 1, "x")
	y := m.ContinuousVar(0, 1, "y")
	m.AddConstraint(VarExpr(x).Plus(VarExpr(y)).LE(Const(1)), "sum")
	m.Maximize(VarExpr(x).Plus(VarExpr(y)))

	solved, err := m.Solve()
	require.NoError(t, err)
	require.True(t, solved)
	require.InDelta(t, 1.0, x.SolutionValue()+y.SolutionValue(), 1e-6)
}

func TestSolveInfeasible(t *testing.T) {
	m := NewModel()
	x := m.ContinuousVar(0, 1, "x")
	m.AddConstraint(VarExpr(x).GE(Const(2)), "impossible")
	m.Maximize(VarExpr(x))

	solved, err := m.Solve()
	require.NoError(t, err)
	require.False(t, solved)
}

func TestMinMaxAbs(t *testing.T) {
	m := NewModel()
	x := m.ContinuousVar(0, 1, "x")
	y := m.ContinuousVar(0, 1, "y")
	m.AddConstraint(VarExpr(x).EQ(Const(0.3)), "fix.x")
	m.AddConstraint(VarExpr(y).EQ(Const(0.7)), "fix.y")

	m.Min("m", VarExpr(x), VarExpr(y))
	m.Max("mx", VarExpr(x), VarExpr(y))
	m.Abs("d", VarExpr(x).Minus(VarExpr(y)))

	minVar, _ := m.GetVarByName("m.val")
	maxVar, _ := m.GetVarByName("mx.val")
	absVar, _ := m.GetVarByName("d.val")
	m.Maximize(Const(0).Plus(VarExpr(minVar)).Plus(VarExpr(maxVar)).Plus(VarExpr(absVar)))

	solved, err := m.Solve()
	require.NoError(t, err)
	require.True(t, solved)

	require.InDelta(t, 0.3, minVar.SolutionValue(), 1e-6)
	require.InDelta(t, 0.7, maxVar.SolutionValue(), 1e-6)
	require.InDelta(t, 0.4, absVar.SolutionValue(), 1e-6)
}

func TestExprIsZero(t *testing.T) {
	require.True(t, Const(0).IsZero())
	require.False(t, Const(0.1).IsZero())

	m := NewModel()
	x := m.ContinuousVar(0, 1, "x")
	require.False(t, VarExpr(x).IsZero())
	require.True(t, VarExpr(x).Minus(VarExpr(x)).IsZero())
}
