package logic

import (
	"fmt"

	"github.com/IBM/socratic-logic/internal/milp"
)

// configureFormula recursively adds the MILP constraints defining f's truth
// value and returns the expression (a plain variable reference, for every
// non-leaf node) standing for it. Repeated calls for a structurally equal
// subformula — same canonical name — return the existing variable without
// re-adding its defining constraints, which is what lets a shared AST be
// encoded without duplicated work. A cyclic AST is rejected with
// ErrCyclicFormula.
//
// visiting guards against cycles within a single top-level call: a formula
// node may legitimately be reachable more than once (shared subformulae),
// but never while it is still being configured on the current path.
func configureFormula(f Formula, m *milp.Model, gap *milp.Var, inherited Logic, visiting map[Formula]bool) (milp.Expr, error) {
	if name, ok := AsProp(f); ok {
		return milp.VarExpr(m.ContinuousVar(0, 1, "prop:"+name)), nil
	}
	if val, ok := AsConst(f); ok {
		return milp.Const(val), nil
	}

	if visiting[f] {
		return milp.Expr{}, ErrCyclicFormula
	}

	name := CanonicalName(f)
	_, alreadyConfigured := m.GetVarByName(name)
	v := m.ContinuousVar(0, 1, name)
	if alreadyConfigured {
		return milp.VarExpr(v), nil
	}

	visiting[f] = true
	defer delete(visiting, f)

	eff := effectiveLogic(f, inherited)
	operands := Operands(f)
	opExprs := make([]milp.Expr, len(operands))
	for i, op := range operands {
		e, err := configureFormula(op, m, gap, eff, visiting)
		if err != nil {
			return milp.Expr{}, err
		}
		opExprs[i] = e
	}

	emitOperatorConstraints(f, m, gap, eff, v, opExprs, name)
	return milp.VarExpr(v), nil
}

// effectiveLogic is f's own logic override if it has one, else the logic
// inherited from its parent's encoding context.
func effectiveLogic(f Formula, inherited Logic) Logic {
	if ov := LogicOverride(f); ov != nil {
		return *ov
	}
	return inherited
}

// emitOperatorConstraints adds the constraints defining v == f(opExprs...)
// under the t-norm family eff, for every operator variant. name is f's
// canonical name, used as the prefix for every auxiliary variable and
// constraint this node introduces.
func emitOperatorConstraints(f Formula, m *milp.Model, gap *milp.Var, eff Logic, v *milp.Var, ops []milp.Expr, name string) {
	switch f.(type) {
	case *andNode:
		var agg milp.Expr
		if eff == Godel {
			agg = m.Min(name+".agg", ops...)
		} else {
			n := float64(len(ops))
			agg = m.Max(name+".agg", milp.Const(0), m.Sum(ops...).Minus(milp.Const(n-1)))
		}
		m.AddConstraint(milp.VarExpr(v).EQ(agg), name+".def")

	case *weakAndNode:
		agg := m.Min(name+".agg", ops...)
		m.AddConstraint(milp.VarExpr(v).EQ(agg), name+".def")

	case *orNode:
		var agg milp.Expr
		if eff == Godel {
			agg = m.Max(name+".agg", ops...)
		} else {
			agg = m.Min(name+".agg", milp.Const(1), m.Sum(ops...))
		}
		m.AddConstraint(milp.VarExpr(v).EQ(agg), name+".def")

	case *weakOrNode:
		agg := m.Max(name+".agg", ops...)
		m.AddConstraint(milp.VarExpr(v).EQ(agg), name+".def")

	case *impliesNode:
		emitImpliesConstraints(m, gap, eff, v, ops[0], ops[1], name)

	case *notNode:
		emitImpliesConstraints(m, gap, eff, v, ops[0], milp.Const(0), name)

	case *equivNode:
		if eff == Godel {
			xy := m.ContinuousVar(0, 1, name+".xy")
			emitImpliesConstraints(m, gap, eff, xy, ops[0], ops[1], name+".xy")
			yx := m.ContinuousVar(0, 1, name+".yx")
			emitImpliesConstraints(m, gap, eff, yx, ops[1], ops[0], name+".yx")
			agg := m.Min(name+".agg", milp.VarExpr(xy), milp.VarExpr(yx))
			m.AddConstraint(milp.VarExpr(v).EQ(agg), name+".def")
		} else {
			diff := m.Abs(name+".diff", ops[0].Minus(ops[1]))
			m.AddConstraint(milp.VarExpr(v).EQ(milp.Const(1).Minus(diff)), name+".def")
		}

	case *invNode:
		m.AddConstraint(milp.VarExpr(v).EQ(milp.Const(1).Minus(ops[0])), name+".def")

	case *deltaNode:
		// Delta(x) is 1 when x == 1 (the logic's top element), else 0.
		b := m.BinaryVar(name + ".ge1")
		gapExpr := milp.VarExpr(gap)
		m.AddIndicator(name+".ge1.true", b, ops[0].GE(milp.Const(1)), 1)
		m.AddIndicator(name+".ge1.false", b, ops[0].LE(milp.Const(1).Minus(gapExpr)), 0)
		m.AddConstraint(milp.VarExpr(v).EQ(milp.VarExpr(b)), name+".def")

	case *nablaNode:
		// Nabla(x) is 1 when x > 0, else 0.
		b := m.BinaryVar(name + ".gt0")
		gapExpr := milp.VarExpr(gap)
		m.AddIndicator(name+".gt0.true", b, ops[0].GE(gapExpr), 1)
		m.AddIndicator(name+".gt0.false", b, ops[0].LE(milp.Const(0)), 0)
		m.AddConstraint(milp.VarExpr(v).EQ(milp.VarExpr(b)), name+".def")

	case *coefNode:
		c, _ := CoefParam(f)
		agg := m.Min(name+".agg", milp.Const(1), ops[0].Scale(c))
		m.AddConstraint(milp.VarExpr(v).EQ(agg), name+".def")

	case *expNode:
		e, _ := ExpParam(f)
		agg := m.Max(name+".agg", milp.Const(0), milp.Const(1-e).Plus(ops[0].Scale(e)))
		m.AddConstraint(milp.VarExpr(v).EQ(agg), name+".def")

	default:
		panic(fmt.Sprintf("logic: unreachable operator variant %T", f))
	}
}

// emitImpliesConstraints adds the constraints defining v == lhs -> rhs,
// shared by Implies itself and by Not (which is exactly Implies(arg, 0)).
//
// Gödel implication is the residuum: 1 if lhs <= rhs, else rhs. It needs a
// binary indicator separating the two regimes, with the strict "lhs > rhs"
// side widened by gap the same way Interval.assertOutside does.
//
// Łukasiewicz implication is min(1, 1-lhs+rhs); when rhs is identically 0
// (Not, or an explicit Implies(_, Const(0))) this collapses to the simpler
// 1-lhs and is encoded directly rather than through Min.
func emitImpliesConstraints(m *milp.Model, gap *milp.Var, eff Logic, v *milp.Var, lhs, rhs milp.Expr, name string) {
	if eff == Godel {
		b := m.BinaryVar(name + ".le")
		gapExpr := milp.VarExpr(gap)
		m.AddIndicator(name+".le.true", b, lhs.LE(rhs), 1)
		m.AddIndicator(name+".le.false", b, lhs.GE(rhs.Plus(gapExpr)), 0)
		m.AddIndicator(name+".val.true", b, milp.VarExpr(v).EQ(milp.Const(1)), 1)
		m.AddIndicator(name+".val.false", b, milp.VarExpr(v).EQ(rhs), 0)
		return
	}

	if rhs.IsZero() {
		m.AddConstraint(milp.VarExpr(v).EQ(milp.Const(1).Minus(lhs)), name+".def")
		return
	}
	agg := m.Min(name+".agg", milp.Const(1), milp.Const(1).Minus(lhs).Plus(rhs))
	m.AddConstraint(milp.VarExpr(v).EQ(agg), name+".def")
}
