package logic

import (
	"fmt"

	"github.com/IBM/socratic-logic/internal/milp"
)

// SimpleSentence asserts that a formula's truth value lies in the union of
// one or more intervals. A single interval is the common case; more than
// one lets a sentence assert membership in a disconnected set (e.g. "below
// 0.2 or above 0.8").
type SimpleSentence struct {
	formula   Formula
	intervals []Interval
}

// NewSimpleSentence asserts f's truth value lies in the union of intervals.
// At least one interval is required.
func NewSimpleSentence(f Formula, intervals ...Interval) (*SimpleSentence, error) {
	if len(intervals) == 0 {
		return nil, ErrEmptyIntervalUnion
	}
	return &SimpleSentence{formula: f, intervals: intervals}, nil
}

// TrueSentence asserts f is fully true: its value lies in Point(1).
func TrueSentence(f Formula) *SimpleSentence {
	s, err := NewSimpleSentence(f, MustPoint(1))
	if err != nil {
		panic(err) // unreachable: one interval is always supplied
	}
	return s
}

func (s *SimpleSentence) Formula() Formula { return s.formula }

// configure adds the positive encoding of s to m: a binary selector per
// interval summing to exactly 1, and for whichever interval is selected,
// the formula's value must lie inside it.
func (s *SimpleSentence) configure(m *milp.Model, gap *milp.Var, l Logic, idx int) (milp.Expr, error) {
	v, err := configureFormula(s.formula, m, gap, l, map[Formula]bool{})
	if err != nil {
		return milp.Expr{}, err
	}

	name := fmt.Sprintf("sentence[%d]", idx)
	if len(s.intervals) == 1 {
		active := m.BinaryVar(name + ".active")
		m.AddConstraint(milp.VarExpr(active).EQ(milp.Const(1)), name+".forced")
		s.intervals[0].assertInside(m, gap, name, v, active)
		return v, nil
	}

	sel := m.BinaryVarList(len(s.intervals), name+".sel")
	sum := m.Sum(varExprs(sel)...)
	m.AddConstraint(sum.EQ(milp.Const(1)), name+".sel.sum")
	for i, iv := range s.intervals {
		iv.assertInside(m, gap, fmt.Sprintf("%s[%d]", name, i), v, sel[i])
	}
	return v, nil
}

// complement adds the negative encoding of s to m: s's truth value must lie
// outside every one of its intervals simultaneously. Unlike configure, no
// selector needs to sum to 1 — every interval's "outside" constraints must
// hold at once, each via its own pair of gated half-constraints.
func (s *SimpleSentence) complement(m *milp.Model, gap *milp.Var, l Logic, idx int) (milp.Expr, error) {
	v, err := configureFormula(s.formula, m, gap, l, map[Formula]bool{})
	if err != nil {
		return milp.Expr{}, err
	}

	name := fmt.Sprintf("query[%d]", idx)
	for i, iv := range s.intervals {
		ivName := fmt.Sprintf("%s[%d]", name, i)
		active := m.BinaryVar(ivName + ".side")
		iv.assertOutside(m, gap, ivName, v, active)
	}
	return v, nil
}

func varExprs(vs []*milp.Var) []milp.Expr {
	es := make([]milp.Expr, len(vs))
	for i, v := range vs {
		es[i] = milp.VarExpr(v)
	}
	return es
}
