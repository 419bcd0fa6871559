package milp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// tolerance for deciding whether a relaxed binary value is "integral
// enough" during branch-and-bound. The simplex solve itself uses 1e-10.
const defaultTol = 1e-7

// denseRow is a linear constraint over the model's variables in their
// declaration order, with the constant folded into rhs: sum(coef[i]*x[i])
// rel rhs.
type denseRow struct {
	coef []float64
	rel  relation
	rhs  float64
}

// Solve runs branch-and-bound over the model's binary variables, relaxing
// every node's LP with gonum's simplex. It returns whether an
// integer-feasible point satisfying the objective was found; on success,
// every variable's SolutionValue reflects the incumbent.
func (m *Model) Solve() (bool, error) {
	n := len(m.vars)
	lb := make([]float64, n)
	ub := make([]float64, n)
	var binaryIdx []int
	for i, v := range m.vars {
		lb[i], ub[i] = v.lb, v.ub
		if v.kind == Binary {
			binaryIdx = append(binaryIdx, i)
		}
	}

	rows := make([]denseRow, len(m.constraints))
	for i, c := range m.constraints {
		coef := make([]float64, n)
		for v, k := range c.ct.expr.coeffs {
			coef[v.index] = k
		}
		rows[i] = denseRow{coef: coef, rel: c.ct.rel, rhs: -c.ct.expr.constant}
	}

	c := make([]float64, n)
	for v, k := range m.objective.coeffs {
		if m.maximize {
			c[v.index] = -k
		} else {
			c[v.index] = k
		}
	}

	s := &bnbSearch{rows: rows, c: c, binaryIdx: binaryIdx, tol: defaultTol}
	s.search(lb, ub)
	if s.err != nil {
		return false, s.err
	}
	m.solved = true
	if !s.haveBest {
		m.feasible = false
		return false, nil
	}

	m.feasible = true
	for i, v := range m.vars {
		v.value = s.bestX[i]
		v.hasValue = true
	}
	return true, nil
}

type bnbSearch struct {
	rows      []denseRow
	c         []float64
	binaryIdx []int
	tol       float64

	haveBest bool
	bestObj  float64
	bestX    []float64
	err      error
}

func (s *bnbSearch) search(lb, ub []float64) {
	if s.err != nil {
		return
	}

	x, obj, feasible, err := solveRelaxation(lb, ub, s.rows, s.c)
	if err != nil {
		s.err = err
		return
	}
	if !feasible {
		return
	}
	// Bounding: since we always minimize internally, a relaxation that
	// cannot beat the incumbent can be pruned without exploring further.
	if s.haveBest && obj >= s.bestObj-1e-9 {
		return
	}

	branchVar := -1
	bestFrac := 0.0
	for _, bi := range s.binaryIdx {
		d := math.Min(x[bi], 1-x[bi])
		if d > s.tol && d > bestFrac {
			bestFrac = d
			branchVar = bi
		}
	}

	if branchVar == -1 {
		incumbent := append([]float64(nil), x...)
		for _, bi := range s.binaryIdx {
			if incumbent[bi] > 0.5 {
				incumbent[bi] = 1
			} else {
				incumbent[bi] = 0
			}
		}
		s.haveBest = true
		s.bestObj = obj
		s.bestX = incumbent
		return
	}

	lb0, ub0 := cloneBounds(lb, ub)
	ub0[branchVar] = 0
	s.search(lb0, ub0)

	lb1, ub1 := cloneBounds(lb, ub)
	lb1[branchVar] = 1
	s.search(lb1, ub1)
}

func cloneBounds(lb, ub []float64) ([]float64, []float64) {
	l := append([]float64(nil), lb...)
	u := append([]float64(nil), ub...)
	return l, u
}

// solveRelaxation solves the LP relaxation min c^T x s.t. rows, lb <= x <=
// ub by shifting every variable to a nonnegative y = x - lb, adding slacks
// to turn inequalities into equalities, and handing the result to gonum's
// simplex.
func solveRelaxation(lb, ub []float64, rows []denseRow, c []float64) (x []float64, obj float64, feasible bool, err error) {
	n := len(lb)
	width := make([]float64, n)
	for i := range lb {
		if ub[i] < lb[i]-1e-9 {
			return nil, 0, false, nil
		}
		width[i] = math.Max(0, ub[i]-lb[i])
	}

	type arow struct {
		coef []float64
		rhs  float64
		eq   bool
	}
	arows := make([]arow, 0, n+len(rows))
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		row[i] = 1
		arows = append(arows, arow{coef: row, rhs: width[i]})
	}
	for _, r := range rows {
		adjRhs := r.rhs
		for i, a := range r.coef {
			adjRhs -= a * lb[i]
		}
		switch r.rel {
		case LE:
			arows = append(arows, arow{coef: r.coef, rhs: adjRhs})
		case GE:
			neg := make([]float64, n)
			for i, a := range r.coef {
				neg[i] = -a
			}
			arows = append(arows, arow{coef: neg, rhs: -adjRhs})
		case EQ:
			arows = append(arows, arow{coef: r.coef, rhs: adjRhs, eq: true})
		}
	}

	numSlack := 0
	for _, row := range arows {
		if !row.eq {
			numSlack++
		}
	}
	totalCols := n + numSlack

	a := mat.NewDense(len(arows), totalCols, nil)
	b := make([]float64, len(arows))
	slackCol := n
	for ri, row := range arows {
		for ci, v := range row.coef {
			if v != 0 {
				a.Set(ri, ci, v)
			}
		}
		if !row.eq {
			a.Set(ri, slackCol, 1)
			slackCol++
		}
		b[ri] = row.rhs
	}

	cFull := make([]float64, totalCols)
	copy(cFull, c)

	optF, yFull, _, serr := lp.Simplex(cFull, a, b, 1e-10, nil)
	if serr != nil {
		if errors.Is(serr, lp.ErrInfeasible) {
			return nil, 0, false, nil
		}
		return nil, 0, false, fmt.Errorf("milp: lp relaxation failed: %w", serr)
	}

	x = make([]float64, n)
	constObj := 0.0
	for i := 0; i < n; i++ {
		x[i] = yFull[i] + lb[i]
		constObj += c[i] * lb[i]
	}
	return x, optF + constObj, true, nil
}
