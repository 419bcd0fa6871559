package logic

import (
	"fmt"
	"math"

	"github.com/IBM/socratic-logic/internal/milp"
)

// Interval is a closed, open, or half-open sub-interval of [0,1].
type Interval struct {
	lower, upper         float64
	lowerOpen, upperOpen bool
}

func validateBounds(lower, upper float64) error {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return fmt.Errorf("%w: NaN bound", ErrBoundOutOfRange)
	}
	if lower < 0 || lower > 1 || upper < 0 || upper > 1 {
		return fmt.Errorf("%w: [%v,%v]", ErrBoundOutOfRange, lower, upper)
	}
	if lower > upper {
		return fmt.Errorf("%w: lower=%v upper=%v", ErrLowerExceedsUpper, lower, upper)
	}
	return nil
}

// Closed constructs [lower,upper].
func Closed(lower, upper float64) (Interval, error) {
	if err := validateBounds(lower, upper); err != nil {
		return Interval{}, err
	}
	return Interval{lower: lower, upper: upper}, nil
}

// Open constructs (lower,upper).
func Open(lower, upper float64) (Interval, error) {
	if err := validateBounds(lower, upper); err != nil {
		return Interval{}, err
	}
	return Interval{lower: lower, upper: upper, lowerOpen: true, upperOpen: true}, nil
}

// OpenLower constructs (lower,upper].
func OpenLower(lower, upper float64) (Interval, error) {
	if err := validateBounds(lower, upper); err != nil {
		return Interval{}, err
	}
	return Interval{lower: lower, upper: upper, lowerOpen: true}, nil
}

// OpenUpper constructs [lower,upper).
func OpenUpper(lower, upper float64) (Interval, error) {
	if err := validateBounds(lower, upper); err != nil {
		return Interval{}, err
	}
	return Interval{lower: lower, upper: upper, upperOpen: true}, nil
}

// Point constructs the single-value interval Closed(p,p).
func Point(p float64) (Interval, error) { return Closed(p, p) }

// AtLeast constructs Closed(lower,1).
func AtLeast(lower float64) (Interval, error) { return Closed(lower, 1) }

// AtMost constructs Closed(0,upper).
func AtMost(upper float64) (Interval, error) { return Closed(0, upper) }

// GreaterThan constructs OpenLower(lower,1].
func GreaterThan(lower float64) (Interval, error) { return OpenLower(lower, 1) }

// LessThan constructs OpenUpper[0,upper).
func LessThan(upper float64) (Interval, error) { return OpenUpper(0, upper) }

// must panics on error; used by the Must* family for literal intervals
// where the bounds are known-good at compile time (tests, demos).
func must(iv Interval, err error) Interval {
	if err != nil {
		panic(err)
	}
	return iv
}

func MustClosed(lower, upper float64) Interval      { return must(Closed(lower, upper)) }
func MustOpen(lower, upper float64) Interval        { return must(Open(lower, upper)) }
func MustOpenLower(lower, upper float64) Interval   { return must(OpenLower(lower, upper)) }
func MustOpenUpper(lower, upper float64) Interval   { return must(OpenUpper(lower, upper)) }
func MustPoint(p float64) Interval                  { return must(Point(p)) }
func MustAtLeast(lower float64) Interval            { return must(AtLeast(lower)) }
func MustAtMost(upper float64) Interval             { return must(AtMost(upper)) }
func MustGreaterThan(lower float64) Interval        { return must(GreaterThan(lower)) }
func MustLessThan(upper float64) Interval           { return must(LessThan(upper)) }

// assertInside adds the indicator constraints "if active=1 then v lies in
// this interval" to m, named from name. Open sides are widened inward by
// gap to turn the strict inequality into a separation the solver can
// certify numerically.
func (iv Interval) assertInside(m *milp.Model, gap *milp.Var, name string, v milp.Expr, active *milp.Var) {
	gapExpr := milp.VarExpr(gap)

	lowerBound := milp.Const(iv.lower)
	if iv.lowerOpen {
		lowerBound = lowerBound.Plus(gapExpr)
	}
	m.AddIndicator(name+".ge", active, v.GE(lowerBound))

	upperBound := milp.Const(iv.upper)
	if iv.upperOpen {
		upperBound = upperBound.Minus(gapExpr)
	}
	m.AddIndicator(name+".le", active, v.LE(upperBound))
}

// assertOutside adds the indicator constraints selecting which side of the
// interval v escapes on: active=1 forces v below the interval, active=0
// forces it above. A side that is itself open in the interval needs no gap
// widening to exit it; a closed side does.
func (iv Interval) assertOutside(m *milp.Model, gap *milp.Var, name string, v milp.Expr, active *milp.Var) {
	gapExpr := milp.VarExpr(gap)

	lowerBound := milp.Const(iv.lower)
	if !iv.lowerOpen {
		lowerBound = lowerBound.Minus(gapExpr)
	}
	m.AddIndicator(name+".below", active, v.LE(lowerBound), 1)

	upperBound := milp.Const(iv.upper)
	if !iv.upperOpen {
		upperBound = upperBound.Plus(gapExpr)
	}
	m.AddIndicator(name+".above", active, v.GE(upperBound), 0)
}
