// Package milp is the solver adapter boundary described in the
// specification's external-interfaces section: a minimal mixed-integer
// linear programming surface (continuous/binary variables, linear and
// indicator constraints, objective maximization, solution values) that the
// encoder and theory driver build on without ever reaching into how the
// problem actually gets solved.
//
// The engine behind the adapter (branch_and_bound.go) is grounded on
// jjhbw/GoMILP: an LP relaxation solved with gonum's simplex implementation,
// wrapped in a branch-and-bound search over the binary variables. Indicator
// constraints, which that engine has no native support for, are lowered to
// big-M linear constraints at AddIndicator time — the same trick the
// specification explicitly sanctions when "the backend lacks them".
package milp

import "fmt"

// Kind distinguishes a continuous [lb,ub] variable from a binary one.
type Kind int

const (
	Continuous Kind = iota
	Binary
)

// Var is a decision variable of the model. Zero value is not meaningful;
// obtain one via Model.ContinuousVar / Model.BinaryVar(List).
type Var struct {
	name     string
	kind     Kind
	lb, ub   float64
	index    int
	value    float64
	hasValue bool
}

func (v *Var) Name() string { return v.name }

// SolutionValue returns the value assigned to v by the last successful
// Solve. Panics if no solution has been computed yet — mirrors the source
// adapter's solution_value, which is only ever read after a successful
// solve in this codebase.
func (v *Var) SolutionValue() float64 {
	if !v.hasValue {
		panic(fmt.Errorf("%w: variable %q", ErrNoSolution, v.name))
	}
	return v.value
}

// relation is the comparison a LinCt asserts against zero.
type relation int

const (
	LE relation = iota
	GE
	EQ
)

// Expr is a linear combination of variables plus a constant.
type Expr struct {
	coeffs   map[*Var]float64
	constant float64
}

// Const builds a constant expression.
func Const(k float64) Expr { return Expr{constant: k} }

// VarExpr lifts a single variable into an expression.
func VarExpr(v *Var) Expr { return Expr{coeffs: map[*Var]float64{v: 1}} }

func (e Expr) clone() Expr {
	c := Expr{constant: e.constant, coeffs: make(map[*Var]float64, len(e.coeffs))}
	for v, k := range e.coeffs {
		c.coeffs[v] = k
	}
	return c
}

// Plus returns e + o.
func (e Expr) Plus(o Expr) Expr {
	r := e.clone()
	r.constant += o.constant
	for v, k := range o.coeffs {
		r.coeffs[v] += k
	}
	return r
}

// Minus returns e - o.
func (e Expr) Minus(o Expr) Expr { return e.Plus(o.Scale(-1)) }

// Scale returns e * k.
func (e Expr) Scale(k float64) Expr {
	r := Expr{constant: e.constant * k, coeffs: make(map[*Var]float64, len(e.coeffs))}
	for v, c := range e.coeffs {
		r.coeffs[v] = c * k
	}
	return r
}

// IsZero reports whether e is identically the constant zero: no variable
// terms and a zero constant. Used by the encoder to detect when a
// Łukasiewicz Implies's right-hand side collapsed to 0, whether that came
// from an explicit Const(0) or from Not's synthetic Implies(arg, 0).
func (e Expr) IsZero() bool {
	if e.constant != 0 {
		return false
	}
	for _, k := range e.coeffs {
		if k != 0 {
			return false
		}
	}
	return true
}

// LinCt is a pending linear constraint: Expr compared against zero.
type LinCt struct {
	expr Expr
	rel  relation
}

// LE builds the constraint e <= o.
func (e Expr) LE(o Expr) LinCt { return LinCt{expr: e.Minus(o), rel: LE} }

// GE builds the constraint e >= o.
func (e Expr) GE(o Expr) LinCt { return LinCt{expr: e.Minus(o), rel: GE} }

// EQ builds the constraint e == o.
func (e Expr) EQ(o Expr) LinCt { return LinCt{expr: e.Minus(o), rel: EQ} }

// Constraint is the named, stored form of a LinCt.
type Constraint struct {
	name string
	ct   LinCt
}

func (c *Constraint) Name() string { return c.name }

// Model is a fresh MILP instance, owned by exactly one entails/satisfiable
// call; model population is not safe to share across overlapping calls.
type Model struct {
	vars        []*Var
	varByName   map[string]*Var
	constraints []*Constraint
	ctByName    map[string]*Constraint
	objective   Expr
	maximize    bool

	// bigM bounds every indicator-constraint lowering. The domain here
	// keeps every variable within [0,1], so differences that indicator
	// constraints gate on never exceed 1; a default of 4 gives comfortable
	// slack without harming numerical conditioning.
	bigM float64

	solved   bool
	feasible bool
}

// NewModel creates an empty model. opts configure solver-wide knobs (the
// big-M bound used to linearize indicator constraints).
func NewModel(opts ...ModelOption) *Model {
	m := &Model{
		varByName: make(map[string]*Var),
		ctByName:  make(map[string]*Constraint),
		bigM:      4,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ModelOption configures a Model at construction time.
type ModelOption func(*Model)

// WithBigM overrides the big-M bound used when lowering indicator
// constraints to linear ones. Must exceed the largest feasible gap between
// the two sides of any indicator-gated inequality.
func WithBigM(m float64) ModelOption {
	return func(model *Model) { model.bigM = m }
}

// ContinuousVar returns the continuous [lb,ub] variable named name,
// creating it on first reference. Repeated calls with the same name are
// idempotent by design — this is how the encoder memoizes one model
// variable per canonical formula name.
func (m *Model) ContinuousVar(lb, ub float64, name string) *Var {
	if v, ok := m.varByName[name]; ok {
		if v.kind != Continuous {
			panic(fmt.Errorf("%w: %q is binary, not continuous", ErrKindMismatch, name))
		}
		return v
	}
	v := &Var{name: name, kind: Continuous, lb: lb, ub: ub, index: len(m.vars)}
	m.vars = append(m.vars, v)
	m.varByName[name] = v
	return v
}

// BinaryVar returns the {0,1} variable named name, creating it on first
// reference.
func (m *Model) BinaryVar(name string) *Var {
	if v, ok := m.varByName[name]; ok {
		if v.kind != Binary {
			panic(fmt.Errorf("%w: %q is continuous, not binary", ErrKindMismatch, name))
		}
		return v
	}
	v := &Var{name: name, kind: Binary, lb: 0, ub: 1, index: len(m.vars)}
	m.vars = append(m.vars, v)
	m.varByName[name] = v
	return v
}

// BinaryVarList creates (or retrieves) n binary variables named
// fmt.Sprintf("%s[%d]", namePrefix, i).
func (m *Model) BinaryVarList(n int, namePrefix string) []*Var {
	vs := make([]*Var, n)
	for i := range vs {
		vs[i] = m.BinaryVar(fmt.Sprintf("%s[%d]", namePrefix, i))
	}
	return vs
}

// GetVarByName retrieves a previously created variable.
func (m *Model) GetVarByName(name string) (*Var, bool) {
	v, ok := m.varByName[name]
	return v, ok
}

// GetConstraintByName retrieves a previously added constraint.
func (m *Model) GetConstraintByName(name string) (*Constraint, bool) {
	c, ok := m.ctByName[name]
	return c, ok
}

// AddConstraint adds ct under name. Adding two constraints under the same
// name is a programmer fault (the encoder avoids it by checking
// GetVarByName for a node's canonical name first) and panics rather than
// silently overwriting.
func (m *Model) AddConstraint(ct LinCt, name string) *Constraint {
	if _, exists := m.ctByName[name]; exists {
		panic(fmt.Errorf("milp: duplicate constraint name %q", name))
	}
	c := &Constraint{name: name, ct: ct}
	m.constraints = append(m.constraints, c)
	m.ctByName[name] = c
	return c
}

// AddIndicator enforces ct only when b takes the value activeWhen (1 if
// omitted, matching the source adapter's default). It is lowered
// immediately to an unconditional big-M linear constraint, since the
// branch-and-bound engine behind this model has no native indicator
// support.
func (m *Model) AddIndicator(name string, b *Var, ct LinCt, activeWhen ...int) *Constraint {
	when := 1
	if len(activeWhen) > 0 {
		when = activeWhen[0]
	}
	if when != 0 && when != 1 {
		panic(fmt.Errorf("milp: activeWhen must be 0 or 1, got %d", when))
	}

	// gate is 0 when the indicator is active, bigM otherwise: it is added
	// to the slack side of the inequality so the constraint is relaxed
	// away whenever b does not equal `when`.
	var gate Expr
	if when == 1 {
		gate = Const(m.bigM).Minus(VarExpr(b).Scale(m.bigM))
	} else {
		gate = VarExpr(b).Scale(m.bigM)
	}

	switch ct.rel {
	case LE:
		return m.AddConstraint(ct.expr.LE(gate), name)
	case GE:
		return m.AddConstraint(ct.expr.GE(gate.Scale(-1)), name)
	case EQ:
		m.AddConstraint(ct.expr.LE(gate), name+".le")
		return m.AddConstraint(ct.expr.GE(gate.Scale(-1)), name+".ge")
	default:
		panic("milp: unreachable relation variant")
	}
}

// Sum returns the sum of terms as a single expression; it never needs an
// auxiliary variable.
func (m *Model) Sum(terms ...Expr) Expr {
	r := Const(0)
	for _, t := range terms {
		r = r.Plus(t)
	}
	return r
}

// Min returns an expression equal to the minimum of terms, introducing an
// auxiliary variable and selector binaries named from name. Idempotent: a
// second call with the same name returns the existing auxiliary variable
// without re-adding constraints.
func (m *Model) Min(name string, terms ...Expr) Expr {
	return m.extremum(name, terms, true)
}

// Max returns an expression equal to the maximum of terms. See Min.
func (m *Model) Max(name string, terms ...Expr) Expr {
	return m.extremum(name, terms, false)
}

func (m *Model) extremum(name string, terms []Expr, isMin bool) Expr {
	auxName := name + ".val"
	if v, ok := m.varByName[auxName]; ok {
		return VarExpr(v)
	}
	aux := m.ContinuousVar(0, 1, auxName)
	sel := m.BinaryVarList(len(terms), name+".sel")
	sum := m.Sum(varsToExprs(sel)...)
	m.AddConstraint(sum.EQ(Const(1)), name+".sel.sum")

	for i, t := range terms {
		if isMin {
			m.AddConstraint(VarExpr(aux).LE(t), fmt.Sprintf("%s.le[%d]", name, i))
			m.AddIndicator(fmt.Sprintf("%s.tight[%d]", name, i), sel[i], VarExpr(aux).GE(t))
		} else {
			m.AddConstraint(VarExpr(aux).GE(t), fmt.Sprintf("%s.ge[%d]", name, i))
			m.AddIndicator(fmt.Sprintf("%s.tight[%d]", name, i), sel[i], VarExpr(aux).LE(t))
		}
	}
	return VarExpr(aux)
}

// Abs returns an expression equal to |e|, introducing an auxiliary
// variable and a selector binary named from name.
func (m *Model) Abs(name string, e Expr) Expr {
	auxName := name + ".val"
	if v, ok := m.varByName[auxName]; ok {
		return VarExpr(v)
	}
	aux := m.ContinuousVar(0, 1, auxName)
	m.AddConstraint(VarExpr(aux).GE(e), name+".ge.pos")
	m.AddConstraint(VarExpr(aux).GE(e.Scale(-1)), name+".ge.neg")

	sel := m.BinaryVar(name + ".sel")
	m.AddIndicator(name+".tight.pos", sel, VarExpr(aux).LE(e), 1)
	m.AddIndicator(name+".tight.neg", sel, VarExpr(aux).LE(e.Scale(-1)), 0)
	return VarExpr(aux)
}

// NumVars returns the number of decision variables declared so far.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of linear constraints declared so far
// (indicator constraints count as the one or two linear constraints they
// were lowered to).
func (m *Model) NumConstraints() int { return len(m.constraints) }

func varsToExprs(vs []*Var) []Expr {
	es := make([]Expr, len(vs))
	for i, v := range vs {
		es[i] = VarExpr(v)
	}
	return es
}

// Maximize sets the objective to maximize expr. Only one objective is kept;
// the theory driver calls this exactly once per model, with the gap
// variable.
func (m *Model) Maximize(expr Expr) {
	m.maximize = true
	m.objective = expr
}
