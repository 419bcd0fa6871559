package logic

import "github.com/IBM/socratic-logic/internal/milp"

// DefaultEpsilon is the tolerance below which a maximized gap is treated as
// zero — the MILP solver works in floating point, so entailment is decided
// by gap > epsilon rather than gap > 0.
const DefaultEpsilon = 1e-8

const defaultBigM = 4

// driverConfig holds the Entails/Satisfiable knobs set via DriverOption.
type driverConfig struct {
	epsilon float64
	bigM    float64
}

// DriverOption configures a single Entails, EntailsWithStats, or
// Satisfiable call.
type DriverOption func(*driverConfig)

// WithEpsilon overrides the tolerance used to decide whether a maximized
// gap counts as strictly positive.
func WithEpsilon(eps float64) DriverOption {
	return func(c *driverConfig) { c.epsilon = eps }
}

// WithBigM overrides the big-M bound used when the underlying model lowers
// indicator constraints to linear ones.
func WithBigM(bigM float64) DriverOption {
	return func(c *driverConfig) { c.bigM = bigM }
}

// Stats reports the size of the model built for a single Entails call,
// useful for diagnosing why a particular theory is slow to decide.
type Stats struct {
	Premises    int
	Variables   int
	Constraints int
	Gap         float64
}

// Theory is a finite set of premise sentences, each configured under the
// same ambient logic when a query is put to it.
type Theory struct {
	sentences []*SimpleSentence
}

// NewTheory builds a theory from the given premises.
func NewTheory(sentences ...*SimpleSentence) *Theory {
	return &Theory{sentences: append([]*SimpleSentence(nil), sentences...)}
}

// Entails reports whether the theory entails query under logic l: whether
// every model satisfying every premise also satisfies query. It works by
// maximizing a shared "gap" variable while the premises are configured
// positively and query is configured negatively (its complement); if no
// assignment can force the complement open by more than epsilon, query is
// entailed.
//
// A nil query asks whether the theory is unsatisfiable.
func (t *Theory) Entails(query *SimpleSentence, l Logic, opts ...DriverOption) (bool, error) {
	ok, _, err := t.entailsWithStats(query, l, opts...)
	return ok, err
}

// EntailsWithStats is Entails plus the resulting model's size and the
// maximized gap value, for diagnostics.
func (t *Theory) EntailsWithStats(query *SimpleSentence, l Logic, opts ...DriverOption) (bool, Stats, error) {
	return t.entailsWithStats(query, l, opts...)
}

func (t *Theory) entailsWithStats(query *SimpleSentence, l Logic, opts ...DriverOption) (bool, Stats, error) {
	cfg := driverConfig{epsilon: DefaultEpsilon, bigM: defaultBigM}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := milp.NewModel(milp.WithBigM(cfg.bigM))
	gap := m.ContinuousVar(0, 1, "gap")

	for i, s := range t.sentences {
		if _, err := s.configure(m, gap, l, i); err != nil {
			return false, Stats{}, err
		}
	}
	if query != nil {
		if _, err := query.complement(m, gap, l, 0); err != nil {
			return false, Stats{}, err
		}
	}
	m.Maximize(milp.VarExpr(gap))

	solved, err := m.Solve()
	if err != nil {
		return false, Stats{}, err
	}

	stats := Stats{
		Premises:    len(t.sentences),
		Variables:   m.NumVars(),
		Constraints: m.NumConstraints(),
	}
	gapVal := 0.0
	if solved {
		gapVal = gap.SolutionValue()
	}
	stats.Gap = gapVal
	return !(solved && gapVal > cfg.epsilon), stats, nil
}

// Satisfiable reports whether some assignment of truth values to
// propositions satisfies every premise of the theory under logic l. Unlike
// Entails, no query complement is configured, but the same gap > epsilon
// test applies: an open-interval premise (e.g. GreaterThan/LessThan) only
// admits a genuine witness when the solver can force its strict side open
// by more than epsilon. A premise set whose only feasible point pins every
// open bound's gap to exactly 0 — the two-sided open-interval squeeze
// classic of S3 "excluded middle boundary" — reports solved=true but must
// still be treated as unsatisfiable, by duality with Entails(nil, l).
func (t *Theory) Satisfiable(l Logic, opts ...DriverOption) (bool, error) {
	cfg := driverConfig{epsilon: DefaultEpsilon, bigM: defaultBigM}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := milp.NewModel(milp.WithBigM(cfg.bigM))
	gap := m.ContinuousVar(0, 1, "gap")

	for i, s := range t.sentences {
		if _, err := s.configure(m, gap, l, i); err != nil {
			return false, err
		}
	}
	m.Maximize(milp.VarExpr(gap))

	solved, err := m.Solve()
	if err != nil {
		return false, err
	}
	gapVal := 0.0
	if solved {
		gapVal = gap.SolutionValue()
	}
	return solved && gapVal > cfg.epsilon, nil
}
