package logic_test

import (
	"testing"

	. "github.com/IBM/socratic-logic/logic"
	"github.com/stretchr/testify/require"
)

func TestUniversalLawIdentity(t *testing.T) {
	phi := Prop("phi")
	for _, l := range []Logic{Godel, Lukasiewicz} {
		ok, err := NewTheory().Entails(TrueSentence(Implies(phi, phi)), l)
		require.NoError(t, err)
		require.True(t, ok, "Implies(phi,phi) under %s", l)
	}
}

func TestUniversalLawAndProjection(t *testing.T) {
	phi, psi := Prop("phi"), Prop("psi")
	for _, l := range []Logic{Godel, Lukasiewicz} {
		ok, err := NewTheory().Entails(TrueSentence(Implies(And(phi, psi), phi)), l)
		require.NoError(t, err)
		require.True(t, ok, "Implies(And(phi,psi),phi) under %s", l)
	}
}

func TestDeMorganLukasiewiczOnlyUnderOr(t *testing.T) {
	phi, psi := Prop("phi"), Prop("psi")
	deMorgan := Equiv(Not(Or(phi, psi)), And(Not(phi), Not(psi)))

	ok, err := NewTheory().Entails(TrueSentence(deMorgan), Lukasiewicz)
	require.NoError(t, err)
	require.True(t, ok, "De Morgan should hold under Lukasiewicz")

	ok, err = NewTheory().Entails(TrueSentence(deMorgan), Godel)
	require.NoError(t, err)
	require.False(t, ok, "De Morgan over strong Or/And should not hold under Godel")
}

func TestExcludedMiddleLukasiewiczOnly(t *testing.T) {
	phi := Prop("phi")
	ok, err := NewTheory().Entails(TrueSentence(Or(phi, Not(phi))), Lukasiewicz)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGodelContractionNotLukasiewicz(t *testing.T) {
	phi := Prop("phi")
	contraction := Implies(phi, And(phi, phi))

	ok, err := NewTheory().Entails(TrueSentence(contraction), Godel)
	require.NoError(t, err)
	require.True(t, ok, "contraction should hold under Godel")

	ok, err = NewTheory().Entails(TrueSentence(contraction), Lukasiewicz)
	require.NoError(t, err)
	require.False(t, ok, "contraction should fail under Lukasiewicz")
}

func TestSatisfiableEntailsDuality(t *testing.T) {
	phi, psi := Prop("phi"), Prop("psi")
	theory := NewTheory(TrueSentence(Or(phi, psi)))

	sat, err := theory.Satisfiable(Lukasiewicz)
	require.NoError(t, err)

	unsat, err := theory.Entails(nil, Lukasiewicz)
	require.NoError(t, err)

	require.Equal(t, sat, !unsat)
}

// TestOpenIntervalSqueezeIsUnsatisfiable is the minimal counter-example for
// Satisfiable: x > 0.5 and x < 0.5 together pin assertInside's only
// feasible point to x=0.5 with gap=0. The model solves (solved=true), but
// gap=0 is not a genuine (gap>epsilon) witness, so the theory must still
// report unsatisfiable.
func TestOpenIntervalSqueezeIsUnsatisfiable(t *testing.T) {
	x := Prop("x")
	greater, err := NewSimpleSentence(x, MustGreaterThan(0.5))
	require.NoError(t, err)
	less, err := NewSimpleSentence(x, MustLessThan(0.5))
	require.NoError(t, err)

	sat, err := NewTheory(greater, less).Satisfiable(Lukasiewicz)
	require.NoError(t, err)
	require.False(t, sat, "x>0.5 and x<0.5 together admit no genuine witness")
}

// TestExcludedMiddleBoundaryScenario is specification scenario S3: the same
// eight sign-combination clauses as S2 over three propositions, but with
// each proposition additionally excluded from the middle band
// (1/3, 2/3) — excluded from it, rather, by being restricted to
// (0,1/3) ∪ (2/3,1). S2 alone is satisfiable under Lukasiewicz (every
// proposition at 0.5); closing off that middle ground removes the
// Lukasiewicz escape route the classical/Godel contradiction otherwise has
// no other way around, so the theory becomes unsatisfiable under
// Lukasiewicz too once k >= 3.
func TestExcludedMiddleBoundaryScenario(t *testing.T) {
	const k = 3
	props := []Formula{Prop("a0"), Prop("a1"), Prop("a2")}

	literal := func(i int, negate bool) Formula {
		if negate {
			return Not(props[i])
		}
		return props[i]
	}

	var sentences []*SimpleSentence
	for mask := 0; mask < 1<<k; mask++ {
		lits := make([]Formula, k)
		for i := 0; i < k; i++ {
			lits[i] = literal(i, mask&(1<<i) != 0)
		}
		sentences = append(sentences, TrueSentence(Or(lits...)))
	}

	low, err := Open(0, 1.0/float64(k))
	require.NoError(t, err)
	high, err := Open(float64(k-1)/float64(k), 1)
	require.NoError(t, err)

	for _, p := range props {
		s, err := NewSimpleSentence(p, low, high)
		require.NoError(t, err)
		sentences = append(sentences, s)
	}

	sat, err := NewTheory(sentences...).Satisfiable(Lukasiewicz)
	require.NoError(t, err)
	require.False(t, sat, "excluded-middle boundary theory should be unsatisfiable under Lukasiewicz for k=3")
}

func TestAddingSentenceNeverRegainsSatisfiability(t *testing.T) {
	phi := Prop("phi")
	contradiction, err := NewSimpleSentence(And(phi, Not(phi)), MustPoint(1))
	require.NoError(t, err)

	theory := NewTheory(contradiction)
	sat, err := theory.Satisfiable(Lukasiewicz)
	require.NoError(t, err)
	require.False(t, sat)

	theory2 := NewTheory(contradiction, TrueSentence(Prop("psi")))
	sat2, err := theory2.Satisfiable(Lukasiewicz)
	require.NoError(t, err)
	require.False(t, sat2)
}

// TestCatScenario is specification scenario S1.
func TestCatScenario(t *testing.T) {
	whiskers, tail, cat, dog, pet := Prop("whiskers"), Prop("tail"), Prop("cat"), Prop("dog"), Prop("pet")

	premise1, err := NewSimpleSentence(
		Implies(And(whiskers, tail), cat),
		MustClosed(0.75, 1),
	)
	require.NoError(t, err)

	premise2, err := NewSimpleSentence(
		Override(Implies(Or(cat, dog), pet), Godel),
		MustClosed(0.75, 1),
	)
	require.NoError(t, err)

	theory := NewTheory(premise1, premise2)

	query, err := NewSimpleSentence(
		Implies(And(whiskers, Not(pet)), Not(tail)),
		MustClosed(0.5, 1),
	)
	require.NoError(t, err)

	ok, err := theory.Entails(query, Lukasiewicz)
	require.NoError(t, err)
	require.True(t, ok)
}

// TestThreeSATScenario is specification scenario S2.
func TestThreeSATScenario(t *testing.T) {
	x, y, z := Prop("x"), Prop("y"), Prop("z")
	nx, ny, nz := Not(x), Not(y), Not(z)

	clauses := []Formula{
		Or(x, y, z), Or(x, y, nz), Or(x, ny, z), Or(x, ny, nz),
		Or(nx, y, z), Or(nx, y, nz), Or(nx, ny, z), Or(nx, ny, nz),
	}

	var sentences []*SimpleSentence
	for _, c := range clauses {
		sentences = append(sentences, TrueSentence(c))
	}
	theory := NewTheory(sentences...)

	godelSat, err := theory.Satisfiable(Godel)
	require.NoError(t, err)
	require.False(t, godelSat, "all eight clauses together should be unsatisfiable under Godel")

	lukSat, err := theory.Satisfiable(Lukasiewicz)
	require.NoError(t, err)
	require.True(t, lukSat, "all eight clauses together should be satisfiable under Lukasiewicz")

	// Removing any one clause should restore Godel satisfiability.
	for i := range sentences {
		without := append(append([]*SimpleSentence{}, sentences[:i]...), sentences[i+1:]...)
		ok, err := NewTheory(without...).Satisfiable(Godel)
		require.NoError(t, err)
		require.True(t, ok, "dropping clause %d should be satisfiable under Godel", i)
	}
}

// TestBooleanSentenceScenario is specification scenario S4.
func TestBooleanSentenceScenario(t *testing.T) {
	a, b := Prop("a"), Prop("b")
	boolA, err := NewSimpleSentence(a, MustPoint(0), MustPoint(1))
	require.NoError(t, err)
	boolB, err := NewSimpleSentence(b, MustPoint(0), MustPoint(1))
	require.NoError(t, err)

	theory := NewTheory(boolA, boolB)
	formula := Implies(Implies(a, b), Implies(Implies(Not(a), b), b))

	for _, l := range []Logic{Godel, Lukasiewicz} {
		ok, err := theory.Entails(TrueSentence(formula), l)
		require.NoError(t, err)
		require.True(t, ok, "boolean sentence under %s", l)
	}

	ok, err := NewTheory().Entails(TrueSentence(formula), Lukasiewicz)
	require.NoError(t, err)
	require.False(t, ok, "the empty theory should not entail the boolean-only formula")
}
