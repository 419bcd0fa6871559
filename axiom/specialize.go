// Package axiom enumerates the propositional formulae that are universally
// valid under a given t-norm logic — the candidate axiom schemata a theorem
// prover for that logic would need — by generating formulae in order of
// size and discarding any that specializes a smaller one already known to
// be valid.
package axiom

import "github.com/IBM/socratic-logic/logic"

// Specializes reports whether f is a substitution instance of a: whether
// there is an assignment from a's propositions to arbitrary formulae (and
// a's constants must match literally) that rebuilds a into f.
//
// This is pure structural unification with a single substitution mapping:
// a proposition may be bound to any formula the first time it is
// encountered, but every later occurrence of the same proposition must
// rebuild to a structurally equal formula. Unlike the monotonicity-lattice
// variant some fuzzy-logic provers use (bounding how much a substitution
// may change the truth value, not just what it rebuilds to), this is
// intentionally the simpler and sufficient relation: specialization alone
// is always sound for pruning an axiom enumeration, since a specialization
// of a valid formula is itself valid.
func Specializes(f, a logic.Formula) bool {
	mapping := map[string]logic.Formula{}
	return unify(f, a, mapping)
}

func unify(f, a logic.Formula, mapping map[string]logic.Formula) bool {
	if name, ok := logic.AsProp(a); ok {
		if bound, exists := mapping[name]; exists {
			return logic.Equal(f, bound)
		}
		mapping[name] = f
		return true
	}

	if aVal, ok := logic.AsConst(a); ok {
		fVal, ok := logic.AsConst(f)
		return ok && fVal == aVal
	}

	if logic.Variant(f) != logic.Variant(a) {
		return false
	}
	if !sameOverride(f, a) {
		return false
	}
	if !sameParams(f, a) {
		return false
	}

	fOps, aOps := logic.Operands(f), logic.Operands(a)
	if len(fOps) != len(aOps) {
		return false
	}
	for i := range aOps {
		if !unify(fOps[i], aOps[i], mapping) {
			return false
		}
	}
	return true
}

func sameOverride(f, a logic.Formula) bool {
	fo, ao := logic.LogicOverride(f), logic.LogicOverride(a)
	if fo == nil && ao == nil {
		return true
	}
	if fo == nil || ao == nil {
		return false
	}
	return *fo == *ao
}

func sameParams(f, a logic.Formula) bool {
	if fc, ok := logic.CoefParam(f); ok {
		ac, ok := logic.CoefParam(a)
		return ok && fc == ac
	}
	if fe, ok := logic.ExpParam(f); ok {
		ae, ok := logic.ExpParam(a)
		return ok && fe == ae
	}
	return true
}
