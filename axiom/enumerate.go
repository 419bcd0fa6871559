package axiom

import (
	"fmt"

	"github.com/IBM/socratic-logic/logic"
)

// allPerms returns every injective renaming of a formula with rhsDegree
// distinct propositions (named p0..p(rhsDegree-1)) into the shared
// namespace of a combination whose left-hand side already uses lhsDegree
// propositions: each rhs index may either be identified with one of the
// lhsDegree propositions already in scope, or introduce a fresh one. Fresh
// indices are only ever introduced in increasing order, which is what
// keeps two formulae that differ only in which numbers their propositions
// happen to carry from being enumerated as if they were distinct.
func allPerms(rhsDegree, lhsDegree int) [][]int {
	if rhsDegree == 0 {
		return [][]int{{}}
	}
	var results [][]int
	mapping := make([]int, rhsDegree)
	used := make([]bool, lhsDegree)
	var rec func(i, nextFresh int)
	rec = func(i, nextFresh int) {
		if i == rhsDegree {
			results = append(results, append([]int(nil), mapping...))
			return
		}
		for reuse := 0; reuse < lhsDegree; reuse++ {
			if used[reuse] {
				continue
			}
			used[reuse] = true
			mapping[i] = reuse
			rec(i+1, nextFresh)
			used[reuse] = false
		}
		mapping[i] = nextFresh
		rec(i+1, nextFresh+1)
	}
	rec(0, lhsDegree)
	return results
}

// renameProps rebuilds f with every Prop "p<i>" replaced by "p<mapping[i]>".
func renameProps(f logic.Formula, mapping []int) logic.Formula {
	if name, ok := logic.AsProp(f); ok {
		return logic.Prop(fmt.Sprintf("p%d", mapping[logic.PropIndex(name)]))
	}
	ops := logic.Operands(f)
	if ops == nil {
		return f
	}
	newOps := make([]logic.Formula, len(ops))
	for i, op := range ops {
		newOps[i] = renameProps(op, mapping)
	}
	return logic.Rebuild(f, newOps)
}

// allFormulae builds the size-indexed table of canonically-named formulae of
// size 0 up to maxSize. F[0] is seeded with the single proposition Prop("p0")
// — the only formula of size 0 a top-level call ever yields, since nothing
// precedes it to reuse. For size s >= 1, every split s = a + 1 + b pairs each
// lhs in F[a] with each rhs in F[b] (rhs's propositions renamed through
// allPerms into lhs's namespace) and emits up to three Implies-shaped
// combinations — Implies(lhs, rhs), Implies(lhs, Not(rhs)), and
// Implies(Not(lhs), rhs) — never a bare unary or other binary operator as
// the size-s combinator itself.
//
// The three emissions are individually guarded the way all_formulae in
// all_axioms.py guards them, to avoid enumerating the same formula twice
// from two different (a, b) splits that are really the same combination
// with its halves swapped:
//   - Implies(lhs, rhs) is skipped when lhs and rhs are structurally equal
//     (so the size-1 identity Implies(p0, p0) is never emitted here; Enumerate
//     checks it separately).
//   - Implies(lhs, Not(rhs)) only fires on the half of the split where
//     a <= b, and only when rhs isn't the single fresh proposition that
//     this split's sibling split (with roles reversed) would already cover.
//   - Implies(Not(lhs), rhs) only fires on the half of the split where
//     a >= b, and only when lhs isn't that same fresh proposition — which,
//     since F[0] is always exactly {Prop("p0")}, means simply a != 0.
//
// A final structural-equality dedup catches any residual duplicates the
// recursive renaming still produces across splits.
func allFormulae(maxSize int) map[int][]logic.Formula {
	table := map[int][]logic.Formula{
		0: {logic.Prop("p0")},
	}

	for size := 1; size <= maxSize; size++ {
		var result []logic.Formula
		emit := func(f logic.Formula) {
			for _, existing := range result {
				if logic.Equal(f, existing) {
					return
				}
			}
			result = append(result, f)
		}

		for a := 0; a <= size-1; a++ {
			b := size - 1 - a
			lhsIsFreshProp := a == 0

			for _, lhs := range table[a] {
				lhsDeg := logic.Degree(lhs)
				rhsIsBareProp := b == 0

				for _, rhsBase := range table[b] {
					rhsDeg := logic.Degree(rhsBase)
					for _, perm := range allPerms(rhsDeg, lhsDeg) {
						rhs := renameProps(rhsBase, perm)
						rhsIntroducesFresh := rhsIsBareProp && len(perm) == 1 && perm[0] == lhsDeg

						if !logic.Equal(lhs, rhs) {
							emit(logic.Implies(lhs, rhs))
						}
						if a <= b && !rhsIntroducesFresh {
							emit(logic.Implies(lhs, logic.Not(rhs)))
						}
						if a >= b && !lhsIsFreshProp {
							emit(logic.Implies(logic.Not(lhs), rhs))
						}
					}
				}
			}
		}

		table[size] = result
	}
	return table
}

// Enumerator finds the universally valid formulae (under Łukasiewicz logic,
// against the empty theory) among all formulae up to a given size, pruning
// away any formula that specializes one already found valid — a
// specialization of a valid formula is itself always valid, so it
// contributes nothing new as a candidate axiom schema.
type Enumerator struct {
	maxSize int
}

// NewEnumerator builds an enumerator over formulae of size 0..maxSize.
func NewEnumerator(maxSize int) *Enumerator {
	return &Enumerator{maxSize: maxSize}
}

// Enumerate returns the valid formulae found, in increasing size order.
// Implies(p0, p0) is checked first and separately from the size table: the
// lhs != rhs guard in allFormulae deliberately never produces it (mirroring
// all_formulae in all_axioms.py, whose combination loop excludes lhs == rhs
// and whose caller checks this one identity axiom up front instead).
func (e *Enumerator) Enumerate() []logic.Formula {
	var valid []logic.Formula

	identity := logic.Implies(logic.Prop("p0"), logic.Prop("p0"))
	if ok, err := logic.NewTheory().Entails(logic.TrueSentence(identity), logic.Lukasiewicz); err == nil && ok {
		valid = append(valid, identity)
	}

	table := allFormulae(e.maxSize)
	for size := 1; size <= e.maxSize; size++ {
		for _, f := range table[size] {
			if specializesAny(f, valid) {
				continue
			}
			ok, err := logic.NewTheory().Entails(logic.TrueSentence(f), logic.Lukasiewicz)
			if err != nil || !ok {
				continue
			}
			valid = append(valid, f)
		}
	}
	return valid
}

func specializesAny(f logic.Formula, known []logic.Formula) bool {
	for _, k := range known {
		if Specializes(f, k) {
			return true
		}
	}
	return false
}
