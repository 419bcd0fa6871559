package logic

import "errors"

// Sentinel errors for the logic package, checked with errors.Is. These are
// the "construction error" cases from the specification: rejected at
// construction rather than allowed to silently produce a malformed
// interval, sentence, or solver error.
var (
	// ErrBoundOutOfRange indicates an interval bound fell outside [0,1].
	ErrBoundOutOfRange = errors.New("logic: interval bound outside [0,1]")

	// ErrLowerExceedsUpper indicates an interval's lower bound exceeded
	// its upper bound.
	ErrLowerExceedsUpper = errors.New("logic: interval lower bound exceeds upper bound")

	// ErrEmptyIntervalUnion indicates a sentence was constructed with no
	// intervals at all — the union it asserts membership in would be
	// empty, which can never hold.
	ErrEmptyIntervalUnion = errors.New("logic: sentence has no intervals")

	// ErrInvalidCoefficient indicates a negative or NaN Coef coefficient.
	ErrInvalidCoefficient = errors.New("logic: invalid coefficient")

	// ErrInvalidExponent indicates a negative or NaN Exp exponent.
	ErrInvalidExponent = errors.New("logic: invalid exponent")

	// ErrCyclicFormula indicates an encoder attempted to assign a truth
	// value to a formula node that is its own ancestor. Printing tolerates
	// cycles (CanonicalName/DisplayName render a dotted back-reference);
	// encoding a cycle into the MILP model has no well-defined truth value
	// and is rejected instead.
	ErrCyclicFormula = errors.New("logic: formula graph contains a cycle")
)
