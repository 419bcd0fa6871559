package milp

import "errors"

// Sentinel errors for the milp package. Callers should compare with
// errors.Is, not string matching.
var (
	// ErrUnknownVariable indicates a lookup for a variable name that was
	// never created on this model.
	ErrUnknownVariable = errors.New("milp: unknown variable")

	// ErrUnknownConstraint indicates a lookup for a constraint name that
	// was never added to this model.
	ErrUnknownConstraint = errors.New("milp: unknown constraint")

	// ErrKindMismatch indicates a variable name was requested with a kind
	// (continuous/binary) different from the one it was created with.
	ErrKindMismatch = errors.New("milp: variable kind mismatch")

	// ErrInfeasible names the outcome where branch-and-bound finds no
	// integer-feasible point. Solve reports that outcome as (false, nil)
	// and does not return this error.
	ErrInfeasible = errors.New("milp: problem is infeasible")

	// ErrNoSolution is the error SolutionValue panics with (wrapped) when
	// it is called before Solve has produced a feasible incumbent.
	ErrNoSolution = errors.New("milp: no solution available")
)
