// Package errs defines sentinel errors for the engines' three reported
// error categories (two fatal, one a non-ok readout), so callers can
// distinguish them with errors.Is.
package errs

import "errors"

var (
	// ErrInvariantViolation marks a bug in the engine itself (a missing
	// map entry, a non-Abs in a Closure frame, a dangling wire during a
	// net rewrite) rather than in the input term.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrUnsupportedTerm marks an open variable encountered during net
	// construction; terms are assumed closed.
	ErrUnsupportedTerm = errors.New("free variables not supported")

	// ErrUnreadableNormalForm marks a normal form that is not a Church
	// numeral under the expected shape, or a readout whose gas budget was
	// exhausted.
	ErrUnreadableNormalForm = errors.New("invalid value")
)
