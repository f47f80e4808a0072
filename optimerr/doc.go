// Package optimerr defines the closed set of error kinds surfaced by the
// optimization core: the math capability layer, the problem wrapper, the
// iteration state, the executor, and the solver catalog all construct their
// failures through this package so callers have exactly one taxonomy to
// dispatch on, regardless of which component raised the error.
//
// Every constructor returns an *Error wrapping a package-level sentinel, so
// both styles of check work:
//
//	errors.Is(err, optimerr.ErrNonInvertible)
//	optimerr.KindOf(err) == optimerr.NonInvertible
//
// New kinds are added to this package only, never invented ad hoc by a
// caller — the set is intentionally closed (spec §4.2/§7).
package optimerr
