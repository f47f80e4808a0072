// SPDX-License-Identifier: MIT
package optimerr

import "errors"

// Kind identifies which of the closed set of failure categories an Error
// belongs to. Kind is comparable so callers can switch on KindOf(err).
type Kind int

// The closed set of kinds surfaced by the core (spec §4.2, §7).
const (
	// Other carries a message that doesn't fit any other kind.
	Other Kind = iota
	InvalidParameter
	NotImplemented
	NotInitialized
	ConditionViolated
	CheckpointNotFound
	CheckpointCorrupt
	ShapeMismatch
	NonInvertible
	LineSearchFailed
	Aborted
	PotentialBug
	ImpossibleError
)

func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "InvalidParameter"
	case NotImplemented:
		return "NotImplemented"
	case NotInitialized:
		return "NotInitialized"
	case ConditionViolated:
		return "ConditionViolated"
	case CheckpointNotFound:
		return "CheckpointNotFound"
	case CheckpointCorrupt:
		return "CheckpointCorrupt"
	case ShapeMismatch:
		return "ShapeMismatch"
	case NonInvertible:
		return "NonInvertible"
	case LineSearchFailed:
		return "LineSearchFailed"
	case Aborted:
		return "Aborted"
	case PotentialBug:
		return "PotentialBug"
	case ImpossibleError:
		return "ImpossibleError"
	default:
		return "Other"
	}
}

// Sentinel errors, one per kind, so errors.Is keeps working across package
// boundaries without importing optimerr.Error's fields.
var (
	ErrInvalidParameter  = errors.New("optimerr: invalid parameter")
	ErrNotImplemented    = errors.New("optimerr: capability not implemented")
	ErrNotInitialized    = errors.New("optimerr: not initialized")
	ErrConditionViolated = errors.New("optimerr: condition violated")
	ErrCheckpointNotFound = errors.New("optimerr: checkpoint not found")
	ErrCheckpointCorrupt  = errors.New("optimerr: checkpoint corrupt")
	ErrShapeMismatch     = errors.New("optimerr: shape mismatch")
	ErrNonInvertible     = errors.New("optimerr: matrix not invertible")
	ErrLineSearchFailed  = errors.New("optimerr: line search failed")
	ErrAborted           = errors.New("optimerr: aborted")
	ErrPotentialBug      = errors.New("optimerr: potential bug")
	ErrImpossibleError   = errors.New("optimerr: impossible error")
)

func sentinelFor(k Kind) error {
	switch k {
	case InvalidParameter:
		return ErrInvalidParameter
	case NotImplemented:
		return ErrNotImplemented
	case NotInitialized:
		return ErrNotInitialized
	case ConditionViolated:
		return ErrConditionViolated
	case CheckpointNotFound:
		return ErrCheckpointNotFound
	case CheckpointCorrupt:
		return ErrCheckpointCorrupt
	case ShapeMismatch:
		return ErrShapeMismatch
	case NonInvertible:
		return ErrNonInvertible
	case LineSearchFailed:
		return ErrLineSearchFailed
	case Aborted:
		return ErrAborted
	case PotentialBug:
		return ErrPotentialBug
	case ImpossibleError:
		return ErrImpossibleError
	default:
		return errors.New("optimerr: other")
	}
}

// Error is the concrete error type returned by this module's packages. It
// carries a Kind from the closed set above, a human-readable message, and
// an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return sentinelFor(e.Kind).Error()
	}
	return e.Message
}

// Unwrap exposes both the underlying cause (if any) and the kind's
// sentinel, so errors.Is(err, ErrNonInvertible) and errors.Is(err, cause)
// both succeed.
func (e *Error) Unwrap() []error {
	sentinel := sentinelFor(e.Kind)
	if e.Cause != nil && e.Cause != sentinel {
		return []error{sentinel, e.Cause}
	}
	return []error{sentinel}
}

// New constructs an *Error of the given kind with a formatted message.
func New(k Kind, message string) *Error {
	return &Error{Kind: k, Message: message}
}

// Wrap constructs an *Error of the given kind that also carries cause, so
// errors.Is(err, cause) keeps working through the wrapper.
func Wrap(k Kind, message string, cause error) *Error {
	return &Error{Kind: k, Message: message, Cause: cause}
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, and Other
// otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}
