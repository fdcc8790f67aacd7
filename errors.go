package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for common engine error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrNoJSONFound indicates no JSON object or array could be located in
	// the raw LLM output. Distinct from schema errors: the payload is not
	// merely malformed, it is absent.
	ErrNoJSONFound = errors.New("no JSON found in response")

	// ErrNoDiagram indicates an operation or intent required an existing
	// diagram but none was provided.
	ErrNoDiagram = errors.New("no diagram yet")

	// ErrNodeNotFound indicates an operation referenced a node id or
	// component type not present in the spec.
	ErrNodeNotFound = errors.New("node not found")

	// ErrConnectionNotFound indicates a disconnect referenced a connection
	// not present in the spec.
	ErrConnectionNotFound = errors.New("connection not found")

	// ErrInvalidPayload indicates the decoded payload failed schema
	// validation. The wrapping error carries the ordered issue list.
	ErrInvalidPayload = errors.New("invalid operation payload")

	// ErrInvalidSpec indicates a caller-contract violation in a supplied
	// spec, such as duplicate node ids.
	ErrInvalidSpec = errors.New("invalid spec")
)

// Error kinds categorize errors by their type.
const (
	// KindValidation represents schema or payload validation failures.
	// Always recoverable by asking the source to reformat.
	KindValidation = "validation"

	// KindApplication represents failures while applying an operation or
	// intent to a spec, such as a missing node. Reported per-operation
	// without corrupting already-applied state.
	KindApplication = "application"

	// KindNotFound represents errors where a referenced entity was not found.
	KindNotFound = "not_found"

	// KindInternal represents internal engine errors.
	KindInternal = "internal"
)

// EngineError is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of
// error.
//
// EngineError implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
type EngineError struct {
	// Op is the operation that failed (e.g., "mutation.Validate", "intent.Apply").
	Op string

	// Kind categorizes the error (e.g., KindValidation, KindApplication).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include node ids, operation indexes, or other debugging
	// information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *EngineError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("engine: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("engine: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("engine: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is implements error matching for EngineError, allowing comparison based on
// the underlying error or the EngineError itself.
func (e *EngineError) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check if target is an EngineError with matching Kind
	if t, ok := target.(*EngineError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	// Delegate to underlying error
	return errors.Is(e.Err, target)
}

// WithContext returns a new EngineError with the provided context added.
// This is useful for attaching node ids or operation indexes to a failure.
func (e *EngineError) WithContext(ctx map[string]any) *EngineError {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewValidationError creates a new EngineError with KindValidation.
func NewValidationError(op string, err error) *EngineError {
	return &EngineError{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewApplicationError creates a new EngineError with KindApplication.
func NewApplicationError(op string, err error) *EngineError {
	return &EngineError{
		Op:   op,
		Kind: KindApplication,
		Err:  err,
	}
}

// NewNotFoundError creates a new EngineError with KindNotFound.
func NewNotFoundError(op string, err error) *EngineError {
	return &EngineError{
		Op:   op,
		Kind: KindNotFound,
		Err:  err,
	}
}

// NewInternalError creates a new EngineError with KindInternal.
func NewInternalError(op string, err error) *EngineError {
	return &EngineError{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}
