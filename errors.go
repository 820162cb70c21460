package supply

import (
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"
	"strings"
)

// Kinds of supply failures, matched with errors.Is.
var (
	ErrNilSupplier         = errors.New("nil supplier")
	ErrNoCompatibleContext = errors.New("no compatible context")
	ErrContextRequired     = errors.New("owner context required")
	ErrMaxDepthExceeded    = errors.New("max supply depth exceeded")
)

// SupplyError reports a failure to produce a value: a missing supplier, a
// missing or mismatched context, a failing parameter or an exhausted
// recursion limit.
type SupplyError struct {
	Message string
	Kind    error
	Cause   error
}

func (e *SupplyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SupplyError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewSupplyError creates a SupplyError wrapping cause.
func NewSupplyError(message string, cause error) *SupplyError {
	return &SupplyError{Message: message, Cause: cause}
}

// ParameterError localizes a failure to the parameter at index.
func ParameterError(index int, cause error) *SupplyError {
	return &SupplyError{Message: fmt.Sprintf("Error on parameter %d", index), Cause: cause}
}

func nilSupplier() *SupplyError {
	return &SupplyError{Message: "supplier cannot be nil", Kind: ErrNilSupplier}
}

func noCompatibleContext(expected reflect.Type, contexts []any) *SupplyError {
	got := make([]string, 0, len(contexts))
	for _, c := range contexts {
		got = append(got, fmt.Sprintf("%T", c))
	}
	return &SupplyError{
		Message: fmt.Sprintf("no compatible context found for supplier expecting %s (candidates: [%s])",
			TypeName(expected), strings.Join(got, ", ")),
		Kind: ErrNoCompatibleContext,
	}
}

// ContextRequired reports a contextual supplier called without its owner
// context.
func ContextRequired(expected reflect.Type) *SupplyError {
	return &SupplyError{
		Message: fmt.Sprintf("owner context of type %s required", TypeName(expected)),
		Kind:    ErrContextRequired,
	}
}

// ContextMismatch reports an owner context of the wrong type handed directly
// to a contextual supplier.
func ContextMismatch(expected reflect.Type, got any) *SupplyError {
	return &SupplyError{
		Message: fmt.Sprintf("owner context of type %s required, got %T", TypeName(expected), got),
		Kind:    ErrContextRequired,
	}
}

// ReflectionError reports a failed construction, invocation, field access or
// a result of the wrong type.
type ReflectionError struct {
	Message string
	Cause   error
}

func (e *ReflectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ReflectionError) Unwrap() error {
	return e.Cause
}

// InvocationError wraps an error returned, or a panic raised, by an invoked
// target.
type InvocationError struct {
	Target     string
	Cause      error
	Panic      any
	StackTrace []byte
}

func (e *InvocationError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("invocation of %s panicked: %v", e.Target, e.Panic)
	}
	return fmt.Sprintf("invocation of %s failed: %v", e.Target, e.Cause)
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// CreateInvocationError captures the current stack alongside cause.
func CreateInvocationError(target string, cause error) *InvocationError {
	return &InvocationError{
		Target:     target,
		Cause:      cause,
		StackTrace: debug.Stack(),
	}
}

// SafeTypeAssertion performs safe type assertion with proper error
func SafeTypeAssertion[T any](value any) (T, error) {
	if value == nil {
		var zero T
		return zero, nil
	}

	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("type assertion error: expected %s, got %T (value: %v)", TypeName(TypeOf[T]()), value, value)
	}

	return typed, nil
}
