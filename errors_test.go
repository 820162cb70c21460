package supply

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplyError(t *testing.T) {
	cause := errors.New("disk full")
	err := ParameterError(2, cause)

	assert.Equal(t, "Error on parameter 2", err.Message)
	assert.Equal(t, "Error on parameter 2: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := ParameterError(0, noCompatibleContext(TypeOf[int](), []any{"a", nil}))
	assert.ErrorIs(t, wrapped, ErrNoCompatibleContext)
	assert.Contains(t, wrapped.Error(), "(candidates: [string, <nil>])")
}

func TestInvocationError(t *testing.T) {
	cause := errors.New("bad input")
	err := CreateInvocationError("Parse(string) int", cause)

	assert.Equal(t, "invocation of Parse(string) int failed: bad input", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, err.StackTrace)

	panicked := &InvocationError{Target: "Run()", Panic: "oops"}
	assert.Equal(t, "invocation of Run() panicked: oops", panicked.Error())
}

func TestReflectionError(t *testing.T) {
	inner := &InvocationError{Target: "New()", Cause: errors.New("x")}
	err := &ReflectionError{Message: "error creating instance of type T", Cause: inner}

	var got *InvocationError
	require.ErrorAs(t, err, &got)
	assert.Same(t, inner, got)
}

func TestSafeTypeAssertion(t *testing.T) {
	v, err := SafeTypeAssertion[int](nil)
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = SafeTypeAssertion[int]("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected int, got string")
}
