// Package testutil provides common test utilities and assertions for plugin tests
package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
)

// RequireErrorAs asserts that err matches target via errors.As and returns it.
func RequireErrorAs[T error](t *testing.T, err error, msgAndArgs ...interface{}) T {
	t.Helper()
	var target T
	require.True(t, errors.As(err, &target), append([]interface{}{"unexpected error: %v", err}, msgAndArgs...)...)
	return target
}

// AssertValue compares a host value against plain Go data using Value.Interface.
// Ints must be given as int64 and floats as float64.
func AssertValue(t *testing.T, expected interface{}, actual entities.Value, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, expected, actual.Interface(), msgAndArgs...)
}

// AssertKind asserts the runtime category of a host value.
func AssertKind(t *testing.T, expected entities.Kind, actual entities.Value, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, expected.String(), actual.Kind().String(), msgAndArgs...)
}

// AssertSignatureArity asserts that a signature declares exactly the given
// argument names in order.
func AssertSignatureArity(t *testing.T, sig entities.Signature, names ...string) {
	t.Helper()
	got := make([]string, len(sig.Required))
	for i, arg := range sig.Required {
		got[i] = arg.Name
	}
	if len(names) == 0 {
		assert.Empty(t, got)
		return
	}
	assert.Equal(t, names, got)
}

// Str is a string value with a span derived from n, so tests can tell which
// slot an error points at.
func Str(s string, n int) entities.Value {
	return entities.NewString(s, SpanN(n))
}

// SpanN returns a deterministic span for slot n.
func SpanN(n int) entities.Span {
	return entities.Span{Start: n * 100, End: n*100 + 10}
}
