package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
)

func TestMissingArgumentError(t *testing.T) {
	err := &MissingArgumentError{Index: 1, Name: "code"}

	assert.Equal(t, "missing positional arg 1 (code)", err.Error())

	detail := err.ToErrorDetail()
	assert.Equal(t, "missing_argument", detail.Type)
	assert.Equal(t, "code", detail.Code)
}

func TestTypeMismatchError(t *testing.T) {
	span := entities.Span{Start: 4, End: 9}
	err := &TypeMismatchError{Expected: "string", Span: span}

	assert.Equal(t, "expected string", err.Error())

	detail := err.ToErrorDetail()
	assert.Equal(t, "type_mismatch", detail.Type)
	require.NotNil(t, detail.Span)
	assert.Equal(t, span, *detail.Span)
	assert.Equal(t, "expected string", detail.Label)
}

func TestInvalidHandleError(t *testing.T) {
	err := &InvalidHandleError{Handle: "abc"}

	assert.Equal(t, "lua handle is invalid", err.Error())

	detail := err.ToErrorDetail()
	assert.Equal(t, "invalid_handle", detail.Type)
	assert.Equal(t, "abc", detail.Code)
}

func TestEvaluationError_ForwardsMessage(t *testing.T) {
	err := &EvaluationError{Message: `[string "eval"]:1: boom`}

	assert.Equal(t, `[string "eval"]:1: boom`, err.Error())
	assert.Equal(t, err.Message, err.ToErrorDetail().Message)
}

func TestConversionError(t *testing.T) {
	assert.Equal(t, "cannot convert lua function to a shell value",
		(&ConversionError{EngineType: "function"}).Error())
	assert.Equal(t, "cannot convert lua table to a shell value: nested too deeply",
		(&ConversionError{EngineType: "table", Reason: "nested too deeply"}).Error())
}

func TestBugError(t *testing.T) {
	err := &BugError{Message: "expected arg 3"}

	assert.Equal(t, "BUG: expected arg 3", err.Error())
	assert.Equal(t, "bug", err.ToErrorDetail().Type)
}

func TestConfigError(t *testing.T) {
	baseErr := fmt.Errorf("must be one of debug info warn error")
	err := &ConfigError{
		Field: "log_level",
		Err:   baseErr,
	}

	assert.Equal(t, "config validation failed for field 'log_level': must be one of debug info warn error", err.Error())
	assert.True(t, errors.Is(err, baseErr))

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "log_level", cfgErr.Field)
}

func TestConfigError_NoField(t *testing.T) {
	err := &ConfigError{Err: fmt.Errorf("invalid config")}

	assert.Equal(t, "config validation failed: invalid config", err.Error())
}

func TestSchemaError(t *testing.T) {
	baseErr := fmt.Errorf("unsupported type")
	err := &SchemaError{
		Type: "Config",
		Err:  baseErr,
	}

	assert.Equal(t, "schema error for type Config: unsupported type", err.Error())
	assert.True(t, errors.Is(err, baseErr))
}

func TestWireFormatError(t *testing.T) {
	baseErr := fmt.Errorf("unexpected EOF")
	err := &WireFormatError{
		Operation: "decode",
		Type:      "Lua",
		Err:       baseErr,
	}

	assert.Equal(t, "wire format decode failed for Lua: unexpected EOF", err.Error())

	var wireErr *WireFormatError
	require.True(t, errors.As(err, &wireErr))
	assert.Equal(t, "decode", wireErr.Operation)
}

func TestToErrorDetail(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ToErrorDetail(nil))
	})

	t.Run("detailed error through a wrap", func(t *testing.T) {
		err := fmt.Errorf("eval: %w", &InvalidHandleError{Handle: "h"})
		detail := ToErrorDetail(err)
		assert.Equal(t, "invalid_handle", detail.Type)
	})

	t.Run("error detail passes through", func(t *testing.T) {
		orig := entities.NewErrorDetail("config", "bad")
		assert.Same(t, orig, ToErrorDetail(orig))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		detail := ToErrorDetail(fmt.Errorf("boom"))
		assert.Equal(t, "internal", detail.Type)
		assert.Equal(t, "boom", detail.Message)
	})
}
