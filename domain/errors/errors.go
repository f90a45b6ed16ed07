// Package errors provides the plugin's domain error types.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is an interface for custom error types that can convert themselves
// to a structured ErrorDetail. New error types only need to implement this
// interface without modifying ToErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
// This function recognizes custom error types and categorizes them appropriately.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// MissingArgumentError reports that fewer positional values were supplied
// than the command declares.
type MissingArgumentError struct {
	Name  string
	Index int
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing positional arg %d (%s)", e.Index, e.Name)
}

// ToErrorDetail implements DetailedError.
func (e *MissingArgumentError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "missing_argument", Code: e.Name}
}

// TypeMismatchError reports a value whose runtime shape differs from the
// declared one.
type TypeMismatchError struct {
	Expected string
	Span     entities.Span
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s", e.Expected)
}

// ToErrorDetail implements DetailedError.
func (e *TypeMismatchError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("type_mismatch", "type mismatch").
		WithSpan(e.Span, e.Error())
}

// InvalidHandleError reports a well-formed handle that does not resolve to a
// live session.
type InvalidHandleError struct {
	Handle string
	Span   entities.Span
}

func (e *InvalidHandleError) Error() string {
	return "lua handle is invalid"
}

// ToErrorDetail implements DetailedError.
func (e *InvalidHandleError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("invalid_handle", e.Error()).
		WithSpan(e.Span, "this session no longer exists").
		WithCode(e.Handle)
}

// EvaluationError carries a failure raised by the embedded engine. The message
// is forwarded to the host unchanged.
type EvaluationError struct {
	Message string
}

func (e *EvaluationError) Error() string {
	return e.Message
}

// ToErrorDetail implements DetailedError.
func (e *EvaluationError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Message, Type: "evaluation"}
}

// ConversionError reports an engine value that has no host representation.
type ConversionError struct {
	EngineType string
	Reason     string
}

func (e *ConversionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot convert lua %s to a shell value: %s", e.EngineType, e.Reason)
	}
	return fmt.Sprintf("cannot convert lua %s to a shell value", e.EngineType)
}

// ToErrorDetail implements DetailedError.
func (e *ConversionError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "conversion", Code: e.EngineType}
}

// UnknownCommandError is returned when the host invokes a name the plugin
// never registered.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return "unknown command: " + e.Name
}

// ToErrorDetail implements DetailedError.
func (e *UnknownCommandError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "not_found", Code: e.Name}
}

// BugError marks a programmer error, as opposed to something the user did.
type BugError struct {
	Message string
}

func (e *BugError) Error() string {
	return "BUG: " + e.Message
}

// ToErrorDetail implements DetailedError.
func (e *BugError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "bug"}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// SchemaError represents a schema generation error.
type SchemaError struct {
	Err  error
	Type string
}

func (e *SchemaError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("schema error for type %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("schema error: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *SchemaError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: "schema"}
}

// WireFormatError represents a wire format encoding/decoding error.
type WireFormatError struct {
	Err       error
	Operation string
	Type      string
}

func (e *WireFormatError) Error() string {
	return fmt.Sprintf("wire format %s failed for %s: %v", e.Operation, e.Type, e.Err)
}

func (e *WireFormatError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *WireFormatError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: "wire_format"}
}
