package entities

import "fmt"

// ErrorDetail provides structured error information for the host.
// Error Types: "missing_argument", "type_mismatch", "invalid_handle",
// "evaluation", "conversion", "not_found", "config", "bug", "internal"
type ErrorDetail struct {
	// Wrapped contains a wrapped error for error chains.
	Wrapped *ErrorDetail `json:"wrapped,omitempty"`

	// Span points at the offending value, when one is known.
	Span *Span `json:"span,omitempty"`

	// Message is a human-readable error description.
	Message string `json:"message"`

	// Type categorizes the error.
	Type string `json:"type"`

	// Code is a machine-readable error code.
	Code string `json:"code,omitempty"`

	// Label is shown next to Span when the host renders the error.
	Label string `json:"label,omitempty"`
}

// Error implements the error interface.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped.Error())
	}
	return msg
}

// NewErrorDetail creates a new ErrorDetail with the given type and message.
func NewErrorDetail(errorType, message string) *ErrorDetail {
	return &ErrorDetail{
		Type:    errorType,
		Message: message,
	}
}

// WithSpan attaches a labeled span and returns the receiver.
func (e *ErrorDetail) WithSpan(span Span, label string) *ErrorDetail {
	e.Span = &span
	e.Label = label
	return e
}

// WithCode attaches a code and returns the receiver.
func (e *ErrorDetail) WithCode(code string) *ErrorDetail {
	e.Code = code
	return e
}
