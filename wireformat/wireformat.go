// Package wireformat defines the wire structures exchanged with the host shell.
// These types must remain stable and backward compatible: the host stores
// custom values it received from an earlier plugin process and hands them
// back verbatim.
package wireformat

import (
	"fmt"

	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
)

// SpanWire is a byte range in the user's source.
type SpanWire struct {
	Start int `json:"start" cbor:"start"`
	End   int `json:"end" cbor:"end"`
}

// CustomValueWire is the opaque token the host holds for a plugin custom
// value. Data is plugin-defined; the host never interprets it.
type CustomValueWire struct {
	Name         string   `json:"name" cbor:"name"`
	Data         []byte   `json:"data" cbor:"data"`
	Span         SpanWire `json:"span" cbor:"span"`
	NotifyOnDrop bool     `json:"notify_on_drop" cbor:"notify_on_drop"`
}

// LabelWire points an error message at a span.
type LabelWire struct {
	Text string   `json:"text"`
	Span SpanWire `json:"span"`
}

// LabeledErrorWire is the error shape the host renders for a failed call.
type LabeledErrorWire struct {
	Inner  []LabeledErrorWire `json:"inner,omitempty"`
	Labels []LabelWire        `json:"labels,omitempty"`
	Msg    string             `json:"msg"`
	Code   string             `json:"code,omitempty"`
	Help   string             `json:"help,omitempty"`
}

// Error implements the error interface for LabeledErrorWire.
func (e *LabeledErrorWire) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Msg
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	for _, inner := range e.Inner {
		msg = fmt.Sprintf("%s: %v", msg, inner.Error())
	}
	return msg
}

// SpanToWire converts a domain span.
func SpanToWire(s entities.Span) SpanWire {
	return SpanWire{Start: s.Start, End: s.End}
}

// SpanFromWire converts a wire span.
func SpanFromWire(s SpanWire) entities.Span {
	return entities.Span{Start: s.Start, End: s.End}
}

// LabeledErrorFromDetail converts a structured error into the host's shape.
// The code is derived from the error type; a detail without a type keeps its
// own code.
func LabeledErrorFromDetail(d *entities.ErrorDetail) *LabeledErrorWire {
	if d == nil {
		return nil
	}
	out := &LabeledErrorWire{
		Msg:  d.Message,
		Code: d.Code,
	}
	if d.Type != "" {
		out.Code = "nu_plugin_lua::" + d.Type
	}
	if d.Span != nil {
		out.Labels = []LabelWire{{Text: d.Label, Span: SpanToWire(*d.Span)}}
	}
	if d.Wrapped != nil {
		out.Inner = []LabeledErrorWire{*LabeledErrorFromDetail(d.Wrapped)}
	}
	return out
}
