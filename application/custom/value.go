// Package custom defines the plugin's custom value, the only kind of value the
// host cannot interpret on its own.
package custom

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
	"github.com/reglet-dev/nu-plugin-lua/domain/errors"
	"github.com/reglet-dev/nu-plugin-lua/session"
	"github.com/reglet-dev/nu-plugin-lua/wireformat"
)

// TypeName is the host-visible type name of every PluginValue.
const TypeName = "Lua"

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("custom: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// PluginValue is a closed set of variants; exactly one field is set.
// Lua is currently the only variant.
type PluginValue struct {
	Lua *session.Handle `cbor:"lua,omitempty"`
}

var _ entities.CustomValue = (*PluginValue)(nil)

// NewLua wraps a session handle.
func NewLua(h session.Handle) *PluginValue {
	return &PluginValue{Lua: &h}
}

// TypeName implements entities.CustomValue.
func (p *PluginValue) TypeName() string {
	return TypeName
}

// ToBaseValue implements entities.CustomValue. Sessions have no plain
// representation, so the host sees a fixed placeholder.
func (p *PluginValue) ToBaseValue(span entities.Span) (entities.Value, error) {
	return entities.NewString("<Lua>", span), nil
}

// NotifyOnDrop implements entities.CustomValue. The host must report when it
// drops the last copy so the session can be destroyed.
func (p *PluginValue) NotifyOnDrop() bool {
	return true
}

// AsLua returns the session handle, or a type mismatch at span when p holds
// another variant.
func (p *PluginValue) AsLua(span entities.Span) (session.Handle, error) {
	if p == nil || p.Lua == nil {
		return session.Handle{}, &errors.TypeMismatchError{Expected: "lua instance", Span: span}
	}
	return *p.Lua, nil
}

// Encode serializes p into the token the host stores.
func Encode(p *PluginValue, span entities.Span) (wireformat.CustomValueWire, error) {
	data, err := cborEncMode.Marshal(p)
	if err != nil {
		return wireformat.CustomValueWire{}, &errors.WireFormatError{Err: err, Operation: "encode", Type: TypeName}
	}
	return wireformat.CustomValueWire{
		Name:         TypeName,
		Data:         data,
		Span:         wireformat.SpanToWire(span),
		NotifyOnDrop: p.NotifyOnDrop(),
	}, nil
}

// Decode restores a value produced by Encode.
func Decode(w wireformat.CustomValueWire) (*PluginValue, error) {
	if w.Name != TypeName {
		return nil, &errors.WireFormatError{
			Err:       fmt.Errorf("unexpected custom value %q", w.Name),
			Operation: "decode",
			Type:      TypeName,
		}
	}
	var p PluginValue
	if err := cbor.Unmarshal(w.Data, &p); err != nil {
		return nil, &errors.WireFormatError{Err: err, Operation: "decode", Type: TypeName}
	}
	return &p, nil
}

// FromValue extracts a PluginValue from a host value. ok is false for any
// other kind of value, including custom values of other plugins.
func FromValue(v entities.Value) (*PluginValue, bool) {
	cv, ok := v.AsCustom()
	if !ok {
		return nil, false
	}
	p, ok := cv.(*PluginValue)
	return p, ok
}
