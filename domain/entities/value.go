package entities

import "fmt"

// Span tags a value or error with the source location the host knows it by.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// UnknownSpan returns the span used for values that have no source location.
func UnknownSpan() Span {
	return Span{}
}

// Kind identifies the runtime category of a host value.
type Kind uint8

const (
	KindNothing Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBinary
	KindList
	KindRecord
	KindCustom
)

var kindNames = [...]string{
	KindNothing: "nothing",
	KindBool:    "bool",
	KindInt:     "int",
	KindFloat:   "float",
	KindString:  "string",
	KindBinary:  "binary",
	KindList:    "list",
	KindRecord:  "record",
	KindCustom:  "custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is one untyped value exchanged with the host shell.
// The zero Value is Nothing with an unknown span.
type Value struct {
	custom CustomValue
	record *Record
	str    string
	binary []byte
	list   []Value
	span   Span
	i      int64
	f      float64
	kind   Kind
	b      bool
}

// NewNothing returns the empty value.
func NewNothing(span Span) Value {
	return Value{kind: KindNothing, span: span}
}

// NewBool wraps a boolean.
func NewBool(b bool, span Span) Value {
	return Value{kind: KindBool, b: b, span: span}
}

// NewInt wraps a signed integer.
func NewInt(i int64, span Span) Value {
	return Value{kind: KindInt, i: i, span: span}
}

// NewFloat wraps a float.
func NewFloat(f float64, span Span) Value {
	return Value{kind: KindFloat, f: f, span: span}
}

// NewString wraps a UTF-8 string.
func NewString(s string, span Span) Value {
	return Value{kind: KindString, str: s, span: span}
}

// NewBinary wraps raw bytes.
func NewBinary(b []byte, span Span) Value {
	return Value{kind: KindBinary, binary: b, span: span}
}

// NewList wraps an ordered list of values.
func NewList(items []Value, span Span) Value {
	return Value{kind: KindList, list: items, span: span}
}

// NewRecord wraps a record. A nil record is treated as empty.
func NewRecord(r *Record, span Span) Value {
	if r == nil {
		r = NewRecordOf()
	}
	return Value{kind: KindRecord, record: r, span: span}
}

// NewCustom wraps a plugin custom value.
func NewCustom(cv CustomValue, span Span) Value {
	return Value{kind: KindCustom, custom: cv, span: span}
}

// Kind returns the runtime category of the value.
func (v Value) Kind() Kind { return v.kind }

// Span returns the source location of the value.
func (v Value) Span() Span { return v.span }

// WithSpan returns a copy of v attributed to span. Nested values keep their
// own spans.
func (v Value) WithSpan(span Span) Value {
	v.span = span
	return v
}

// IsNothing reports whether v is the empty value.
func (v Value) IsNothing() bool { return v.kind == KindNothing }

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// AsFloat accepts both floats and ints, as the host does for float arguments.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsString returns the string without copying it.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

func (v Value) AsBinary() ([]byte, bool) {
	return v.binary, v.kind == KindBinary
}

func (v Value) AsList() ([]Value, bool) {
	return v.list, v.kind == KindList
}

func (v Value) AsRecord() (*Record, bool) {
	return v.record, v.kind == KindRecord
}

func (v Value) AsCustom() (CustomValue, bool) {
	return v.custom, v.kind == KindCustom
}

// TypeName is the host-facing type name of the value.
func (v Value) TypeName() string {
	if v.kind == KindCustom && v.custom != nil {
		return v.custom.TypeName()
	}
	return v.kind.String()
}

// Interface converts the value into plain Go data: nil, bool, int64, float64,
// string, []byte, []any, map[string]any, or the CustomValue itself.
// It is meant for logging and assertions, not for round-tripping.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.str
	case KindBinary:
		return v.binary
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindRecord:
		out := make(map[string]any, v.record.Len())
		for i, col := range v.record.cols {
			out[col] = v.record.vals[i].Interface()
		}
		return out
	case KindCustom:
		return v.custom
	default:
		return nil
	}
}

// CustomValue is a plugin-defined value the host stores but cannot inspect.
type CustomValue interface {
	// TypeName is shown to users in type errors and `describe` output.
	TypeName() string

	// ToBaseValue renders the value as a plain host value.
	ToBaseValue(span Span) (Value, error)

	// NotifyOnDrop asks the host to send a reclamation notification when
	// the last copy of the value becomes unreachable.
	NotifyOnDrop() bool
}
