package args

import (
	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
	"github.com/reglet-dev/nu-plugin-lua/domain/errors"
)

// String extracts a string argument. The result shares storage with the
// positional value; nothing is copied.
func String() Extractor[string] {
	return Func(entities.ShapeString, func(v entities.Value) (string, error) {
		s, ok := v.AsString()
		if !ok {
			return "", mismatch("string", v)
		}
		return s, nil
	})
}

// Int extracts an integer argument.
func Int() Extractor[int64] {
	return Func(entities.ShapeInt, func(v entities.Value) (int64, error) {
		i, ok := v.AsInt()
		if !ok {
			return 0, mismatch("int", v)
		}
		return i, nil
	})
}

// Float extracts a float argument; ints are widened.
func Float() Extractor[float64] {
	return Func(entities.ShapeFloat, func(v entities.Value) (float64, error) {
		f, ok := v.AsFloat()
		if !ok {
			return 0, mismatch("float", v)
		}
		return f, nil
	})
}

// Bool extracts a boolean argument.
func Bool() Extractor[bool] {
	return Func(entities.ShapeBool, func(v entities.Value) (bool, error) {
		b, ok := v.AsBool()
		if !ok {
			return false, mismatch("bool", v)
		}
		return b, nil
	})
}

// Binary extracts a binary argument without copying it.
func Binary() Extractor[[]byte] {
	return Func(entities.ShapeBinary, func(v entities.Value) ([]byte, error) {
		b, ok := v.AsBinary()
		if !ok {
			return nil, mismatch("binary", v)
		}
		return b, nil
	})
}

// Any accepts every value as-is.
func Any() Extractor[entities.Value] {
	return Func(entities.ShapeAny, func(v entities.Value) (entities.Value, error) {
		return v, nil
	})
}

func mismatch(expected string, v entities.Value) error {
	return &errors.TypeMismatchError{Expected: expected, Span: v.Span()}
}
