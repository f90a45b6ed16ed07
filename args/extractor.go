package args

import (
	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
)

// Extractor reads one typed value out of one untyped positional slot and
// describes the slot's shape for signature declaration.
type Extractor[T any] interface {
	// Extract converts v into T. A value of the wrong runtime shape yields
	// *errors.TypeMismatchError.
	Extract(v entities.Value) (T, error)

	// Shape is independent of any particular value.
	Shape() entities.Shape
}

// Func adapts a plain conversion function into an Extractor.
//
// Usage:
//
//	upper := args.Func(entities.ShapeString, func(v entities.Value) (string, error) {
//	    s, err := args.String().Extract(v)
//	    return strings.ToUpper(s), err
//	})
func Func[T any](shape entities.Shape, fn func(entities.Value) (T, error)) Extractor[T] {
	return funcExtractor[T]{shape: shape, fn: fn}
}

type funcExtractor[T any] struct {
	fn    func(entities.Value) (T, error)
	shape entities.Shape
}

func (f funcExtractor[T]) Extract(v entities.Value) (T, error) {
	return f.fn(v)
}

func (f funcExtractor[T]) Shape() entities.Shape {
	return f.shape
}

// Param declares one named, described argument of type T.
type Param[T any] struct {
	From        Extractor[T]
	Name        string
	Description string
}

// Arg declares a parameter.
func Arg[T any](name, description string, from Extractor[T]) Param[T] {
	return Param[T]{Name: name, Description: description, From: from}
}

// Slot is the untyped shape metadata of one declared parameter.
type Slot struct {
	Name        string
	Description string
	Shape       entities.Shape
	Index       int
}

// Signatures converts slots into the host's argument signatures, in order.
func Signatures(slots []Slot) []entities.ArgSignature {
	out := make([]entities.ArgSignature, len(slots))
	for i, s := range slots {
		out[i] = entities.ArgSignature{
			Name:        s.Name,
			Description: s.Description,
			Shape:       s.Shape,
		}
	}
	return out
}
