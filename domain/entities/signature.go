package entities

// Shape is the declared runtime category of one argument slot, drawn from the
// host's own argument-shape vocabulary.
type Shape string

const (
	ShapeAny    Shape = "any"
	ShapeString Shape = "string"
	ShapeInt    Shape = "int"
	ShapeFloat  Shape = "float"
	ShapeBool   Shape = "bool"
	ShapeBinary Shape = "binary"
)

// ArgSignature describes one required positional argument.
type ArgSignature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Shape       Shape  `json:"shape"`
}

// Signature is what the host registers for a command.
type Signature struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Required    []ArgSignature `json:"required"`
}

// Call is one evaluated invocation as delivered by the host.
type Call struct {
	Positional []Value
	Head       Span
}
