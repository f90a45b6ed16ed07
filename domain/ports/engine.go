package ports

import "github.com/reglet-dev/nu-plugin-lua/domain/entities"

// Engine is one stateful instance of the embedded scripting engine.
// Implementations are not safe for concurrent use; callers serialize access.
type Engine interface {
	// Eval loads and evaluates code, returning its first result converted
	// into a host value. Engine failures are reported as *errors.EvaluationError.
	Eval(code string) (entities.Value, error)
}

// EngineFactory constructs fresh engine instances.
type EngineFactory interface {
	NewEngine() Engine
}

// EngineFactoryFunc adapts a plain function to EngineFactory.
type EngineFactoryFunc func() Engine

// NewEngine implements EngineFactory.
func (f EngineFactoryFunc) NewEngine() Engine {
	return f()
}
