package golua

import (
	"io"
	"os"

	"github.com/Shopify/go-lua"

	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
	"github.com/reglet-dev/nu-plugin-lua/domain/errors"
	"github.com/reglet-dev/nu-plugin-lua/domain/ports"
)

// FactoryConfig holds configuration for engines created by a Factory.
type FactoryConfig struct {
	// ChunkName is the name the engine reports in error messages
	// (default: "=eval").
	ChunkName string

	// Output receives what lua code prints (default: os.Stderr).
	Output io.Writer

	// MaxOutputSize limits what one evaluation may print. Anything beyond
	// is dropped and a truncation marker is written instead.
	MaxOutputSize int

	// OpenLibraries opens the full standard library in every new state.
	// When false only the base library is available. Default is true.
	OpenLibraries bool
}

// FactoryOption configures a Factory.
type FactoryOption func(*FactoryConfig)

// WithLibraries enables or disables the standard library beyond base.
func WithLibraries(enabled bool) FactoryOption {
	return func(c *FactoryConfig) {
		c.OpenLibraries = enabled
	}
}

// WithChunkName sets the chunk name used for evaluated code.
func WithChunkName(name string) FactoryOption {
	return func(c *FactoryConfig) {
		if name != "" {
			c.ChunkName = name
		}
	}
}

// WithOutput redirects lua's print.
func WithOutput(w io.Writer) FactoryOption {
	return func(c *FactoryConfig) {
		if w != nil {
			c.Output = w
		}
	}
}

// WithMaxOutputSize sets the per-evaluation print limit.
func WithMaxOutputSize(size int) FactoryOption {
	return func(c *FactoryConfig) {
		if size > 0 {
			c.MaxOutputSize = size
		}
	}
}

// defaultFactoryConfig returns the default factory configuration.
func defaultFactoryConfig() FactoryConfig {
	return FactoryConfig{
		ChunkName:     "=eval",
		Output:        os.Stderr,
		MaxOutputSize: DefaultMaxOutputSize,
		OpenLibraries: true,
	}
}

// Factory creates go-lua backed engines.
type Factory struct {
	config FactoryConfig
}

var _ ports.EngineFactory = (*Factory)(nil)

// NewFactory creates a Factory with the given options.
func NewFactory(opts ...FactoryOption) *Factory {
	cfg := defaultFactoryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Factory{config: cfg}
}

// NewEngine implements ports.EngineFactory.
func (f *Factory) NewEngine() ports.Engine {
	return f.New()
}

// New returns a fresh engine with its own lua state.
func (f *Factory) New() *Engine {
	l := lua.NewState()
	if f.config.OpenLibraries {
		lua.OpenLibraries(l)
	} else {
		lua.Require(l, "_G", lua.BaseOpen, true)
		l.Pop(1)
	}

	out := newBoundedBuffer(f.config.MaxOutputSize)
	l.Register("print", printTo(out))
	return &Engine{
		state:     l,
		chunkName: f.config.ChunkName,
		out:       out,
		output:    f.config.Output,
	}
}

// Engine is a single lua state. It is not safe for concurrent use.
type Engine struct {
	output    io.Writer
	state     *lua.State
	out       *boundedBuffer
	chunkName string
}

var _ ports.Engine = (*Engine)(nil)

// Eval evaluates code and converts its first result. Code is first tried as
// an expression, so "1 + 1" yields 2; if it does not parse as one it runs as
// a block of statements and its return values are used.
func (e *Engine) Eval(code string) (entities.Value, error) {
	l := e.state
	base := l.Top()
	defer l.SetTop(base)
	defer e.out.flushTo(e.output)

	if err := e.load(code, base); err != nil {
		return entities.Value{}, err
	}
	if err := l.ProtectedCall(0, lua.MultipleReturns, 0); err != nil {
		return entities.Value{}, &errors.EvaluationError{Message: errorMessage(l, base, err)}
	}
	if l.Top() == base {
		return entities.NewNothing(entities.UnknownSpan()), nil
	}
	return toValue(l, base+1, 0)
}

func (e *Engine) load(code string, base int) error {
	l := e.state
	if err := lua.LoadBuffer(l, "return "+code, e.chunkName, ""); err == nil {
		return nil
	}
	l.SetTop(base)
	if err := lua.LoadBuffer(l, code, e.chunkName, ""); err != nil {
		return &errors.EvaluationError{Message: errorMessage(l, base, err)}
	}
	return nil
}

// errorMessage prefers the error object lua left on the stack.
func errorMessage(l *lua.State, base int, err error) string {
	if l.Top() > base && l.TypeOf(-1) == lua.TypeString {
		if msg, ok := l.ToString(-1); ok && msg != "" {
			return msg
		}
	}
	return err.Error()
}
