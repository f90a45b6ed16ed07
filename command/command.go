package command

import (
	"context"

	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
	"github.com/reglet-dev/nu-plugin-lua/domain/ports"
)

// Request carries everything a handler may need besides its typed arguments.
type Request struct {
	Host ports.Host
	Call *entities.Call
}

// Head returns the span of the command name in the user's pipeline.
func (r *Request) Head() entities.Span {
	if r == nil || r.Call == nil {
		return entities.UnknownSpan()
	}
	return r.Call.Head
}

// Handler is the typed body of a command.
type Handler[T any] func(ctx context.Context, req *Request, in T) (entities.Value, error)

// RunFunc is a handler with its argument binding already applied. This is the
// common form the Registry and Middleware work with.
type RunFunc func(ctx context.Context, req *Request) (entities.Value, error)

// Command is a built, runtime-dispatchable unit exposed to the host.
// All of its data is fixed at build time.
type Command struct {
	run         RunFunc
	name        string
	description string
	args        []entities.ArgSignature
}

// Name returns the name the host invokes the command by.
func (c *Command) Name() string {
	return c.name
}

// Description returns the human-readable description.
func (c *Command) Description() string {
	return c.description
}

// Signature returns the declared signature. The returned value is a copy.
func (c *Command) Signature() entities.Signature {
	required := make([]entities.ArgSignature, len(c.args))
	copy(required, c.args)
	return entities.Signature{
		Name:        c.name,
		Description: c.description,
		Required:    required,
	}
}

// Run binds the call's positional values and invokes the handler. Binding
// errors are returned unchanged.
func (c *Command) Run(ctx context.Context, host ports.Host, call *entities.Call) (entities.Value, error) {
	if call == nil {
		call = &entities.Call{}
	}
	return c.run(ctx, &Request{Host: host, Call: call})
}
