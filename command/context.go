package command

import (
	"context"
)

// CallContext wraps a standard context.Context with invocation-specific helpers.
// It gives middleware access to the invoked command name.
type CallContext interface {
	context.Context

	// CommandName returns the name of the command being invoked.
	CommandName() string
}

// callContext is the concrete implementation of CallContext.
type callContext struct {
	context.Context
	name string
}

// NewCallContext creates a new CallContext wrapping the given context.
func NewCallContext(ctx context.Context, name string) CallContext {
	return &callContext{
		Context: ctx,
		name:    name,
	}
}

// CommandName returns the name of the command being invoked.
func (c *callContext) CommandName() string {
	return c.name
}

// CallContextFrom returns ctx itself when it is already a CallContext for
// the same command; otherwise a new CallContext wraps it.
func CallContextFrom(ctx context.Context, name string) CallContext {
	if cc, ok := ctx.(CallContext); ok && cc.CommandName() == name {
		return cc
	}
	return NewCallContext(ctx, name)
}
