package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
	"github.com/reglet-dev/nu-plugin-lua/domain/errors"
	"github.com/reglet-dev/nu-plugin-lua/domain/ports"
)

// Registry is an immutable collection of named commands.
// Once created via NewRegistry, commands cannot be added or removed.
// This ensures thread safety and lock-free lookups during invocation.
type Registry struct {
	commands map[string]*Command
	runs     map[string]RunFunc
	names    []string // sorted for consistent iteration
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	commands   map[string]*Command
	middleware []Middleware
	errors     []error
}

// NewRegistry creates an immutable Registry with the given options.
// Returns an error if any command name is empty or registered twice.
//
// Example usage:
//
//	registry, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware(), LoggingMiddleware(logger)),
//	    WithBundle(lua.Bundle(sessions, cfg)),
//	)
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	b := &registryBuilder{
		commands: make(map[string]*Command),
	}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.commands))
	for name := range b.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	// Apply middleware chain to all commands (FIFO order)
	runs := make(map[string]RunFunc, len(b.commands))
	for name, cmd := range b.commands {
		wrapped := cmd.run
		for i := len(b.middleware) - 1; i >= 0; i-- {
			wrapped = b.middleware[i](wrapped)
		}
		runs[name] = wrapped
	}

	return &Registry{
		commands: b.commands,
		runs:     runs,
		names:    names,
	}, nil
}

// Invoke dispatches a call by command name through the middleware chain.
// An unknown name yields *errors.UnknownCommandError.
func (r *Registry) Invoke(ctx context.Context, name string, host ports.Host, call *entities.Call) (entities.Value, error) {
	run, ok := r.runs[name]
	if !ok {
		return entities.Value{}, &errors.UnknownCommandError{Name: name}
	}
	if call == nil {
		call = &entities.Call{}
	}

	cctx := CallContextFrom(ctx, name)
	return run(cctx, &Request{Host: host, Call: call})
}

// Has returns true if a command with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.commands[name]
	return ok
}

// Get returns the registered command, without middleware applied.
func (r *Registry) Get(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns a sorted list of all registered command names.
func (r *Registry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

// Signatures returns the signature of every command, sorted by name.
func (r *Registry) Signatures() []entities.Signature {
	sigs := make([]entities.Signature, 0, len(r.names))
	for _, name := range r.names {
		sigs = append(sigs, r.commands[name].Signature())
	}
	return sigs
}

// addCommand registers a command under its own name.
func (b *registryBuilder) addCommand(cmd *Command) error {
	if cmd == nil {
		return fmt.Errorf("command cannot be nil")
	}
	if cmd.name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := b.commands[cmd.name]; exists {
		return fmt.Errorf("duplicate command name: %q", cmd.name)
	}
	b.commands[cmd.name] = cmd
	return nil
}

// WithCommand registers a single command.
func WithCommand(cmd *Command) RegistryOption {
	return func(b *registryBuilder) {
		if err := b.addCommand(cmd); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithCommands registers several commands.
func WithCommands(cmds ...*Command) RegistryOption {
	return func(b *registryBuilder) {
		for _, cmd := range cmds {
			if err := b.addCommand(cmd); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}

// WithMiddleware adds middleware to the registry.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}
