// Package lua declares the shell commands that create, use and discard
// lua sessions.
package lua

import (
	"context"
	"fmt"

	"github.com/reglet-dev/nu-plugin-lua/application/config"
	"github.com/reglet-dev/nu-plugin-lua/application/custom"
	"github.com/reglet-dev/nu-plugin-lua/args"
	"github.com/reglet-dev/nu-plugin-lua/command"
	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
	"github.com/reglet-dev/nu-plugin-lua/domain/errors"
	"github.com/reglet-dev/nu-plugin-lua/session"
)

// Command names.
const (
	NewName   = "lua new"
	EvalName  = "lua eval"
	CloseName = "lua close"
)

// Instance resolves a Lua custom value to its live session. Values that are
// not a Lua custom value fail with a type mismatch; handles whose session is
// gone fail with *errors.InvalidHandleError.
func Instance(reg *session.Registry) args.Extractor[*session.Session] {
	return args.Func(entities.ShapeAny, func(v entities.Value) (*session.Session, error) {
		p, ok := custom.FromValue(v)
		if !ok {
			return nil, &errors.TypeMismatchError{Expected: "lua instance", Span: v.Span()}
		}
		h, err := p.AsLua(v.Span())
		if err != nil {
			return nil, err
		}
		s, ok := reg.Lookup(h)
		if !ok {
			return nil, &errors.InvalidHandleError{Handle: h.String(), Span: v.Span()}
		}
		return s, nil
	})
}

// Handle is like Instance but only checks the value's shape, for commands
// that must also accept handles whose session is already gone.
func Handle() args.Extractor[session.Handle] {
	return args.Func(entities.ShapeAny, func(v entities.Value) (session.Handle, error) {
		p, ok := custom.FromValue(v)
		if !ok {
			return session.Handle{}, &errors.TypeMismatchError{Expected: "lua instance", Span: v.Span()}
		}
		return p.AsLua(v.Span())
	})
}

// New returns the "lua new" command.
func New(reg *session.Registry, cfg config.Config) *command.Command {
	return command.New(NewName, "create a new lua instance").
		Run(func(ctx context.Context, req *command.Request, _ args.Tuple0) (entities.Value, error) {
			if cfg.DisableGC && req.Host != nil {
				// sessions live in this process; the host must not stop it
				if err := req.Host.SetGCDisabled(true); err != nil {
					return entities.Value{}, fmt.Errorf("disable plugin gc: %w", err)
				}
			}
			h, _ := reg.Create()
			return entities.NewCustom(custom.NewLua(h), req.Head()), nil
		})
}

// Eval returns the "lua eval" command.
func Eval(reg *session.Registry) *command.Command {
	return command.With2(
		command.With1(command.New(EvalName, "evaluate lua to a nushell value"),
			args.Arg("lua", "the lua state", Instance(reg))),
		args.Arg("code", "the lua code to evaluate", args.String()),
	).Run(func(ctx context.Context, req *command.Request, in args.Tuple2[*session.Session, string]) (entities.Value, error) {
		v, err := in.First.Eval(in.Second)
		if err != nil {
			return entities.Value{}, err
		}
		return v.WithSpan(req.Head()), nil
	})
}

// Close returns the "lua close" command. Closing a session that is already
// gone is not an error.
func Close(reg *session.Registry) *command.Command {
	return command.With1(command.New(CloseName, "discard a lua instance"),
		args.Arg("lua", "the lua state", Handle()),
	).Run(func(ctx context.Context, req *command.Request, in args.Tuple1[session.Handle]) (entities.Value, error) {
		reg.Destroy(in.First)
		return entities.NewNothing(req.Head()), nil
	})
}

// Bundle returns all lua commands.
func Bundle(reg *session.Registry, cfg config.Config) command.Bundle {
	return command.NewBundle(New(reg, cfg), Eval(reg), Close(reg))
}
