package command

import (
	"context"
	"fmt"

	"github.com/reglet-dev/nu-plugin-lua/args"
	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
)

// Builder accumulates a command declaration. T is the tuple the final handler
// receives; every WithN call returns a builder whose T has one more element,
// so the handler passed to Run is checked against the declaration by the
// compiler.
//
// Usage:
//
//	eval := command.With2(
//	    command.With1(command.New("lua eval", "evaluate lua to a nushell value"),
//	        args.Arg("lua", "the lua state", lua.Instance(sessions))),
//	    args.Arg("code", "the lua code to evaluate", args.String()),
//	).Run(func(ctx context.Context, req *command.Request, in args.Tuple2[*session.Session, string]) (entities.Value, error) {
//	    return in.First.Eval(in.Second)
//	})
type Builder[T any] struct {
	list        args.List[T]
	name        string
	description string
}

// New starts a command declaration with no arguments.
func New(name, description string) *Builder[args.Tuple0] {
	return &Builder[args.Tuple0]{
		name:        name,
		description: description,
		list:        args.Empty(),
	}
}

// With1 declares the first argument.
func With1[A any](b *Builder[args.Tuple0], p args.Param[A]) *Builder[args.Tuple1[A]] {
	return extend(b, args.Append1(b.list, p))
}

// With2 declares the second argument.
func With2[A, B any](b *Builder[args.Tuple1[A]], p args.Param[B]) *Builder[args.Tuple2[A, B]] {
	return extend(b, args.Append2(b.list, p))
}

// With3 declares the third argument.
func With3[A, B, C any](b *Builder[args.Tuple2[A, B]], p args.Param[C]) *Builder[args.Tuple3[A, B, C]] {
	return extend(b, args.Append3(b.list, p))
}

// With4 declares the fourth argument.
func With4[A, B, C, D any](b *Builder[args.Tuple3[A, B, C]], p args.Param[D]) *Builder[args.Tuple4[A, B, C, D]] {
	return extend(b, args.Append4(b.list, p))
}

func extend[I, O any](b *Builder[I], list args.List[O]) *Builder[O] {
	return &Builder[O]{
		name:        b.name,
		description: b.description,
		list:        list,
	}
}

// Run finalizes the declaration with its handler.
func (b *Builder[T]) Run(h Handler[T]) *Command {
	if h == nil {
		panic(fmt.Sprintf("command %q: nil handler", b.name))
	}

	list := b.list
	return &Command{
		name:        b.name,
		description: b.description,
		args:        args.Signatures(list.Slots()),
		run: func(ctx context.Context, req *Request) (entities.Value, error) {
			in, err := list.FromValues(req.Call.Positional)
			if err != nil {
				return entities.Value{}, err
			}
			return h(ctx, req, in)
		},
	}
}
