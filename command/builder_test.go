package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/nu-plugin-lua/args"
	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
	"github.com/reglet-dev/nu-plugin-lua/domain/errors"
	"github.com/reglet-dev/nu-plugin-lua/internal/testutil"
)

func TestBuilder_NoArguments(t *testing.T) {
	called := false
	cmd := New("lua new", "create a new lua instance").
		Run(func(ctx context.Context, req *Request, _ args.Tuple0) (entities.Value, error) {
			called = true
			return entities.NewString("ok", req.Head()), nil
		})

	assert.Equal(t, "lua new", cmd.Name())
	assert.Equal(t, "create a new lua instance", cmd.Description())
	testutil.AssertSignatureArity(t, cmd.Signature())

	v, err := cmd.Run(context.Background(), &testutil.FakeHost{}, nil)
	require.NoError(t, err)
	assert.True(t, called)
	testutil.AssertValue(t, "ok", v)
}

func TestBuilder_TypedArguments(t *testing.T) {
	var got args.Tuple2[string, int64]
	cmd := With2(
		With1(New("repeat", "repeat a string"),
			args.Arg("text", "what to repeat", args.String())),
		args.Arg("times", "how often", args.Int()),
	).Run(func(ctx context.Context, req *Request, in args.Tuple2[string, int64]) (entities.Value, error) {
		got = in
		return entities.NewNothing(req.Head()), nil
	})

	sig := cmd.Signature()
	testutil.AssertSignatureArity(t, sig, "text", "times")
	assert.Equal(t, entities.ShapeString, sig.Required[0].Shape)
	assert.Equal(t, entities.ShapeInt, sig.Required[1].Shape)
	assert.Equal(t, "how often", sig.Required[1].Description)

	_, err := cmd.Run(context.Background(), nil, &entities.Call{
		Positional: []entities.Value{testutil.Str("ab", 0), entities.NewInt(3, testutil.SpanN(1))},
	})
	require.NoError(t, err)
	assert.Equal(t, "ab", got.First)
	assert.Equal(t, int64(3), got.Second)
}

func TestBuilder_FourArguments(t *testing.T) {
	cmd := With4(
		With3(
			With2(
				With1(New("four", ""), args.Arg("a", "", args.String())),
				args.Arg("b", "", args.Bool())),
			args.Arg("c", "", args.Float())),
		args.Arg("d", "", args.Any()),
	).Run(func(ctx context.Context, req *Request, in args.Tuple4[string, bool, float64, entities.Value]) (entities.Value, error) {
		return in.Fourth, nil
	})

	testutil.AssertSignatureArity(t, cmd.Signature(), "a", "b", "c", "d")

	v, err := cmd.Run(context.Background(), nil, &entities.Call{Positional: []entities.Value{
		testutil.Str("x", 0),
		entities.NewBool(false, testutil.SpanN(1)),
		entities.NewFloat(0.5, testutil.SpanN(2)),
		entities.NewInt(7, testutil.SpanN(3)),
	}})
	require.NoError(t, err)
	testutil.AssertValue(t, int64(7), v)
}

func TestCommand_PropagatesBindingErrors(t *testing.T) {
	handlerCalled := false
	cmd := With2(
		With1(New("eval", ""), args.Arg("lua", "the lua state", args.Any())),
		args.Arg("code", "the lua code to evaluate", args.String()),
	).Run(func(ctx context.Context, req *Request, in args.Tuple2[entities.Value, string]) (entities.Value, error) {
		handlerCalled = true
		return entities.Value{}, nil
	})

	t.Run("missing", func(t *testing.T) {
		_, err := cmd.Run(context.Background(), nil, &entities.Call{
			Positional: []entities.Value{testutil.Str("state", 0)},
		})
		missing := testutil.RequireErrorAs[*errors.MissingArgumentError](t, err)
		assert.Equal(t, 1, missing.Index)
		assert.Equal(t, "code", missing.Name)
		assert.Equal(t, "missing positional arg 1 (code)", err.Error())
	})

	t.Run("mismatch", func(t *testing.T) {
		_, err := cmd.Run(context.Background(), nil, &entities.Call{
			Positional: []entities.Value{testutil.Str("state", 0), entities.NewInt(1, testutil.SpanN(1))},
		})
		mismatch := testutil.RequireErrorAs[*errors.TypeMismatchError](t, err)
		assert.Equal(t, testutil.SpanN(1), mismatch.Span)
	})

	assert.False(t, handlerCalled)
}

func TestCommand_SignatureIsCopy(t *testing.T) {
	cmd := With1(New("one", ""), args.Arg("a", "", args.String())).
		Run(func(ctx context.Context, req *Request, in args.Tuple1[string]) (entities.Value, error) {
			return entities.Value{}, nil
		})

	sig := cmd.Signature()
	sig.Required[0].Name = "changed"

	assert.Equal(t, "a", cmd.Signature().Required[0].Name)
}

func TestBuilder_NilHandlerPanics(t *testing.T) {
	assert.Panics(t, func() {
		New("broken", "").Run(nil)
	})
}
