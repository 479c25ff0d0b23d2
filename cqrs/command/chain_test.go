package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
)

func tagWrap(name string, trail *[]string) command.WrapFunc[createUser] {
	return func(next command.Handler[createUser]) command.Handler[createUser] {
		return command.HandlerFunc[createUser](func(ctx context.Context, cmd createUser) (command.Result, error) {
			*trail = append(*trail, name)
			return next.Handle(ctx, cmd)
		})
	}
}

func TestChain_FirstWrapIsOutermost(t *testing.T) {
	var trail []string
	core := command.HandlerFunc[createUser](func(context.Context, createUser) (command.Result, error) {
		trail = append(trail, "core")
		return command.Success(), nil
	})

	h := command.Chain[createUser](core, tagWrap("outer", &trail), tagWrap("inner", &trail))

	_, err := h.Handle(t.Context(), createUser{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "core"}, trail)
}

func TestChain_NoWrapsReturnsHandler(t *testing.T) {
	core := command.HandlerFunc[createUser](func(context.Context, createUser) (command.Result, error) {
		return command.Failure("x"), nil
	})

	res, err := command.Chain[createUser](core).Handle(t.Context(), createUser{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, res.Errors())
}

func TestChainOutput(t *testing.T) {
	core := command.OutputHandlerFunc[createUser, int](func(context.Context, createUser) (command.ResultOf[int], error) {
		return command.WithOutput(1), nil
	})
	double := func(next command.OutputHandler[createUser, int]) command.OutputHandler[createUser, int] {
		return command.OutputHandlerFunc[createUser, int](
			func(ctx context.Context, cmd createUser) (command.ResultOf[int], error) {
				res, err := next.Handle(ctx, cmd)
				return command.WithOutput(res.Output() * 2), err
			},
		)
	}

	res, err := command.ChainOutput[createUser, int](core, double, double).Handle(t.Context(), createUser{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Output())
}

func TestAsHandler(t *testing.T) {
	t.Run("drops output and keeps status", func(t *testing.T) {
		out := command.OutputHandlerFunc[createUser, string](func(context.Context, createUser) (command.ResultOf[string], error) {
			return command.WithOutput("id-1"), nil
		})

		res, err := command.AsHandler[createUser, string](out).Handle(t.Context(), createUser{})
		require.NoError(t, err)
		assert.True(t, res.IsSuccess())
		assert.Empty(t, res.Errors())
	})

	t.Run("keeps errors and fault", func(t *testing.T) {
		fault := errors.New("boom")
		out := command.OutputHandlerFunc[createUser, string](func(context.Context, createUser) (command.ResultOf[string], error) {
			return command.FailureOf[string]("bad"), fault
		})

		res, err := command.AsHandler[createUser, string](out).Handle(t.Context(), createUser{})
		assert.ErrorIs(t, err, fault)
		assert.False(t, res.IsSuccess())
		assert.Equal(t, []string{"bad"}, res.Errors())
	})
}
