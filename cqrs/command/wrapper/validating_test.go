package wrapper_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
	"github.com/rise-and-shine/cmdpipe/cqrs/command/wrapper"
)

func nameRequired() command.Validator[createUser] {
	return command.ValidatorFunc[createUser](func(_ context.Context, cmd createUser) (command.Result, error) {
		if cmd.Name == "" {
			return command.Failure("name is required"), nil
		}
		return command.Success(), nil
	})
}

func countingHandler(calls *int) command.Handler[createUser] {
	return command.HandlerFunc[createUser](func(context.Context, createUser) (command.Result, error) {
		*calls++
		return command.Success(), nil
	})
}

func TestValidatingWrapper_NilValidatorPanics(t *testing.T) {
	assert.Panics(t, func() { wrapper.NewValidatingWrapper[createUser](nil) })
	assert.Panics(t, func() { wrapper.NewValidatingOutputWrapper[createUser, int](nil) })
}

func TestValidatingWrapper_ShortCircuits(t *testing.T) {
	calls := 0
	h := command.Chain(countingHandler(&calls), wrapper.NewValidatingWrapper(nameRequired()))

	res, err := h.Handle(t.Context(), createUser{})
	require.NoError(t, err)

	assert.Equal(t, command.Failure("name is required"), res)
	assert.Zero(t, calls)
}

func TestValidatingWrapper_PassesValidCommand(t *testing.T) {
	calls := 0
	core := command.HandlerFunc[createUser](func(_ context.Context, cmd createUser) (command.Result, error) {
		calls++
		return command.Failure("from handler: " + cmd.Name), nil
	})
	h := command.Chain[createUser](core, wrapper.NewValidatingWrapper(nameRequired()))

	res, err := h.Handle(t.Context(), createUser{Name: "ann"})
	require.NoError(t, err)

	assert.Equal(t, command.Failure("from handler: ann"), res)
	assert.Equal(t, 1, calls)
}

func TestValidatingWrapper_ValidatorFaultPropagates(t *testing.T) {
	fault := errors.New("schema unavailable")
	v := command.ValidatorFunc[createUser](func(context.Context, createUser) (command.Result, error) {
		return command.Result{}, fault
	})

	calls := 0
	h := command.Chain(countingHandler(&calls), wrapper.NewValidatingWrapper[createUser](v))

	_, err := h.Handle(t.Context(), createUser{Name: "ann"})
	assert.ErrorIs(t, err, fault)
	assert.Zero(t, calls)
}

func TestValidatingOutputWrapper(t *testing.T) {
	t.Run("failure converts with zero output", func(t *testing.T) {
		h := command.ChainOutput(outputHandlerReturning(command.WithOutput(9), nil),
			wrapper.NewValidatingOutputWrapper[createUser, int](nameRequired()))

		res, err := h.Handle(t.Context(), createUser{})
		require.NoError(t, err)
		assert.False(t, res.IsSuccess())
		assert.Equal(t, []string{"name is required"}, res.Errors())
		assert.Zero(t, res.Output())
	})

	t.Run("forced failure without messages stays failed", func(t *testing.T) {
		v := command.ValidatorFunc[createUser](func(context.Context, createUser) (command.Result, error) {
			return command.Failure(), nil
		})
		h := command.ChainOutput(outputHandlerReturning(command.WithOutput(9), nil),
			wrapper.NewValidatingOutputWrapper[createUser, int](v))

		res, err := h.Handle(t.Context(), createUser{Name: "ann"})
		require.NoError(t, err)
		assert.False(t, res.IsSuccess())
	})

	t.Run("valid command reaches handler", func(t *testing.T) {
		h := command.ChainOutput(outputHandlerReturning(command.WithOutput(9), nil),
			wrapper.NewValidatingOutputWrapper[createUser, int](nameRequired()))

		res, err := h.Handle(t.Context(), createUser{Name: "ann"})
		require.NoError(t, err)
		assert.Equal(t, 9, res.Output())
	})
}
