package wrapper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
	"github.com/rise-and-shine/cmdpipe/cqrs/command/wrapper"
	"github.com/rise-and-shine/cmdpipe/observability/logger"
)

type createUser struct {
	Name string
}

func handlerReturning(res command.Result, err error) command.Handler[createUser] {
	return command.HandlerFunc[createUser](func(context.Context, createUser) (command.Result, error) {
		return res, err
	})
}

func outputHandlerReturning(res command.ResultOf[int], err error) command.OutputHandler[createUser, int] {
	return command.OutputHandlerFunc[createUser, int](func(context.Context, createUser) (command.ResultOf[int], error) {
		return res, err
	})
}

func panicking(v any) command.Handler[createUser] {
	return command.HandlerFunc[createUser](func(context.Context, createUser) (command.Result, error) {
		panic(v)
	})
}

func TestTimeoutWrapper(t *testing.T) {
	var deadline time.Time
	var ok bool
	core := command.HandlerFunc[createUser](func(ctx context.Context, _ createUser) (command.Result, error) {
		deadline, ok = ctx.Deadline()
		return command.Success(), nil
	})

	h := command.Chain[createUser](core, wrapper.NewTimeoutWrapper[createUser](time.Minute))
	_, err := h.Handle(t.Context(), createUser{})
	require.NoError(t, err)

	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestTimeoutOutputWrapper_Expires(t *testing.T) {
	core := command.OutputHandlerFunc[createUser, int](func(ctx context.Context, _ createUser) (command.ResultOf[int], error) {
		<-ctx.Done()
		return command.ResultOf[int]{}, ctx.Err()
	})

	h := command.ChainOutput[createUser, int](core, wrapper.NewTimeoutOutputWrapper[createUser, int](10*time.Millisecond))
	_, err := h.Handle(t.Context(), createUser{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFullPipeline_FaultNeverEscapes(t *testing.T) {
	log := logger.NewNop()
	uow := newUnitOfWork(t)
	uow.expectRollback()

	h := command.Chain[createUser](
		handlerReturning(command.Result{}, errors.New("db down")),
		wrapper.NewMetaWrapper[createUser](command.ModeFullPipelineOnly),
		wrapper.NewTracingWrapper[createUser](),
		wrapper.NewLoggerWrapper[createUser](log),
		wrapper.NewRecoveryWrapper[createUser](log),
		wrapper.NewSavingWrapper[createUser](log, uow),
		wrapper.NewValidatingWrapper[createUser](command.ValidatorFunc[createUser](
			func(context.Context, createUser) (command.Result, error) { return command.Success(), nil },
		)),
	)

	res, err := h.Handle(t.Context(), createUser{Name: "ann"})
	require.NoError(t, err)
	assert.False(t, res.IsSuccess())
	assert.Equal(t, []string{
		"Execution of command createUser failed due to exception: db down",
	}, res.Errors())
}
