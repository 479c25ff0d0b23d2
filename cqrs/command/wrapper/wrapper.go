// Package wrapper provides middleware wrappers for CQRS command handlers.
//
// Every wrapper has a plain form returning command.WrapFunc and an output form returning
// command.OutputWrapFunc. Wrappers can be composed in any order with command.Chain or
// registered per execution mode in package pipeline. A typical full-pipeline chain is
//
//	meta -> tracing -> logger -> recovery -> metrics -> alert -> saving -> validating -> core
//
// where recovery is the fault boundary: nothing inside it can return an error or panic
// past it.
package wrapper

import (
	"context"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
)

// handleFunc is the shape shared by Handler.Handle and OutputHandler.Handle.
type handleFunc[C command.Command, R command.Shaped] func(ctx context.Context, cmd C) (R, error)

// plain turns a handleFunc decorator into a WrapFunc.
func plain[C command.Command](
	build func(next handleFunc[C, command.Result]) handleFunc[C, command.Result],
) command.WrapFunc[C] {
	return func(next command.Handler[C]) command.Handler[C] {
		return command.HandlerFunc[C](build(next.Handle))
	}
}

// output turns a handleFunc decorator into an OutputWrapFunc.
func output[C command.Command, O any](
	build func(next handleFunc[C, command.ResultOf[O]]) handleFunc[C, command.ResultOf[O]],
) command.OutputWrapFunc[C, O] {
	return func(next command.OutputHandler[C, O]) command.OutputHandler[C, O] {
		return command.OutputHandlerFunc[C, O](build(next.Handle))
	}
}
