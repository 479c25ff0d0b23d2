// Package command defines interfaces and types for CQRS command handling.
//
// A command is submitted through a Dispatcher, which resolves exactly one handler chain
// for the command's concrete type and returns the chain's Result. Cross-cutting concerns
// such as validation and fault containment are applied by wrappers composed around the
// core handler (see package wrapper), never by the dispatcher itself.
package command

import "context"

// Command is the marker every command satisfies.
//
// It carries no behavior. The concrete type is the identity used for handler resolution.
type Command any

// Handler processes a command of type C and reports the outcome as a Result.
//
// The returned error is the fault channel: it signals a defect or an aborted operation,
// not a business failure. Business failures are reported through a failed Result.
type Handler[C Command] interface {
	// Handle processes the command.
	//
	// Parameters:
	//   - ctx: Context for cancellation and deadlines.
	//   - cmd: The command.
	//
	// Returns the command result and a fault, if any.
	Handle(ctx context.Context, cmd C) (Result, error)
}

// OutputHandler processes a command of type C and returns an output of type O on success.
type OutputHandler[C Command, O any] interface {
	// Handle processes the command and returns a result carrying the output.
	Handle(ctx context.Context, cmd C) (ResultOf[O], error)
}

// Validator checks whether a command is well-formed before it reaches its handler.
//
// Validate must not mutate the command. A failed Result carries the validation messages;
// the error return is reserved for faults.
type Validator[C Command] interface {
	Validate(ctx context.Context, cmd C) (Result, error)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc[C Command] func(ctx context.Context, cmd C) (Result, error)

// Handle calls f(ctx, cmd).
func (f HandlerFunc[C]) Handle(ctx context.Context, cmd C) (Result, error) {
	return f(ctx, cmd)
}

// OutputHandlerFunc adapts an ordinary function to the OutputHandler interface.
type OutputHandlerFunc[C Command, O any] func(ctx context.Context, cmd C) (ResultOf[O], error)

// Handle calls f(ctx, cmd).
func (f OutputHandlerFunc[C, O]) Handle(ctx context.Context, cmd C) (ResultOf[O], error) {
	return f(ctx, cmd)
}

// ValidatorFunc adapts an ordinary function to the Validator interface.
type ValidatorFunc[C Command] func(ctx context.Context, cmd C) (Result, error)

// Validate calls f(ctx, cmd).
func (f ValidatorFunc[C]) Validate(ctx context.Context, cmd C) (Result, error) {
	return f(ctx, cmd)
}

// WrapFunc defines a middleware function for wrapping command handlers.
//
// It takes a Handler and returns a wrapped Handler, enabling cross-cutting concerns.
type WrapFunc[C Command] func(Handler[C]) Handler[C]

// OutputWrapFunc is the WrapFunc counterpart for output-bearing handlers.
type OutputWrapFunc[C Command, O any] func(OutputHandler[C, O]) OutputHandler[C, O]
