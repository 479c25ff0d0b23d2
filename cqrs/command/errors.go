package command

import (
	"fmt"

	"github.com/code19m/errx"
)

// Error codes for command handling.
const (
	// CodeNoHandlerRegistered is returned when a command is sent but no handler is registered for its type.
	CodeNoHandlerRegistered = "NO_HANDLER_REGISTERED"

	// CodeHandlerTypeMismatch is returned when a resolver returns a value that is not a handler for the requested type.
	CodeHandlerTypeMismatch = "HANDLER_TYPE_MISMATCH"

	// CodeNilArgument is returned when a required argument is nil.
	CodeNilArgument = "NIL_ARGUMENT"

	// CodeCommandFailed is used when a failed Result is converted into an error.
	CodeCommandFailed = "COMMAND_FAILED"
)

// IsNoHandler reports whether err signals that no handler is registered for a command.
func IsNoHandler(err error) bool {
	return errx.IsCodeIn(err, CodeNoHandlerRegistered)
}

func noHandlerError(key Key) error {
	return errx.New(
		fmt.Sprintf(
			"cannot handle a command of type %s as no handler is registered; register its handler in the pipeline",
			key.Name(),
		),
		errx.WithCode(CodeNoHandlerRegistered),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{
			"command_type": key.Name(),
			"key":          key.String(),
		}),
	)
}

func handlerTypeMismatchError(key Key, got any) error {
	return errx.New(
		fmt.Sprintf("resolver returned %T for %s", got, key),
		errx.WithCode(CodeHandlerTypeMismatch),
		errx.WithType(errx.T_Internal),
	)
}

func nilArgumentError(name string) error {
	return errx.New(
		fmt.Sprintf("argument %s must not be nil", name),
		errx.WithCode(CodeNilArgument),
		errx.WithType(errx.T_Internal),
	)
}
