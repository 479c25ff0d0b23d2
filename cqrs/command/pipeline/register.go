package pipeline

import (
	"github.com/code19m/errx"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
)

// Wrappers collects the wrappers of a plain handler by execution mode.
type Wrappers[C command.Command] struct {
	core []command.WrapFunc[C]
	full []command.WrapFunc[C]
}

// HandlerOption configures the wrappers of a plain handler registration.
type HandlerOption[C command.Command] func(*Wrappers[C])

// WithWrappers adds wraps for mode. Wraps tagged command.ModeCore apply in every mode,
// wraps tagged command.ModeFullPipelineOnly only when resolving the full pipeline.
// Within a mode the first wrap is the outermost.
func WithWrappers[C command.Command](mode command.ExecutionMode, wraps ...command.WrapFunc[C]) HandlerOption[C] {
	return func(w *Wrappers[C]) {
		switch mode {
		case command.ModeCore:
			w.core = append(w.core, wraps...)
		case command.ModeFullPipelineOnly:
			w.full = append(w.full, wraps...)
		}
	}
}

// Register composes h with its wrappers and registers it for commands of type C.
func Register[C command.Command](p *Pipeline, h command.Handler[C], opts ...HandlerOption[C]) error {
	if h == nil {
		return errx.New("[pipeline]: handler for "+command.TypeName[C]()+" must not be nil",
			errx.WithCode(command.CodeNilArgument))
	}

	var w Wrappers[C]
	for _, opt := range opts {
		opt(&w)
	}

	core := command.Chain(h, w.core...)
	full := command.Chain(core, w.full...)

	return p.add(map[command.Key]chains{
		command.KeyFor[C](): {
			command.ModeCore:             core,
			command.ModeFullPipelineOnly: full,
		},
	})
}

// MustRegister is Register that panics on error.
func MustRegister[C command.Command](p *Pipeline, h command.Handler[C], opts ...HandlerOption[C]) {
	if err := Register(p, h, opts...); err != nil {
		panic(err)
	}
}

// OutputWrappers collects the wrappers of an output handler by execution mode.
type OutputWrappers[C command.Command, O any] struct {
	core []command.OutputWrapFunc[C, O]
	full []command.OutputWrapFunc[C, O]
}

// OutputHandlerOption configures the wrappers of an output handler registration.
type OutputHandlerOption[C command.Command, O any] func(*OutputWrappers[C, O])

// WithOutputWrappers is WithWrappers for output handlers.
func WithOutputWrappers[C command.Command, O any](
	mode command.ExecutionMode,
	wraps ...command.OutputWrapFunc[C, O],
) OutputHandlerOption[C, O] {
	return func(w *OutputWrappers[C, O]) {
		switch mode {
		case command.ModeCore:
			w.core = append(w.core, wraps...)
		case command.ModeFullPipelineOnly:
			w.full = append(w.full, wraps...)
		}
	}
}

// RegisterOutput composes h with its wrappers and registers it for commands of type C.
// The chain is reachable both as an output handler and, through command.AsHandler,
// as a plain handler, so command.Send works for output-bearing commands too.
func RegisterOutput[C command.Command, O any](
	p *Pipeline,
	h command.OutputHandler[C, O],
	opts ...OutputHandlerOption[C, O],
) error {
	if h == nil {
		return errx.New("[pipeline]: handler for "+command.TypeName[C]()+" must not be nil",
			errx.WithCode(command.CodeNilArgument))
	}

	var w OutputWrappers[C, O]
	for _, opt := range opts {
		opt(&w)
	}

	core := command.ChainOutput(h, w.core...)
	full := command.ChainOutput(core, w.full...)

	return p.add(map[command.Key]chains{
		command.OutputKeyFor[C, O](): {
			command.ModeCore:             core,
			command.ModeFullPipelineOnly: full,
		},
		command.KeyFor[C](): {
			command.ModeCore:             command.AsHandler(core),
			command.ModeFullPipelineOnly: command.AsHandler(full),
		},
	})
}

// MustRegisterOutput is RegisterOutput that panics on error.
func MustRegisterOutput[C command.Command, O any](
	p *Pipeline,
	h command.OutputHandler[C, O],
	opts ...OutputHandlerOption[C, O],
) {
	if err := RegisterOutput(p, h, opts...); err != nil {
		panic(err)
	}
}
