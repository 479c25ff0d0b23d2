// Package pipeline is the registration side of command handling.
//
// A Pipeline stores one handler per command type together with the wrappers that
// decorate it, and implements command.Resolver. Each registration is composed into two
// chains: the core chain built from wrappers tagged command.ModeCore, and the full chain
// that additionally applies wrappers tagged command.ModeFullPipelineOnly on the outside.
// command.Send resolves the full chain, command.Invoke the core chain.
package pipeline

import (
	"fmt"
	"slices"
	"sync"

	"github.com/code19m/errx"
	"github.com/samber/lo"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
	"github.com/rise-and-shine/cmdpipe/observability/logger"
)

// CodeHandlerAlreadyRegistered is returned when a second handler is registered for a command type.
const CodeHandlerAlreadyRegistered = "HANDLER_ALREADY_REGISTERED"

// Pipeline is a registry of composed handler chains.
// Registration and resolution are safe for concurrent use.
type Pipeline struct {
	mu      sync.RWMutex
	entries map[command.Key]chains
	logger  logger.Logger
}

// chains holds the prebuilt handler per execution mode.
type chains map[command.ExecutionMode]any

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used to report registrations.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		entries: make(map[command.Key]chains),
		logger:  logger.Global(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("cqrs.pipeline")
	return p
}

// Resolve implements command.Resolver.
func (p *Pipeline) Resolve(key command.Key, mode command.ExecutionMode) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	c, ok := p.entries[key]
	if !ok {
		return nil, false
	}
	h, ok := c[mode]
	return h, ok
}

// Registered returns the sorted names of all registered handler keys.
func (p *Pipeline) Registered() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := lo.Map(lo.Keys(p.entries), func(k command.Key, _ int) string {
		return k.String()
	})
	slices.Sort(names)
	return names
}

// Dispatcher returns a dispatcher resolving from p.
func (p *Pipeline) Dispatcher() *command.Dispatcher {
	return command.NewDispatcher(p)
}

func (p *Pipeline) add(entries map[command.Key]chains) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key := range entries {
		if _, exists := p.entries[key]; exists {
			return errx.New(
				fmt.Sprintf("[pipeline]: handler for %s is already registered", key),
				errx.WithCode(CodeHandlerAlreadyRegistered),
				errx.WithType(errx.T_Conflict),
				errx.WithDetails(errx.D{"command_type": key.Name()}),
			)
		}
	}

	for key, c := range entries {
		p.entries[key] = c
		p.logger.With("key", key.String()).Debug("command handler registered")
	}
	return nil
}
