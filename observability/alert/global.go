package alert

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rise-and-shine/cmdpipe/meta"
)

//nolint:gochecknoglobals // global alert provider singleton
var (
	global   atomic.Value // stores Provider
	setOnce  sync.Once
	initOnce sync.Once
)

// SetGlobal builds the provider for cfg and installs it as the global provider.
// The service identity is taken from meta.Service, so meta.SetServiceInfo should be called first.
// It returns an error if the provider cannot be built or if SetGlobal was already called.
func SetGlobal(cfg Config) error {
	var err error
	called := false

	setOnce.Do(func() {
		initOnce.Do(func() {})
		called = true

		name, version := meta.Service()
		provider, providerErr := NewProvider(cfg, name, version)
		if providerErr != nil {
			err = fmt.Errorf("[alert]: failed to initialize global alert provider: %w", providerErr)
			provider = NoopProvider()
		}
		global.Store(&holder{provider})
	})

	if !called {
		return errors.New("[alert]: SetGlobal can only be called once")
	}
	return err
}

// Global returns the global provider, a no-op one if SetGlobal was never called.
func Global() Provider {
	if h, ok := global.Load().(*holder); ok {
		return h.Provider
	}
	initOnce.Do(func() {
		global.Store(&holder{NoopProvider()})
	})
	h, ok := global.Load().(*holder)
	if !ok {
		panic("[alert]: global contains invalid type")
	}
	return h.Provider
}

// SendError sends an alert through the global provider.
func SendError(ctx context.Context, errCode, msg, operation string, details map[string]string) error {
	return Global().SendError(ctx, errCode, msg, operation, details)
}

// holder keeps the stored concrete type stable across providers.
type holder struct {
	Provider
}
