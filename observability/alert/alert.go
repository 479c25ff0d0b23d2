// Package alert reports command faults to an external error tracker.
//
// The default tracker is Sentinel, reached over gRPC. When alerting is disabled or
// SetGlobal was never called, a no-op provider is used.
package alert

import (
	"context"
	"sync"
)

// Provider defines the interface for sending error alerts.
type Provider interface {
	// SendError sends an error alert.
	// errCode identifies the error, msg is a human readable message, operation names
	// the command or request that failed and details carries extra string context.
	SendError(ctx context.Context, errCode, msg, operation string, details map[string]string) error
}

// NewProvider creates the provider selected by cfg.
// If cfg.Disable is true, it returns a no-op provider.
func NewProvider(cfg Config, serviceName, serviceVersion string) (Provider, error) {
	if cfg.Disable {
		return NoopProvider(), nil
	}
	return NewSentinelProvider(cfg, serviceName, serviceVersion)
}

// NoopProvider returns a provider that drops every alert.
func NoopProvider() Provider {
	return noOpProvider{}
}

type noOpProvider struct{}

func (noOpProvider) SendError(context.Context, string, string, string, map[string]string) error {
	return nil
}

// Recorder is an in-memory provider that keeps every alert it receives.
// It is useful in tests and local runs where no Sentinel instance is available.
type Recorder struct {
	mu     sync.Mutex
	alerts []Alert
}

// Alert is a single alert captured by a Recorder.
type Alert struct {
	Code      string
	Message   string
	Operation string
	Details   map[string]string
}

// SendError records the alert.
func (r *Recorder) SendError(_ context.Context, errCode, msg, operation string, details map[string]string) error {
	copied := make(map[string]string, len(details))
	for k, v := range details {
		copied[k] = v
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, Alert{Code: errCode, Message: msg, Operation: operation, Details: copied})
	return nil
}

// Alerts returns a snapshot of the recorded alerts.
func (r *Recorder) Alerts() []Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Alert(nil), r.alerts...)
}
