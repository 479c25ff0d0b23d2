package alert_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/cmdpipe/observability/alert"
)

func TestNewProvider_Disabled(t *testing.T) {
	p, err := alert.NewProvider(alert.Config{Disable: true}, "svc", "v1")
	require.NoError(t, err)
	assert.Equal(t, alert.NoopProvider(), p)
	assert.NoError(t, p.SendError(t.Context(), "CODE", "msg", "op", nil))
}

func TestSentinelProvider_Disabled(t *testing.T) {
	p, err := alert.NewSentinelProvider(alert.Config{Disable: true}, "svc", "v1")
	require.NoError(t, err)

	assert.NoError(t, p.SendError(t.Context(), "CODE", "msg", "op", nil))
	assert.NoError(t, p.Close())
}

func TestSentinelProvider_Unreachable(t *testing.T) {
	p, err := alert.NewSentinelProvider(alert.Config{
		SentinelHost: "127.0.0.1",
		SentinelPort: 1,
		SendTimeout:  500 * time.Millisecond,
	}, "svc", "v1")
	require.NoError(t, err)
	defer p.Close()

	details := map[string]string{"command_name": "createUser"}
	err = p.SendError(t.Context(), "CODE", "msg", "command: createUser", details)
	require.Error(t, err)
	assert.NotContains(t, details, "service_version")
}

func TestRecorder(t *testing.T) {
	var r alert.Recorder
	details := map[string]string{"k": "v"}

	require.NoError(t, r.SendError(t.Context(), "DB_DOWN", "connection refused", "command: createUser", details))
	details["k"] = "changed"

	alerts := r.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, alert.Alert{
		Code:      "DB_DOWN",
		Message:   "connection refused",
		Operation: "command: createUser",
		Details:   map[string]string{"k": "v"},
	}, alerts[0])
}

func TestGlobal(t *testing.T) {
	assert.NoError(t, alert.SendError(t.Context(), "CODE", "msg", "op", nil))

	require.NoError(t, alert.SetGlobal(alert.Config{Disable: true}))
	assert.Error(t, alert.SetGlobal(alert.Config{Disable: true}))
	assert.Equal(t, alert.NoopProvider(), alert.Global())
}
