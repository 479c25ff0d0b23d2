package alert

import "time"

// Config defines how faults are reported to Sentinel.
type Config struct {
	// Disable turns alerting off. No connection is made and every alert is dropped.
	Disable bool `yaml:"disable" default:"false"`

	SentinelHost string `yaml:"sentinel_host" validate:"required_unless=Disable true"`
	SentinelPort int    `yaml:"sentinel_port" validate:"required_unless=Disable true"`

	// SendTimeout bounds a single SendError call.
	SendTimeout time.Duration `yaml:"send_timeout" default:"3s"`
}
