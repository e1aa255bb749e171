package config

import "time"

// Timeouts bounds individual API calls. Reads are short, writes longer;
// there is no whole-run deadline.
type Timeouts struct {
	Read  time.Duration `mapstructure:"read" yaml:"read"`
	Write time.Duration `mapstructure:"write" yaml:"write"`
}

func (t *Timeouts) applyDefaults() {
	if t.Read <= 0 {
		t.Read = 30 * time.Second
	}
	if t.Write <= 0 {
		t.Write = 60 * time.Second
	}
}
