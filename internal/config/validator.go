package config

import (
	"fmt"
	"strings"
)

// Validate checks the settings and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Label == "" {
		errs = append(errs, "label must not be empty")
	}
	if c.PeerLabel == "" {
		errs = append(errs, "peer_label must not be empty")
	}
	if c.Label != "" && c.Label == c.PeerLabel {
		errs = append(errs, fmt.Sprintf("label and peer_label must differ, both are %q", c.Label))
	}
	if c.RecordPath == "" || c.PeerRecordPath == "" {
		errs = append(errs, "record_path and peer_record_path must be set")
	}
	if c.RecordPath != "" && c.RecordPath == c.PeerRecordPath {
		errs = append(errs, fmt.Sprintf("record_path and peer_record_path must differ, both are %q", c.RecordPath))
	}
	for _, limit := range c.SieveLimits {
		if limit <= 0 {
			errs = append(errs, fmt.Sprintf("sieve limits must be positive, got: %d", limit))
			break
		}
	}
	if c.ProbeInterval <= 0 {
		errs = append(errs, fmt.Sprintf("probe.interval must be positive, got: %v", c.ProbeInterval))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("http.timeout must be positive, got: %v", c.HTTPTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
