// Package config loads crossbench settings with viper.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the typed view of the viper settings.
type Config struct {
	Label          string
	PeerLabel      string
	RecordPath     string
	PeerRecordPath string
	TablePath      string
	ChartPath      string
	DatasetURL     string
	DatasetPath    string
	DatabasePath   string
	Workloads      []string
	SieveLimits    []int
	ProbeInterval  time.Duration
	HTTPTimeout    time.Duration
	MetricsFile    string
	Verbose        bool
	LogFile        string
}

// FromViper reads the current viper state into a Config and validates it.
func FromViper() (*Config, error) {
	limits, err := intList(viper.Get("sieve.limits"))
	if err != nil {
		return nil, fmt.Errorf("invalid sieve.limits: %w", err)
	}

	cfg := &Config{
		Label:          strings.TrimSpace(viper.GetString("label")),
		PeerLabel:      strings.TrimSpace(viper.GetString("peer_label")),
		RecordPath:     viper.GetString("record_path"),
		PeerRecordPath: viper.GetString("peer_record_path"),
		TablePath:      viper.GetString("report.table_path"),
		ChartPath:      viper.GetString("report.chart_path"),
		DatasetURL:     viper.GetString("dataset.url"),
		DatasetPath:    viper.GetString("dataset.path"),
		DatabasePath:   viper.GetString("database.path"),
		Workloads:      splitList(viper.GetStringSlice("workloads")),
		SieveLimits:    limits,
		ProbeInterval:  viper.GetDuration("probe.interval"),
		HTTPTimeout:    viper.GetDuration("http.timeout"),
		MetricsFile:    viper.GetString("metrics.textfile"),
		Verbose:        viper.GetBool("verbose"),
		LogFile:        viper.GetString("log_file"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList flattens comma separated entries, as found in environment values.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func intList(v any) ([]int, error) {
	var raw []string
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []int:
		return x, nil
	case string:
		raw = strings.FieldsFunc(x, func(r rune) bool { return r == ',' || r == ' ' })
	case []string:
		raw = x
	case []any:
		for _, item := range x {
			raw = append(raw, fmt.Sprint(item))
		}
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}

	out := make([]int, 0, len(raw))
	for _, s := range splitList(raw) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
