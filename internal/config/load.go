package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CROSSBENCH_LABEL.
const EnvPrefix = "CROSSBENCH"

// Default values for every key.
const (
	DefaultLabel          = "Go"
	DefaultPeerLabel      = "Python"
	DefaultRecordPath     = "go_benchmarks.csv"
	DefaultPeerRecordPath = "python_benchmarks.csv"
	DefaultTablePath      = "performance_comparison.csv"
	DefaultChartPath      = "performance_comparison.png"
	DefaultDatasetURL     = "https://github.com/fivethirtyeight/data/raw/refs/heads/master/goose/goose_rawdata.csv"
	DefaultDatasetPath    = "data/goose_rawdata.csv"
	DefaultDatabasePath   = "GooseDB.db"
)

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("label", DefaultLabel)
	viper.SetDefault("peer_label", DefaultPeerLabel)
	viper.SetDefault("record_path", DefaultRecordPath)
	viper.SetDefault("peer_record_path", DefaultPeerRecordPath)
	viper.SetDefault("report.table_path", DefaultTablePath)
	viper.SetDefault("report.chart_path", DefaultChartPath)
	viper.SetDefault("dataset.url", DefaultDatasetURL)
	viper.SetDefault("dataset.path", DefaultDatasetPath)
	viper.SetDefault("database.path", DefaultDatabasePath)
	viper.SetDefault("workloads", []string{"goose"})
	viper.SetDefault("sieve.limits", []int{100, 1000, 10000, 100000, 1000000})
	viper.SetDefault("probe.interval", "1ms")
	viper.SetDefault("http.timeout", "60s")
	viper.SetDefault("metrics.textfile", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
}

// Load initializes the configuration from defaults, .env, an optional YAML
// file and CROSSBENCH_* environment variables. Only an explicitly named config
// file that cannot be read is an error.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".crossbench")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}
