package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"crossbench/internal/benchmark"
	"crossbench/internal/config"
	"crossbench/internal/goose"
	"crossbench/internal/report"
	"crossbench/internal/telemetry"
	"crossbench/internal/workload"
)

// datasetStore is the goose store plus its lifecycle.
type datasetStore interface {
	workload.DatasetStore
	Close() error
}

// Factories swapped out in tests.
var (
	newRunnerFunc = func(sampler *benchmark.Sampler, out io.Writer) benchmark.Runner {
		return benchmark.NewSequentialRunner(sampler, out)
	}
	newStoreFunc = func(path string) benchmark.Store {
		return benchmark.NewCSVStore(path)
	}
	newFetcherFunc = func(timeout time.Duration, out io.Writer) workload.Fetcher {
		return goose.NewFetcher(timeout, out)
	}
	openDatasetStoreFunc = func(path string, out io.Writer) (datasetStore, error) {
		return goose.Open(path, out)
	}
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Measure every configured operation and compare with the peer run",
		Long: `Removes stale artefacts, measures each operation of the configured workloads
once (wall-clock time and peak heap growth), writes the run record, and, when
the peer's run record exists, prints and saves the comparison report.`,
		Args: cobra.NoArgs,
		RunE: runBenchmarks,
	}
	cmd.Flags().StringSlice("workload", nil, "Workloads to measure (goose, sieve)")
	cmd.Flags().String("metrics-textfile", "", "Write Prometheus metrics for the run to this file")
	viper.BindPFlag("workloads", cmd.Flags().Lookup("workload"))
	viper.BindPFlag("metrics.textfile", cmd.Flags().Lookup("metrics-textfile"))
	return cmd
}

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func runBenchmarks(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromViper()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	cleanupOldFiles(out, cfg.RecordPath, cfg.TablePath, cfg.ChartPath)

	metrics := telemetry.NewSampleMetrics()
	sampler := benchmark.NewSampler(cfg.Label)
	sampler.ProbeInterval = cfg.ProbeInterval
	sampler.Observer = benchmark.ObserverFunc(func(s benchmark.Sample) {
		metrics.Observe(s.Operation, s.Language, s.ExecutionTime, s.MemoryUsed)
	})

	catalog := &workload.Catalog{
		DatasetURL:  cfg.DatasetURL,
		DatasetPath: cfg.DatasetPath,
		SieveLimits: cfg.SieveLimits,
	}
	if slices.Contains(cfg.Workloads, workload.Goose) {
		store, err := openDatasetStoreFunc(cfg.DatabasePath, out)
		if err != nil {
			return err
		}
		defer store.Close()
		catalog.Store = store
		catalog.Fetcher = newFetcherFunc(cfg.HTTPTimeout, out)
	}

	ops, err := catalog.Operations(cfg.Workloads)
	if err != nil {
		return err
	}

	telemetry.LogInfo("starting run", "label", cfg.Label, "operations", len(ops))
	samples, err := newRunnerFunc(sampler, out).Run(cmd.Context(), ops)
	if err != nil {
		return err
	}

	recorder := benchmark.NewRecorder(cfg.Label, newStoreFunc(cfg.RecordPath))
	recorder.AddSamples(samples)
	if _, err := recorder.Save(); err != nil {
		return fmt.Errorf("failed to save run record: %w", err)
	}

	var totalTime, totalMemory float64
	for _, s := range recorder.Samples() {
		totalTime += s.ExecutionTime
		totalMemory += s.MemoryUsed
	}
	fmt.Fprintf(out, "\nTotal execution time: %.3fs\n", totalTime)
	fmt.Fprintf(out, "Total memory: %.2fKB\n", totalMemory)
	fmt.Fprintf(out, "Results saved to %s\n", cfg.RecordPath)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
		telemetry.LogInfo("metrics written", "path", cfg.MetricsFile)
	}

	return compareRuns(out, cfg)
}

// cleanupOldFiles removes artefacts of a previous invocation.
func cleanupOldFiles(out io.Writer, paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		fmt.Fprintf(out, "Removing old file: %s\n", p)
		if err := os.Remove(p); err != nil {
			telemetry.LogError("failed to remove old file", err, "path", p)
		}
	}
}

// compareRuns loads both run records and reports on them. A missing record is
// not an error: the note is printed and nothing else happens.
func compareRuns(out io.Writer, cfg *config.Config) error {
	own, peer, err := benchmark.LoadPair(newStoreFunc(cfg.RecordPath), newStoreFunc(cfg.PeerRecordPath))
	var missing *benchmark.UnavailableError
	if errors.As(err, &missing) {
		telemetry.LogInfo("comparison skipped", "reason", err.Error())
		label := cfg.PeerLabel
		if missing.Path == cfg.RecordPath {
			label = cfg.Label
		}
		fmt.Fprintf(out, "\nNote: %s benchmark data not found at %s. Run %s benchmarks first for comparison.\n",
			label, missing.Path, label)
		return nil
	}
	if err != nil {
		return err
	}

	// A header-only record carries no label of its own.
	if own.Language == "" {
		own.Language = cfg.Label
	}
	if peer.Language == "" {
		peer.Language = cfg.PeerLabel
	}

	comparison, err := benchmark.Compare(*own, *peer)
	if err != nil {
		return err
	}

	reporter := report.New(out, cfg.TablePath, cfg.ChartPath)
	if err := reporter.Report(comparison); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nDetailed comparison data has been saved to '%s'\n", reporter.TablePath())
	if len(comparison.Rows) > 0 {
		fmt.Fprintf(out, "Visualization has been saved to '%s'\n", reporter.ChartPath())
	}
	return nil
}
