package benchmark

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"crossbench/internal/telemetry"
)

// ErrEmptyOperation is returned when an operation has no name.
var ErrEmptyOperation = errors.New("operation name is empty")

// Observer receives every sample the Sampler produces.
type Observer interface {
	ObserveSample(s Sample)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(s Sample)

func (f ObserverFunc) ObserveSample(s Sample) {
	f(s)
}

// Sampler times one operation and tracks its peak heap growth.
type Sampler struct {
	Language      string
	ProbeInterval time.Duration
	Observer      Observer
}

// NewSampler creates a Sampler tagging samples with language.
func NewSampler(language string) *Sampler {
	return &Sampler{
		Language:      language,
		ProbeInterval: DefaultProbeInterval,
	}
}

// Measure executes op exactly once and returns its sample and its own result.
//
// Failures are not retried or swallowed: an error from op is returned wrapped
// with the operation name, and a panic unwinds through Measure after the probe
// has been stopped.
func (s *Sampler) Measure(ctx context.Context, op Operation) (Sample, any, error) {
	if op.Name == "" {
		return Sample{}, nil, ErrEmptyOperation
	}

	probe := StartProbe(s.ProbeInterval)
	defer probe.Stop()

	start := time.Now()
	result, err := op.Fn(ctx)
	elapsed := time.Since(start)
	peak := probe.Stop()

	if err != nil {
		return Sample{}, nil, fmt.Errorf("operation %s failed: %w", op.Name, err)
	}

	sample := Sample{
		Operation:     op.Name,
		Language:      s.Language,
		ExecutionTime: elapsed.Seconds(),
		MemoryUsed:    peak / 1024,
	}

	telemetry.LogDebug("sampled operation",
		"operation", sample.Operation,
		"language", sample.Language,
		"seconds", sample.ExecutionTime,
		"memory_kb", sample.MemoryUsed,
	)
	if s.Observer != nil {
		s.Observer.ObserveSample(sample)
	}

	return sample, result, nil
}

// Runner defines the interface for measuring a list of operations.
type Runner interface {
	Run(ctx context.Context, ops []Operation) ([]Sample, error)
}

// SequentialRunner measures operations strictly one after another.
type SequentialRunner struct {
	sampler *Sampler
	out     io.Writer
}

func NewSequentialRunner(sampler *Sampler, out io.Writer) *SequentialRunner {
	if out == nil {
		out = io.Discard
	}
	return &SequentialRunner{sampler: sampler, out: out}
}

// Run stops at the first failing operation; samples collected before it are
// discarded along with the error.
func (r *SequentialRunner) Run(ctx context.Context, ops []Operation) ([]Sample, error) {
	samples := make([]Sample, 0, len(ops))
	for _, op := range ops {
		fmt.Fprintf(r.out, "Measuring %s...\n", op.Name)

		sample, _, err := r.sampler.Measure(ctx, op)
		if err != nil {
			return nil, err
		}

		fmt.Fprintf(r.out, "%s: Time = %.3fs, Memory = %.2fKB\n",
			sample.Operation, sample.ExecutionTime, sample.MemoryUsed)
		samples = append(samples, sample)
	}
	return samples, nil
}
