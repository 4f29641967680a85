package benchmark

import "context"

// Operation is a named unit of work measured by the Sampler.
type Operation struct {
	Name string
	Fn   func(ctx context.Context) (any, error)
}

// Sample is one timed, memory-profiled execution of an operation.
type Sample struct {
	Operation     string  `json:"operation"`
	Language      string  `json:"language"`
	ExecutionTime float64 `json:"execution_time"` // seconds
	MemoryUsed    float64 `json:"memory_used"`    // KiB
}

// Run is the ordered set of samples captured by one process invocation.
type Run struct {
	Language string   `json:"language"`
	Samples  []Sample `json:"samples"`
}

// Aggregate is the mean time and memory of one operation under one label.
type Aggregate struct {
	Operation     string  `json:"operation"`
	Language      string  `json:"language"`
	ExecutionTime float64 `json:"execution_time"`
	MemoryUsed    float64 `json:"memory_used"`
}

// Row is one line of the comparison report.
type Row struct {
	Operation     string  `json:"operation"`
	TimeA         float64 `json:"time_a"`
	TimeB         float64 `json:"time_b"`
	SpeedVerdict  string  `json:"speed_verdict"`
	MemoryA       float64 `json:"memory_a"`
	MemoryB       float64 `json:"memory_b"`
	MemoryVerdict string  `json:"memory_verdict"`
}
