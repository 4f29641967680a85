package benchmark

// Recorder accumulates the samples of one run under a fixed label.
//
// Samples are kept at full precision; rounding to TimeDigits and MemoryDigits
// happens only when the record is built for persistence.
type Recorder struct {
	language string
	store    Store
	samples  []Sample
}

func NewRecorder(language string, store Store) *Recorder {
	return &Recorder{language: language, store: store}
}

// Add appends one measurement tagged with the recorder's label.
func (r *Recorder) Add(operation string, elapsed, memory float64) {
	r.samples = append(r.samples, Sample{
		Operation:     operation,
		Language:      r.language,
		ExecutionTime: elapsed,
		MemoryUsed:    memory,
	})
}

// AddSamples appends sampler output, relabelling it with the recorder's label.
func (r *Recorder) AddSamples(samples []Sample) {
	for _, s := range samples {
		r.Add(s.Operation, s.ExecutionTime, s.MemoryUsed)
	}
}

// Samples returns the full-precision samples recorded so far.
func (r *Recorder) Samples() []Sample {
	out := make([]Sample, len(r.samples))
	copy(out, r.samples)
	return out
}

// Record builds the rounded run record.
func (r *Recorder) Record() Run {
	run := Run{
		Language: r.language,
		Samples:  make([]Sample, 0, len(r.samples)),
	}
	for _, s := range r.samples {
		s.ExecutionTime = Round(s.ExecutionTime, TimeDigits)
		s.MemoryUsed = Round(s.MemoryUsed, MemoryDigits)
		run.Samples = append(run.Samples, s)
	}
	return run
}

// Save writes the rounded record to the store, replacing any earlier run,
// and returns it.
func (r *Recorder) Save() (Run, error) {
	run := r.Record()
	if err := r.store.Save(run); err != nil {
		return Run{}, err
	}
	return run, nil
}
