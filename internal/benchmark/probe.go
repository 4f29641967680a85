package benchmark

import (
	"runtime"
	"runtime/metrics"
	"sync"
	"time"
)

const heapObjectsMetric = "/memory/classes/heap/objects:bytes"

// DefaultProbeInterval is how often a Probe polls the heap while held.
const DefaultProbeInterval = time.Millisecond

// Probe tracks the peak live heap between StartProbe and Stop.
//
// A Probe is a scoped handle: acquire it immediately before the measured call
// and release it immediately after, normally with defer so a failing or
// panicking call still stops the poller.
type Probe struct {
	baseline uint64

	mu   sync.Mutex
	peak uint64

	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
	result float64
}

// StartProbe takes a baseline heap reading and starts polling every interval.
//
// The baseline and the final reading come from runtime.ReadMemStats, which
// flushes per-P allocation caches, so allocations smaller than a span still
// register. The poller reads runtime/metrics, which does not stop the world.
func StartProbe(interval time.Duration) *Probe {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}

	p := &Probe{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	p.baseline = readHeapAlloc()
	p.peak = p.baseline

	go p.poll(interval)
	return p
}

func (p *Probe) poll(interval time.Duration) {
	defer close(p.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// One sample slice for the whole loop keeps the poller allocation-free.
	sample := []metrics.Sample{{Name: heapObjectsMetric}}
	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			metrics.Read(sample)
			p.observe(heapValue(sample[0]))
		}
	}
}

func (p *Probe) observe(v uint64) {
	p.mu.Lock()
	if v > p.peak {
		p.peak = v
	}
	p.mu.Unlock()
}

// Stop ends polling and returns the peak growth over the baseline in bytes.
// Calling Stop more than once returns the first result.
func (p *Probe) Stop() float64 {
	p.once.Do(func() {
		close(p.stop)
		<-p.done
		p.observe(readHeapAlloc())

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.peak > p.baseline {
			p.result = float64(p.peak - p.baseline)
		}
	})
	return p.result
}

func readHeapAlloc() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapAlloc
}

func heapValue(s metrics.Sample) uint64 {
	if s.Value.Kind() != metrics.KindUint64 {
		return 0
	}
	return s.Value.Uint64()
}
