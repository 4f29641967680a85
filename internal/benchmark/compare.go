package benchmark

import (
	"errors"
	"fmt"
	"sort"
)

// OverallOperation names the synthetic totals row.
const OverallOperation = "Overall"

// AggregateDigits is the precision of the per-operation means.
const AggregateDigits = 3

// ErrLabels is returned when two runs cannot be told apart by label.
var ErrLabels = errors.New("run records must carry two distinct labels")

// Comparison is the result of joining two run records by operation.
type Comparison struct {
	LabelA string
	LabelB string
	// Aggregates holds the mean time and memory of every compared operation
	// under both labels, ordered by operation then label A before label B.
	Aggregates []Aggregate
	// Rows holds one entry per operation present in both runs, by name.
	Rows []Row
	// Overall sums the per-operation means of Rows.
	Overall Row
}

type accumulator struct {
	time   float64
	memory float64
	n      int
}

func (a *accumulator) mean() (float64, float64) {
	return Round(a.time/float64(a.n), AggregateDigits), Round(a.memory/float64(a.n), AggregateDigits)
}

// LoadPair loads both records. If either is missing the returned error wraps
// ErrUnavailable.
func LoadPair(a, b Store) (*Run, *Run, error) {
	runA, err := a.Load()
	if err != nil {
		return nil, nil, err
	}
	runB, err := b.Load()
	if err != nil {
		return nil, nil, err
	}
	return runA, runB, nil
}

// Compare joins two runs by operation.
//
// Means are taken over the persisted, already rounded samples. Operations
// present under only one label are left out without notice.
func Compare(a, b Run) (*Comparison, error) {
	if a.Language == "" || b.Language == "" || a.Language == b.Language {
		return nil, fmt.Errorf("%w: %q and %q", ErrLabels, a.Language, b.Language)
	}

	groups := make(map[string]map[string]*accumulator)
	combined := make([]Sample, 0, len(a.Samples)+len(b.Samples))
	combined = append(combined, a.Samples...)
	combined = append(combined, b.Samples...)

	for _, s := range combined {
		if s.Language != a.Language && s.Language != b.Language {
			continue
		}
		byLabel, ok := groups[s.Operation]
		if !ok {
			byLabel = make(map[string]*accumulator, 2)
			groups[s.Operation] = byLabel
		}
		acc, ok := byLabel[s.Language]
		if !ok {
			acc = &accumulator{}
			byLabel[s.Language] = acc
		}
		acc.time += s.ExecutionTime
		acc.memory += s.MemoryUsed
		acc.n++
	}

	ops := make([]string, 0, len(groups))
	for op, byLabel := range groups {
		if byLabel[a.Language] != nil && byLabel[b.Language] != nil {
			ops = append(ops, op)
		}
	}
	sort.Strings(ops)

	c := &Comparison{
		LabelA:     a.Language,
		LabelB:     b.Language,
		Aggregates: make([]Aggregate, 0, 2*len(ops)),
		Rows:       make([]Row, 0, len(ops)),
	}

	var totalTimeA, totalTimeB, totalMemA, totalMemB float64
	for _, op := range ops {
		timeA, memA := groups[op][a.Language].mean()
		timeB, memB := groups[op][b.Language].mean()

		c.Aggregates = append(c.Aggregates,
			Aggregate{Operation: op, Language: a.Language, ExecutionTime: timeA, MemoryUsed: memA},
			Aggregate{Operation: op, Language: b.Language, ExecutionTime: timeB, MemoryUsed: memB},
		)
		c.Rows = append(c.Rows, c.row(op, timeA, timeB, memA, memB))

		totalTimeA += timeA
		totalTimeB += timeB
		totalMemA += memA
		totalMemB += memB
	}

	c.Overall = c.row(OverallOperation, totalTimeA, totalTimeB, totalMemA, totalMemB)
	return c, nil
}

func (c *Comparison) row(op string, timeA, timeB, memA, memB float64) Row {
	return Row{
		Operation:     op,
		TimeA:         timeA,
		TimeB:         timeB,
		SpeedVerdict:  SpeedVerdict(c.LabelA, c.LabelB, timeA, timeB),
		MemoryA:       memA,
		MemoryB:       memB,
		MemoryVerdict: MemoryVerdict(c.LabelB, memA, memB),
	}
}

// Table returns the per-operation rows followed by the overall row.
func (c *Comparison) Table() []Row {
	rows := make([]Row, 0, len(c.Rows)+1)
	rows = append(rows, c.Rows...)
	return append(rows, c.Overall)
}
