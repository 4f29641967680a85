package benchmark

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	samples []Sample
}

func (o *recordingObserver) ObserveSample(s Sample) {
	o.samples = append(o.samples, s)
}

var sink [][]byte

func TestSampler_Measure(t *testing.T) {
	obs := &recordingObserver{}
	s := NewSampler("Go")
	s.Observer = obs

	calls := 0
	op := Operation{
		Name: "Allocate",
		Fn: func(ctx context.Context) (any, error) {
			calls++
			buf := make([]byte, 4<<20)
			sink = append(sink, buf)
			time.Sleep(5 * time.Millisecond)
			return "done", nil
		},
	}
	defer func() { sink = nil }()

	sample, result, err := s.Measure(context.Background(), op)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "done", result)
	assert.Equal(t, "Allocate", sample.Operation)
	assert.Equal(t, "Go", sample.Language)
	assert.GreaterOrEqual(t, sample.ExecutionTime, 0.005)
	assert.GreaterOrEqual(t, sample.MemoryUsed, 0.0)
	assert.Equal(t, []Sample{sample}, obs.samples)
}

func TestSampler_MeasureSmallOperation(t *testing.T) {
	s := NewSampler("Go")
	op := Operation{
		Name: "Sieve-100",
		Fn: func(ctx context.Context) (any, error) {
			marks := make([]byte, 101)
			sink = append(sink, marks)
			return len(marks), nil
		},
	}
	defer func() { sink = nil }()

	runtime.GC()
	sample, _, err := s.Measure(context.Background(), op)
	require.NoError(t, err)
	assert.Greater(t, sample.MemoryUsed, 0.0)
}

func TestSampler_PropagatesFailure(t *testing.T) {
	boom := errors.New("storage failure")
	s := NewSampler("Go")

	_, result, err := s.Measure(context.Background(), Operation{
		Name: "CRUD-Create",
		Fn:   func(ctx context.Context) (any, error) { return nil, boom },
	})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "CRUD-Create")
	assert.Nil(t, result)
}

func TestSampler_PropagatesPanic(t *testing.T) {
	s := NewSampler("Go")
	assert.PanicsWithValue(t, "kaboom", func() {
		_, _, _ = s.Measure(context.Background(), Operation{
			Name: "Panics",
			Fn:   func(ctx context.Context) (any, error) { panic("kaboom") },
		})
	})
}

func TestSampler_EmptyName(t *testing.T) {
	_, _, err := NewSampler("Go").Measure(context.Background(), Operation{
		Fn: func(ctx context.Context) (any, error) { return nil, nil },
	})
	assert.ErrorIs(t, err, ErrEmptyOperation)
}

func TestSequentialRunner(t *testing.T) {
	var order []string
	op := func(name string) Operation {
		return Operation{Name: name, Fn: func(ctx context.Context) (any, error) {
			order = append(order, name)
			return nil, nil
		}}
	}

	var out bytes.Buffer
	r := NewSequentialRunner(NewSampler("Go"), &out)
	samples, err := r.Run(context.Background(), []Operation{op("first"), op("second")})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, order)
	require.Len(t, samples, 2)
	assert.Equal(t, "second", samples[1].Operation)
	assert.Contains(t, out.String(), "Measuring first...")
	assert.Contains(t, out.String(), "second: Time = ")
}

func TestSequentialRunner_StopsOnFailure(t *testing.T) {
	ran := false
	ops := []Operation{
		{Name: "fails", Fn: func(ctx context.Context) (any, error) { return nil, errors.New("nope") }},
		{Name: "never", Fn: func(ctx context.Context) (any, error) { ran = true; return nil, nil }},
	}

	samples, err := NewSequentialRunner(NewSampler("Go"), nil).Run(context.Background(), ops)
	assert.Error(t, err)
	assert.Nil(t, samples)
	assert.False(t, ran)
}
