// Package workload turns the configured workloads into named operations for
// the Sampler.
package workload

import (
	"context"
	"errors"
	"fmt"

	"crossbench/internal/benchmark"
	"crossbench/internal/sieve"
)

// Workload names accepted in configuration.
const (
	Goose = "goose"
	Sieve = "sieve"
)

// Operation names of the goose workload, in execution order.
const (
	OpExtract = "Extract"
	OpLoad    = "Transform/Load"
	OpQuery   = "Query"
	OpCreate  = "CRUD-Create"
	OpRead    = "CRUD-Read"
	OpUpdate  = "CRUD-Update"
	OpDelete  = "CRUD-Delete"
)

var (
	ErrUnknownWorkload = errors.New("unknown workload")
	ErrNoOperations    = errors.New("no operations to measure")
)

// Fetcher retrieves the remote dataset.
type Fetcher interface {
	Extract(ctx context.Context, url, path string) (string, error)
}

// DatasetStore is the relational store the goose workload runs against.
type DatasetStore interface {
	Load(ctx context.Context, dataset string) (string, error)
	Query(ctx context.Context) (string, error)
	Create(ctx context.Context) (string, error)
	Read(ctx context.Context) (string, error)
	Update(ctx context.Context) (string, error)
	Delete(ctx context.Context) (string, error)
}

// Catalog binds collaborators and parameters to operations.
type Catalog struct {
	Fetcher     Fetcher
	Store       DatasetStore
	DatasetURL  string
	DatasetPath string
	SieveLimits []int
}

// Operations returns the operations of the named workloads, concatenated in
// the order given.
func (c *Catalog) Operations(workloads []string) ([]benchmark.Operation, error) {
	var ops []benchmark.Operation
	for _, name := range workloads {
		switch name {
		case Goose:
			gooseOps, err := c.gooseOperations()
			if err != nil {
				return nil, err
			}
			ops = append(ops, gooseOps...)
		case Sieve:
			ops = append(ops, SieveOperations(c.SieveLimits)...)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownWorkload, name)
		}
	}
	if len(ops) == 0 {
		return nil, ErrNoOperations
	}
	return ops, nil
}

func (c *Catalog) gooseOperations() ([]benchmark.Operation, error) {
	if c.Fetcher == nil || c.Store == nil {
		return nil, fmt.Errorf("%s workload requires a fetcher and a dataset store", Goose)
	}

	wrap := func(fn func(context.Context) (string, error)) func(context.Context) (any, error) {
		return func(ctx context.Context) (any, error) {
			return fn(ctx)
		}
	}

	return []benchmark.Operation{
		{Name: OpExtract, Fn: func(ctx context.Context) (any, error) {
			return c.Fetcher.Extract(ctx, c.DatasetURL, c.DatasetPath)
		}},
		{Name: OpLoad, Fn: func(ctx context.Context) (any, error) {
			return c.Store.Load(ctx, c.DatasetPath)
		}},
		{Name: OpQuery, Fn: wrap(c.Store.Query)},
		{Name: OpCreate, Fn: wrap(c.Store.Create)},
		{Name: OpRead, Fn: wrap(c.Store.Read)},
		{Name: OpUpdate, Fn: wrap(c.Store.Update)},
		{Name: OpDelete, Fn: wrap(c.Store.Delete)},
	}, nil
}

// SieveName is the operation name for a sieve up to limit.
func SieveName(limit int) string {
	return fmt.Sprintf("Sieve-%d", limit)
}

// SieveOperations returns one operation per limit; each yields the primes.
func SieveOperations(limits []int) []benchmark.Operation {
	ops := make([]benchmark.Operation, 0, len(limits))
	for _, limit := range limits {
		ops = append(ops, benchmark.Operation{
			Name: SieveName(limit),
			Fn: func(ctx context.Context) (any, error) {
				return sieve.Primes(limit), nil
			},
		})
	}
	return ops
}
