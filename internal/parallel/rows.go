// Package parallel splits row ranges of a raster across worker goroutines.
//
// Usage:
//
//	err := parallel.Rows(buf.Height(), func(start, end int) error {
//	    for y := start; y < end; y++ {
//	        // process row y
//	    }
//	    return nil
//	}, parallel.Workers(4))
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Option configures a parallel run.
type Option func(*config)

type config struct {
	workers int
}

// Workers sets the number of worker goroutines. Values <= 0 select
// runtime.GOMAXPROCS(0).
func Workers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// NumWorkers resolves the worker count the given options select.
func NumWorkers(opts ...Option) int {
	c := config{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.workers
}

// Rows executes fn over [0, n) split into contiguous [start, end) bands, one
// per worker. It blocks until every band has finished and returns the first
// error any band reported.
//
// With a single worker, or when n is smaller than two, fn runs once on the
// calling goroutine. n <= 0 does nothing.
func Rows(n int, fn func(start, end int) error, opts ...Option) error {
	if n <= 0 {
		return nil
	}

	workers := min(NumWorkers(opts...), n)
	if workers == 1 {
		return fn(0, n)
	}

	chunkSize := (n + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < n; start += chunkSize {
		start := start // per-iteration copy; go directive is below 1.22
		end := min(start+chunkSize, n)
		g.Go(func() error {
			return fn(start, end)
		})
	}
	return g.Wait()
}
