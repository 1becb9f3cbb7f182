// Package runconfig carries the tunables every parallel phase of the
// toolkit reads: worker count and the memory ceiling used by State's
// resource guard. It follows the teacher's functional-options idiom
// (core.GraphOption, matrix.Option).
package runconfig

import "runtime"

// Options configures a single analysis run.
type Options struct {
	// Workers is the number of goroutines used for parallel phases.
	// Zero means "use runtime.GOMAXPROCS(0)".
	Workers int

	// MemoryCeilingBytes bounds the distance-matrix allocation in State.Build.
	// Zero means "use DefaultMemoryCeilingBytes".
	MemoryCeilingBytes uint64
}

// DefaultMemoryCeilingBytes is the 16 GiB ceiling from spec.md §3.
const DefaultMemoryCeilingBytes uint64 = 16 * 1024 * 1024 * 1024

// Option configures an Options value.
type Option func(*Options)

// WithWorkers overrides the default worker count.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithMemoryCeilingBytes overrides the default memory ceiling.
func WithMemoryCeilingBytes(n uint64) Option {
	return func(o *Options) { o.MemoryCeilingBytes = n }
}

// New builds Options with defaults applied, then overridden by opts.
func New(opts ...Option) Options {
	o := Options{
		Workers:            runtime.GOMAXPROCS(0),
		MemoryCeilingBytes: DefaultMemoryCeilingBytes,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.MemoryCeilingBytes == 0 {
		o.MemoryCeilingBytes = DefaultMemoryCeilingBytes
	}

	return o
}
