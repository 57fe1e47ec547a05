package parse7

import (
	"time"

	"github.com/rs/zerolog"
)

// Observer receives decode events, typically to update metrics
type Observer interface {
	ObserveRecord(ok bool)
	ObserveWarning()
	ObserveFile(records, failures int, elapsed time.Duration, err error)
}

// Option configures a decode call
type Option func(*options)

type options struct {
	logger   zerolog.Logger
	workers  int
	observer Observer
	maxSize  int
	name     string
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:  zerolog.Nop(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.name != "" {
		o.logger = o.logger.With().Str("file", o.name).Logger()
	}
	return o
}

// WithLogger sets the logger used for record failures and trailing-byte reports
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithWorkers decodes records on up to n goroutines. Values below 2 decode
// sequentially.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithObserver reports decode events to obs
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithMaxSize refuses inputs larger than n bytes. Zero means no limit.
func WithMaxSize(n int) Option {
	return func(o *options) {
		o.maxSize = n
	}
}

// WithName labels log output with the file's name
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}
