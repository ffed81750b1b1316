package dispatch

import (
	"errors"
	"log/slog"
)

// Option is a function that configures a dispatcher.
type Option func(*options) error

type options struct {
	name   string
	logger *slog.Logger
}

// WithName labels the dispatcher in log records.
func WithName(name string) Option {
	return func(o *options) error {
		if name == "" {
			return errors.New("name cannot be empty")
		}
		o.name = name
		return nil
	}
}

// WithLogger sets the structured logger used for registration events.
// By default nothing is logged. Dispatch itself never logs.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		o.logger = logger
		return nil
	}
}

// newOptions applies opts over the defaults, panicking on a failing option
// the same way construction does for a nil default handler.
func newOptions(opts []Option) options {
	o := options{
		name:   "dispatch",
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			panic("dispatch: failed to apply option: " + err.Error())
		}
	}
	return o
}
