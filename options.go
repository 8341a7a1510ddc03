package shader

import "log/slog"

// Option configures a Unit during New.
//
// Example:
//
//	u, err := shader.New(drv, shader.StageFragment, src,
//	    shader.WithLabel("blit.frag"))
type Option func(*options)

type options struct {
	label  string
	logger *slog.Logger
}

func defaultOptions() options {
	return options{
		logger: nil, // resolved to Logger() at New time
	}
}

// WithLabel sets a debug label. It appears in log records, is returned by
// Unit.Label and is handed to drivers implementing Labeler. It is not part
// of compile errors.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithLogger overrides the package logger for one Unit.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
