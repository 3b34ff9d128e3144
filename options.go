package handlekit

// Option represents a resolution option
type Option func(*Options)

// Options contains all possible options for handle resolution
type Options struct {
	// Writable requests a handle that accepts writes. Only the plain
	// file kind honors it; URL-backed and compressed resources always
	// open read-only.
	Writable bool
}

// WithWritable requests read-write access to the resolved resource
func WithWritable(writable bool) Option {
	return func(o *Options) {
		o.Writable = writable
	}
}

func processOptions(options ...Option) *Options {
	opts := &Options{}
	for _, option := range options {
		option(opts)
	}
	return opts
}
