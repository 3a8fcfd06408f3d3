package opensearch

import "strings"

// Option is a functional option for a single resource call.
type Option func(*Options)

// Options holds the optional arguments of a resource call.
type Options struct {
	// AppName overrides the client's default application (index) name.
	AppName     string
	FetchFields []string
	// Hit is the number of suggestions to return; nil leaves it to the service.
	Hit *int
}

// WithAppName returns an option that targets another application.
func WithAppName(name string) Option {
	return func(o *Options) {
		o.AppName = name
	}
}

// WithFetchFields returns an option that limits the fields returned by a search.
func WithFetchFields(fields ...string) Option {
	return func(o *Options) {
		o.FetchFields = append(o.FetchFields, fields...)
	}
}

// WithHit returns an option that sets the number of suggestions.
func WithHit(hit int) Option {
	return func(o *Options) {
		o.Hit = &hit
	}
}

// ApplyOptions applies opts to a zero Options value.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Options) fetchFields() string {
	return strings.Join(o.FetchFields, ";")
}
