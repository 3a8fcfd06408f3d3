// Package requestor signs, sends and decodes requests to the search service.
package requestor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"opensearch/internal/transport"
	"opensearch/pkg/core"
	"opensearch/pkg/signer"
)

// postSignMode is the sign_mode value POST signatures are computed with.
const postSignMode = 1

// Doer sends a signed request. *transport.Client implements it.
type Doer interface {
	Do(ctx context.Context, req *transport.Request) (*transport.Response, error)
}

// Requestor executes signed requests against the search service.
// It is safe for concurrent use: calls share only the credentials, which are
// copied at construction and never modified, and the logger.
type Requestor struct {
	creds  core.Credentials
	doer   Doer
	closer io.Closer
	logger zerolog.Logger
	debug  bool
	now    func() time.Time
}

// Option is a functional option for configuring the Requestor.
type Option func(*Options)

// Options holds configuration options for the Requestor.
type Options struct {
	Logger    zerolog.Logger
	Transport Doer
	Clock     func() time.Time
}

// WithLogger returns an option that sets the logger for the requestor.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithTransport returns an option that replaces the HTTP transport.
func WithTransport(d Doer) Option {
	return func(o *Options) {
		o.Transport = d
	}
}

// WithClock returns an option that sets the time source for nonces and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Clock = now
	}
}

// New creates a Requestor from a validated configuration.
func New(config *core.Config, opts ...Option) (*Requestor, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	options := &Options{
		Logger: zerolog.Nop(),
		Clock:  time.Now,
	}
	for _, opt := range opts {
		opt(options)
	}

	logger := options.Logger
	if config.LogLevel != "" {
		if level, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			logger = logger.Level(level)
		}
	}

	r := &Requestor{
		creds:  config.Credentials,
		doer:   options.Transport,
		logger: logger,
		debug:  config.Debug,
		now:    options.Clock,
	}

	if r.doer == nil {
		client, err := transport.NewClient(&transport.Config{
			Timeout:   config.Timeout,
			UserAgent: config.UserAgent,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("create http client: %w", err)
		}
		r.doer = client
		r.closer = client
	}

	return r, nil
}

// Close releases the HTTP transport when the requestor created it.
func (r *Requestor) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// Logger returns the logger requests are recorded with.
func (r *Requestor) Logger() zerolog.Logger {
	return r.logger
}

// Do executes req and returns the decoded response.
func (r *Requestor) Do(ctx context.Context, req *core.Request) (core.Response, error) {
	return r.Request(ctx, req.Method, req.Endpoint, req.Params, req.Body)
}

// Request sends a signed request, records it and decodes the response.
// Every failure is an *core.APIError.
func (r *Requestor) Request(ctx context.Context, method, endpoint string, params core.Params, body string) (core.Response, error) {
	raw, err := r.RequestRaw(ctx, method, endpoint, params, body)
	if err != nil {
		return nil, err
	}

	LogRequest(r.logger, raw)

	return ParseResponse(raw)
}

// RequestRaw sends a signed request and returns the undecoded response.
// GET sends params in the signed query only. POST signs params the same way
// and sends body verbatim as a form entity; body is never signed.
// Other methods fail before any network I/O.
func (r *Requestor) RequestRaw(ctx context.Context, method, endpoint string, params core.Params, body string) (*transport.Response, error) {
	if !core.IsSupportedMethod(method) {
		return nil, core.NewAPIError("bad request method")
	}
	method = strings.ToUpper(method)

	req := &transport.Request{
		Method: method,
		URL:    r.SignURL(method, endpoint, params),
	}
	if method == http.MethodPost {
		req.Body = body
		req.ContentType = transport.FormContentType
		r.trace(body)
	}

	resp, err := r.doer.Do(ctx, req)
	if err != nil {
		return nil, core.WrapAPIError("send request", err)
	}

	return resp, nil
}

// SignURL returns the signed URL for a request. POST requests are signed
// with sign_mode=1.
func (r *Requestor) SignURL(method, endpoint string, params core.Params) string {
	opts := []signer.PublicOption{signer.WithClock(r.now)}
	if strings.ToUpper(method) == http.MethodPost {
		opts = append(opts, signer.WithSignMode(postSignMode))
	}
	public := signer.BuildPublicParams(r.creds.APIVersion, r.creds.AccessKeyID, opts...)

	return signer.SignURL(method, endpoint, r.creds.BaseURL, r.creds.AccessKeySecret, params, public.Params())
}

func (r *Requestor) trace(body string) {
	if r.debug {
		r.logger.Debug().Str("body", body).Msg("request body")
	}
}
