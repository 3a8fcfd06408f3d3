// Package transport provides the HTTP transport used to reach the search service.
package transport

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"resty.dev/v3"
)

// FormContentType is the content type of every POST entity.
const FormContentType = "application/x-www-form-urlencoded"

const maxRedirects = 10

// Config holds transport settings. Retries are never enabled.
type Config struct {
	// Timeout bounds a whole exchange. Zero means no client-side timeout.
	Timeout   time.Duration     `validate:"min=0"`
	UserAgent string            `validate:"omitempty"`
	Headers   map[string]string `validate:"omitempty"`
}

// Client wraps a resty HTTP client with logging.
type Client struct {
	client *resty.Client
	logger zerolog.Logger
}

// Request is a fully signed request ready to be sent.
type Request struct {
	Method string
	// URL is the signed absolute URL. It is sent without re-encoding.
	URL string
	// Body is sent verbatim when non-empty.
	Body        string
	ContentType string
}

// Response represents an HTTP exchange with the search service.
type Response struct {
	// StatusCode is the HTTP status code returned by the server.
	StatusCode int

	// Body contains the raw response body bytes.
	Body []byte

	// EffectiveURL is the URL that produced the response, after redirects.
	EffectiveURL string

	// Elapsed is the wall time of the exchange.
	Elapsed time.Duration
}

var validate = validator.New()

// NewClient creates a new HTTP client with the specified configuration.
func NewClient(config *Config, logger zerolog.Logger) (*Client, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid transport config: %w", err)
	}

	client := resty.New()
	client.SetTimeout(config.Timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))
	if config.UserAgent != "" {
		client.SetHeader("User-Agent", config.UserAgent)
	}
	for k, v := range config.Headers {
		client.SetHeader(k, v)
	}

	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("http request")
		return nil
	})

	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug().
			Str("method", resp.Request.Method).
			Int("status", resp.StatusCode()).
			Int("size", len(resp.Bytes())).
			Msg("http response")
		return nil
	})

	return &Client{
		client: client,
		logger: logger,
	}, nil
}

// Do sends req and returns the raw response. Non-2xx statuses are not
// errors here; only failures to complete the exchange are, including
// cancellation of ctx.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	r := c.client.R().SetContext(ctx)

	if req.Body != "" {
		r.SetBody(req.Body)
	}
	if req.ContentType != "" {
		r.SetHeader("Content-Type", req.ContentType)
	}

	start := time.Now()

	var resp *resty.Response
	var err error

	switch req.Method {
	case http.MethodGet:
		resp, err = r.Get(req.URL)
	case http.MethodPost:
		resp, err = r.Post(req.URL)
	default:
		return nil, fmt.Errorf("unsupported http method: %s", req.Method)
	}

	elapsed := time.Since(start)

	if err != nil {
		c.logger.Error().Err(err).
			Str("method", req.Method).
			Msg("http request failed")
		return nil, fmt.Errorf("http request: %w", err)
	}

	return &Response{
		StatusCode:   resp.StatusCode(),
		Body:         resp.Bytes(),
		EffectiveURL: effectiveURL(resp, req.URL),
		Elapsed:      elapsed,
	}, nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	return c.client.Close()
}

func effectiveURL(resp *resty.Response, fallback string) string {
	if resp.RawResponse != nil && resp.RawResponse.Request != nil && resp.RawResponse.Request.URL != nil {
		return resp.RawResponse.Request.URL.String()
	}
	return fallback
}

// IsError returns true if the response status code indicates an error (4xx or 5xx).
func (r *Response) IsError() bool {
	return r.StatusCode >= http.StatusBadRequest
}

// ElapsedMillis returns the elapsed time in milliseconds rounded to two decimals.
func (r *Response) ElapsedMillis() float64 {
	return math.Round(float64(r.Elapsed)/float64(time.Millisecond)*100) / 100
}
