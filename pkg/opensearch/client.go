// Package opensearch provides the resource methods of the search service API.
package opensearch

import (
	"context"
	"fmt"
	"io"

	"opensearch/pkg/core"
	"opensearch/pkg/requestor"
)

// API executes a request against the search service. *requestor.Requestor
// implements it.
type API interface {
	Do(ctx context.Context, req *core.Request) (core.Response, error)
}

// Client calls the resource endpoints of the search service.
// Clients are safe for concurrent use.
type Client struct {
	api     API
	appName string
}

// New creates a Client backed by a Requestor built from config.
func New(config *core.Config, opts ...requestor.Option) (*Client, error) {
	r, err := requestor.New(config, opts...)
	if err != nil {
		return nil, fmt.Errorf("create requestor: %w", err)
	}
	return NewWithAPI(r, config.AppName), nil
}

// NewWithAPI creates a Client on top of an existing API implementation.
// appName is used by every method called without WithAppName.
func NewWithAPI(api API, appName string) *Client {
	return &Client{api: api, appName: appName}
}

// AppName returns the default application name.
func (c *Client) AppName() string {
	return c.appName
}

// Close releases the underlying API when it holds resources.
func (c *Client) Close() error {
	if closer, ok := c.api.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Client) do(ctx context.Context, op core.Operation, endpoint string, params core.Params, body string) (core.Response, error) {
	req := core.NewRequest(op.Method(), endpoint).SetParams(params).SetBody(body)
	return c.api.Do(ctx, req)
}

func (c *Client) resolveApp(o *Options) (string, error) {
	if o.AppName != "" {
		return o.AppName, nil
	}
	if c.appName != "" {
		return c.appName, nil
	}
	return "", core.NewInvalidInput("app name is required", nil)
}
