package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/kbukum/consoleapi/httpclient"
	"github.com/kbukum/consoleapi/logger"
	"github.com/kbukum/consoleapi/observability"
	"github.com/kbukum/consoleapi/provider"
)

// Transport is the request/response provider every call goes through.
type Transport = provider.RequestResponse[httpclient.Request, *httpclient.Response]

// Middleware decorates a Transport.
type Middleware = provider.Middleware[httpclient.Request, *httpclient.Response]

// Client sends JSON requests through a Transport. It is safe for concurrent
// use; no state is kept between calls.
type Client struct {
	transport Transport
	closer    provider.Closeable
}

// Option configures a Client.
type Option func(*options)

type options struct {
	middlewares []Middleware
	adapterOpts []httpclient.Option
}

// WithMiddleware appends transport middleware. The first one given is
// outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(o *options) {
		o.middlewares = append(o.middlewares, mw...)
	}
}

// WithAdapterOptions passes options through to httpclient.New.
func WithAdapterOptions(opts ...httpclient.Option) Option {
	return func(o *options) {
		o.adapterOpts = append(o.adapterOpts, opts...)
	}
}

// WithObservability installs logging, tracing and metrics middleware.
// A nil log or metrics skips that layer.
func WithObservability(log *logger.Logger, serviceName string, metrics *observability.ClientMetrics) Option {
	return func(o *options) {
		if log != nil {
			o.middlewares = append(o.middlewares, provider.WithLogging[httpclient.Request, *httpclient.Response](log))
		}
		o.middlewares = append(o.middlewares, provider.WithTracing[httpclient.Request, *httpclient.Response](serviceName))
		if metrics != nil {
			o.middlewares = append(o.middlewares, provider.WithMetrics[httpclient.Request, *httpclient.Response](metrics))
		}
	}
}

// New creates a Client over a fresh httpclient.Adapter.
func New(cfg httpclient.Config, opts ...Option) (*Client, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	a, err := httpclient.New(cfg, o.adapterOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{transport: provider.Chain(o.middlewares...)(a), closer: a}, nil
}

// NewFromTransport creates a Client over an existing transport.
func NewFromTransport(t Transport, mw ...Middleware) *Client {
	c := &Client{transport: provider.Chain(mw...)(t)}
	if cl, ok := t.(provider.Closeable); ok {
		c.closer = cl
	}
	return c
}

// Transport returns the (decorated) transport.
func (c *Client) Transport() Transport {
	return c.transport
}

// Name returns the transport name.
func (c *Client) Name() string {
	return c.transport.Name()
}

// IsAvailable reports whether the transport can serve requests.
func (c *Client) IsAvailable(ctx context.Context) bool {
	return c.transport.IsAvailable(ctx)
}

// Close releases transport resources when the transport supports it.
func (c *Client) Close(ctx context.Context) error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close(ctx)
}

// send performs one round trip. JSON is requested on every call.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (*httpclient.Response, error) {
	req := httpclient.Request{
		Method:  method,
		Path:    path,
		Query:   query,
		Headers: map[string]string{"Accept": "application/json"},
		Body:    body,
	}
	resp, err := c.transport.Execute(ctx, req)
	if err != nil {
		var e *httpclient.Error
		if errors.As(err, &e) {
			return nil, err
		}
		return nil, httpclient.NewConnectionError(err)
	}
	return resp, nil
}

// Fetch performs one request and decodes the 2xx JSON response into R.
// An empty or malformed body is a decode error.
func Fetch[R any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (R, error) {
	var out R
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return out, httpclient.NewDecodeError(resp.StatusCode, resp.Body, errors.New("empty response body"))
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return out, httpclient.NewDecodeError(resp.StatusCode, resp.Body, err)
	}
	return out, nil
}

// Send performs one request whose response body is ignored.
func Send(ctx context.Context, c *Client, method, path string, query url.Values, body any) error {
	_, err := c.send(ctx, method, path, query, body)
	return err
}
