package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/kbukum/consoleapi/httpclient"
	"github.com/kbukum/consoleapi/httpclient/rest"
)

// Client calls the admin API. It is safe for concurrent use.
type Client struct {
	baseURL   string
	transport rest.Transport
	rest      *rest.Client
}

// New creates an admin client. A trailing slash on baseURL is dropped.
func New(baseURL, authToken string, opts ...rest.Option) (*Client, error) {
	return NewWithConfig(httpclient.Config{BaseURL: baseURL}, authToken, opts...)
}

// NewWithConfig creates an admin client from a transport configuration.
// authToken replaces any auth set in cfg.
func NewWithConfig(cfg httpclient.Config, authToken string, opts ...rest.Option) (*Client, error) {
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Name == "" {
		cfg.Name = "admin"
	}
	cfg.Auth = httpclient.TokenAuth(authToken)

	rc, err := rest.New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:   cfg.BaseURL,
		transport: rc.Transport(),
		rest:      rc,
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle connections.
func (c *Client) Close(ctx context.Context) error {
	return c.rest.Close(ctx)
}

// Fetch sends one request to path relative to the base URL. query is a raw,
// already encoded query string appended after "?" when non-empty; data, when
// non-nil, is sent as JSON.
//
// The response body is returned only when the server declares it as JSON;
// otherwise the result is nil. Failed calls return *httpclient.Error with the
// decoded error body in Details. Error bodies are decoded as JSON whenever
// they parse, regardless of their Content-Type.
func (c *Client) Fetch(ctx context.Context, method, path, query string, data any) (json.RawMessage, error) {
	resp, err := c.transport.Execute(ctx, httpclient.Request{
		Method: method,
		Path:   APIURL("", path, query),
		Body:   data,
	})
	if err != nil {
		if _, ok := httpclient.AsError(err); ok {
			return nil, err
		}
		return nil, httpclient.NewConnectionError(err)
	}

	if !resp.IsJSON() {
		return nil, nil
	}
	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, httpclient.NewDecodeError(resp.StatusCode, resp.Body, errors.New("invalid JSON response body"))
	}
	return json.RawMessage(body), nil
}

// APIURL joins base and path with exactly one slash and appends "?query"
// when query is non-empty.
func APIURL(base, path, query string) string {
	path = strings.TrimPrefix(path, "/")
	u := strings.TrimSuffix(base, "/") + "/" + path
	if query != "" {
		u += "?" + query
	}
	return u
}

// fetchInto decodes the Fetch result into T. A missing JSON body is a decode
// error.
func fetchInto[T any](ctx context.Context, c *Client, method, path, query string, data any) (T, error) {
	var out T
	raw, err := c.Fetch(ctx, method, path, query, data)
	if err != nil {
		return out, err
	}
	if raw == nil {
		return out, httpclient.NewDecodeError(0, nil, errors.New("expected a JSON response body"))
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, httpclient.NewDecodeError(0, raw, err)
	}
	return out, nil
}
