package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kbukum/consoleapi/httpclient"
)

// Resource is a typed client for one API root, e.g. "/api/v0/docs".
type Resource[T any] struct {
	client *Client
	root   string
}

// NewResource binds a record shape to a root path.
func NewResource[T any](c *Client, root string) *Resource[T] {
	return &Resource[T]{client: c, root: root}
}

// Root returns the root path.
func (r *Resource[T]) Root() string {
	return r.root
}

// Client returns the underlying client.
func (r *Resource[T]) Client() *Client {
	return r.client
}

// Path returns root joined with the escaped segments.
func (r *Resource[T]) Path(segments ...string) string {
	return httpclient.JoinPath(r.root, segments...)
}

// List fetches GET <root>/.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	return Fetch[[]T](ctx, r.client, http.MethodGet, r.Path(), nil, nil)
}

// Get fetches GET <root>/<path>.
func (r *Resource[T]) Get(ctx context.Context, path string) (T, error) {
	return Fetch[T](ctx, r.client, http.MethodGet, r.Path(path), nil, nil)
}

// Values fetches the string list at GET <root>/<path>/<subkey>.
func (r *Resource[T]) Values(ctx context.Context, path, subkey string) ([]string, error) {
	return Fetch[[]string](ctx, r.client, http.MethodGet, r.Path(path, subkey), nil, nil)
}

// Update sends payload to POST <root>/<path>?<query> and returns the stored record.
func (r *Resource[T]) Update(ctx context.Context, path string, query url.Values, payload any) (T, error) {
	return Fetch[T](ctx, r.client, http.MethodPost, r.Path(path), query, payload)
}

// Create posts items to POST <root>/. An empty or nil slice still sends "[]".
func (r *Resource[T]) Create(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	return Send(ctx, r.client, http.MethodPost, r.Path(), nil, items)
}
