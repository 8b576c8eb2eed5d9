package httpclient

import (
	"net/url"
	"strings"
)

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, etc).
	Method string
	// Path is appended to the client's BaseURL. Can be a full URL if BaseURL is empty.
	Path string
	// Query are URL query parameters, percent-encoded on send.
	Query url.Values
	// Headers are request-specific headers (merged with client defaults).
	Headers map[string]string
	// Body is the request body. Accepts []byte, string, or any value that
	// will be JSON-encoded. Nil means no body and no Content-Type.
	Body any
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig
}

// Operation labels the request for logs, spans and metrics.
func (r Request) Operation() string {
	return r.Method + " " + r.Path
}

// Response is the result of an HTTP request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Status returns the status code; 0 for a nil response.
func (r *Response) Status() int {
	if r == nil {
		return 0
	}
	return r.StatusCode
}

// IsJSON reports whether the response declares a JSON body.
func (r *Response) IsJSON() bool {
	ct := r.Headers["Content-Type"]
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.EqualFold(strings.TrimSpace(ct), "application/json")
}

// JoinURL joins base and path with exactly one slash between them,
// regardless of trailing or leading slashes on either side. A path that is
// already an absolute http(s) URL is returned unchanged.
func JoinURL(base, path string) string {
	if base == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// JoinPath joins path segments under root, escaping each segment. Empty
// segments are kept so that JoinPath("/api/v0/docs", "") yields "/api/v0/docs/".
func JoinPath(root string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(root, "/"))
	if len(segments) == 0 {
		b.WriteByte('/')
		return b.String()
	}
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
