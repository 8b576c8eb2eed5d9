// Package provider defines the request/response abstraction the API clients
// call through, and the middleware that decorates it.
//
// The HTTP transport (httpclient.Adapter) is a RequestResponse[Request,
// *Response]; rest clients wrap it with Chain(WithLogging, WithTracing,
// WithMetrics) before use. Middleware never retries: each Execute on the
// chain performs exactly one Execute on the wrapped provider.
package provider
