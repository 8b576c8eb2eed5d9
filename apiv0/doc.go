// Package apiv0 holds the generated-style clients for the v0 document and
// user APIs. Each client is a thin binding of rest.Resource to its root path.
package apiv0
