package rest

import "github.com/kbukum/consoleapi/httpclient"

// Convenience re-exports so callers of typed clients can classify failures
// without importing httpclient.

// IsNotFound checks if the error is a 404 Not Found.
func IsNotFound(err error) bool { return httpclient.IsNotFound(err) }

// IsAuth checks if the error is a 401/403 authentication error.
func IsAuth(err error) bool { return httpclient.IsAuth(err) }

// IsRateLimit checks if the error is a 429 Too Many Requests.
func IsRateLimit(err error) bool { return httpclient.IsRateLimit(err) }

// IsServerError checks if the error is a 5xx server error.
func IsServerError(err error) bool { return httpclient.IsServerError(err) }

// IsValidation checks if the error is a rejected request or payload.
func IsValidation(err error) bool { return httpclient.IsValidation(err) }

// IsDecode checks if a 2xx response failed to decode.
func IsDecode(err error) bool { return httpclient.IsDecode(err) }

// IsTimeout checks if the error is a timeout.
func IsTimeout(err error) bool { return httpclient.IsTimeout(err) }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int { return httpclient.StatusCode(err) }
