package httpclient

import "net/http"

// AuthType identifies how credentials are attached to a request.
type AuthType int

const (
	// AuthNone sends no credentials. Session-cookie clients rely on the
	// cookie jar instead.
	AuthNone AuthType = iota
	// AuthToken sends the token verbatim as the Authorization header value.
	AuthToken
	// AuthBearer sends "Authorization: Bearer <token>".
	AuthBearer
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	Type  AuthType
	Token string
}

// TokenAuth sends token as the raw Authorization header value, the form the
// admin API expects.
func TokenAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthToken, Token: token}
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Token == "" {
		return
	}
	switch a.Type {
	case AuthToken:
		req.Header.Set("Authorization", a.Token)
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}
}
