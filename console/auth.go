package console

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"golang.org/x/net/publicsuffix"

	"github.com/kbukum/consoleapi/httpclient"
	"github.com/kbukum/consoleapi/httpclient/rest"
	"github.com/kbukum/consoleapi/validation"
)

// TokenCookie is the name of the session cookie set by Token.
const TokenCookie = "_tokenKey"

// NewClient creates a rest client for the console. When cfg has no cookie
// jar a public-suffix aware one is installed so the session cookie from
// Token authenticates later calls.
func NewClient(cfg httpclient.Config, opts ...rest.Option) (*rest.Client, error) {
	if cfg.CookieJar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("console: create cookie jar: %w", err)
		}
		cfg.CookieJar = jar
	}
	if cfg.Name == "" {
		cfg.Name = "console"
	}
	return rest.New(cfg, opts...)
}

// AuthHTTPAPI logs in and out of the console.
type AuthHTTPAPI struct {
	client *rest.Client
}

// NewAuthHTTPAPI creates the auth API on c.
func NewAuthHTTPAPI(c *rest.Client) *AuthHTTPAPI {
	return &AuthHTTPAPI{client: c}
}

// Token logs in with the given credentials. The server also sets the
// session cookie, which the client's jar keeps.
func (a *AuthHTTPAPI) Token(ctx context.Context, creds AuthUser) (TokenInfo, error) {
	if err := validation.Validate(creds); err != nil {
		return TokenInfo{}, err
	}
	return rest.Fetch[TokenInfo](ctx, a.client, http.MethodPost, authPath("token"), nil, creds)
}

// Logout ends the session and clears the cookie.
func (a *AuthHTTPAPI) Logout(ctx context.Context) error {
	return rest.Send(ctx, a.client, http.MethodPost, authPath("logout"), nil, nil)
}
