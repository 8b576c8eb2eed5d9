// Package httpclient is the HTTP transport shared by the console, admin and
// generated API clients.
//
// An Adapter performs exactly one round trip per call. Every failure,
// whether transport, status or decode, is reported as *Error, whose Code
// classifies it without changing its type.
//
// # Basic Usage
//
//	a, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://console.example.com",
//	    Timeout: 10 * time.Second,
//	    Auth:    httpclient.TokenAuth(token),
//	})
//
//	resp, err := a.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   httpclient.JoinPath("/api/v0/docs", "readme"),
//	})
//	if httpclient.IsNotFound(err) {
//	    ...
//	}
//
// The subpackage rest builds typed resource clients on top of an Adapter.
package httpclient
