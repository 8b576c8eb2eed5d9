// Package rest provides typed JSON clients built on the HTTP adapter.
//
// Resource[T] is one generic client per API root: the root path and the
// record shape are its only parameters. Every operation is a single request
// through the (optionally instrumented) transport; responses decode into
// the declared shape and failures surface as *httpclient.Error.
//
//	c, err := rest.New(httpclient.Config{BaseURL: "https://console.example.com"},
//	    rest.WithObservability(log, "consoleapi", metrics))
//
//	docs := rest.NewResource[Document](c, "/api/v0/docs")
//	all, err := docs.List(ctx)
//	one, err := docs.Get(ctx, "readme")
//
// Shapes other than T go through the generic helpers:
//
//	versions, err := rest.Fetch[[]Version](ctx, c, http.MethodGet,
//	    httpclient.JoinPath("/api/v0/docs", path, "versions"), nil, nil)
package rest
