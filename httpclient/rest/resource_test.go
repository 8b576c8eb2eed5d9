package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"github.com/kbukum/consoleapi/httpclient"
)

type testUser struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(httpclient.Config{Name: "test-rest", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

func TestResource_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v0/users/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"name":"A","surname":"B","email":"a@b.c"}]`)
	})

	users, err := NewResource[testUser](c, "/api/v0/users").List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []testUser{{Name: "A", Surname: "B", Email: "a@b.c"}}
	if diff := cmp.Diff(want, users); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestResource_Get_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v0/docs/xyz" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"not found"}`)
	})

	_, err := NewResource[testUser](c, "/api/v0/docs").Get(context.Background(), "xyz")
	e, ok := httpclient.AsError(err)
	if !ok {
		t.Fatalf("expected *httpclient.Error, got %T (%v)", err, err)
	}
	if e.Message != "not found" || e.StatusCode != 404 {
		t.Errorf("got message %q status %d", e.Message, e.StatusCode)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound = false")
	}
}

func TestResource_StatusPassThrough(t *testing.T) {
	for _, status := range []int{400, 401, 403, 409, 422, 429, 500, 502, 503} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
				_, _ = io.WriteString(w, `{"message":"nope"}`)
			})
			_, err := NewResource[testUser](c, "/r").Get(context.Background(), "x")
			if got := StatusCode(err); got != status {
				t.Errorf("StatusCode = %d, want %d", got, status)
			}
		})
	}
}

func TestResource_NonJSONError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})

	_, err := NewResource[testUser](c, "/r").List(context.Background())
	e, ok := httpclient.AsError(err)
	if !ok {
		t.Fatalf("expected *httpclient.Error, got %T", err)
	}
	if e.Message != "" {
		t.Errorf("Message = %q, want empty", e.Message)
	}
	if e.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d", e.StatusCode)
	}
	if IsDecode(err) {
		t.Error("non-JSON error body must not be a decode error")
	}
}

func TestResource_EmptyBodyIsDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := NewResource[testUser](c, "/r").Get(context.Background(), "x")
	if !IsDecode(err) {
		t.Fatalf("expected decode error, got %v", err)
	}
	if StatusCode(err) != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", StatusCode(err))
	}
}

func TestResource_MalformedBodyIsDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"name":`)
	})

	_, err := NewResource[testUser](c, "/r").List(context.Background())
	if !IsDecode(err) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestResource_Values(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/v0/docs/my%20doc/labels" {
			t.Errorf("path = %q", r.URL.EscapedPath())
		}
		_, _ = io.WriteString(w, `["a","b"]`)
	})

	got, err := NewResource[testUser](c, "/api/v0/docs").Values(context.Background(), "my doc", "labels")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
}

func TestResource_Update(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Query().Get("date") != "2024-01-02T03:04:05Z" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var in testUser
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode body: %v", err)
		}
		in.Email = "stored@example.com"
		_ = json.NewEncoder(w).Encode(in)
	})

	got, err := NewResource[testUser](c, "/api/v0/users").Update(context.Background(), "a",
		url.Values{"date": {"2024-01-02T03:04:05Z"}}, testUser{Name: "A"})
	if err != nil {
		t.Fatal(err)
	}
	want := testUser{Name: "A", Email: "stored@example.com"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Update() mismatch (-want +got):\n%s", diff)
	}
}

func TestResource_CreateEmpty(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		body, _ := io.ReadAll(r.Body)
		if string(body) != "[]" {
			t.Errorf("body = %q, want []", body)
		}
		if r.URL.Path != "/api/v0/users/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	res := NewResource[testUser](c, "/api/v0/users")
	if err := res.Create(context.Background(), []testUser{}); err != nil {
		t.Fatalf("Create([]) error = %v", err)
	}
	if err := res.Create(context.Background(), nil); err != nil {
		t.Fatalf("Create(nil) error = %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("server saw %d calls, want 2", n)
	}
}

func TestResource_NoRetry(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if err := NewResource[testUser](c, "/r").Create(context.Background(), nil); !IsServerError(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server saw %d calls, want 1", n)
	}
}

func TestResource_Concurrent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[len("/api/v0/users/"):]
		_ = json.NewEncoder(w).Encode(testUser{Name: name})
	})
	res := NewResource[testUser](c, "/api/v0/users")

	const n = 32
	got := make([]testUser, n)
	g, ctx := errgroup.WithContext(context.Background())
	for i := range n {
		g.Go(func() error {
			u, err := res.Get(ctx, fmt.Sprintf("u%d", i))
			got[i] = u
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	for i, u := range got {
		if want := fmt.Sprintf("u%d", i); u.Name != want {
			t.Errorf("result %d = %q, want %q", i, u.Name, want)
		}
	}
}

func TestClient_ProviderSurface(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {})
	if got := c.Name(); got != "test-rest" {
		t.Errorf("Name() = %q", got)
	}
	if !c.IsAvailable(context.Background()) {
		t.Error("IsAvailable() = false")
	}
}

func TestFetch_GenericShape(t *testing.T) {
	type version struct {
		ID int `json:"id"`
	}
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1},{"id":2}]`)
	})

	got, err := Fetch[[]version](context.Background(), c, http.MethodGet, "/api/v0/docs/a/versions", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]version{{1}, {2}}, got); diff != "" {
		t.Errorf("Fetch mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_WithAdapterOptions(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	// The test server's client trusts its self-signed certificate.
	c, err := New(httpclient.Config{Name: "tls", BaseURL: srv.URL},
		WithAdapterOptions(httpclient.WithHTTPClient(srv.Client())))
	if err != nil {
		t.Fatal(err)
	}
	users, err := NewResource[testUser](c, "/api/v0/users").List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("List() = %v, want empty", users)
	}
}
