package admin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/kbukum/consoleapi/admin"
	"github.com/kbukum/consoleapi/consoletest"
	"github.com/kbukum/consoleapi/httpclient"
)

func setup(t *testing.T) (*consoletest.Server, *admin.Client) {
	t.Helper()
	fake, baseURL := consoletest.NewHTTPTest(t, consoletest.Config{})

	c, err := admin.New(baseURL+"/", consoletest.DefaultAdminToken)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close(context.Background()) })

	if c.BaseURL() != baseURL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), baseURL)
	}
	return fake, c
}

func addOwner(t *testing.T, c *admin.Client, email string) admin.User {
	t.Helper()
	u, err := c.AddUser(context.Background(), admin.NewUser{Email: email, FullName: "Owner", Password: "pw"})
	if err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}
	return u
}

func TestAPIURL(t *testing.T) {
	tests := []struct {
		base, path, query, want string
	}{
		{"http://h", "api/users", "", "http://h/api/users"},
		{"http://h/", "/api/users", "", "http://h/api/users"},
		{"http://h", "/api/projects/x/limit", "usage=1", "http://h/api/projects/x/limit?usage=1"},
		{"", "/api/users", "", "/api/users"},
	}
	for _, tt := range tests {
		if got := admin.APIURL(tt.base, tt.path, tt.query); got != tt.want {
			t.Errorf("APIURL(%q, %q, %q) = %q, want %q", tt.base, tt.path, tt.query, got, tt.want)
		}
	}
}

func TestFetch(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()

	raw, err := c.Fetch(ctx, http.MethodPost, "api/users", "", map[string]string{
		"email": "a@example.test", "fullName": "A", "password": "pw",
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	var u admin.User
	if err := json.Unmarshal(raw, &u); err != nil {
		t.Fatalf("unexpected body %s: %v", raw, err)
	}
	if u.Email != "a@example.test" || u.ID == uuid.Nil {
		t.Errorf("unexpected user: %+v", u)
	}

	// A successful call without a JSON body yields nil.
	raw, err = c.Fetch(ctx, http.MethodPut, "/api/users/a@example.test", "", map[string]string{"shortName": "a"})
	if err != nil {
		t.Fatal(err)
	}
	if raw != nil {
		t.Errorf("expected nil body, got %s", raw)
	}
}

func TestFetch_ErrorDetails(t *testing.T) {
	_, c := setup(t)

	_, err := c.Fetch(context.Background(), http.MethodGet, "/api/projects/not-a-uuid", "", nil)
	e, ok := httpclient.AsError(err)
	if !ok {
		t.Fatalf("expected *httpclient.Error, got %T (%v)", err, err)
	}
	if e.StatusCode != 400 || e.Message != "invalid project-uuid" {
		t.Errorf("got status %d message %q", e.StatusCode, e.Message)
	}
	if _, ok := e.Details["detail"].(string); !ok {
		t.Errorf("expected detail in %v", e.Details)
	}
}

func TestFetch_ErrorBodyIgnoresContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if r.URL.Path == "/api/ok" {
			_, _ = w.Write([]byte(`{"ignored":true}`))
			return
		}
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"usage for current month exists","detail":"x"}`))
	}))
	t.Cleanup(srv.Close)

	c, err := admin.New(srv.URL, "token")
	if err != nil {
		t.Fatal(err)
	}

	raw, err := c.Fetch(context.Background(), http.MethodGet, "/api/ok", "", nil)
	if err != nil || raw != nil {
		t.Errorf("text/plain success: got %s, %v; want nil, nil", raw, err)
	}

	_, err = c.Fetch(context.Background(), http.MethodGet, "/api/conflict", "", nil)
	e, ok := httpclient.AsError(err)
	if !ok {
		t.Fatalf("expected *httpclient.Error, got %T (%v)", err, err)
	}
	if e.StatusCode != http.StatusConflict || e.Message != "usage for current month exists" {
		t.Errorf("got status %d message %q", e.StatusCode, e.Message)
	}
	if e.Details["detail"] != "x" {
		t.Errorf("Details = %v", e.Details)
	}
}

func TestFetch_Forbidden(t *testing.T) {
	_, baseURL := consoletest.NewHTTPTest(t, consoletest.Config{})
	c, err := admin.New(baseURL, "wrong")
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Fetch(context.Background(), http.MethodGet, "/api/users/x@example.test", "", nil)
	if !httpclient.IsAuth(err) || httpclient.StatusCode(err) != 403 {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestUsers(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()
	owner := addOwner(t, c, "owner@example.test")

	_, err := c.AddUser(ctx, admin.NewUser{Email: "owner@example.test", FullName: "Again", Password: "pw"})
	if httpclient.StatusCode(err) != 409 {
		t.Errorf("duplicate: expected 409, got %v", err)
	}
	if _, err := c.AddUser(ctx, admin.NewUser{Email: "bad", FullName: "x", Password: "pw"}); !httpclient.IsValidation(err) {
		t.Errorf("invalid email: expected validation error, got %v", err)
	}

	if err := c.UpdateUser(ctx, owner.Email, admin.UpdatedUser{ShortName: "own", ProjectLimit: 7}); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	info, err := c.GetUser(ctx, owner.Email)
	if err != nil {
		t.Fatal(err)
	}
	want := owner
	want.ShortName = "own"
	want.ProjectLimit = 7
	if diff := cmp.Diff(admin.UserInfo{User: want, Projects: []admin.Project{}}, info); diff != "" {
		t.Errorf("GetUser() mismatch (-want +got):\n%s", diff)
	}

	if err := c.DeleteUser(ctx, owner.Email); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	_, err = c.GetUser(ctx, owner.Email)
	e, ok := httpclient.AsError(err)
	if !ok || e.StatusCode != 404 || e.Message != "user with given email does not exist" {
		t.Errorf("after delete: got %v", err)
	}
}

func TestProjects(t *testing.T) {
	fake, c := setup(t)
	ctx := context.Background()
	owner := addOwner(t, c, "owner@example.test")

	if _, err := c.AddProject(ctx, admin.NewProject{OwnerID: uuid.New(), ProjectName: "p"}); !httpclient.IsNotFound(err) {
		t.Errorf("unknown owner: expected not found, got %v", err)
	}

	created, err := c.AddProject(ctx, admin.NewProject{OwnerID: owner.ID, ProjectName: "first"})
	if err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}
	id := created.ProjectID

	if err := c.RenameProject(ctx, id, admin.RenamedProject{ProjectName: "renamed", Description: "d"}); err != nil {
		t.Fatal(err)
	}
	p, err := c.GetProject(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(admin.Project{ID: id, Name: "renamed", Description: "d", OwnerID: owner.ID}, p); diff != "" {
		t.Errorf("GetProject() mismatch (-want +got):\n%s", diff)
	}

	usage, err := c.ProjectUsage(ctx, id)
	if err != nil || usage.Result != "no project usage exist" {
		t.Errorf("ProjectUsage() = %+v, %v", usage, err)
	}
	fake.Store().SetProjectUsage(id, true)
	if _, err := c.ProjectUsage(ctx, id); httpclient.StatusCode(err) != 409 {
		t.Errorf("with usage: expected 409, got %v", err)
	}

	if err := c.DeleteUser(ctx, owner.Email); httpclient.StatusCode(err) != 409 {
		t.Errorf("owner with projects: expected 409, got %v", err)
	}
	if err := c.DeleteProject(ctx, id); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetProject(ctx, id); !httpclient.IsNotFound(err) {
		t.Errorf("after delete: expected not found, got %v", err)
	}
}

func TestProjectLimits(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()
	owner := addOwner(t, c, "owner@example.test")
	created, err := c.AddProject(ctx, admin.NewProject{OwnerID: owner.ID, ProjectName: "p"})
	if err != nil {
		t.Fatal(err)
	}
	id := created.ProjectID

	usage, rate := int64(1000), 5
	if err := c.UpdateProjectLimit(ctx, id, admin.ProjectLimitUpdate{Usage: &usage, Rate: &rate}); err != nil {
		t.Fatalf("UpdateProjectLimit() error = %v", err)
	}
	limits, err := c.GetProjectLimit(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if limits.Usage.Amount != 1000 || limits.Rate.RPS != 5 {
		t.Errorf("unexpected limits: %+v", limits)
	}
	if limits.MaxBuckets != 100 {
		t.Errorf("untouched limit changed: %+v", limits)
	}

	if err := c.UpdateProjectLimit(ctx, id, admin.ProjectLimitUpdate{}); !httpclient.IsValidation(err) {
		t.Errorf("empty update: expected validation error, got %v", err)
	}
	negative := -1
	if err := c.UpdateProjectLimit(ctx, id, admin.ProjectLimitUpdate{Buckets: &negative}); !httpclient.IsValidation(err) {
		t.Errorf("negative buckets: expected validation error, got %v", err)
	}
}

func TestAPIKeys(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()
	owner := addOwner(t, c, "owner@example.test")
	created, err := c.AddProject(ctx, admin.NewProject{OwnerID: owner.ID, ProjectName: "p"})
	if err != nil {
		t.Fatal(err)
	}
	id := created.ProjectID

	first, err := c.AddAPIKey(ctx, id, admin.NewAPIKey{Name: "first"})
	if err != nil {
		t.Fatalf("AddAPIKey() error = %v", err)
	}
	if first.APIKey == "" {
		t.Error("expected a serialized key")
	}
	if _, err := c.AddAPIKey(ctx, id, admin.NewAPIKey{Name: "second"}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddAPIKey(ctx, id, admin.NewAPIKey{Name: "first"}); httpclient.StatusCode(err) != 409 {
		t.Errorf("duplicate name: expected 409, got %v", err)
	}

	keys, err := c.ListAPIKeys(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}

	if err := c.DeleteAPIKey(ctx, first.APIKey); err != nil {
		t.Fatalf("DeleteAPIKey() error = %v", err)
	}
	if err := c.DeleteAPIKeyByName(ctx, id, "second"); err != nil {
		t.Fatalf("DeleteAPIKeyByName() error = %v", err)
	}
	if err := c.DeleteAPIKeyByName(ctx, id, "second"); !httpclient.IsNotFound(err) {
		t.Errorf("second delete: expected not found, got %v", err)
	}

	keys, err = c.ListAPIKeys(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 0 {
		t.Errorf("expected no keys, got %v", keys)
	}
}

func TestGeofence(t *testing.T) {
	fake, c := setup(t)
	ctx := context.Background()
	owner := addOwner(t, c, "owner@example.test")
	created, err := c.AddProject(ctx, admin.NewProject{OwnerID: owner.ID, ProjectName: "p"})
	if err != nil {
		t.Fatal(err)
	}
	id := created.ProjectID
	fake.Store().PutBucket(id, "photos")

	b, err := c.CreateGeofence(ctx, id, "photos", "EU")
	if err != nil {
		t.Fatalf("CreateGeofence() error = %v", err)
	}
	if b.Placement != "EU" || b.Name != "photos" || b.ProjectID != id {
		t.Errorf("unexpected bucket: %+v", b)
	}

	b, err = c.GetGeofence(ctx, id, "photos")
	if err != nil || b.Placement != "EU" {
		t.Errorf("GetGeofence() = %+v, %v", b, err)
	}

	b, err = c.DeleteGeofence(ctx, id, "photos")
	if err != nil || b.Placement != "" {
		t.Errorf("DeleteGeofence() = %+v, %v", b, err)
	}

	if _, err := c.CreateGeofence(ctx, id, "photos", "MARS"); !httpclient.IsValidation(err) || httpclient.StatusCode(err) != 0 {
		t.Errorf("unknown region: expected client-side validation error, got %v", err)
	}
	_, err = c.GetGeofence(ctx, id, "missing")
	if e, ok := httpclient.AsError(err); !ok || e.StatusCode != 400 || e.Message != "bucket does not exist" {
		t.Errorf("missing bucket: got %v", err)
	}
}

func TestOperations(t *testing.T) {
	ops := admin.Operations()
	if len(ops) != 18 {
		t.Fatalf("expected 18 operations, got %d", len(ops))
	}

	seen := map[string]bool{}
	for _, op := range ops {
		key := op.Group + " " + op.Name
		if seen[key] {
			t.Errorf("duplicate operation %q", key)
		}
		seen[key] = true
		if op.Method == "" || op.Path == "" || op.Description == "" {
			t.Errorf("incomplete operation %+v", op)
		}
	}

	ops[0].Name = "changed"
	if admin.Operations()[0].Name == "changed" {
		t.Error("Operations() must return a copy")
	}
}
