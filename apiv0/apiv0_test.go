package apiv0_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/kbukum/consoleapi/apiv0"
	"github.com/kbukum/consoleapi/consoletest"
	"github.com/kbukum/consoleapi/httpclient"
	"github.com/kbukum/consoleapi/httpclient/rest"
)

func setup(t *testing.T) (*consoletest.Server, *apiv0.DocumentsClient, *apiv0.UsersClient) {
	t.Helper()
	fake, baseURL := consoletest.NewHTTPTest(t, consoletest.Config{})

	c, err := rest.New(httpclient.Config{Name: "apiv0", BaseURL: baseURL + "/"})
	if err != nil {
		t.Fatal(err)
	}
	return fake, apiv0.NewDocumentsClient(c), apiv0.NewUsersClient(c)
}

var created = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func seedDoc(fake *consoletest.Server, path string) apiv0.Document {
	return fake.Store().PutDocument(apiv0.Document{
		Date:      created,
		PathParam: path,
		Body:      "hello",
		Metadata: apiv0.Metadata{
			Owner: "alice",
			Tags:  [][]string{{"labels", "a", "b"}, {"empty"}},
		},
	})
}

func TestDocuments_GetAndGetOne(t *testing.T) {
	fake, docs, _ := setup(t)
	ctx := context.Background()

	all, err := docs.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("expected no documents, got %d", len(all))
	}

	want := seedDoc(fake, "readme")
	seedDoc(fake, "another doc")

	got, err := docs.GetOne(ctx, "readme")
	if err != nil {
		t.Fatalf("GetOne() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetOne() mismatch (-want +got):\n%s", diff)
	}

	spaced, err := docs.GetOne(ctx, "another doc")
	if err != nil {
		t.Fatalf("GetOne(escaped) error = %v", err)
	}
	if spaced.PathParam != "another doc" {
		t.Errorf("PathParam = %q", spaced.PathParam)
	}

	all, err = docs.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 documents, got %d", len(all))
	}
}

func TestDocuments_NotFound(t *testing.T) {
	_, docs, _ := setup(t)

	_, err := docs.GetOne(context.Background(), "xyz")
	e, ok := httpclient.AsError(err)
	if !ok {
		t.Fatalf("expected *httpclient.Error, got %T (%v)", err, err)
	}
	if e.Message != "not found" || e.StatusCode != 404 {
		t.Errorf("got message %q status %d", e.Message, e.StatusCode)
	}
}

func TestDocuments_GetTag(t *testing.T) {
	fake, docs, _ := setup(t)
	seedDoc(fake, "readme")
	ctx := context.Background()

	values, err := docs.GetTag(ctx, "readme", "labels")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, values); diff != "" {
		t.Errorf("GetTag() mismatch (-want +got):\n%s", diff)
	}

	empty, err := docs.GetTag(ctx, "readme", "empty")
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no values, got %v", empty)
	}

	if _, err := docs.GetTag(ctx, "readme", "missing"); !rest.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDocuments_UpdateContentAndVersions(t *testing.T) {
	fake, docs, _ := setup(t)
	doc := seedDoc(fake, "readme")
	ctx := context.Background()

	next := created.Add(time.Hour)
	updated, err := docs.UpdateContent(ctx, apiv0.NewDocument{Content: "new body"}, "readme", doc.ID, next)
	if err != nil {
		t.Fatalf("UpdateContent() error = %v", err)
	}
	if updated.Body != "new body" || updated.Version.Number != 2 || !updated.Date.Equal(next) {
		t.Errorf("unexpected document: %+v", updated)
	}

	versions, err := docs.GetVersions(ctx, "readme")
	if err != nil {
		t.Fatal(err)
	}
	want := []apiv0.Version{{Date: created, Number: 1}, {Date: next, Number: 2}}
	if diff := cmp.Diff(want, versions); diff != "" {
		t.Errorf("GetVersions() mismatch (-want +got):\n%s", diff)
	}
}

func TestDocuments_UpdateContentKeepsSubsecondDate(t *testing.T) {
	fake, docs, _ := setup(t)
	doc := seedDoc(fake, "readme")
	ctx := context.Background()

	next := time.Date(2024, 3, 1, 13, 0, 0, 123456789, time.UTC)
	updated, err := docs.UpdateContent(ctx, apiv0.NewDocument{Content: "v2"}, "readme", doc.ID, next)
	if err != nil {
		t.Fatalf("UpdateContent() error = %v", err)
	}
	if !updated.Date.Equal(next) {
		t.Errorf("Date = %s, want %s", updated.Date.Format(time.RFC3339Nano), next.Format(time.RFC3339Nano))
	}

	// The returned date is the token for the next revision.
	again, err := docs.UpdateContent(ctx, apiv0.NewDocument{Content: "v3"}, "readme", doc.ID, updated.Date.Add(time.Nanosecond))
	if err != nil {
		t.Fatalf("second UpdateContent() error = %v", err)
	}
	if got := again.Date.Sub(next); got != time.Nanosecond {
		t.Errorf("second revision is %s after the first, want 1ns", got)
	}
}

func TestDocuments_UpdateContentErrors(t *testing.T) {
	fake, docs, _ := setup(t)
	seedDoc(fake, "readme")
	ctx := context.Background()

	_, err := docs.UpdateContent(ctx, apiv0.NewDocument{Content: "x"}, "readme", uuid.New(), created)
	if got := httpclient.StatusCode(err); got != 409 {
		t.Errorf("id mismatch: status = %d, want 409 (%v)", got, err)
	}

	_, err = docs.UpdateContent(ctx, apiv0.NewDocument{}, "readme", uuid.New(), created)
	if !httpclient.IsValidation(err) || httpclient.StatusCode(err) != 0 {
		t.Errorf("empty content: expected client-side validation error, got %v", err)
	}
}

func TestUsers_GetAndCreate(t *testing.T) {
	fake, _, users := setup(t)
	ctx := context.Background()

	if err := users.Create(ctx, []apiv0.User{}); err != nil {
		t.Fatalf("Create([]) error = %v", err)
	}
	list, err := users.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("expected no users, got %v", list)
	}

	in := []apiv0.User{{Name: "A", Surname: "B", Email: "a@b.c"}}
	if err := users.Create(ctx, in); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	list, err = users.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, list); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}

	err = users.Create(ctx, []apiv0.User{{Name: "C", Surname: "D", Email: "not-an-email"}})
	if !httpclient.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if n := len(fake.Store().Users()); n != 1 {
		t.Errorf("invalid user reached the server: %d users stored", n)
	}
}
