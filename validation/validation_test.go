package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kbukum/consoleapi/httpclient"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "John")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("name", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("name", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorRequiredUUID(t *testing.T) {
	if New().RequiredUUID("id", uuid.New()).HasErrors() {
		t.Error("expected no errors for a random UUID")
	}
	if !New().RequiredUUID("id", uuid.Nil).HasErrors() {
		t.Error("expected error for nil UUID")
	}
}

func TestValidatorChain(t *testing.T) {
	err := New().
		Required("fullName", "").
		Min("limit", -1, 0).
		OneOf("role", "owner", []string{"admin", "member"}).
		Custom(false, "passcode", "passcode or recoveryCode is required").
		Validate()

	e, ok := httpclient.AsError(err)
	if !ok {
		t.Fatalf("expected *httpclient.Error, got %T", err)
	}
	if e.Code != httpclient.ErrCodeValidation || e.StatusCode != 0 {
		t.Errorf("unexpected classification: %+v", e)
	}
	fields, _ := e.Details["fields"].([]FieldError)
	if len(fields) != 4 {
		t.Fatalf("expected 4 field errors, got %d", len(fields))
	}
	if !strings.HasPrefix(e.Message, "fullName: is required; limit: must be at least 0") {
		t.Errorf("Message = %q", e.Message)
	}
}

func TestValidatorNoErrors(t *testing.T) {
	if err := New().Required("a", "b").OneOf("role", "", []string{"x"}).Validate(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := Required("email", "a@b.c"); err != nil {
		t.Errorf("Required() = %v", err)
	}
	if err := Required("email", ""); !httpclient.IsValidation(err) {
		t.Errorf("Required(\"\") = %v", err)
	}
}

type testPayload struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	Note     string `json:"note" validate:"max=4"`
}

func TestValidateStruct(t *testing.T) {
	if err := Validate(testPayload{Email: "a@b.c", FullName: "A"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := Validate(testPayload{Email: "nope", Note: "too long"})
	e, ok := httpclient.AsError(err)
	if !ok {
		t.Fatalf("expected *httpclient.Error, got %T", err)
	}
	fields := e.Details["fields"].([]FieldError)
	got := map[string]string{}
	for _, f := range fields {
		got[f.Field] = f.Message
	}
	want := map[string]string{
		"email":    "must be a valid email address",
		"fullName": "is required",
		"note":     "must be at most 4",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("field %q: got %q, want %q", k, got[k], v)
		}
	}
}

func TestValidateSlice(t *testing.T) {
	if err := Validate([]testPayload{}); err != nil {
		t.Errorf("empty slice: %v", err)
	}

	err := Validate([]testPayload{{Email: "a@b.c", FullName: "A"}, {Email: "b@c.d"}})
	e, ok := httpclient.AsError(err)
	if !ok {
		t.Fatalf("expected *httpclient.Error, got %v", err)
	}
	fields := e.Details["fields"].([]FieldError)
	if len(fields) != 1 || !strings.HasSuffix(fields[0].Field, "fullName") || !strings.Contains(fields[0].Field, "[1]") {
		t.Errorf("fields = %+v", fields)
	}
}
