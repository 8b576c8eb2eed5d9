package consoletest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Email != DefaultEmail || cfg.Password != DefaultPassword || cfg.AdminToken != DefaultAdminToken {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.SessionTTL != time.Hour || cfg.Now == nil {
		t.Errorf("unexpected session defaults: %+v", cfg)
	}
}

func TestAdminAuth(t *testing.T) {
	s := New(Config{AdminToken: "tok"}, nil)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusForbidden},
		{"bearer form rejected", "Bearer tok", http.StatusForbidden},
		{"raw token", "tok", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users/nobody@example.test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not JSON: %q", rec.Body.String())
			}
			if body["error"] == "" {
				t.Errorf("missing error message: %v", body)
			}
		})
	}
}

func TestSessionRequired(t *testing.T) {
	s := New(Config{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v0/auth/account", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	s := New(Config{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v0/docs/", nil)
	req.Header.Set("X-Request-Id", "abc")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "abc" {
		t.Errorf("X-Request-Id = %q", got)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", rec.Body.String())
	}
}

func TestStartStop(t *testing.T) {
	s := New(Config{}, nil)
	if err := s.Start(context.Background(), "127.0.0.1:0"); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := s.Stop(context.Background()); err != nil {
			t.Errorf("Stop() = %v", err)
		}
	}()

	resp, err := http.Get("http://" + s.Addr() + "/api/v0/users/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("got %d %q", resp.StatusCode, body)
	}
}
