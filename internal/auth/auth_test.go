package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newProtected(token string) http.Handler {
	gate := New(token)
	return gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		header     string
		wantStatus int
	}{
		{
			name:       "missing header",
			token:      "secret-token",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong token",
			token:      "secret-token",
			header:     "wrong-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bare token",
			token:      "secret-token",
			header:     "secret-token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "bearer token",
			token:      "secret-token",
			header:     "Bearer secret-token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "bearer with wrong token",
			token:      "secret-token",
			header:     "Bearer wrong-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token rejects everything",
			token:      "",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token rejects even empty bearer",
			token:      "",
			header:     "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newProtected(tt.token)

			req := httptest.NewRequest("POST", "/mcp", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestMiddleware_UnauthorizedBody(t *testing.T) {
	handler := newProtected("secret-token")

	req := httptest.NewRequest("POST", "/mcp", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body["error"] != "unauthorized" {
		t.Errorf("expected error 'unauthorized', got %v", body["error"])
	}
	if body["code"].(float64) != 401 {
		t.Errorf("expected code 401, got %v", body["code"])
	}
	if body["detail"] == nil || body["timestamp"] == nil {
		t.Errorf("expected detail and timestamp fields, got %v", body)
	}
}
