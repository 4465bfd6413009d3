package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthentication(t *testing.T) {
	// Helper to create a dummy handler
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		apiToken       string
		target         string
		setupRequest   func(req *http.Request)
		expectedStatus int
	}{
		{
			name:     "No token configured - allow access",
			apiToken: "",
			target:   "/",
			setupRequest: func(req *http.Request) {
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "Token set - no auth provided",
			apiToken: "secret123",
			target:   "/",
			setupRequest: func(req *http.Request) {
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:     "Token set - wrong auth provided",
			apiToken: "secret123",
			target:   "/",
			setupRequest: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer wrongsecret")
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:     "Token set - correct Bearer token",
			apiToken: "secret123",
			target:   "/",
			setupRequest: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer secret123")
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "Token set - correct X-API-Key header",
			apiToken: "secret123",
			target:   "/",
			setupRequest: func(req *http.Request) {
				req.Header.Set("X-API-Key", "secret123")
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "Token set - correct query param",
			apiToken: "secret123",
			target:   "/",
			setupRequest: func(req *http.Request) {
				q := req.URL.Query()
				q.Add("api_key", "secret123")
				req.URL.RawQuery = q.Encode()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "Token set - health probe needs no credentials",
			apiToken: "secret123",
			target:   "/health",
			setupRequest: func(req *http.Request) {
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			tt.setupRequest(req)
			w := httptest.NewRecorder()

			middleware := Auth(tt.apiToken)
			handler := middleware(nextHandler)
			handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
