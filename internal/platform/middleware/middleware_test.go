// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shelfmark/internal/platform/ctxutil"
	"github.com/taibuivan/shelfmark/internal/platform/middleware"
	"github.com/taibuivan/shelfmark/internal/platform/sec"
)

type fakeVerifier map[string]string

func (verifier fakeVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	userID, ok := verifier[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return &sec.AuthClaims{UserID: userID}, nil
}

type fixedEnvironment bool

func (development fixedEnvironment) IsDevelopment() bool { return bool(development) }

// echoUser writes the authenticated user id, or "anonymous".
var echoUser = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	userID := ctxutil.UserID(request.Context())
	if userID == "" {
		userID = "anonymous"
	}
	_, _ = writer.Write([]byte(userID))
})

/*
TestAuthenticate covers anonymous, valid and invalid credentials.
*/
func TestAuthenticate(t *testing.T) {
	handler := middleware.Authenticate(fakeVerifier{"good": "user-1"})(echoUser)

	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"anonymous", "", http.StatusOK, "anonymous"},
		{"valid bearer", "Bearer good", http.StatusOK, "user-1"},
		{"lowercase scheme", "bearer good", http.StatusOK, "user-1"},
		{"unknown token", "Bearer bad", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic Zm9vOmJhcg==", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.code, recorder.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, recorder.Body.String())
			}
		})
	}
}

/*
TestRequireAuth blocks requests without claims.
*/
func TestRequireAuth(t *testing.T) {
	handler := middleware.RequireAuth(echoUser)

	anonymous := httptest.NewRecorder()
	handler.ServeHTTP(anonymous, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "user-1"}))
	authenticated := httptest.NewRecorder()
	handler.ServeHTTP(authenticated, request)
	assert.Equal(t, http.StatusOK, authenticated.Code)
}

/*
TestRateLimiter exhausts the burst of one client without affecting another.
*/
func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewRateLimiter(ctx, 1, 2)
	handler := limiter.Middleware(echoUser)

	send := func(ip string) int {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("X-Real-IP", ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

/*
TestCORS allows the product domain and configured origins outside development.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(fixedEnvironment(false), "https://reader.example.com, ")(echoUser)

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://app.shelfmark.app", true},
		{"https://reader.example.com", true},
		{"https://evil.example.net", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodOptions, "/", nil)
			request.Header.Set("Origin", tt.origin)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
