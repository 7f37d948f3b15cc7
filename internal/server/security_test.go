package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRoundTrip(t *testing.T, path, key string) *httptest.ResponseRecorder {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := AuthMiddleware("secret-key", nil, NewSuspiciousActivityDetector())

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if key != "" {
		req.Header.Set(HeaderAPIKey, key)
	}
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_ValidKeyPasses(t *testing.T) {
	rec := authRoundTrip(t, "/api/v1/records/member", "secret-key")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_BadKeyRejected(t *testing.T) {
	rec := authRoundTrip(t, "/api/v1/records/member", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = authRoundTrip(t, "/api/v1/records/member", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_PublicPathsBypassKey(t *testing.T) {
	for _, path := range []string{"/healthz", "/webhooks/board", "/api/v1/cache/check"} {
		rec := authRoundTrip(t, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestSuspiciousActivityDetector_RateLimit(t *testing.T) {
	detector := NewSuspiciousActivityDetector()

	for i := 0; i < requestRateLimit; i++ {
		require.True(t, detector.RecordRequest("10.0.0.1"))
	}
	assert.False(t, detector.RecordRequest("10.0.0.1"))

	// Other callers are counted independently.
	assert.True(t, detector.RecordRequest("10.0.0.2"))
}

func TestExtractIP_ForwardedForOnlyFromTrustedProxy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:4321"
	req.Header.Set(HeaderForwardedFor, "203.0.113.7, 198.51.100.2")

	// An untrusted peer cannot spoof its address through the header.
	assert.Equal(t, "10.0.0.9", extractIP(req, nil))

	// A trusted proxy's rightmost hop wins.
	assert.Equal(t, "198.51.100.2", extractIP(req, []string{"10.0.0.9"}))
}
