package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticVerifier resolves a single known token for tests.
type staticVerifier map[string]int64

func (v staticVerifier) Verify(ctx context.Context, token string) (int64, error) {
	if id, ok := v[token]; ok {
		return id, nil
	}
	return 0, assert.AnError
}

func TestBearerAuth(t *testing.T) {
	logger := zerolog.Nop()
	verifier := staticVerifier{"good-token": 7}

	var gotUserID int64
	var hadIdentity bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, hadIdentity = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		path           string
		authHeader     string
		expectedStatus int
		expectIdentity bool
	}{
		{
			name:           "Valid token",
			path:           "/api/orders",
			authHeader:     "Bearer good-token",
			expectedStatus: http.StatusOK,
			expectIdentity: true,
		},
		{
			name:           "Missing header",
			path:           "/api/orders",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong scheme",
			path:           "/api/orders",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown token",
			path:           "/api/orders",
			authHeader:     "Bearer bad-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Health endpoint skips auth",
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Metrics endpoint skips auth",
			path:           "/metrics",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID, hadIdentity = 0, false

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			BearerAuth(verifier, logger)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectIdentity {
				assert.True(t, hadIdentity)
				assert.Equal(t, int64(7), gotUserID)
			}
		})
	}
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	var ctxID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = RequestIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	RequestID(next).ServeHTTP(rec, req)

	require.NotEmpty(t, ctxID)
	assert.Equal(t, ctxID, rec.Header().Get("X-Request-ID"))
}

func TestRequestID_HonoursCallerSupplied(t *testing.T) {
	var ctxID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = RequestIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("X-Request-ID", "caller-id-123")
	rec := httptest.NewRecorder()

	RequestID(next).ServeHTTP(rec, req)

	assert.Equal(t, "caller-id-123", ctxID)
	assert.Equal(t, "caller-id-123", rec.Header().Get("X-Request-ID"))
}

func TestRecovery(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	Recovery(zerolog.Nop())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestCORS_Preflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	rec := httptest.NewRecorder()

	CORS(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics_RecordsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	rec := httptest.NewRecorder()

	Metrics(m, nil)(next).ServeHTTP(rec, req)

	families, err := reg.Gather()
	require.NoError(t, err)

	var sawCounter bool
	for _, mf := range families {
		if mf.GetName() == "ministore_http_requests_total" {
			sawCounter = true
			require.Len(t, mf.GetMetric(), 1)
			assert.Equal(t, float64(1), mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, sawCounter, "expected request counter to be recorded")
}
