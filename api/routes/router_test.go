package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/littlelemonco/littlelemon-backend/pkg/auth"
	"github.com/littlelemonco/littlelemon-backend/pkg/config"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "littlelemon",
			ExpirationMinutes: 60,
			SessionTTLMinutes: 1440,
		},
	}
	return NewRouter(Deps{Config: cfg})
}

func TestHealthLiveIsPublic(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpointIsExposed(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticatedRoutesRejectAnonymous(t *testing.T) {
	router := testRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/cart/"},
		{http.MethodGet, "/api/v1/menu-items/"},
		{http.MethodGet, "/api/v1/orders/"},
		{http.MethodGet, "/api/v1/groups/manager/users/"},
	}
	for _, tc := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestAuthenticatedRouteAcceptsValidToken(t *testing.T) {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "littlelemon",
			ExpirationMinutes: 60,
			SessionTTLMinutes: 1440,
		},
	}
	router := NewRouter(Deps{Config: cfg})

	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    uuid.NewString(),
	})
	require.NoError(t, err)

	// With no cart service wired the handler panics before writing, so only
	// assert the request makes it past the auth middleware.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
}
