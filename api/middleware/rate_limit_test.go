package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLimiterStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (s *fakeLimiterStore) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[scope]++
	count := s.counts[scope]
	return count <= limit, count, nil
}

func limitedHandler(store *fakeLimiterStore, limit int) http.Handler {
	policy := RateLimitPolicy{Window: time.Minute, UserLimit: limit}
	return UserRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestUserRateLimitBlocksOverLimit(t *testing.T) {
	store := &fakeLimiterStore{}
	handler := limitedHandler(store, 5)
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/menu-items", nil)
		req = req.WithContext(WithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/menu-items", nil)
	req = req.WithContext(WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestUserRateLimitIsolatesUsers(t *testing.T) {
	store := &fakeLimiterStore{}
	handler := limitedHandler(store, 1)

	first := httptest.NewRequest(http.MethodGet, "/menu-items", nil)
	first = first.WithContext(WithUserID(first.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	assert.Equal(t, http.StatusOK, rec.Code)

	second := httptest.NewRequest(http.MethodGet, "/menu-items", nil)
	second = second.WithContext(WithUserID(second.Context(), uuid.New()))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserRateLimitSkipsAnonymousRequests(t *testing.T) {
	store := &fakeLimiterStore{}
	handler := limitedHandler(store, 1)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Empty(t, store.counts)
}

func TestUserRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	handler := UserRateLimit(RateLimitPolicy{}, &fakeLimiterStore{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/menu-items", nil)
	req = req.WithContext(WithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
