package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/littlelemonco/littlelemon-backend/internal/accesscontrol"
	"github.com/littlelemonco/littlelemon-backend/pkg/enums"
)

type stubAccessService struct {
	roles map[uuid.UUID]accesscontrol.RoleSet
}

func (s *stubAccessService) RolesOf(_ context.Context, userID uuid.UUID) (accesscontrol.RoleSet, error) {
	if roles, ok := s.roles[userID]; ok {
		return roles, nil
	}
	return accesscontrol.RoleSet{}, nil
}

func TestRequireManagerAllowsManagers(t *testing.T) {
	managerID := uuid.New()
	access := &stubAccessService{roles: map[uuid.UUID]accesscontrol.RoleSet{
		managerID: {enums.RoleManager: {}},
	}}

	handler := RequireManager(access, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/menu-items", nil)
	req = req.WithContext(WithUserID(req.Context(), managerID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireManagerForbidsOthers(t *testing.T) {
	crewID := uuid.New()
	access := &stubAccessService{roles: map[uuid.UUID]accesscontrol.RoleSet{
		crewID: {enums.RoleDeliveryCrew: {}},
	}}

	handler := RequireManager(access, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodPost, "/menu-items", nil)
	req = req.WithContext(WithUserID(req.Context(), crewID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireManagerNeedsAuthentication(t *testing.T) {
	handler := RequireManager(&stubAccessService{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/menu-items", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
