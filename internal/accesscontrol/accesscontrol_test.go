package accesscontrol

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
	"github.com/littlelemonco/littlelemon-backend/pkg/enums"
	pkgerrors "github.com/littlelemonco/littlelemon-backend/pkg/errors"
)

type stubMembershipReader struct {
	groups map[uuid.UUID][]string
	err    error
}

func (s *stubMembershipReader) GroupNamesForUser(_ context.Context, userID uuid.UUID) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.groups[userID], nil
}

func roleSet(roles ...enums.Role) RoleSet {
	set := RoleSet{}
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

func TestRolesOfResolvesKnownGroups(t *testing.T) {
	managerID := uuid.New()
	crewID := uuid.New()
	customerID := uuid.New()

	svc := NewService(&stubMembershipReader{groups: map[uuid.UUID][]string{
		managerID: {"manager"},
		crewID:    {"delivery_crew"},
	}})

	roles, err := svc.RolesOf(context.Background(), managerID)
	require.NoError(t, err)
	assert.True(t, roles.IsManager())
	assert.False(t, roles.IsDeliveryCrew())

	roles, err = svc.RolesOf(context.Background(), crewID)
	require.NoError(t, err)
	assert.True(t, roles.IsDeliveryCrew())
	assert.False(t, roles.IsManager())

	roles, err = svc.RolesOf(context.Background(), customerID)
	require.NoError(t, err)
	assert.True(t, roles.IsCustomer())
}

func TestRolesOfIgnoresUnknownGroups(t *testing.T) {
	userID := uuid.New()
	svc := NewService(&stubMembershipReader{groups: map[uuid.UUID][]string{
		userID: {"kitchen_staff", "manager"},
	}})

	roles, err := svc.RolesOf(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, roles, 1)
	assert.True(t, roles.IsManager())
}

func TestRolesOfWrapsReaderFailure(t *testing.T) {
	svc := NewService(&stubMembershipReader{err: errors.New("connection refused")})

	_, err := svc.RolesOf(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal))
}

func TestCanViewOrder(t *testing.T) {
	owner := uuid.New()
	crew := uuid.New()
	stranger := uuid.New()
	order := &models.Order{UserID: owner, DeliveryCrewID: &crew}

	assert.True(t, CanViewOrder(roleSet(enums.RoleManager), stranger, order))
	assert.True(t, CanViewOrder(roleSet(), owner, order))
	assert.True(t, CanViewOrder(roleSet(enums.RoleDeliveryCrew), crew, order))

	assert.False(t, CanViewOrder(roleSet(), stranger, order))
	assert.False(t, CanViewOrder(roleSet(enums.RoleDeliveryCrew), stranger, order))
	assert.False(t, CanViewOrder(roleSet(enums.RoleDeliveryCrew), crew, &models.Order{UserID: owner}))
}

func TestCanUpdateOrder(t *testing.T) {
	owner := uuid.New()
	crew := uuid.New()
	order := &models.Order{UserID: owner, DeliveryCrewID: &crew}

	allowed, statusOnly := CanUpdateOrder(roleSet(enums.RoleManager), uuid.New(), order)
	assert.True(t, allowed)
	assert.False(t, statusOnly)

	allowed, statusOnly = CanUpdateOrder(roleSet(enums.RoleDeliveryCrew), crew, order)
	assert.True(t, allowed)
	assert.True(t, statusOnly)

	allowed, _ = CanUpdateOrder(roleSet(enums.RoleDeliveryCrew), uuid.New(), order)
	assert.False(t, allowed)

	// Owners do not get write access to their own orders.
	allowed, _ = CanUpdateOrder(roleSet(), owner, order)
	assert.False(t, allowed)
}

func TestCanDeleteOrder(t *testing.T) {
	assert.True(t, CanDeleteOrder(roleSet(enums.RoleManager)))
	assert.False(t, CanDeleteOrder(roleSet(enums.RoleDeliveryCrew)))
	assert.False(t, CanDeleteOrder(roleSet()))
}
