package accesscontrol

import (
	"context"

	"github.com/google/uuid"

	"github.com/littlelemonco/littlelemon-backend/pkg/enums"
	pkgerrors "github.com/littlelemonco/littlelemon-backend/pkg/errors"
)

// MembershipReader resolves the role group names a user currently belongs to.
// Reads go to the database on every call; tokens never carry roles, so a
// revoked membership takes effect on the next request.
type MembershipReader interface {
	GroupNamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// RoleSet is the resolved set of staff roles for one user. Empty set means
// customer.
type RoleSet map[enums.Role]struct{}

func (s RoleSet) Has(role enums.Role) bool {
	_, ok := s[role]
	return ok
}

func (s RoleSet) IsManager() bool {
	return s.Has(enums.RoleManager)
}

func (s RoleSet) IsDeliveryCrew() bool {
	return s.Has(enums.RoleDeliveryCrew)
}

// IsCustomer reports whether the user holds no staff role at all.
func (s RoleSet) IsCustomer() bool {
	return len(s) == 0
}

type Service interface {
	RolesOf(ctx context.Context, userID uuid.UUID) (RoleSet, error)
}

type service struct {
	memberships MembershipReader
}

func NewService(memberships MembershipReader) Service {
	return &service{memberships: memberships}
}

func (s *service) RolesOf(ctx context.Context, userID uuid.UUID) (RoleSet, error) {
	names, err := s.memberships.GroupNamesForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to resolve role memberships")
	}
	roles := RoleSet{}
	for _, name := range names {
		role, err := enums.ParseRole(name)
		if err != nil {
			// Unknown groups are ignored rather than failing the request.
			continue
		}
		roles[role] = struct{}{}
	}
	return roles, nil
}
