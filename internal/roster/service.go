package roster

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/littlelemonco/littlelemon-backend/internal/users"
	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
	"github.com/littlelemonco/littlelemon-backend/pkg/enums"
	pkgerrors "github.com/littlelemonco/littlelemon-backend/pkg/errors"
)

// Service manages the staff roster: who holds the manager and delivery crew
// roles. All operations are manager-gated at the transport layer.
type Service interface {
	ListMembers(ctx context.Context, role enums.Role) ([]users.UserDTO, error)
	AddMember(ctx context.Context, role enums.Role, userID uuid.UUID) (users.UserDTO, error)
	RemoveMember(ctx context.Context, role enums.Role, userID uuid.UUID) error
}

type service struct {
	repo  Repository
	users users.Repository
}

func NewService(repo Repository, userRepo users.Repository) Service {
	return &service{repo: repo, users: userRepo}
}

func (s *service) ListMembers(ctx context.Context, role enums.Role) ([]users.UserDTO, error) {
	group, err := s.findGroup(ctx, role)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ListMembers(ctx, group.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list group members")
	}
	dtos := make([]users.UserDTO, 0, len(members))
	for i := range members {
		dtos = append(dtos, users.NewUserDTO(&members[i]))
	}
	return dtos, nil
}

func (s *service) AddMember(ctx context.Context, role enums.Role, userID uuid.UUID) (users.UserDTO, error) {
	group, err := s.findGroup(ctx, role)
	if err != nil {
		return users.UserDTO{}, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return users.UserDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return users.UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load user")
	}
	if err := s.repo.AddMember(ctx, group.ID, user.ID); err != nil {
		return users.UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to add group member")
	}
	return users.NewUserDTO(user), nil
}

func (s *service) RemoveMember(ctx context.Context, role enums.Role, userID uuid.UUID) error {
	group, err := s.findGroup(ctx, role)
	if err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load user")
	}
	// Removing a non-member succeeds quietly, so the result is ignored.
	if _, err := s.repo.RemoveMember(ctx, group.ID, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to remove group member")
	}
	return nil
}

func (s *service) findGroup(ctx context.Context, role enums.Role) (*models.RoleGroup, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "role group not found")
	}
	group, err := s.repo.FindGroupByName(ctx, role.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "role group not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load role group")
	}
	return group, nil
}
