package roster

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
)

// Repository persists role groups and their memberships.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindGroupByName(ctx context.Context, name string) (*models.RoleGroup, error)
	GroupNamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]models.User, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindGroupByName(ctx context.Context, name string) (*models.RoleGroup, error) {
	var group models.RoleGroup
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repository) GroupNamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.RoleMembership{}).
		Joins("JOIN role_groups ON role_groups.id = role_memberships.group_id").
		Where("role_memberships.user_id = ?", userID).
		Pluck("role_groups.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *repository) ListMembers(ctx context.Context, groupID uuid.UUID) ([]models.User, error) {
	var members []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN role_memberships ON role_memberships.user_id = users.id").
		Where("role_memberships.group_id = ?", groupID).
		Order("users.username ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember is idempotent: re-adding an existing member is a no-op.
func (r *repository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	membership := models.RoleMembership{
		ID:      uuid.New(),
		UserID:  userID,
		GroupID: groupID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "group_id"}},
			DoNothing: true,
		}).
		Create(&membership).Error
}

// RemoveMember reports whether a membership row was actually deleted.
func (r *repository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.RoleMembership{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
