package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleGroup is a named staff group ("manager", "delivery_crew").
type RoleGroup struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;type:text;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// RoleMembership links a user to a role group. Uniqueness of the pair makes
// add-to-group naturally idempotent.
type RoleMembership struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_role_memberships_user_group"`
	GroupID   uuid.UUID `gorm:"column:group_id;type:uuid;not null;uniqueIndex:idx_role_memberships_user_group"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
