package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
)

// UserDTO is the wire representation of a user; the password hash never leaves
// the persistence layer.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserDTO maps the persistence model to its wire form.
func NewUserDTO(user *models.User) UserDTO {
	if user == nil {
		return UserDTO{}
	}
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
