package users

import (
	"time"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateUserDTO carries the fields needed to insert a user account.
type CreateUserDTO struct {
	Username     string
	Email        string
	Phone        *string
	Role         enums.UserRole
	PasswordHash string
}

// ToModel converts the DTO into a persisted user model.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Username:     d.Username,
		Email:        d.Email,
		Phone:        d.Phone,
		Role:         d.Role,
		PasswordHash: d.PasswordHash,
	}
}

// UserProfile is the outward-facing account shape. The password hash never
// leaves the package.
type UserProfile struct {
	ID          uuid.UUID      `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	Phone       *string        `json:"phone,omitempty"`
	Role        enums.UserRole `json:"role"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// FromModel maps a user model to its profile representation.
func FromModel(user *models.User) UserProfile {
	return UserProfile{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        user.Role,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
