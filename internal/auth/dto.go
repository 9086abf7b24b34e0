package auth

import (
	"github.com/campusworks/hosteldesk-backend/internal/users"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// LoginRequest accepts a username or email plus the account password.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse carries the token pair and the authenticated profile.
type LoginResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	User         users.UserProfile `json:"user"`
	StudentID    *uuid.UUID        `json:"student_id,omitempty"`
	HostelID     *uuid.UUID        `json:"hostel_id,omitempty"`
}

// RefreshRequest exchanges an expired access token and its refresh token for
// a fresh pair.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse carries the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest rotates the account password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// RegisterStudentRequest onboards a student account plus academic profile.
type RegisterStudentRequest struct {
	Username    string   `json:"username" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	Phone       *string  `json:"phone,omitempty"`
	Name        string   `json:"name" validate:"required"`
	RegNo       string   `json:"reg_no" validate:"required"`
	Department  string   `json:"department" validate:"required"`
	YearOfStudy int      `json:"year_of_study" validate:"required,min=1,max=6"`
	Category    string   `json:"category,omitempty"`
	KEAMRank    *int     `json:"keam_rank,omitempty"`
	SGPA        *float64 `json:"sgpa,omitempty"`
}

// RegisterStaffRequest onboards a warden or super admin account. The admin
// code must match the configured code for the requested role.
type RegisterStaffRequest struct {
	Username  string         `json:"username" validate:"required"`
	Email     string         `json:"email" validate:"required,email"`
	Password  string         `json:"password" validate:"required,min=8"`
	Phone     *string        `json:"phone,omitempty"`
	Role      enums.UserRole `json:"role" validate:"required"`
	AdminCode string         `json:"admin_code" validate:"required"`
}
