package auth

import (
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID    uuid.UUID
	Role      enums.UserRole
	StudentID *uuid.UUID
	HostelID  *uuid.UUID
	JTI       string
}

// AccessTokenClaims represents the typed JWT issued to clients. StudentID is
// set for Student-role accounts, HostelID for wardens with an assigned hostel.
type AccessTokenClaims struct {
	UserID    uuid.UUID      `json:"user_id"`
	Role      enums.UserRole `json:"role"`
	StudentID *uuid.UUID     `json:"student_id,omitempty"`
	HostelID  *uuid.UUID     `json:"hostel_id,omitempty"`
	jwt.RegisteredClaims
}
