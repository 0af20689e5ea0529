package dto

import (
	"time"

	"github.com/SscSPs/postal_ledger/internal/core/domain"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StaffUserResponse is the public shape of a staff user.
type StaffUserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// ToStaffUserResponse converts a domain staff user.
func ToStaffUserResponse(u *domain.StaffUser) StaffUserResponse {
	return StaffUserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Name:     u.Name,
		Role:     string(u.Role),
	}
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      StaffUserResponse `json:"user"`
}
