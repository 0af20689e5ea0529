package services

import (
	"context"
	"time"

	"github.com/SscSPs/postal_ledger/internal/core/domain"
)

// AuthorizerSvc checks whether a staff user may perform an action.
type AuthorizerSvc interface {
	// AuthorizeUserAction returns apperrors.ErrForbidden when the user lacks requiredRole.
	AuthorizeUserAction(ctx context.Context, userID string, requiredRole domain.StaffRole) error
}

// AuthSvcFacade manages staff credentials and access tokens.
type AuthSvcFacade interface {
	AuthorizerSvc

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, username, password string) (string, time.Time, *domain.StaffUser, error)

	// CreateStaffUser registers a staff account with a bcrypt-hashed password.
	CreateStaffUser(ctx context.Context, username, password, name string, role domain.StaffRole) (*domain.StaffUser, error)
}
