package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/platform/config"
	"github.com/SscSPs/postal_ledger/internal/utils"
	"github.com/google/uuid"
)

// authService implements the AuthSvcFacade for staff logins and role checks.
type authService struct {
	BaseService
	cfg       *config.Config
	staffRepo portsrepo.StaffUserRepository
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, staffRepo portsrepo.StaffUserRepository) portssvc.AuthSvcFacade {
	return &authService{
		cfg:       cfg,
		staffRepo: staffRepo,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and issues an access token. Unknown users and wrong
// passwords fail the same way.
func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, *domain.StaffUser, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return "", time.Time{}, nil, apperrors.NewAppError(http.StatusUnauthorized, "username and password are required", apperrors.ErrUnauthorized)
	}

	user, err := s.staffRepo.FindStaffUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Login for unknown staff user", slog.String("username", username))
			return "", time.Time{}, nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid credentials", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to load staff user", slog.String("username", username))
		return "", time.Time{}, nil, fmt.Errorf("failed to load staff user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogInfo(ctx, "Login with wrong password", slog.String("user_id", user.UserID))
		return "", time.Time{}, nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid credentials", apperrors.ErrUnauthorized)
	}

	token, expiresAt, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	s.LogInfo(ctx, "Staff user logged in",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)))
	return token, expiresAt, user, nil
}

// CreateStaffUser registers a staff account.
func (s *authService) CreateStaffUser(ctx context.Context, username, password, name string, role domain.StaffRole) (*domain.StaffUser, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	name = strings.TrimSpace(name)
	if username == "" {
		return nil, apperrors.NewValidationFailedError("username is required")
	}
	if name == "" {
		name = username
	}
	if !role.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown role %q", role))
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	user := domain.StaffUser{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.staffRepo.SaveStaffUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save staff user", slog.String("username", username))
		return nil, fmt.Errorf("failed to save staff user: %w", err)
	}

	s.LogInfo(ctx, "Staff user created",
		slog.String("user_id", user.UserID),
		slog.String("role", string(role)))
	return &user, nil
}

// AuthorizeUserAction checks the stored role of the user, so a role change takes
// effect without waiting for tokens to expire.
func (s *authService) AuthorizeUserAction(ctx context.Context, userID string, requiredRole domain.StaffRole) error {
	if userID == "" {
		return apperrors.NewAppError(http.StatusUnauthorized, "authentication required", apperrors.ErrUnauthorized)
	}
	user, err := s.staffRepo.FindStaffUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAppError(http.StatusUnauthorized, "unknown staff user", apperrors.ErrUnauthorized)
		}
		return fmt.Errorf("failed to load staff user: %w", err)
	}
	if !user.Role.Satisfies(requiredRole) {
		s.LogInfo(ctx, "Role insufficient",
			slog.String("user_id", userID),
			slog.String("role", string(user.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.NewAppError(http.StatusForbidden,
			fmt.Sprintf("role %s cannot perform an action requiring %s", user.Role, requiredRole), apperrors.ErrForbidden)
	}
	return nil
}
