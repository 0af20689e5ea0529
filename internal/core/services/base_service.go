package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.AuthorizerSvc
}

// ServiceOption is a functional option shared by the ledger services
type ServiceOption func(*BaseService)

// WithAuthorizer enables role checks on every operation of the service.
func WithAuthorizer(authorizer portssvc.AuthorizerSvc) ServiceOption {
	return func(s *BaseService) {
		s.Authorizer = authorizer
	}
}

func (s *BaseService) apply(options []ServiceOption) {
	for _, option := range options {
		option(s)
	}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks if a user holds the required role.
// Without an authorizer every call is permitted, which is how the single-user embedded setup runs.
func (s *BaseService) AuthorizeUser(ctx context.Context, userID string, requiredRole domain.StaffRole) error {
	if s.Authorizer != nil {
		return s.Authorizer.AuthorizeUserAction(ctx, userID, requiredRole)
	}
	s.LogDebug(ctx, "No authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("required_role", string(requiredRole)))
	return nil
}
