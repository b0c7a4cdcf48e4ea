package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cityops/auth-service/internal/config"
	"github.com/cityops/auth-service/internal/domain"
	"github.com/cityops/auth-service/internal/repository"
	"github.com/cityops/auth-service/internal/telemetry"
)

// AuthError standardizes authentication failures with an HTTP status.
type AuthError struct {
	Code        string
	Description string
	Status      int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func newAuthError(code, desc string, status int) *AuthError {
	return &AuthError{Code: code, Description: desc, Status: status}
}

// AuthService verifies login attempts against the user store.
type AuthService struct {
	users  repository.UserRepository
	cfg    config.Config
	logger *zap.Logger
	tracer trace.Tracer
}

// NewAuthService wires dependencies. A nil telemetry provider yields a noop
// tracer.
func NewAuthService(users repository.UserRepository, cfg config.Config, logger *zap.Logger, tp *telemetry.Provider) *AuthService {
	return &AuthService{
		users:  users,
		cfg:    cfg,
		logger: logger,
		tracer: tp.Tracer(),
	}
}

// Verify authenticates a single login attempt. It performs one exact-match
// lookup against the users table and returns the public profile projection.
// The store round trip is bounded by the configured query timeout so a hung
// connection cannot hang the caller.
func (s *AuthService) Verify(ctx context.Context, username, password string) (domain.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Verify")
	defer span.End()

	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return domain.Profile{}, newAuthError("invalid_request", "Username and password are required.", http.StatusBadRequest)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	user, err := s.users.GetByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Profile{}, newAuthError("invalid_credentials", "Wrong username or password.", http.StatusUnauthorized)
		}
		span.RecordError(err)
		s.logger.Error("credential lookup failed", zap.String("username", username), zap.Error(err))
		// Store internals never reach the client.
		return domain.Profile{}, newAuthError("server_error", "Authentication is temporarily unavailable.", http.StatusInternalServerError)
	}

	return user.Profile(), nil
}
