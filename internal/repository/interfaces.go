package repository

import (
	"context"
	"errors"

	"github.com/cityops/auth-service/internal/domain"
)

// ErrNotFound is returned when no user row matches the lookup.
var ErrNotFound = errors.New("user not found")

// UserRepository exposes persistence for user accounts. The credential
// lookup is read-only; Create exists only for the startup seed.
type UserRepository interface {
	GetByCredentials(ctx context.Context, username, password string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
}
