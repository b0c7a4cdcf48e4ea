package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/cityops/auth-service/internal/config"
	"github.com/cityops/auth-service/internal/domain"
	"github.com/cityops/auth-service/internal/repository"
)

const adminRole = "admin"

// EnsureUploadDir creates the configured upload directory at startup. The
// login API itself never touches it; the directory is part of the deployment
// contract for the file endpoints served by the frontend stack.
func EnsureUploadDir(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
				return fmt.Errorf("create upload dir: %w", err)
			}
			logger.Info("upload dir ready", zap.String("path", cfg.UploadDir))
			return nil
		},
	})
}

// EnsureAdmin seeds a default admin user for dev/e2e if missing. Seeding is
// skipped entirely when ADMIN_USERNAME is unset; the verifier itself never
// writes to the store.
func EnsureAdmin(lc fx.Lifecycle, cfg config.Config, users repository.UserRepository, node *snowflake.Node, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return ensureAdmin(ctx, cfg, users, node, logger)
		},
	})
}

func ensureAdmin(ctx context.Context, cfg config.Config, users repository.UserRepository, node *snowflake.Node, logger *zap.Logger) error {
	if cfg.AdminUsername == "" {
		return nil
	}

	if _, err := users.GetByUsername(ctx, cfg.AdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("bootstrap lookup user: %w", err)
	}

	user := domain.User{
		ID:           node.Generate().Int64(),
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		Role:         adminRole,
		AssignedCity: cfg.AdminCity,
	}

	created, err := users.Create(ctx, user)
	if err != nil {
		return fmt.Errorf("bootstrap create user: %w", err)
	}

	if logger != nil {
		logger.Info("bootstrap admin user created",
			zap.String("username", created.Username),
			zap.Int64("user_id", created.ID),
		)
	}
	return nil
}
