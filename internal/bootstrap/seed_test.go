package bootstrap

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cityops/auth-service/internal/config"
	"github.com/cityops/auth-service/internal/domain"
	"github.com/cityops/auth-service/internal/repository"
)

func TestEnsureAdminSkipsWhenUnconfigured(t *testing.T) {
	repo := &memoryUserRepo{}
	node, _ := snowflake.NewNode(1)

	err := ensureAdmin(context.Background(), config.Config{}, repo, node, zap.NewNop())
	require.NoError(t, err)
	require.Empty(t, repo.users)
}

func TestEnsureAdminCreatesMissingUser(t *testing.T) {
	repo := &memoryUserRepo{}
	node, _ := snowflake.NewNode(1)
	cfg := config.Config{AdminUsername: "admin", AdminPassword: "pw", AdminCity: "Lisbon"}

	err := ensureAdmin(context.Background(), cfg, repo, node, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, repo.users, 1)
	require.Equal(t, "admin", repo.users[0].Username)
	require.Equal(t, adminRole, repo.users[0].Role)
	require.Equal(t, "Lisbon", repo.users[0].AssignedCity)
	require.NotZero(t, repo.users[0].ID)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	repo := &memoryUserRepo{users: []domain.User{{ID: 1, Username: "admin", Password: "pw", Role: adminRole}}}
	node, _ := snowflake.NewNode(1)
	cfg := config.Config{AdminUsername: "admin", AdminPassword: "pw"}

	err := ensureAdmin(context.Background(), cfg, repo, node, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, repo.users, 1)
}

type memoryUserRepo struct {
	users []domain.User
}

func (m *memoryUserRepo) GetByCredentials(ctx context.Context, username, password string) (domain.User, error) {
	for _, u := range m.users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func (m *memoryUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func (m *memoryUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	m.users = append(m.users, user)
	return user, nil
}
