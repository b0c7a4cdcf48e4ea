package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cityops/auth-service/internal/domain"
)

// Compile-time interface assertion.
var _ UserRepository = (*PostgresUserRepo)(nil)

// PostgresUserRepo implements UserRepository on a pgx pool.
type PostgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{db: pool}
}

// Values are always parameter-bound; never interpolate credentials into SQL.
// The store contract names the column assignedCity, so it must be quoted to
// survive Postgres identifier folding.
const getByCredentialsSQL = `
SELECT id, username, password, role, "assignedCity"
FROM users
WHERE username = $1 AND password = $2
ORDER BY id
LIMIT 1`

// GetByCredentials returns the user whose username and password columns both
// equal the supplied values. Should duplicate rows ever exist, the lowest id
// wins (ORDER BY id above).
func (r *PostgresUserRepo) GetByCredentials(ctx context.Context, username, password string) (domain.User, error) {
	row := r.db.QueryRow(ctx, getByCredentialsSQL, username, password)
	return scanUser(row, "get user by credentials")
}

const getByUsernameSQL = `
SELECT id, username, password, role, "assignedCity"
FROM users
WHERE username = $1
ORDER BY id
LIMIT 1`

func (r *PostgresUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRow(ctx, getByUsernameSQL, username)
	return scanUser(row, "get user by username")
}

const insertUserSQL = `
INSERT INTO users (id, username, password, role, "assignedCity")
VALUES ($1, $2, $3, $4, $5)
RETURNING id, username, password, role, "assignedCity"`

func (r *PostgresUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	row := r.db.QueryRow(ctx, insertUserSQL,
		user.ID,
		user.Username,
		user.Password,
		user.Role,
		user.AssignedCity,
	)
	return scanUser(row, "create user")
}

func scanUser(row pgx.Row, op string) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.AssignedCity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
