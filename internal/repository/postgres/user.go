package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskvault/internal/domain"
	"taskvault/internal/domain/models"
	"taskvault/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const userColumns = "id, email, password, username, fullname, is_active, is_superuser, role, created_at, updated_at"

// Create inserts a new user. A unique violation at commit time is
// translated into the same denial a pre-check would have produced.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (email, password, username, fullname, is_active, is_superuser, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		user.Email,
		user.Password,
		user.Username,
		user.Fullname,
		user.IsActive,
		user.IsSuperuser,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if taken := translateUserConstraint(err); taken != nil {
			return taken
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by id, returning (nil, nil) when absent
func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, userColumns, r.tables.Users)
	return r.getUser(ctx, query, id)
}

// GetByUsername retrieves a user by username, returning (nil, nil) when absent
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE username = $1
	`, userColumns, r.tables.Users)
	return r.getUser(ctx, query, username)
}

// GetByEmail retrieves a user by email, returning (nil, nil) when absent
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE email = $1
	`, userColumns, r.tables.Users)
	return r.getUser(ctx, query, email)
}

// Update persists all mutable fields of the user
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET email = $1, username = $2, fullname = $3, is_active = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		user.Email,
		user.Username,
		user.Fullname,
		user.IsActive,
		user.ID,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if isPgNoRowsError(err) {
			// Row vanished between load and update
			return domain.ErrUserNotFound
		}
		if taken := translateUserConstraint(err); taken != nil {
			return taken
		}
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (r *PostgresUserRepository) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Username,
		&user.Fullname,
		&user.IsActive,
		&user.IsSuperuser,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			// Not found, not an error
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}
