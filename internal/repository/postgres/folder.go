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

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const folderColumns = "id, name, description, is_active, is_private, owner_id, parent_id, created_at, updated_at"

// Create inserts a new folder. The (owner_id, name) unique index is the
// final arbiter for concurrent creates; its violation is translated into
// the same denial the pre-check produces.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, is_active, is_private, owner_id, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.Name,
		folder.Description,
		folder.IsActive,
		folder.IsPrivate,
		folder.OwnerID,
		folder.ParentID,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if taken := translateFolderConstraint(err, "create"); taken != nil {
			return taken
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by id, returning (nil, nil) when absent
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, folderColumns, r.tables.Folders)
	return r.getFolder(ctx, query, id)
}

// GetByOwnerAndName retrieves a folder by its owner and name, returning
// (nil, nil) when absent. Name uniqueness is scoped per owner, so this
// is a point lookup.
func (r *PostgresFolderRepository) GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE owner_id = $1 AND name = $2
	`, folderColumns, r.tables.Folders)
	return r.getFolder(ctx, query, ownerID, name)
}

// ListByOwner returns all folders owned by the given user, flat
func (r *PostgresFolderRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, folderColumns, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.Name,
			&folder.Description,
			&folder.IsActive,
			&folder.IsPrivate,
			&folder.OwnerID,
			&folder.ParentID,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// Update persists all mutable fields of the folder
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, is_active = $3, parent_id = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.Name,
		folder.Description,
		folder.IsActive,
		folder.ParentID,
		folder.ID,
	).Scan(&folder.UpdatedAt)

	if err != nil {
		if isPgNoRowsError(err) {
			// Row vanished between load and update
			return domain.ErrFolderNotFound
		}
		if taken := translateFolderConstraint(err, "update"); taken != nil {
			return taken
		}
		return fmt.Errorf("update folder: %w", err)
	}

	return nil
}

// DeleteSubtree removes the folder and its entire descendant subtree.
// The id closure over parent_id is computed with a recursive CTE and
// deleted in one statement, so the cascade invariant holds without
// declarative ON DELETE CASCADE. Runs against the context transaction
// when one is present.
func (r *PostgresFolderRepository) DeleteSubtree(ctx context.Context, id uuid.UUID) (int64, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE subtree AS (
			SELECT id FROM %s WHERE id = $1
			UNION ALL
			SELECT f.id FROM %s f
			JOIN subtree s ON f.parent_id = s.id
		)
		DELETE FROM %s WHERE id IN (SELECT id FROM subtree)
	`, r.tables.Folders, r.tables.Folders, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete folder subtree: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *PostgresFolderRepository) getFolder(ctx context.Context, query string, args ...interface{}) (*models.Folder, error) {
	var folder models.Folder
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, args...).Scan(
		&folder.ID,
		&folder.Name,
		&folder.Description,
		&folder.IsActive,
		&folder.IsPrivate,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			// Not found, not an error
			return nil, nil
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}
