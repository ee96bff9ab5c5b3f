package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the prefixed tables and unique indexes if they do
// not exist. The folders table deliberately has no ON DELETE CASCADE:
// subtree removal is performed explicitly by DeleteSubtree so the
// cascade invariant does not depend on the storage engine.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				email VARCHAR(100) NOT NULL,
				password TEXT NOT NULL,
				username VARCHAR(32) NOT NULL,
				fullname VARCHAR(300),
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
				role VARCHAR(10) NOT NULL DEFAULT 'user',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Users),
		fmt.Sprintf(`
			CREATE UNIQUE INDEX IF NOT EXISTS %s_username_key ON %s (username)
		`, tables.Users, tables.Users),
		fmt.Sprintf(`
			CREATE UNIQUE INDEX IF NOT EXISTS %s_email_key ON %s (email)
		`, tables.Users, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name VARCHAR(100) NOT NULL,
				description VARCHAR(1000),
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				is_private BOOLEAN NOT NULL DEFAULT TRUE,
				owner_id UUID NOT NULL REFERENCES %s(id),
				parent_id UUID REFERENCES %s(id),
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Folders, tables.Users, tables.Folders),
		fmt.Sprintf(`
			CREATE UNIQUE INDEX IF NOT EXISTS %s_owner_name_key ON %s (owner_id, name)
		`, tables.Folders, tables.Folders),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
