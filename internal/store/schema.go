// internal/store/schema.go
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements create the tables the gateway needs. Statements are
// idempotent so startup can run them unconditionally.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS chats (
		id BIGSERIAL PRIMARY KEY,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		language TEXT NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS forms (
		id BIGSERIAL PRIMARY KEY,
		form_type TEXT NOT NULL,
		form_text TEXT NOT NULL,
		responses_json TEXT NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		verification_token TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		verified_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chats_timestamp ON chats(timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_forms_timestamp ON forms(timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
	`CREATE INDEX IF NOT EXISTS idx_users_verified ON users(is_verified)`,
}

// InitSchema creates the required tables and indexes if missing.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
