package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate applies the schema. The unique constraints on username, email and
// access_token are what actually close the check-then-insert races the
// service layer cannot close on its own.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			uuid TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			user_name TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			salt TEXT NOT NULL,
			country TEXT,
			about_me TEXT,
			dob TEXT,
			role TEXT NOT NULL DEFAULT 'nonadmin',
			contact_number TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS user_auth (
			id BIGSERIAL PRIMARY KEY,
			uuid TEXT NOT NULL,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			access_token TEXT NOT NULL UNIQUE,
			login_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			logout_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS question (
			id BIGSERIAL PRIMARY KEY,
			uuid TEXT NOT NULL UNIQUE,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_question_user_id ON question(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_user_auth_user_id ON user_auth(user_id)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
