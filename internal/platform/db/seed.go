package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"gemura/internal/domain/auth"
	"gemura/internal/platform/config"
)

// Seed makes sure the configured admin account exists. It is safe to run
// on every boot.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPass == "" {
		return nil
	}
	return ensureAdminUser(ctx, pool, cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPass)
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE lower(email) = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (name, email, password_hash, role)
    VALUES ($1, $2, $3, $4)
  `, name, email, hash, auth.RoleAdmin)
	return err
}
