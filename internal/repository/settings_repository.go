package repository

import (
	"context"
	"errors"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/jackc/pgx/v5"
)

// SettingsRepository is the key-value configuration gateway.
type SettingsRepository struct {
	DB *db.Postgres
}

// Get returns the stored value for key, or fallback when the key is absent.
// Storage failures propagate; absence does not.
func (r SettingsRepository) Get(ctx context.Context, key, fallback string) (string, error) {
	var value string
	err := r.DB.Pool.QueryRow(ctx, `SELECT value FROM settings WHERE key=$1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fallback, nil
		}
		return fallback, err
	}
	return value, nil
}

// Set upserts the value for key and stamps updated_at.
func (r SettingsRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=now()
	`, key, value)
	return err
}

// List returns all settings, optionally restricted to one category.
func (r SettingsRepository) List(ctx context.Context, category string) ([]domain.Setting, error) {
	query := `
		SELECT key, value, description, category, updated_at
		FROM settings
		ORDER BY category, key`
	args := []any{}
	if category != "" {
		query = `
			SELECT key, value, description, category, updated_at
			FROM settings
			WHERE category=$1
			ORDER BY key`
		args = append(args, category)
	}
	rows, err := r.DB.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Setting
	for rows.Next() {
		var s domain.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.Description, &s.Category, &s.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}
