package repository

import (
	"context"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
)

// BackupRepository registers backups taken by the client; the byte copy
// itself happens outside this service.
type BackupRepository struct {
	DB *db.Postgres
}

func (r BackupRepository) Create(ctx context.Context, b domain.Backup) (*domain.Backup, error) {
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO backups (filename, path, size, user_id, notes, automatic)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at
	`, b.Filename, b.Path, b.Size, b.UserID, b.Notes, b.Automatic).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r BackupRepository) List(ctx context.Context, limit int) ([]domain.Backup, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, filename, path, size, user_id, notes, automatic, created_at
		FROM backups
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Backup
	for rows.Next() {
		var b domain.Backup
		if err := rows.Scan(&b.ID, &b.Filename, &b.Path, &b.Size, &b.UserID, &b.Notes,
			&b.Automatic, &b.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}
