package repository

import (
	"context"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
)

// AuditRepository is append-only.
type AuditRepository struct {
	DB *db.Postgres
}

func (r AuditRepository) Record(ctx context.Context, e domain.AuditEntry) error {
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO audit_log (user_id, action, module, description, ip_address, user_agent)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, e.UserID, e.Action, e.Module, e.Description, e.IPAddress, e.UserAgent)
	return err
}

func (r AuditRepository) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, user_id, action, module, description, ip_address, user_agent, logged_at
		FROM audit_log
		ORDER BY logged_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Module, &e.Description,
			&e.IPAddress, &e.UserAgent, &e.LoggedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
