package repository

import (
	"context"
	"time"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
)

// NotificationRepository is the durable backing store for the notification
// engine's history.
type NotificationRepository struct {
	DB *db.Postgres
}

type CreateNotificationInput struct {
	Title     string
	Message   string
	Severity  domain.Severity
	Icon      string
	ActionRef string
	UserID    *int64
	Created   time.Time
}

func (r NotificationRepository) Create(ctx context.Context, in CreateNotificationInput) (*domain.Notification, error) {
	createdAt := in.Created
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	var n domain.Notification
	var userID pgtype.Int8
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO notifications (title, message, severity, icon, action_ref, user_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, title, message, severity, icon, read, action_ref, user_id, created_at, read_at
	`, in.Title, in.Message, string(in.Severity), in.Icon, in.ActionRef, in.UserID, createdAt).Scan(
		&n.ID, &n.Title, &n.Message, (*string)(&n.Severity), &n.Icon, &n.Read, &n.ActionRef,
		&userID, &n.CreatedAt, &n.ReadAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		n.UserID = &userID.Int64
	}
	return &n, nil
}

func (r NotificationRepository) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, title, message, severity, icon, read, action_ref, user_id, created_at, read_at
		FROM notifications
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var userID pgtype.Int8
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, (*string)(&n.Severity), &n.Icon, &n.Read,
			&n.ActionRef, &userID, &n.CreatedAt, &n.ReadAt); err != nil {
			return nil, err
		}
		if userID.Valid {
			n.UserID = &userID.Int64
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// TrimToNewest keeps only the newest keep rows, evicting the oldest first.
func (r NotificationRepository) TrimToNewest(ctx context.Context, keep int) error {
	_, err := r.DB.Pool.Exec(ctx, `
		DELETE FROM notifications
		WHERE id NOT IN (
			SELECT id FROM notifications ORDER BY created_at DESC, id DESC LIMIT $1
		)
	`, keep)
	return err
}

// DeleteOlderThan drops history entries created before cutoff.
func (r NotificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ct, err := r.DB.Pool.Exec(ctx, `DELETE FROM notifications WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r NotificationRepository) MarkAllRead(ctx context.Context) error {
	_, err := r.DB.Pool.Exec(ctx, `
		UPDATE notifications SET read=TRUE, read_at=now() WHERE NOT read
	`)
	return err
}

func (r NotificationRepository) UnreadCount(ctx context.Context) (int, error) {
	var n int
	err := r.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE NOT read`).Scan(&n)
	return n, err
}
