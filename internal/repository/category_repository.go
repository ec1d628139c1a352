package repository

import (
	"context"
	"errors"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/jackc/pgx/v5"
)

type CategoryRepository struct {
	DB *db.Postgres
}

func (r CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, description, active, created_at
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r CategoryRepository) Save(ctx context.Context, c domain.Category) (*domain.Category, error) {
	var row pgx.Row
	if c.ID == 0 {
		row = r.DB.Pool.QueryRow(ctx, `
			INSERT INTO categories (name, description, active)
			VALUES ($1,$2,$3)
			RETURNING id, name, description, active, created_at
		`, c.Name, c.Description, c.Active)
	} else {
		row = r.DB.Pool.QueryRow(ctx, `
			UPDATE categories SET name=$1, description=$2, active=$3
			WHERE id=$4
			RETURNING id, name, description, active, created_at
		`, c.Name, c.Description, c.Active, c.ID)
	}
	var out domain.Category
	err := row.Scan(&out.ID, &out.Name, &out.Description, &out.Active, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &out, nil
}

func (r CategoryRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
