package repository

import (
	"context"
	"errors"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/jackc/pgx/v5"
)

type DiscountRepository struct {
	DB *db.Postgres
}

const discountColumns = `id, name, kind, percentage, min_amount, valid_from, valid_until, active, max_uses, used_count`

func scanDiscount(row pgx.Row) (*domain.Discount, error) {
	var d domain.Discount
	err := row.Scan(&d.ID, &d.Name, &d.Kind, &d.Percentage, &d.MinAmount,
		&d.ValidFrom, &d.ValidUntil, &d.Active, &d.MaxUses, &d.UsedCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r DiscountRepository) List(ctx context.Context, filter ListFilter) ([]domain.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts`
	switch filter {
	case FilterActive:
		query += ` WHERE active`
	case FilterInactive:
		query += ` WHERE NOT active`
	}
	query += ` ORDER BY name`

	rows, err := r.DB.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Discount
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	return items, rows.Err()
}

func (r DiscountRepository) Get(ctx context.Context, id int64) (*domain.Discount, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+discountColumns+` FROM discounts WHERE id=$1`, id)
	return scanDiscount(row)
}

func (r DiscountRepository) Save(ctx context.Context, d domain.Discount) (*domain.Discount, error) {
	var row pgx.Row
	if d.ID == 0 {
		row = r.DB.Pool.QueryRow(ctx, `
			INSERT INTO discounts (name, kind, percentage, min_amount, valid_from, valid_until, active, max_uses)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING `+discountColumns,
			d.Name, d.Kind, d.Percentage, d.MinAmount, d.ValidFrom, d.ValidUntil, d.Active, d.MaxUses)
	} else {
		row = r.DB.Pool.QueryRow(ctx, `
			UPDATE discounts
			SET name=$1, kind=$2, percentage=$3, min_amount=$4, valid_from=$5, valid_until=$6, active=$7, max_uses=$8
			WHERE id=$9
			RETURNING `+discountColumns,
			d.Name, d.Kind, d.Percentage, d.MinAmount, d.ValidFrom, d.ValidUntil, d.Active, d.MaxUses, d.ID)
	}
	return scanDiscount(row)
}

func (r DiscountRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `DELETE FROM discounts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
