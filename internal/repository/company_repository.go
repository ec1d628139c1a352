package repository

import (
	"context"
	"errors"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/jackc/pgx/v5"
)

// CompanyRepository covers the single company row and invoice series.
type CompanyRepository struct {
	DB *db.Postgres
}

const companyColumns = `id, name, tax_id, address, phone, email, website, currency, language, timezone, default_tax_rate`

func (r CompanyRepository) Get(ctx context.Context) (*domain.Company, error) {
	var c domain.Company
	err := r.DB.Pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM company ORDER BY id LIMIT 1`).Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Address, &c.Phone, &c.Email, &c.Website,
		&c.Currency, &c.Language, &c.Timezone, &c.DefaultTaxRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r CompanyRepository) Save(ctx context.Context, c domain.Company) (*domain.Company, error) {
	var row pgx.Row
	if c.ID == 0 {
		row = r.DB.Pool.QueryRow(ctx, `
			INSERT INTO company (name, tax_id, address, phone, email, website, currency, language, timezone, default_tax_rate)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			RETURNING `+companyColumns,
			c.Name, c.TaxID, c.Address, c.Phone, c.Email, c.Website, c.Currency, c.Language, c.Timezone, c.DefaultTaxRate)
	} else {
		row = r.DB.Pool.QueryRow(ctx, `
			UPDATE company
			SET name=$1, tax_id=$2, address=$3, phone=$4, email=$5, website=$6,
			    currency=$7, language=$8, timezone=$9, default_tax_rate=$10
			WHERE id=$11
			RETURNING `+companyColumns,
			c.Name, c.TaxID, c.Address, c.Phone, c.Email, c.Website, c.Currency, c.Language, c.Timezone, c.DefaultTaxRate, c.ID)
	}
	var out domain.Company
	err := row.Scan(&out.ID, &out.Name, &out.TaxID, &out.Address, &out.Phone, &out.Email,
		&out.Website, &out.Currency, &out.Language, &out.Timezone, &out.DefaultTaxRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r CompanyRepository) ListSeries(ctx context.Context) ([]domain.InvoiceSeries, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, series, description, current_number, resolution, resolution_date, number_from, number_to, active
		FROM invoice_series
		ORDER BY series
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InvoiceSeries
	for rows.Next() {
		var s domain.InvoiceSeries
		if err := rows.Scan(&s.ID, &s.Series, &s.Description, &s.CurrentNumber, &s.Resolution,
			&s.ResolutionDate, &s.NumberFrom, &s.NumberTo, &s.Active); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// NextInvoiceNumber atomically claims the next number of a series.
func (r CompanyRepository) NextInvoiceNumber(ctx context.Context, series string) (int, error) {
	var n int
	err := r.DB.Pool.QueryRow(ctx, `
		UPDATE invoice_series
		SET current_number = current_number + 1
		WHERE series=$1 AND active
		RETURNING current_number - 1
	`, series).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return n, err
}
