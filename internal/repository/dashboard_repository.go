package repository

import (
	"context"
	"errors"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/jackc/pgx/v5"
)

// DashboardRepository runs the read-only aggregate queries behind the KPI
// view. Every call recomputes from the full tables; there is no incremental
// state to invalidate.
type DashboardRepository struct {
	DB *db.Postgres
}

type DashboardSummary struct {
	TotalSales      float64
	MonthlySales    float64
	DailySales      float64
	TotalProducts   int64
	OutOfStock      int64
	TotalClients    int64
	NewClientsMonth int64
	BestSeller      string
	BestSellerQty   int64
}

type SalesPoint struct {
	Label  string
	Amount float64
}

type LowStockRow struct {
	Name  string
	Stock int
}

func (r DashboardRepository) Summary(ctx context.Context) (DashboardSummary, error) {
	var s DashboardSummary
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(total), 0),
			COALESCE(SUM(total) FILTER (WHERE date_trunc('month', date) = date_trunc('month', now())), 0),
			COALESCE(SUM(total) FILTER (WHERE date::date = CURRENT_DATE), 0)
		FROM sales
		WHERE status = 'completed'
	`).Scan(&s.TotalSales, &s.MonthlySales, &s.DailySales)
	if err != nil {
		return s, err
	}

	err = r.DB.Pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE stock = 0) FROM products
	`).Scan(&s.TotalProducts, &s.OutOfStock)
	if err != nil {
		return s, err
	}

	err = r.DB.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE date_trunc('month', registered_at) = date_trunc('month', now()))
		FROM clients
	`).Scan(&s.TotalClients, &s.NewClientsMonth)
	if err != nil {
		return s, err
	}

	// Tie-break by name so the result is deterministic.
	err = r.DB.Pool.QueryRow(ctx, `
		SELECT product_name, SUM(quantity) AS qty
		FROM sale_items
		GROUP BY product_name
		ORDER BY qty DESC, product_name ASC
		LIMIT 1
	`).Scan(&s.BestSeller, &s.BestSellerQty)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return s, err
	}
	return s, nil
}

// MonthlySeries groups completed sales by month over the trailing year.
func (r DashboardRepository) MonthlySeries(ctx context.Context) ([]SalesPoint, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT to_char(date_trunc('month', date), 'YYYY-MM') AS month, COALESCE(SUM(total), 0)
		FROM sales
		WHERE status = 'completed' AND date >= now() - INTERVAL '12 months'
		GROUP BY month
		ORDER BY month
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []SalesPoint
	for rows.Next() {
		var p SalesPoint
		if err := rows.Scan(&p.Label, &p.Amount); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// DailySeries groups completed sales by day over the trailing month.
func (r DashboardRepository) DailySeries(ctx context.Context) ([]SalesPoint, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT to_char(date::date, 'YYYY-MM-DD') AS day, COALESCE(SUM(total), 0)
		FROM sales
		WHERE status = 'completed' AND date >= now() - INTERVAL '30 days'
		GROUP BY day
		ORDER BY day
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []SalesPoint
	for rows.Next() {
		var p SalesPoint
		if err := rows.Scan(&p.Label, &p.Amount); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r DashboardRepository) LowStockList(ctx context.Context, floor int) ([]LowStockRow, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT name, stock FROM products WHERE stock <= $1 ORDER BY stock ASC
	`, floor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LowStockRow
	for rows.Next() {
		var row LowStockRow
		if err := rows.Scan(&row.Name, &row.Stock); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}
