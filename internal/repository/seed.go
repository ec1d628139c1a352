package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Seeder inserts bootstrap rows on first run. Each block runs only when its
// table is empty: this is a one-time bootstrap, not a merge, so rows the
// operator later deletes are never re-created.
type Seeder struct {
	DB     *db.Postgres
	Logger *slog.Logger
}

func (s Seeder) Run(ctx context.Context) error {
	steps := []struct {
		table string
		fn    func(context.Context) error
	}{
		{"settings", s.seedSettings},
		{"users", s.seedAdmin},
		{"suppliers", s.seedSuppliers},
		{"categories", s.seedCategories},
		{"discounts", s.seedDiscounts},
		{"products", s.seedProducts},
		{"clients", s.seedClients},
		{"company", s.seedCompany},
		{"invoice_series", s.seedInvoiceSeries},
	}
	for _, step := range steps {
		empty, err := s.tableEmpty(ctx, step.table)
		if err != nil {
			return fmt.Errorf("seed %s: %w", step.table, err)
		}
		if !empty {
			continue
		}
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", step.table, err)
		}
		s.Logger.Info("seeded defaults", "table", step.table)
	}
	return nil
}

func (s Seeder) tableEmpty(ctx context.Context, table string) (bool, error) {
	var n int64
	if err := s.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

func (s Seeder) seedSettings(ctx context.Context) error {
	defaults := []struct {
		key, value, description, category string
	}{
		{"company_name", "Mi Empresa ERP", "Legal company name", "company"},
		{"company_tax_id", "", "Company tax id (RUC/NIT)", "company"},
		{"company_address", "", "Fiscal address", "company"},
		{"company_phone", "", "Contact phone", "company"},
		{"company_email", "", "Contact email", "company"},
		{"default_tax_rate", "0.15", "Default invoice tax rate", "invoicing"},
		{"currency", "HNL", "Primary system currency", "regional"},
		{"language", "es", "System language", "regional"},
		{"timezone", "America/Tegucigalpa", "Time zone", "regional"},
		{"receipt_template", defaultReceiptTemplate, "HTML receipt template", "system"},
		{"stock_alerts", "1", "Low stock alerts", "notifications"},
		{"sales_alerts", "1", "Sale notifications", "notifications"},
		{"auto_backup", "1", "Automatic backup enabled", "backup"},
		{"session_timeout", "30", "Session timeout in minutes", "security"},
	}
	for _, d := range defaults {
		_, err := s.DB.Pool.Exec(ctx, `
			INSERT INTO settings (key, value, description, category) VALUES ($1,$2,$3,$4)
		`, d.key, d.value, d.description, d.category)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s Seeder) seedAdmin(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.DB.Pool.Exec(ctx, `
		INSERT INTO users (name, username, password_hash, role, email)
		VALUES ($1,$2,$3,$4,$5)
	`, "Administrador Principal", "admin", string(hash), domain.RoleAdmin, "admin@empresa.com")
	return err
}

func (s Seeder) seedSuppliers(ctx context.Context) error {
	_, err := s.DB.Pool.Exec(ctx, `
		INSERT INTO suppliers (name, contact_name, contact_title, phone, email, category, status, address, tax_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, "Distribuidora Central", "Juan Pérez", "Gerente", "555-1234",
		"ventas@distribuidora.com", "Tecnología", domain.SupplierActive,
		"Colonia Palmira, Tegucigalpa", "0801-9999-12345")
	return err
}

func (s Seeder) seedCategories(ctx context.Context) error {
	categories := []struct{ name, description string }{
		{"Tecnología", "Productos tecnológicos y electrónicos"},
		{"Oficina", "Suministros de oficina"},
		{"Hogar", "Artículos para el hogar"},
		{"Electrodomésticos", "Electrodomésticos y línea blanca"},
	}
	for _, c := range categories {
		_, err := s.DB.Pool.Exec(ctx, `
			INSERT INTO categories (name, description) VALUES ($1,$2)
		`, c.name, c.description)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s Seeder) seedDiscounts(ctx context.Context) error {
	discounts := []struct {
		name, kind string
		percentage float64
		minAmount  float64
	}{
		{"Docena 10%", "Docena", 0.10, 0},
		{"Mayorista 15%", "Mayorista", 0.15, 1000},
		{"Cliente Frecuente 5%", "Fidelidad", 0.05, 0},
	}
	for _, d := range discounts {
		_, err := s.DB.Pool.Exec(ctx, `
			INSERT INTO discounts (name, kind, percentage, min_amount, active) VALUES ($1,$2,$3,$4,TRUE)
		`, d.name, d.kind, d.percentage, d.minAmount)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s Seeder) seedProducts(ctx context.Context) error {
	var categoryID, supplierID int64
	if err := s.DB.Pool.QueryRow(ctx, `SELECT id FROM categories WHERE name='Tecnología'`).Scan(&categoryID); err != nil {
		return err
	}
	if err := s.DB.Pool.QueryRow(ctx, `SELECT id FROM suppliers ORDER BY id LIMIT 1`).Scan(&supplierID); err != nil {
		return err
	}

	products := []struct {
		name, description string
		price, cost       float64
		stock, minStock   int
		sku, barcode      string
	}{
		{`Monitor 27" 4K`, "Monitor 4K profesional para diseño", 320.00, 200.00, 15, 5, "MON-27-4K", "1234567890123"},
		{"Teclado Mecánico RGB", "Switches Blue, retroiluminación RGB", 45.00, 25.00, 105, 10, "TEC-MEC-RGB", "1234567890124"},
		{"Mouse Gamer Pro", "RGB, 16000 DPI, 6 botones", 35.00, 18.00, 50, 5, "MOU-GAM-PRO", "1234567890125"},
		{"Laptop HP EliteBook", `i5, 8GB RAM, 256GB SSD, 14"`, 650.00, 450.00, 8, 2, "LAP-HP-ELITE", "1234567890126"},
		{"Impresora Láser", "Impresora láser blanco y negro", 150.00, 90.00, 12, 3, "IMP-LAS-BN", "1234567890127"},
	}
	for _, p := range products {
		_, err := s.DB.Pool.Exec(ctx, `
			INSERT INTO products (name, description, price, cost, stock, min_stock, category_id, supplier_id, sku, barcode)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`, p.name, p.description, p.price, p.cost, p.stock, p.minStock, categoryID, supplierID, p.sku, p.barcode)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s Seeder) seedClients(ctx context.Context) error {
	clients := []struct {
		firstName, lastName, nationalID, phone, email, address, tier string
		creditLimit                                                  float64
		notes                                                        string
	}{
		{"Juan Carlos", "Pérez González", "0801199901234", "9876-1234", "juan.perez@email.com",
			"Colonia Palmira, Tegucigalpa", "Premium", 5000.00, "Cliente frecuente, paga puntual"},
		{"María Elena", "Rodríguez López", "0801200005678", "9965-4789", "maria.rodriguez@email.com",
			"Barrio La Granja, San Pedro Sula", "Normal", 1000.00, "Cliente ocasional"},
		{"José Antonio", "Martínez Castro", "0501199812345", "9754-3261", "jose.martinez@email.com",
			"Centro, Comayagua", "Gold", 10000.00, "Cliente corporativo"},
		{"Ana Sofía", "García Hernández", "1801199909876", "9843-7521", "ana.garcia@email.com",
			"Colonia Kennedy, La Ceiba", "Normal", 2000.00, "Preferencia por productos tecnológicos"},
	}
	for _, c := range clients {
		_, err := s.DB.Pool.Exec(ctx, `
			INSERT INTO clients (first_name, last_name, national_id, phone, email, address, tier, credit_limit, notes)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, c.firstName, c.lastName, c.nationalID, c.phone, c.email, c.address, c.tier, c.creditLimit, c.notes)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s Seeder) seedCompany(ctx context.Context) error {
	_, err := s.DB.Pool.Exec(ctx, `
		INSERT INTO company (name, tax_id, address, phone, email, currency, default_tax_rate)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, "Mi Empresa ERP", "0801-9999-12345", "Colonia Palmira, Tegucigalpa",
		"2234-5678", "info@miempresa.com", "HNL", 0.15)
	return err
}

func (s Seeder) seedInvoiceSeries(ctx context.Context) error {
	_, err := s.DB.Pool.Exec(ctx, `
		INSERT INTO invoice_series (series, description, current_number, resolution, resolution_date, number_from, number_to)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, "A", "Serie principal para facturas", 1, "RES-2024-001", "2024-01-01", 1, 100000)
	return err
}

const defaultReceiptTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Recibo {{invoice_number}}</title>
    <style>
        body { font-family: 'Arial', sans-serif; margin: 0; padding: 20px; font-size: 10pt; }
        .receipt { width: 300px; margin: 0 auto; border: 1px solid #ddd; border-radius: 8px; padding: 20px; }
        .header { text-align: center; border-bottom: 2px solid #3B82F6; padding-bottom: 10px; margin-bottom: 15px; }
        .company-name { font-size: 16pt; font-weight: bold; margin: 0; }
        .company-info { font-size: 9pt; color: #64748B; margin: 5px 0; }
        .items-table { width: 100%; border-collapse: collapse; margin: 10px 0; }
        .items-table th { background: #3B82F6; color: white; padding: 8px; text-align: left; font-size: 9pt; }
        .items-table td { padding: 6px 8px; border-bottom: 1px solid #E2E8F0; font-size: 9pt; }
        .total-section { margin-top: 15px; border-top: 2px solid #3B82F6; padding-top: 10px; }
        .total-row { display: flex; justify-content: space-between; margin: 5px 0; }
        .total { font-weight: bold; font-size: 12pt; }
        .footer { margin-top: 15px; border-top: 1px solid #E2E8F0; padding-top: 10px; text-align: center; font-size: 8pt; }
    </style>
</head>
<body>
    <div class="receipt">
        <div class="header">
            <h1 class="company-name">{{company_name}}</h1>
            <p class="company-info">RUC: {{company_tax_id}}</p>
            <p class="company-info">{{company_address}}</p>
            <p class="company-info">Tel: {{company_phone}}</p>
        </div>
        <div class="sale-info">
            <p><strong>Factura:</strong> {{invoice_number}}</p>
            <p><strong>Fecha:</strong> {{date}}</p>
            <p><strong>Cliente:</strong> {{client_name}}</p>
        </div>
        <table class="items-table">
            <thead>
                <tr><th>Producto</th><th>Cant.</th><th>Precio</th><th>Total</th></tr>
            </thead>
            <tbody>
                {{items}}
            </tbody>
        </table>
        <div class="total-section">
            <div class="total-row"><span>Subtotal:</span><span>${{subtotal}}</span></div>
            <div class="total-row"><span>IVA:</span><span>${{tax}}</span></div>
            <div class="total-row total"><span>TOTAL:</span><span>${{total}}</span></div>
            <div class="total-row"><span>Monto Pagado:</span><span>${{amount_paid}}</span></div>
            <div class="total-row"><span>Vuelto:</span><span>${{change}}</span></div>
        </div>
        <div class="footer">
            <p>¡Gracias por su compra!</p>
            <p>{{printed_at}}</p>
        </div>
    </div>
</body>
</html>`
