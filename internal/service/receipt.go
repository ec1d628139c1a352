package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
)

// ReceiptService renders sale receipts from the template stored under the
// receipt_template setting. Tokens use the {{name}} form.
type ReceiptService struct {
	Settings repository.SettingsRepository
	Company  repository.CompanyRepository
	Clients  repository.ClientRepository
}

// Render produces the receipt HTML for a sale. An empty template in the
// settings table falls back to a minimal plain layout so a broken setting
// never blocks printing.
func (s ReceiptService) Render(ctx context.Context, sale *domain.Sale) (string, error) {
	tmpl, err := s.Settings.Get(ctx, "receipt_template", fallbackReceiptTemplate)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(tmpl) == "" {
		tmpl = fallbackReceiptTemplate
	}

	company := domain.Company{Name: "Empresa", Currency: "HNL"}
	if c, err := s.Company.Get(ctx); err == nil {
		company = *c
	}

	clientName := "Consumidor Final"
	if sale.ClientID != nil {
		if c, err := s.Clients.Get(ctx, *sale.ClientID); err == nil {
			clientName = c.FirstName + " " + c.LastName
		}
	}

	var items strings.Builder
	for _, it := range sale.Items {
		fmt.Fprintf(&items, "<tr><td>%s</td><td>%d</td><td>%.2f</td><td>%.2f</td></tr>\n",
			html.EscapeString(it.ProductName), it.Quantity, it.UnitPrice, it.Subtotal)
	}

	r := strings.NewReplacer(
		"{{invoice_number}}", sale.ID,
		"{{date}}", sale.Date.Format("02/01/2006 15:04"),
		"{{client_name}}", html.EscapeString(clientName),
		"{{items}}", items.String(),
		"{{subtotal}}", fmt.Sprintf("%.2f", sale.Subtotal),
		"{{tax}}", fmt.Sprintf("%.2f", sale.Tax),
		"{{total}}", fmt.Sprintf("%.2f", sale.Total),
		"{{amount_paid}}", fmt.Sprintf("%.2f", sale.AmountPaid),
		"{{change}}", fmt.Sprintf("%.2f", sale.Change),
		"{{company_name}}", html.EscapeString(company.Name),
		"{{company_tax_id}}", html.EscapeString(company.TaxID),
		"{{company_address}}", html.EscapeString(company.Address),
		"{{company_phone}}", html.EscapeString(company.Phone),
		"{{printed_at}}", time.Now().Format("02/01/2006 15:04:05"),
	)
	return r.Replace(tmpl), nil
}

const fallbackReceiptTemplate = `<html><body>
<h2>{{company_name}}</h2>
<p>Factura: {{invoice_number}} - {{date}}</p>
<p>Cliente: {{client_name}}</p>
<table>{{items}}</table>
<p>Subtotal: {{subtotal}} / IVA: {{tax}} / Total: {{total}}</p>
<p>Pagado: {{amount_paid}} / Vuelto: {{change}}</p>
<p>{{printed_at}}</p>
</body></html>`
