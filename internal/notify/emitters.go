package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
)

// LowStockLister is the slice of the product repository the stock watcher
// needs.
type LowStockLister interface {
	LowStock(ctx context.Context, floor int) ([]repository.LowStockProduct, error)
}

// stockFloor is the absolute level that alerts regardless of a product's
// own reorder threshold.
const stockFloor = 10

// CheckStockAlerts scans for products at or below their reorder threshold
// and emits one warning per product. Gated by the stock_alerts preference.
func (e *Engine) CheckStockAlerts(ctx context.Context, products LowStockLister) {
	if !e.Config().StockAlerts || products == nil {
		return
	}
	rows, err := products.LowStock(ctx, stockFloor)
	if err != nil {
		e.logger.Warn("stock alert scan failed", "err", err)
		return
	}
	for _, p := range rows {
		e.Publish(Request{
			Title:     "Stock Crítico",
			Message:   fmt.Sprintf("Producto: %s\nStock actual: %d\nStock mínimo: %d", p.Name, p.Stock, p.MinStock),
			Severity:  domain.SeverityWarning,
			Icon:      "📦",
			Duration:  6 * time.Second,
			ActionRef: p.Name,
		})
	}
}

// NotifyLogin announces a successful login. Gated by login_alerts.
func (e *Engine) NotifyLogin(username string, role domain.UserRole) {
	if !e.Config().LoginAlerts {
		return
	}
	e.Publish(Request{
		Title:    "Sesión Iniciada",
		Message:  fmt.Sprintf("Bienvenido %s\nRol: %s\n%s", username, role, time.Now().Format("02/01/2006 15:04")),
		Severity: domain.SeveritySuccess,
		Icon:     "🔐",
		Duration: 4 * time.Second,
	})
}

// NotifySaleCompleted announces a completed sale. Gated by sales_alerts.
func (e *Engine) NotifySaleCompleted(saleID string, total float64, clientName string) {
	if !e.Config().SalesAlerts {
		return
	}
	msg := fmt.Sprintf("Venta #: %s\nTotal: $%.2f", saleID, total)
	if clientName != "" {
		msg = fmt.Sprintf("Cliente: %s\n%s", clientName, msg)
	}
	e.Publish(Request{
		Title:     "Venta Exitosa",
		Message:   msg,
		Severity:  domain.SeveritySuccess,
		Icon:      "💳",
		ActionRef: saleID,
	})
}

// NotifySaleCancelled announces a cancelled sale. Gated by sales_alerts.
func (e *Engine) NotifySaleCancelled(reason string) {
	if !e.Config().SalesAlerts {
		return
	}
	msg := "La venta fue cancelada"
	if reason != "" {
		msg += "\nMotivo: " + reason
	}
	e.Publish(Request{
		Title:    "Venta Cancelada",
		Message:  msg,
		Severity: domain.SeverityError,
		Icon:     "🚫",
		Duration: 4 * time.Second,
	})
}

// NotifySystemStarted announces service start. Gated by system_alerts.
func (e *Engine) NotifySystemStarted(version string) {
	if !e.Config().SystemAlerts {
		return
	}
	e.Publish(Request{
		Title:    "Sistema ERP Iniciado",
		Message:  fmt.Sprintf("Versión: %s\nSistema listo para operar", version),
		Severity: domain.SeverityInfo,
		Icon:     "⚙️",
	})
}

// NotifyBackupCompleted always fires; backups are never silenced.
func (e *Engine) NotifyBackupCompleted(filename string) {
	e.Publish(Request{
		Title:    "Backup Completado",
		Message:  "Respaldo guardado como:\n" + filename,
		Severity: domain.SeveritySuccess,
		Icon:     "🛡️",
		Duration: 4 * time.Second,
	})
}

// NotifyError surfaces a generic error; never gated.
func (e *Engine) NotifyError(title, message string) {
	e.Publish(Request{
		Title:    title,
		Message:  message,
		Severity: domain.SeverityError,
		Icon:     "⚠️",
		Duration: 6 * time.Second,
	})
}
