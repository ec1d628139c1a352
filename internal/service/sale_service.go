package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/metrics"
	"github.com/JosueLDjota/ERP-Modern/internal/notify"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptySale     = errors.New("sale has no items")
	ErrTotalMismatch = errors.New("submitted total does not match computed total")
	ErrUnderpaid     = errors.New("amount paid is less than the total")
)

// SaleStore persists sale headers and their lines.
type SaleStore interface {
	Create(ctx context.Context, s domain.Sale) (*domain.Sale, error)
	Get(ctx context.Context, id string) (*domain.Sale, error)
	Cancel(ctx context.Context, id, reason string) error
}

// MovementRecorder applies one audited stock movement.
type MovementRecorder interface {
	RecordMovement(ctx context.Context, in repository.MovementInput) (*domain.InventoryMovement, error)
}

// ClientGetter resolves the client named in sale notifications.
type ClientGetter interface {
	Get(ctx context.Context, id int64) (*domain.Client, error)
}

type SaleService struct {
	Sales     SaleStore
	Inventory MovementRecorder
	Clients   ClientGetter
	Notifier  *notify.Engine
	Logger    *slog.Logger
}

type SaleLineInput struct {
	ProductID   *int64
	ProductName string
	Quantity    int
	UnitPrice   float64
	Discount    float64
	Tax         float64
}

type CreateSaleInput struct {
	Items         []SaleLineInput
	Total         float64
	AmountPaid    float64
	UserID        *int64
	ClientID      *int64
	ReceiptKind   string
	PaymentMethod string
	Notes         string
}

type saleTotals struct {
	subtotal decimal.Decimal
	tax      decimal.Decimal
	discount decimal.Decimal
	total    decimal.Decimal
}

// computeSaleLines recomputes every line subtotal and the sale totals with
// exact decimal arithmetic. Client-submitted totals are never trusted.
func computeSaleLines(lines []SaleLineInput) ([]domain.SaleItem, saleTotals, error) {
	var totals saleTotals
	if len(lines) == 0 {
		return nil, totals, ErrEmptySale
	}
	items := make([]domain.SaleItem, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, totals, fmt.Errorf("line %q: quantity must be positive", line.ProductName)
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		price := decimal.NewFromFloat(line.UnitPrice)
		disc := decimal.NewFromFloat(line.Discount)
		tax := decimal.NewFromFloat(line.Tax)

		// Line subtotals are gross; discounts accumulate separately so the
		// header always satisfies total = subtotal + tax - discount.
		lineSubtotal := price.Mul(qty).Round(2)
		totals.subtotal = totals.subtotal.Add(lineSubtotal)
		totals.tax = totals.tax.Add(tax)
		totals.discount = totals.discount.Add(disc)

		f, _ := lineSubtotal.Float64()
		items = append(items, domain.SaleItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Discount:    line.Discount,
			Tax:         line.Tax,
			Subtotal:    f,
		})
	}
	totals.total = totals.subtotal.Add(totals.tax).Sub(totals.discount).Round(2)
	return items, totals, nil
}

// Create registers a sale: totals are recomputed server side with exact
// decimal arithmetic, every line deducts stock through an audited inventory
// movement, and the submitted total must match the computed one to the cent.
func (s SaleService) Create(ctx context.Context, in CreateSaleInput) (*domain.Sale, error) {
	items, totals, err := computeSaleLines(in.Items)
	if err != nil {
		return nil, err
	}
	if !totals.total.Equal(decimal.NewFromFloat(in.Total).Round(2)) {
		return nil, ErrTotalMismatch
	}
	paid := decimal.NewFromFloat(in.AmountPaid)
	if paid.LessThan(totals.total) {
		return nil, ErrUnderpaid
	}
	change, _ := paid.Sub(totals.total).Round(2).Float64()

	subF, _ := totals.subtotal.Float64()
	taxF, _ := totals.tax.Float64()
	discF, _ := totals.discount.Float64()
	totalF, _ := totals.total.Float64()

	sale := domain.Sale{
		ID:            uuid.NewString(),
		Date:          time.Now(),
		Total:         totalF,
		Subtotal:      subF,
		Tax:           taxF,
		DiscountTotal: discF,
		AmountPaid:    in.AmountPaid,
		Change:        change,
		UserID:        in.UserID,
		ClientID:      in.ClientID,
		ReceiptKind:   in.ReceiptKind,
		Status:        domain.SaleCompleted,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
		Items:         items,
	}

	// Deduct stock line by line. Each movement commits on its own, so when
	// a later line or the sale insert fails, the deductions already applied
	// are reversed; otherwise inventory drifts on a sale that never existed.
	applied := make([]domain.SaleItem, 0, len(sale.Items))
	for _, it := range sale.Items {
		if it.ProductID == nil {
			continue
		}
		_, err := s.Inventory.RecordMovement(ctx, repository.MovementInput{
			ProductID: *it.ProductID,
			Kind:      domain.MovementOut,
			Quantity:  it.Quantity,
			Reason:    "sale",
			Reference: sale.ID,
			UserID:    in.UserID,
		})
		if err != nil {
			s.revertMovements(ctx, applied, sale.ID, in.UserID)
			return nil, fmt.Errorf("deduct stock for %q: %w", it.ProductName, err)
		}
		applied = append(applied, it)
	}

	created, err := s.Sales.Create(ctx, sale)
	if err != nil {
		s.revertMovements(ctx, applied, sale.ID, in.UserID)
		return nil, err
	}
	metrics.SalesCompleted.Inc()

	clientName := ""
	if in.ClientID != nil {
		if c, err := s.Clients.Get(ctx, *in.ClientID); err == nil {
			clientName = c.FirstName + " " + c.LastName
		}
	}
	if s.Notifier != nil {
		s.Notifier.NotifySaleCompleted(created.ID, created.Total, clientName)
	}
	s.Logger.Info("sale completed", "sale", created.ID, "total", created.Total, "items", len(created.Items))
	return created, nil
}

// revertMovements puts back stock deducted for a sale that never committed.
func (s SaleService) revertMovements(ctx context.Context, applied []domain.SaleItem, saleID string, userID *int64) {
	for _, it := range applied {
		if _, err := s.Inventory.RecordMovement(ctx, repository.MovementInput{
			ProductID: *it.ProductID,
			Kind:      domain.MovementIn,
			Quantity:  it.Quantity,
			Reason:    "sale reverted",
			Reference: saleID,
			UserID:    userID,
		}); err != nil {
			s.Logger.Error("could not revert stock deduction",
				"sale", saleID, "product", it.ProductName, "err", err)
		}
	}
}

// Cancel flips a sale to cancelled and restores the stock its lines consumed.
func (s SaleService) Cancel(ctx context.Context, id, reason string, userID *int64) error {
	sale, err := s.Sales.Get(ctx, id)
	if err != nil {
		return err
	}
	if sale.Status == domain.SaleCancelled {
		return repository.ErrNotFound
	}
	if err := s.Sales.Cancel(ctx, id, reason); err != nil {
		return err
	}
	for _, it := range sale.Items {
		if it.ProductID == nil {
			continue
		}
		if _, err := s.Inventory.RecordMovement(ctx, repository.MovementInput{
			ProductID: *it.ProductID,
			Kind:      domain.MovementIn,
			Quantity:  it.Quantity,
			Reason:    "sale cancelled",
			Reference: id,
			UserID:    userID,
		}); err != nil {
			s.Logger.Error("could not restore stock after cancellation",
				"sale", id, "product", it.ProductName, "err", err)
		}
	}
	metrics.SalesCancelled.Inc()
	if s.Notifier != nil {
		s.Notifier.NotifySaleCancelled(reason)
	}
	s.Logger.Info("sale cancelled", "sale", id, "reason", reason)
	return nil
}
