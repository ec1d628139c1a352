package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInventory struct {
	movements []repository.MovementInput
	failAtOut int // 1-based outbound call that fails with ErrInsufficientStock
	outCalls  int
}

func (f *fakeInventory) RecordMovement(ctx context.Context, in repository.MovementInput) (*domain.InventoryMovement, error) {
	if in.Kind == domain.MovementOut {
		f.outCalls++
		if f.failAtOut != 0 && f.outCalls == f.failAtOut {
			return nil, repository.ErrInsufficientStock
		}
	}
	f.movements = append(f.movements, in)
	return &domain.InventoryMovement{ProductID: in.ProductID, Kind: in.Kind, Quantity: in.Quantity}, nil
}

func (f *fakeInventory) byKind(kind domain.MovementKind) []repository.MovementInput {
	var out []repository.MovementInput
	for _, m := range f.movements {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

type fakeSales struct {
	created   *domain.Sale
	createErr error
}

func (f *fakeSales) Create(ctx context.Context, s domain.Sale) (*domain.Sale, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = &s
	return &s, nil
}

func (f *fakeSales) Get(ctx context.Context, id string) (*domain.Sale, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeSales) Cancel(ctx context.Context, id, reason string) error { return nil }

func int64Ptr(v int64) *int64 { return &v }

func newTestSaleService(sales *fakeSales, inv *fakeInventory) SaleService {
	return SaleService{
		Sales:     sales,
		Inventory: inv,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func twoLineSale() CreateSaleInput {
	return CreateSaleInput{
		Items: []SaleLineInput{
			{ProductID: int64Ptr(1), ProductName: "Laptop", Quantity: 2, UnitPrice: 10},
			{ProductID: int64Ptr(2), ProductName: "Mouse", Quantity: 3, UnitPrice: 5},
		},
		Total:      35,
		AmountPaid: 35,
	}
}

func TestComputeSaleLinesTotals(t *testing.T) {
	items, totals, err := computeSaleLines([]SaleLineInput{
		{ProductName: "Laptop", Quantity: 2, UnitPrice: 1299.99, Tax: 389.99},
		{ProductName: "Mouse", Quantity: 3, UnitPrice: 24.50, Discount: 7.35, Tax: 9.92},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 2599.98, items[0].Subtotal)
	assert.Equal(t, 73.50, items[1].Subtotal)
	assert.True(t, totals.subtotal.Equal(decimal.NewFromFloat(2673.48)))
	assert.True(t, totals.discount.Equal(decimal.NewFromFloat(7.35)))
	// total = subtotal + tax - discount
	assert.True(t, totals.total.Equal(decimal.NewFromFloat(3066.04)), totals.total.String())
}

func TestComputeSaleLinesAvoidsFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style accumulation must come out exact.
	var lines []SaleLineInput
	for i := 0; i < 10; i++ {
		lines = append(lines, SaleLineInput{ProductName: "Chicle", Quantity: 1, UnitPrice: 0.10})
	}
	_, totals, err := computeSaleLines(lines)
	require.NoError(t, err)
	assert.True(t, totals.total.Equal(decimal.NewFromFloat(1.00)), totals.total.String())
}

func TestComputeSaleLinesRejectsEmpty(t *testing.T) {
	_, _, err := computeSaleLines(nil)
	assert.ErrorIs(t, err, ErrEmptySale)
}

func TestComputeSaleLinesRejectsNonPositiveQuantity(t *testing.T) {
	_, _, err := computeSaleLines([]SaleLineInput{
		{ProductName: "Laptop", Quantity: 0, UnitPrice: 10},
	})
	assert.Error(t, err)
}

func TestCreateSaleDeductsStockPerLine(t *testing.T) {
	sales := &fakeSales{}
	inv := &fakeInventory{}
	svc := newTestSaleService(sales, inv)

	created, err := svc.Create(context.Background(), twoLineSale())
	require.NoError(t, err)
	require.NotNil(t, sales.created)
	assert.Equal(t, created.ID, sales.created.ID)

	outs := inv.byKind(domain.MovementOut)
	require.Len(t, outs, 2)
	assert.Equal(t, int64(1), outs[0].ProductID)
	assert.Equal(t, 2, outs[0].Quantity)
	assert.Equal(t, created.ID, outs[0].Reference)
	assert.Empty(t, inv.byKind(domain.MovementIn))
}

func TestCreateSaleRevertsDeductionsWhenLaterLineFails(t *testing.T) {
	sales := &fakeSales{}
	inv := &fakeInventory{failAtOut: 2}
	svc := newTestSaleService(sales, inv)

	_, err := svc.Create(context.Background(), twoLineSale())
	require.ErrorIs(t, err, repository.ErrInsufficientStock)
	assert.Nil(t, sales.created)

	// The first line's deduction must come back as an inbound movement.
	ins := inv.byKind(domain.MovementIn)
	require.Len(t, ins, 1)
	assert.Equal(t, int64(1), ins[0].ProductID)
	assert.Equal(t, 2, ins[0].Quantity)
	assert.Equal(t, "sale reverted", ins[0].Reason)
}

func TestCreateSaleRevertsDeductionsWhenInsertFails(t *testing.T) {
	sales := &fakeSales{createErr: errors.New("insert failed")}
	inv := &fakeInventory{}
	svc := newTestSaleService(sales, inv)

	_, err := svc.Create(context.Background(), twoLineSale())
	require.Error(t, err)

	ins := inv.byKind(domain.MovementIn)
	require.Len(t, ins, 2)
	assert.Equal(t, int64(1), ins[0].ProductID)
	assert.Equal(t, int64(2), ins[1].ProductID)
	assert.Equal(t, 3, ins[1].Quantity)
}
