package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"sales_manager/internal/catalog"
	"sales_manager/internal/clock"
	"sales_manager/internal/config"
	"sales_manager/internal/expenses"
	"sales_manager/internal/sales"
	"sales_manager/internal/snapshot"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		DataFile:          filepath.Join(t.TempDir(), "sales_data.json"),
		LoadOnStart:       true,
		StrictCheckout:    true,
		LowStockThreshold: 5,
		BestSellersLimit:  10,
		Currency:          "EGP",
	}
}

func newState(t *testing.T, cfg *config.Config) *State {
	clk := &clock.Fixed{T: time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)}
	s, err := New(cfg, clk, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func TestNew_SeedsSampleProductWithoutSnapshot(t *testing.T) {
	s := newState(t, testConfig(t))

	products, err := s.Catalog.ListProducts()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "Sample Product", products[0].Name)
	assert.Equal(t, "100.00", products[0].Price.StringFixed(2))
	assert.Equal(t, 10, products[0].Stock)
}

func TestPersistAndRestartRestoresEverything(t *testing.T) {
	cfg := testConfig(t)
	s := newState(t, cfg)

	widget, err := s.Catalog.AddProduct(catalog.NewProductInput{Name: "Widget", Price: decimal.NewFromInt(10), Stock: 5})
	require.NoError(t, err)
	_, err = s.Sales.AddToCart(widget.ID, 3)
	require.NoError(t, err)
	_, err = s.Sales.CompleteSale(sales.PaymentCredit, "Ali")
	require.NoError(t, err)
	_, err = s.Expenses.AddExpense(expenses.NewExpenseInput{Description: "Rent", Amount: decimal.NewFromInt(7)})
	require.NoError(t, err)
	require.NoError(t, s.Persist())

	restarted := newState(t, cfg)

	p, err := restarted.Catalog.FindProduct(widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)

	summary, err := restarted.Reports.Financial()
	require.NoError(t, err)
	assert.Equal(t, "30.00", summary.OutstandingCredit.StringFixed(2))
	assert.Equal(t, "7.00", summary.TotalExpenses.StringFixed(2))

	next, err := restarted.Catalog.AddProduct(catalog.NewProductInput{Name: "Next", Stock: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, next.ID)
}

func TestNew_CorruptSnapshotFallsBackToSeed(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.DataFile, []byte("garbage"), 0o644))

	s := newState(t, cfg)
	products, _ := s.Catalog.ListProducts()
	require.Len(t, products, 1)
	assert.Equal(t, "Sample Product", products[0].Name)
}

func TestNew_LoadOnStartDisabled(t *testing.T) {
	cfg := testConfig(t)
	first := newState(t, cfg)
	_, _ = first.Catalog.AddProduct(catalog.NewProductInput{Name: "Widget", Stock: 1})
	require.NoError(t, first.Persist())

	cfg.LoadOnStart = false
	second := newState(t, cfg)
	products, _ := second.Catalog.ListProducts()
	assert.Len(t, products, 1)
}

func TestClearAll(t *testing.T) {
	s := newState(t, testConfig(t))
	widget, _ := s.Catalog.AddProduct(catalog.NewProductInput{Name: "Widget", Price: decimal.NewFromInt(1), Stock: 5})
	_, _ = s.Sales.AddToCart(widget.ID, 1)
	_, _ = s.Sales.CompleteSale(sales.PaymentCash, "")
	_, _ = s.Expenses.AddExpense(expenses.NewExpenseInput{Description: "Tea", Amount: decimal.NewFromInt(1)})

	require.NoError(t, s.ClearAll())

	products, _ := s.Catalog.ListProducts()
	require.Len(t, products, 1)
	assert.Equal(t, 1, products[0].ID)
	allSales, _ := s.Sales.ListSales()
	assert.Empty(t, allSales)
	allExpenses, _ := s.Expenses.ListExpenses()
	assert.Empty(t, allExpenses)
}

func TestImport_Missing(t *testing.T) {
	s := newState(t, testConfig(t))
	assert.ErrorIs(t, s.Import(), snapshot.ErrNoSnapshot)
}
