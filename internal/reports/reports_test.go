package reports

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"sales_manager/internal/clock"
	"sales_manager/internal/expenses"
	"sales_manager/internal/sales"
)

// Stubs

type stubSales struct {
	sales []*sales.Sale
	err   error
}

func (s *stubSales) ListSales() ([]*sales.Sale, error) { return s.sales, s.err }

type stubExpenses struct {
	expenses []*expenses.Expense
}

func (s *stubExpenses) ListExpenses() ([]*expenses.Expense, error) { return s.expenses, nil }

var _ SaleSource = (*stubSales)(nil)
var _ ExpenseSource = (*stubExpenses)(nil)

var (
	day1 = time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)
	day2 = time.Date(2024, 5, 18, 10, 0, 0, 0, time.UTC)
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sale(id int, at time.Time, method sales.PaymentMethod, customer string, lines ...sales.CartLine) *sales.Sale {
	return &sales.Sale{ID: id, Date: at, PaymentMethod: method, CustomerName: customer, Lines: lines}
}

func line(name, price string, qty int) sales.CartLine {
	return sales.CartLine{Name: name, Price: money(price), Quantity: qty}
}

func newTestService(t *testing.T, ss []*sales.Sale, es []*expenses.Expense) *Service {
	return NewService(&stubSales{sales: ss}, &stubExpenses{expenses: es}, &clock.Fixed{T: day2}, zaptest.NewLogger(t), 0)
}

// Tests

func TestDaily_MatchesOnCalendarDayOnly(t *testing.T) {
	svc := newTestService(t,
		[]*sales.Sale{
			sale(1, day1, sales.PaymentCash, "", line("A", "5.00", 2)),
			sale(2, day2.Add(-9*time.Hour), sales.PaymentCash, "", line("A", "5.00", 1)),
			sale(3, day2.Add(13*time.Hour), sales.PaymentCredit, "Ali", line("B", "20.00", 1)),
		},
		[]*expenses.Expense{
			{ID: 1, Description: "Rent", Amount: money("3.00"), Date: day1},
			{ID: 2, Description: "Tea", Amount: money("1.50"), Date: day2.Add(time.Hour)},
		},
	)

	report, err := svc.Today()
	require.NoError(t, err)

	assert.Equal(t, "2024-05-18", report.Day)
	assert.Equal(t, 2, report.SalesCount)
	assert.Equal(t, "5.00", report.CashRevenue.StringFixed(2))
	assert.Equal(t, "20.00", report.CreditRevenue.StringFixed(2))
	assert.Equal(t, "25.00", report.TotalRevenue.StringFixed(2))
	assert.Equal(t, 1, report.ExpensesCount)
	assert.Equal(t, "1.50", report.TotalExpenses.StringFixed(2))
	assert.Equal(t, "3.50", report.NetIncome.StringFixed(2))
}

func TestDaily_EmptyDay(t *testing.T) {
	svc := newTestService(t, nil, nil)

	report, err := svc.Daily(day1)
	require.NoError(t, err)
	assert.Zero(t, report.SalesCount)
	assert.True(t, report.NetIncome.IsZero())
}

func TestAllSales(t *testing.T) {
	svc := newTestService(t, []*sales.Sale{
		sale(1, day1, sales.PaymentCash, "", line("A", "2.50", 2)),
		sale(2, day2, sales.PaymentCredit, "Ali", line("B", "1.00", 1)),
	}, nil)

	rows, err := svc.AllSales()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].ID)
	assert.Equal(t, "5.00", rows[0].Total.StringFixed(2))
	assert.Equal(t, "Ali", rows[1].CustomerName)
	assert.Equal(t, sales.PaymentCredit, rows[1].PaymentMethod)
}

func TestFinancial_NetIncomeIgnoresCredit(t *testing.T) {
	svc := newTestService(t,
		[]*sales.Sale{
			sale(1, day1, sales.PaymentCash, "", line("A", "40.00", 1)),
			sale(2, day2, sales.PaymentCredit, "Ali", line("B", "50.00", 1)),
		},
		[]*expenses.Expense{{ID: 1, Amount: money("15.00"), Date: day1}},
	)

	summary, err := svc.Financial()
	require.NoError(t, err)

	assert.Equal(t, "40.00", summary.CashRevenue.StringFixed(2))
	assert.Equal(t, "50.00", summary.CreditRevenue.StringFixed(2))
	assert.Equal(t, "90.00", summary.TotalRevenue.StringFixed(2))
	assert.Equal(t, "15.00", summary.TotalExpenses.StringFixed(2))
	assert.True(t, summary.NetIncome.Equal(summary.CashRevenue.Sub(summary.TotalExpenses)))
	assert.Equal(t, "50.00", summary.OutstandingCredit.StringFixed(2))
}

func TestBestSellers_GroupsByName(t *testing.T) {
	svc := newTestService(t, []*sales.Sale{
		sale(1, day1, sales.PaymentCash, "", sales.CartLine{ProductID: 1, Name: "Widget", Price: money("1"), Quantity: 3}),
		sale(2, day1, sales.PaymentCash, "", sales.CartLine{ProductID: 7, Name: "Widget", Price: money("1"), Quantity: 7}),
	}, nil)

	ranked, err := svc.BestSellers(0)
	require.NoError(t, err)
	assert.Equal(t, []ProductSales{{Name: "Widget", Quantity: 10}}, ranked)
}

func TestBestSellers_OrderTieBreakAndLimit(t *testing.T) {
	svc := newTestService(t, []*sales.Sale{
		sale(1, day1, sales.PaymentCash, "",
			line("Pear", "1", 2),
			line("Apple", "1", 2),
			line("Kiwi", "1", 9),
			line("Fig", "1", 1),
		),
	}, nil)

	ranked, err := svc.BestSellers(3)
	require.NoError(t, err)
	assert.Equal(t, []ProductSales{
		{Name: "Kiwi", Quantity: 9},
		{Name: "Apple", Quantity: 2},
		{Name: "Pear", Quantity: 2},
	}, ranked)
}

func TestBestSellers_DefaultLimit(t *testing.T) {
	var lines []sales.CartLine
	for i := 0; i < 15; i++ {
		lines = append(lines, line(string(rune('a'+i)), "1", i+1))
	}
	svc := newTestService(t, []*sales.Sale{sale(1, day1, sales.PaymentCash, "", lines...)}, nil)

	ranked, err := svc.BestSellers(-1)
	require.NoError(t, err)
	assert.Len(t, ranked, DefaultBestSellersLimit)
	assert.Equal(t, 15, ranked[0].Quantity)
}

func TestCreditSales(t *testing.T) {
	svc := newTestService(t, []*sales.Sale{
		sale(1, day1, sales.PaymentCredit, "Ali", line("A", "50.00", 1)),
	}, nil)

	report, err := svc.CreditSales()
	require.NoError(t, err)
	require.False(t, report.None())
	require.Len(t, report.Entries, 1)
	assert.Equal(t, "Ali", report.Entries[0].CustomerName)
	assert.Equal(t, "50.00", report.Total.StringFixed(2))

	summary, err := svc.Financial()
	require.NoError(t, err)
	assert.Equal(t, "50.00", summary.OutstandingCredit.StringFixed(2))
}

func TestCreditSales_NoneFoundIsDistinctFromZero(t *testing.T) {
	none := newTestService(t, []*sales.Sale{
		sale(1, day1, sales.PaymentCash, "", line("A", "5.00", 1)),
	}, nil)
	report, err := none.CreditSales()
	require.NoError(t, err)
	assert.True(t, report.None())

	zero := newTestService(t, []*sales.Sale{
		sale(1, day1, sales.PaymentCredit, "Free", line("Gift", "0.00", 1)),
	}, nil)
	report, err = zero.CreditSales()
	require.NoError(t, err)
	assert.False(t, report.None())
	assert.True(t, report.Total.IsZero())
}

func TestSourceErrorsAreWrapped(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&stubSales{err: boom}, &stubExpenses{}, nil, zaptest.NewLogger(t), 5)

	_, err := svc.Financial()
	assert.ErrorIs(t, err, boom)
	_, err = svc.BestSellers(1)
	assert.ErrorIs(t, err, boom)
}
