// Package reports derives read-only figures from the sale and expense
// ledgers. Nothing is cached; every call walks the ledgers again.
package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sales_manager/internal/clock"
	"sales_manager/internal/expenses"
	"sales_manager/internal/sales"
)

// DefaultBestSellersLimit is used when BestSellers gets a limit below 1.
const DefaultBestSellersLimit = 10

// SaleSource lists committed sales.
type SaleSource interface {
	ListSales() ([]*sales.Sale, error)
}

// ExpenseSource lists recorded expenses.
type ExpenseSource interface {
	ListExpenses() ([]*expenses.Expense, error)
}

// DailyReport covers a single calendar day. NetIncome is cash revenue minus
// expenses; credit revenue is not counted as income.
type DailyReport struct {
	Day           string
	SalesCount    int
	CashRevenue   decimal.Decimal
	CreditRevenue decimal.Decimal
	TotalRevenue  decimal.Decimal
	ExpensesCount int
	TotalExpenses decimal.Decimal
	NetIncome     decimal.Decimal
}

// SaleSummary is one row of the all-sales listing.
type SaleSummary struct {
	ID            int
	Date          time.Time
	Total         decimal.Decimal
	PaymentMethod sales.PaymentMethod
	CustomerName  string
}

// FinancialSummary holds lifetime totals. Every credit sale counts as
// outstanding since the system never records a later payment.
type FinancialSummary struct {
	CashRevenue       decimal.Decimal
	CreditRevenue     decimal.Decimal
	TotalRevenue      decimal.Decimal
	TotalExpenses     decimal.Decimal
	NetIncome         decimal.Decimal
	OutstandingCredit decimal.Decimal
}

// ProductSales is the quantity sold under one product name.
type ProductSales struct {
	Name     string
	Quantity int
}

// CreditEntry is one credit sale.
type CreditEntry struct {
	SaleID       int
	CustomerName string
	Amount       decimal.Decimal
	Date         time.Time
}

// CreditReport lists every credit sale.
type CreditReport struct {
	Entries []CreditEntry
	Total   decimal.Decimal
}

// None reports whether there are no credit sales at all, as opposed to
// credit sales that happen to sum to zero.
func (r CreditReport) None() bool {
	return len(r.Entries) == 0
}

// Service computes reports.
type Service struct {
	sales    SaleSource
	expenses ExpenseSource
	clock    clock.Clock
	logger   *zap.Logger
	limit    int
}

// NewService creates a new Service. bestSellersLimit below 1 falls back to
// DefaultBestSellersLimit.
func NewService(saleSource SaleSource, expenseSource ExpenseSource, clk clock.Clock, logger *zap.Logger, bestSellersLimit int) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if bestSellersLimit < 1 {
		bestSellersLimit = DefaultBestSellersLimit
	}

	return &Service{
		sales:    saleSource,
		expenses: expenseSource,
		clock:    clk,
		logger:   logger,
		limit:    bestSellersLimit,
	}
}

// Today is the daily report for the clock's current day.
func (s *Service) Today() (DailyReport, error) {
	return s.Daily(s.clock.Now())
}

// Daily reports on the calendar day of date. Records match on the day
// component only, never on the full timestamp.
func (s *Service) Daily(date time.Time) (DailyReport, error) {
	allSales, allExpenses, err := s.load()
	if err != nil {
		return DailyReport{}, err
	}

	report := DailyReport{
		Day:           clock.DayKey(date),
		CashRevenue:   decimal.Zero,
		CreditRevenue: decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, sale := range allSales {
		if sale.Day() != report.Day {
			continue
		}
		report.SalesCount++
		if sale.PaymentMethod == sales.PaymentCash {
			report.CashRevenue = report.CashRevenue.Add(sale.Total())
		} else {
			report.CreditRevenue = report.CreditRevenue.Add(sale.Total())
		}
	}

	onDay := expenses.OnDay(date)
	for _, e := range allExpenses {
		if !onDay(*e) {
			continue
		}
		report.ExpensesCount++
		report.TotalExpenses = report.TotalExpenses.Add(e.Amount)
	}

	report.TotalRevenue = report.CashRevenue.Add(report.CreditRevenue)
	report.NetIncome = report.CashRevenue.Sub(report.TotalExpenses)

	s.logger.Debug("daily report computed",
		zap.String("day", report.Day),
		zap.Int("sales_count", report.SalesCount),
		zap.Int("expenses_count", report.ExpensesCount),
	)
	return report, nil
}

// AllSales lists every sale in ledger order.
func (s *Service) AllSales() ([]SaleSummary, error) {
	allSales, err := s.sales.ListSales()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	out := make([]SaleSummary, 0, len(allSales))
	for _, sale := range allSales {
		out = append(out, SaleSummary{
			ID:            sale.ID,
			Date:          sale.Date,
			Total:         sale.Total(),
			PaymentMethod: sale.PaymentMethod,
			CustomerName:  sale.CustomerName,
		})
	}
	return out, nil
}

// Financial computes lifetime totals.
func (s *Service) Financial() (FinancialSummary, error) {
	allSales, allExpenses, err := s.load()
	if err != nil {
		return FinancialSummary{}, err
	}

	summary := FinancialSummary{
		CashRevenue:   decimal.Zero,
		CreditRevenue: decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, sale := range allSales {
		if sale.PaymentMethod == sales.PaymentCash {
			summary.CashRevenue = summary.CashRevenue.Add(sale.Total())
		} else {
			summary.CreditRevenue = summary.CreditRevenue.Add(sale.Total())
		}
	}
	for _, e := range allExpenses {
		summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
	}

	summary.TotalRevenue = summary.CashRevenue.Add(summary.CreditRevenue)
	summary.NetIncome = summary.CashRevenue.Sub(summary.TotalExpenses)
	summary.OutstandingCredit = summary.CreditRevenue
	return summary, nil
}

// BestSellers groups sold quantities by product name, highest first, with
// ties ordered by name. A limit below 1 uses the configured default.
func (s *Service) BestSellers(limit int) ([]ProductSales, error) {
	if limit < 1 {
		limit = s.limit
	}
	allSales, err := s.sales.ListSales()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	byName := map[string]int{}
	for _, sale := range allSales {
		for _, line := range sale.Lines {
			byName[line.Name] += line.Quantity
		}
	}

	ranked := make([]ProductSales, 0, len(byName))
	for name, qty := range byName {
		ranked = append(ranked, ProductSales{Name: name, Quantity: qty})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// CreditSales lists credit sales and their sum.
func (s *Service) CreditSales() (CreditReport, error) {
	allSales, err := s.sales.ListSales()
	if err != nil {
		return CreditReport{}, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	report := CreditReport{Total: decimal.Zero}
	for _, sale := range allSales {
		if sale.PaymentMethod != sales.PaymentCredit {
			continue
		}
		report.Entries = append(report.Entries, CreditEntry{
			SaleID:       sale.ID,
			CustomerName: sale.CustomerName,
			Amount:       sale.Total(),
			Date:         sale.Date,
		})
		report.Total = report.Total.Add(sale.Total())
	}
	return report, nil
}

func (s *Service) load() ([]*sales.Sale, []*expenses.Expense, error) {
	allSales, err := s.sales.ListSales()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}
	allExpenses, err := s.expenses.ListExpenses()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve expenses: %w", err)
	}
	return allSales, allExpenses, nil
}
