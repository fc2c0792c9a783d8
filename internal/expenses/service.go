package expenses

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sales_manager/internal/clock"
)

// ErrInvalidExpense is returned when expense input fails validation.
var ErrInvalidExpense = errors.New("invalid expense")

// Service manages the expense ledger.
type Service struct {
	storage Storage
	clock   clock.Clock
	logger  *zap.Logger
}

// NewService creates a new Service.
func NewService(storage Storage, clk clock.Clock, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	if clk == nil {
		clk = clock.Real{}
	}

	return &Service{
		storage: storage,
		clock:   clk,
		logger:  logger,
	}
}

// AddExpense records an expense dated now.
func (s *Service) AddExpense(in NewExpenseInput) (*Expense, error) {
	in.Description = strings.TrimSpace(in.Description)
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpense, err)
	}

	expense := &Expense{
		ID:          s.storage.NextID(),
		Description: in.Description,
		Amount:      in.Amount,
		Date:        s.clock.Now(),
	}
	if err := s.storage.Append(expense); err != nil {
		s.logger.Error("failed to save expense", zap.Int("expense_id", expense.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.logger.Info("expense added",
		zap.Int("expense_id", expense.ID),
		zap.String("description", expense.Description),
		zap.Stringer("amount", expense.Amount),
	)
	return expense, nil
}

// DeleteExpense removes an expense. Confirmation is the caller's job.
func (s *Service) DeleteExpense(id int) error {
	if err := s.storage.Delete(id); err != nil {
		return err
	}
	s.logger.Info("expense deleted", zap.Int("expense_id", id))
	return nil
}

// FindExpense returns the expense with the given ID or ErrNotFound.
func (s *Service) FindExpense(id int) (*Expense, error) {
	all, err := s.storage.GetAll()
	if err != nil {
		return nil, err
	}
	for _, e := range all {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, ErrNotFound
}

// ListExpenses returns every expense in the order recorded.
func (s *Service) ListExpenses() ([]*Expense, error) {
	return s.storage.GetAll()
}

// TotalExpenses sums the amounts of expenses matching pred, or all of them
// when pred is nil.
func (s *Service) TotalExpenses(pred Predicate) (decimal.Decimal, error) {
	all, err := s.storage.GetAll()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range all {
		if pred == nil || pred(*e) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

// Reset empties the ledger and restarts IDs at 1.
func (s *Service) Reset() {
	s.storage.Restore(nil, 1)
	s.logger.Info("expense ledger cleared")
}

// Snapshot returns every expense plus the ID counter.
func (s *Service) Snapshot() ([]Expense, int, error) {
	all, err := s.storage.GetAll()
	if err != nil {
		return nil, 0, err
	}
	out := make([]Expense, 0, len(all))
	for _, e := range all {
		out = append(out, *e)
	}
	return out, s.storage.Counter(), nil
}

// Restore replaces the ledger with previously saved state.
func (s *Service) Restore(expenses []Expense, nextID int) {
	s.storage.Restore(expenses, nextID)
	s.logger.Info("expense ledger restored", zap.Int("expenses", len(expenses)), zap.Int("next_id", s.storage.Counter()))
}
