package expenses

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"sales_manager/internal/clock"
)

// Expense is money paid out by the business.
type Expense struct {
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

// Day is the calendar day the expense was recorded on.
func (e Expense) Day() string {
	return clock.DayKey(e.Date)
}

// NewExpenseInput carries what is needed to record an expense.
type NewExpenseInput struct {
	Description string
	Amount      decimal.Decimal
}

func (in *NewExpenseInput) Validate() error {
	return validation.ValidateStruct(
		in,
		validation.Field(&in.Description, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Amount, validation.By(func(value interface{}) error {
			if d, ok := value.(decimal.Decimal); ok && d.IsNegative() {
				return errors.New("must not be negative")
			}
			return nil
		})),
	)
}

// Predicate selects expenses.
type Predicate func(Expense) bool

// OnDay matches expenses recorded on the same calendar day as t.
func OnDay(t time.Time) Predicate {
	day := clock.DayKey(t)
	return func(e Expense) bool { return e.Day() == day }
}
