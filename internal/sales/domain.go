package sales

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sales_manager/internal/clock"
)

// ErrInvalidPaymentMethod is returned for anything other than cash or credit.
var ErrInvalidPaymentMethod = errors.New("invalid payment method")

// PaymentMethod is how a sale was settled.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCredit PaymentMethod = "credit"
)

// ParsePaymentMethod accepts exactly "cash" or "credit", case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case PaymentCash, PaymentCredit:
		return m, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrInvalidPaymentMethod, s)
	}
}

// Label is the display form of the method.
func (m PaymentMethod) Label() string {
	if m == PaymentCash {
		return "Cash"
	}
	return "Credit"
}

// CartLine is a product selection. Name and Price are copied when the line
// is created and never follow later catalog edits.
type CartLine struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Total is Price times Quantity.
func (l CartLine) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Sale is a committed transaction. It is never edited after creation.
type Sale struct {
	ID            int           `json:"id"`
	Reference     string        `json:"reference"`
	Date          time.Time     `json:"date"`
	Lines         []CartLine    `json:"lines"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	CustomerName  string        `json:"customer_name,omitempty"`
}

// Total is always derived from the lines.
func (s Sale) Total() decimal.Decimal {
	return sumLines(s.Lines)
}

// Day is the calendar day the sale was made on.
func (s Sale) Day() string {
	return clock.DayKey(s.Date)
}

func sumLines(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}
