package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine is one printed line of an invoice.
type InvoiceLine struct {
	Name      string
	Quantity  int
	Price     decimal.Decimal
	LineTotal decimal.Decimal
}

// Invoice is a read-only projection of a sale for printing. It is not stored.
type Invoice struct {
	SaleID        int
	Reference     string
	Date          time.Time
	CustomerName  string
	PaymentMethod PaymentMethod
	Lines         []InvoiceLine
	Total         decimal.Decimal
}

// NewInvoice projects a sale into an invoice.
func NewInvoice(s Sale) Invoice {
	inv := Invoice{
		SaleID:        s.ID,
		Reference:     s.Reference,
		Date:          s.Date,
		CustomerName:  s.CustomerName,
		PaymentMethod: s.PaymentMethod,
		Lines:         make([]InvoiceLine, 0, len(s.Lines)),
		Total:         s.Total(),
	}
	for _, l := range s.Lines {
		inv.Lines = append(inv.Lines, InvoiceLine{
			Name:      l.Name,
			Quantity:  l.Quantity,
			Price:     l.Price,
			LineTotal: l.Total(),
		})
	}
	return inv
}
