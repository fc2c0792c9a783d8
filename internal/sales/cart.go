package sales

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"sales_manager/internal/catalog"
)

var (
	// ErrOutOfStock is returned when a requested quantity exceeds the stock.
	ErrOutOfStock = errors.New("insufficient stock")
	// ErrInvalidQuantity is returned for quantities below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInvalidIndex is returned when a cart line number is out of range.
	ErrInvalidIndex = errors.New("invalid item number")
)

// Cart holds the lines of the sale being assembled.
type Cart struct {
	lines []CartLine
}

// Add puts qty units of p into the cart, merging with an existing line for
// the same product. The combined quantity is checked against p.Stock as it
// is right now; nothing is reserved.
func (c *Cart) Add(p catalog.Product, qty int) (CartLine, error) {
	if qty < 1 {
		return CartLine{}, ErrInvalidQuantity
	}
	for i := range c.lines {
		if c.lines[i].ProductID != p.ID {
			continue
		}
		held := c.lines[i].Quantity
		if qty > p.Stock-held {
			return CartLine{}, fmt.Errorf("%w: %s has %d, cart holds %d, requested %d more", ErrOutOfStock, p.Name, p.Stock, held, qty)
		}
		c.lines[i].Quantity = held + qty
		return c.lines[i], nil
	}
	if qty > p.Stock {
		return CartLine{}, fmt.Errorf("%w: %s has %d, requested %d", ErrOutOfStock, p.Name, p.Stock, qty)
	}
	line := CartLine{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: qty}
	c.lines = append(c.lines, line)
	return line, nil
}

// Remove drops the line at the 1-based index.
func (c *Cart) Remove(index int) (CartLine, error) {
	if index < 1 || index > len(c.lines) {
		return CartLine{}, fmt.Errorf("%w: %d (cart has %d)", ErrInvalidIndex, index, len(c.lines))
	}
	removed := c.lines[index-1]
	c.lines = append(c.lines[:index-1], c.lines[index:]...)
	return removed, nil
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Total() decimal.Decimal {
	return sumLines(c.lines)
}
