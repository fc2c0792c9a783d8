package catalog

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

var errNegativePrice = errors.New("must not be negative")

// NewProductInput carries the fields needed to register a product.
type NewProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

func (in *NewProductInput) Validate() error {
	return validation.ValidateStruct(
		in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Price, validation.By(nonNegativeDecimal)),
		validation.Field(&in.Stock, validation.Min(0)),
	)
}

// UpdateProductInput changes only the fields that are non-nil.
type UpdateProductInput struct {
	Name  *string
	Price *decimal.Decimal
	Stock *int
}

func (in *UpdateProductInput) Validate() error {
	return validation.ValidateStruct(
		in,
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&in.Price, validation.By(nonNegativeDecimal)),
		validation.Field(&in.Stock, validation.Min(0)),
	)
}

// Empty reports whether no field is set.
func (in UpdateProductInput) Empty() bool {
	return in.Name == nil && in.Price == nil && in.Stock == nil
}

func nonNegativeDecimal(value interface{}) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	default:
		return nil
	}
	if d.IsNegative() {
		return errNegativePrice
	}
	return nil
}
