package catalog

import "github.com/shopspring/decimal"

// Product is an item the shop sells, together with its current stock.
type Product struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// LowStock reports whether the product is below the given threshold.
func (p Product) LowStock(threshold int) bool {
	return p.Stock < threshold
}

// SampleProduct is the product a fresh catalog starts with.
func SampleProduct() Product {
	return Product{Name: "Sample Product", Price: decimal.NewFromInt(100), Stock: 10}
}
