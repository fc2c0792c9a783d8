package catalog

import "errors"

// ErrNotFound is returned when a product with the given ID is not found.
var ErrNotFound = errors.New("product not found")

// ErrInvalidID is returned when trying to store a product without an ID.
var ErrInvalidID = errors.New("invalid product ID")

// Storage is the main interface for the product storage layer.
type Storage interface {
	Set(product *Product) error
	Read(id int) (*Product, error)
	GetAll() ([]*Product, error)
	Delete(id int) error
	// NextID hands out the next product ID. IDs are never handed out twice.
	NextID() int
	Counter() int
	// Restore replaces every product and the ID counter.
	Restore(products []Product, nextID int)
}

// LocalStorage keeps products in memory, in insertion order.
type LocalStorage struct {
	products []*Product
	nextID   int
}

// NewLocalStorage instantiates an empty LocalStorage whose IDs start at 1.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{nextID: 1}
}

// Set inserts the product or replaces the stored one with the same ID.
// Returns ErrInvalidID if the product has no ID.
func (l *LocalStorage) Set(product *Product) error {
	if product.ID < 1 {
		return ErrInvalidID
	}
	cp := *product
	if i := l.index(product.ID); i >= 0 {
		l.products[i] = &cp
		return nil
	}
	l.products = append(l.products, &cp)
	return nil
}

// Read returns a copy of the product with the given ID.
// Returns ErrNotFound if the product is not found.
func (l *LocalStorage) Read(id int) (*Product, error) {
	i := l.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	cp := *l.products[i]
	return &cp, nil
}

// GetAll returns copies of all products in insertion order.
func (l *LocalStorage) GetAll() ([]*Product, error) {
	out := make([]*Product, 0, len(l.products))
	for _, p := range l.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (l *LocalStorage) Delete(id int) error {
	i := l.index(id)
	if i < 0 {
		return ErrNotFound
	}
	l.products = append(l.products[:i], l.products[i+1:]...)
	return nil
}

func (l *LocalStorage) NextID() int {
	id := l.nextID
	l.nextID++
	return id
}

// Counter returns the ID the next product will get, without consuming it.
func (l *LocalStorage) Counter() int {
	return l.nextID
}

func (l *LocalStorage) Restore(products []Product, nextID int) {
	l.products = make([]*Product, 0, len(products))
	maxID := 0
	for i := range products {
		cp := products[i]
		l.products = append(l.products, &cp)
		maxID = max(maxID, cp.ID)
	}
	l.nextID = max(nextID, maxID+1, 1)
}

func (l *LocalStorage) index(id int) int {
	for i, p := range l.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
