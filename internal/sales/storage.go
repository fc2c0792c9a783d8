package sales

import "errors"

// ErrNotFound is returned when a sale with the given ID is not found.
var ErrNotFound = errors.New("sale not found")

// ErrInvalidID is returned when trying to store a sale without an ID.
var ErrInvalidID = errors.New("invalid sale ID")

// ErrDuplicateID is returned when a sale ID is already in the ledger.
var ErrDuplicateID = errors.New("sale ID already recorded")

// Storage is the append-only ledger of completed sales.
type Storage interface {
	Append(sale *Sale) error
	Read(id int) (*Sale, error)
	GetAll() ([]*Sale, error)
	NextID() int
	Counter() int
	Restore(sales []Sale, nextID int)
}

// LocalStorage provides an in-memory ledger for sales.
type LocalStorage struct {
	sales  []*Sale
	nextID int
}

// NewLocalStorage instantiates an empty ledger whose IDs start at 1.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{nextID: 1}
}

// Append records the sale at the end of the ledger.
// Returns ErrInvalidID if the sale has no ID.
func (l *LocalStorage) Append(sale *Sale) error {
	if sale.ID < 1 {
		return ErrInvalidID
	}
	if _, err := l.Read(sale.ID); err == nil {
		return ErrDuplicateID
	}
	l.sales = append(l.sales, cloneSale(sale))
	return nil
}

// Read retrieves a sale from the ledger by ID.
// Returns ErrNotFound if the sale is not found.
func (l *LocalStorage) Read(id int) (*Sale, error) {
	for _, s := range l.sales {
		if s.ID == id {
			return cloneSale(s), nil
		}
	}
	return nil, ErrNotFound
}

// GetAll retrieves all sales in the order they were recorded.
func (l *LocalStorage) GetAll() ([]*Sale, error) {
	out := make([]*Sale, 0, len(l.sales))
	for _, s := range l.sales {
		out = append(out, cloneSale(s))
	}
	return out, nil
}

func (l *LocalStorage) NextID() int {
	id := l.nextID
	l.nextID++
	return id
}

func (l *LocalStorage) Counter() int {
	return l.nextID
}

func (l *LocalStorage) Restore(sales []Sale, nextID int) {
	l.sales = make([]*Sale, 0, len(sales))
	maxID := 0
	for i := range sales {
		l.sales = append(l.sales, cloneSale(&sales[i]))
		maxID = max(maxID, sales[i].ID)
	}
	l.nextID = max(nextID, maxID+1, 1)
}

func cloneSale(s *Sale) *Sale {
	cp := *s
	cp.Lines = make([]CartLine, len(s.Lines))
	copy(cp.Lines, s.Lines)
	return &cp
}
