package expenses

import "errors"

// ErrNotFound is returned when an expense with the given ID is not found.
var ErrNotFound = errors.New("expense not found")

// ErrInvalidID is returned when trying to store an expense without an ID.
var ErrInvalidID = errors.New("invalid expense ID")

// Storage is the expense ledger.
type Storage interface {
	Append(expense *Expense) error
	GetAll() ([]*Expense, error)
	Delete(id int) error
	NextID() int
	Counter() int
	Restore(expenses []Expense, nextID int)
}

// LocalStorage provides an in-memory expense ledger.
type LocalStorage struct {
	expenses []*Expense
	nextID   int
}

// NewLocalStorage instantiates an empty ledger whose IDs start at 1.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{nextID: 1}
}

func (l *LocalStorage) Append(expense *Expense) error {
	if expense.ID < 1 {
		return ErrInvalidID
	}
	cp := *expense
	l.expenses = append(l.expenses, &cp)
	return nil
}

// GetAll returns copies of all expenses in the order they were recorded.
func (l *LocalStorage) GetAll() ([]*Expense, error) {
	out := make([]*Expense, 0, len(l.expenses))
	for _, e := range l.expenses {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// Delete removes an expense. Returns ErrNotFound if it is not recorded.
func (l *LocalStorage) Delete(id int) error {
	for i, e := range l.expenses {
		if e.ID == id {
			l.expenses = append(l.expenses[:i], l.expenses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (l *LocalStorage) NextID() int {
	id := l.nextID
	l.nextID++
	return id
}

func (l *LocalStorage) Counter() int {
	return l.nextID
}

func (l *LocalStorage) Restore(expenses []Expense, nextID int) {
	l.expenses = make([]*Expense, 0, len(expenses))
	maxID := 0
	for i := range expenses {
		cp := expenses[i]
		l.expenses = append(l.expenses, &cp)
		maxID = max(maxID, cp.ID)
	}
	l.nextID = max(nextID, maxID+1, 1)
}
