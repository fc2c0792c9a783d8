// Package snapshot reads and writes the on-disk copy of the shop's data.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sales_manager/internal/catalog"
	"sales_manager/internal/expenses"
	"sales_manager/internal/sales"
)

// ErrPersist wraps every failure to read or write the snapshot file.
var ErrPersist = errors.New("persistence failure")

// ErrNoSnapshot is returned by Load when the file does not exist.
var ErrNoSnapshot = errors.New("no snapshot file")

// Document is the full persisted state.
type Document struct {
	ID            string             `json:"snapshot_id"`
	SavedAt       time.Time          `json:"saved_at"`
	Inventory     []catalog.Product  `json:"inventory"`
	Sales         []sales.Sale       `json:"sales"`
	Expenses      []expenses.Expense `json:"expenses"`
	NextProductID int                `json:"next_product_id"`
	NextSaleID    int                `json:"next_sale_id"`
	NextExpenseID int                `json:"next_expense_id"`
}

// File stores a Document as indented JSON at a fixed path.
type File struct {
	path   string
	logger *zap.Logger
}

// NewFile creates a File for path.
func NewFile(path string, logger *zap.Logger) *File {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &File{path: path, logger: logger}
}

// Path is where the snapshot lives.
func (f *File) Path() string {
	return f.path
}

// Save overwrites the file with doc, stamping it with a fresh ID.
func (f *File) Save(doc Document) error {
	doc.ID = uuid.NewString()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode snapshot: %v", ErrPersist, err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		f.logger.Error("failed to write snapshot", zap.String("path", f.path), zap.Error(err))
		return fmt.Errorf("%w: write %s: %v", ErrPersist, f.path, err)
	}

	f.logger.Debug("snapshot written",
		zap.String("path", f.path),
		zap.String("snapshot_id", doc.ID),
		zap.Int("products", len(doc.Inventory)),
		zap.Int("sales", len(doc.Sales)),
		zap.Int("expenses", len(doc.Expenses)),
	)
	return nil
}

// Load reads the file. It returns ErrNoSnapshot when there is nothing to read.
func (f *File) Load() (*Document, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrPersist, f.path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		f.logger.Error("snapshot is not readable", zap.String("path", f.path), zap.Error(err))
		return nil, fmt.Errorf("%w: decode %s: %v", ErrPersist, f.path, err)
	}

	f.logger.Info("snapshot loaded", zap.String("path", f.path), zap.String("snapshot_id", doc.ID))
	return &doc, nil
}
