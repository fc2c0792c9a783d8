package catalog

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrInvalidProduct is returned when product input fails validation.
var ErrInvalidProduct = errors.New("invalid product")

// Service provides catalog management operations on a Storage backend.
type Service struct {
	storage Storage
	logger  *zap.Logger
}

// NewService creates a new Service.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// AddProduct validates the input and stores a new product under the next ID.
func (s *Service) AddProduct(in NewProductInput) (*Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}

	product := &Product{
		ID:    s.storage.NextID(),
		Name:  in.Name,
		Price: in.Price,
		Stock: in.Stock,
	}
	if err := s.storage.Set(product); err != nil {
		s.logger.Error("failed to save product", zap.Int("product_id", product.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.Info("product added",
		zap.Int("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Stringer("price", product.Price),
		zap.Int("stock", product.Stock),
	)
	return product, nil
}

// FindProduct returns the product with the given ID or ErrNotFound.
func (s *Service) FindProduct(id int) (*Product, error) {
	return s.storage.Read(id)
}

// ListProducts returns every product in insertion order.
func (s *Service) ListProducts() ([]*Product, error) {
	return s.storage.GetAll()
}

// ListAvailable returns the products that still have stock.
func (s *Service) ListAvailable() ([]*Product, error) {
	all, err := s.storage.GetAll()
	if err != nil {
		return nil, err
	}
	available := make([]*Product, 0, len(all))
	for _, p := range all {
		if p.Stock > 0 {
			available = append(available, p)
		}
	}
	return available, nil
}

// UpdateProduct changes only the fields set in the input.
func (s *Service) UpdateProduct(id int, in UpdateProductInput) (*Product, error) {
	product, err := s.storage.Read(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}

	if err := s.storage.Set(product); err != nil {
		s.logger.Error("failed to update product", zap.Int("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info("product updated", zap.Int("product_id", id), zap.Any("product", product))
	return product, nil
}

// DeleteProduct removes the product. Confirmation is the caller's job.
func (s *Service) DeleteProduct(id int) error {
	if err := s.storage.Delete(id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.Int("product_id", id))
	return nil
}

// DecrementStock subtracts qty from the product's stock. It does not guard
// against going below zero; callers decide how strict to be.
func (s *Service) DecrementStock(id, qty int) (*Product, error) {
	product, err := s.storage.Read(id)
	if err != nil {
		return nil, err
	}
	product.Stock -= qty
	if err := s.storage.Set(product); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}
	if product.Stock < 0 {
		s.logger.Warn("stock went negative", zap.Int("product_id", id), zap.Int("stock", product.Stock))
	}
	return product, nil
}

// Reset drops every product, restarts IDs at 1 and seeds the sample product.
func (s *Service) Reset() (*Product, error) {
	s.storage.Restore(nil, 1)
	sample := SampleProduct()
	return s.AddProduct(NewProductInput{Name: sample.Name, Price: sample.Price, Stock: sample.Stock})
}

// Snapshot returns all products plus the ID counter.
func (s *Service) Snapshot() ([]Product, int, error) {
	all, err := s.storage.GetAll()
	if err != nil {
		return nil, 0, err
	}
	out := make([]Product, 0, len(all))
	for _, p := range all {
		out = append(out, *p)
	}
	return out, s.storage.Counter(), nil
}

// Restore replaces the catalog with previously saved state.
func (s *Service) Restore(products []Product, nextID int) {
	s.storage.Restore(products, nextID)
	s.logger.Info("catalog restored", zap.Int("products", len(products)), zap.Int("next_id", s.storage.Counter()))
}
