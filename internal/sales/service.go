package sales

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sales_manager/internal/catalog"
	"sales_manager/internal/clock"
)

// ErrEmptyCart is returned when checking out a cart with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// ErrStockChanged is returned by a strict checkout when a product vanished
// or no longer has enough stock since it was added to the cart.
var ErrStockChanged = errors.New("stock changed since the item was added to the cart")

// Inventory is the part of the catalog the sales workflow needs.
type Inventory interface {
	FindProduct(id int) (*catalog.Product, error)
	DecrementStock(id, qty int) (*catalog.Product, error)
}

// Option configures a Service.
type Option func(*Service)

// WithStrictCheckout makes CompleteSale re-validate stock before committing.
func WithStrictCheckout(strict bool) Option {
	return func(s *Service) { s.strict = strict }
}

// Service runs the cart and checkout workflow on top of a sale ledger.
type Service struct {
	storage   Storage
	inventory Inventory
	clock     clock.Clock
	logger    *zap.Logger
	cart      Cart
	strict    bool
}

// NewService creates a new Service with an empty cart.
func NewService(storage Storage, inventory Inventory, clk clock.Clock, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	if clk == nil {
		clk = clock.Real{}
	}

	s := &Service{
		storage:   storage,
		inventory: inventory,
		clock:     clk,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddToCart looks the product up and adds qty units of it to the cart.
func (s *Service) AddToCart(productID, qty int) (CartLine, error) {
	product, err := s.inventory.FindProduct(productID)
	if err != nil {
		return CartLine{}, err
	}

	line, err := s.cart.Add(*product, qty)
	if err != nil {
		s.logger.Warn("add to cart rejected",
			zap.Int("product_id", productID),
			zap.Int("quantity", qty),
			zap.Error(err),
		)
		return CartLine{}, err
	}

	s.logger.Debug("cart line added", zap.Int("product_id", productID), zap.Int("quantity", line.Quantity))
	return line, nil
}

// RemoveFromCart drops the line at the 1-based index.
func (s *Service) RemoveFromCart(index int) (CartLine, error) {
	return s.cart.Remove(index)
}

// ClearCart empties the cart. The catalog is not touched.
func (s *Service) ClearCart() {
	s.cart.Clear()
}

// CartLines returns the current cart lines.
func (s *Service) CartLines() []CartLine {
	return s.cart.Lines()
}

// CartTotal sums the current cart lines.
func (s *Service) CartTotal() decimal.Decimal {
	return s.cart.Total()
}

// CompleteSale commits the cart as a new sale: stock is decremented, the
// sale is appended to the ledger and the cart is cleared.
func (s *Service) CompleteSale(method PaymentMethod, customerName string) (*Invoice, error) {
	if s.cart.Empty() {
		return nil, ErrEmptyCart
	}
	method, err := ParsePaymentMethod(string(method))
	if err != nil {
		return nil, err
	}

	lines := s.cart.Lines()
	if s.strict {
		if err := s.revalidate(lines); err != nil {
			s.logger.Warn("checkout rejected", zap.Error(err))
			return nil, err
		}
	}

	for _, line := range lines {
		product, err := s.inventory.DecrementStock(line.ProductID, line.Quantity)
		if err != nil {
			// Lenient mode: the product was deleted after it went into the cart.
			s.logger.Warn("stock not decremented",
				zap.Int("product_id", line.ProductID),
				zap.Error(err),
			)
			continue
		}
		s.logger.Debug("stock decremented", zap.Int("product_id", product.ID), zap.Int("stock", product.Stock))
	}

	sale := &Sale{
		ID:            s.storage.NextID(),
		Reference:     uuid.NewString(),
		Date:          s.clock.Now(),
		Lines:         lines,
		PaymentMethod: method,
		CustomerName:  strings.TrimSpace(customerName),
	}
	if err := s.storage.Append(sale); err != nil {
		s.logger.Error("failed to save sale", zap.Int("sale_id", sale.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}
	s.cart.Clear()

	s.logger.Info("sale completed",
		zap.Int("sale_id", sale.ID),
		zap.String("reference", sale.Reference),
		zap.String("payment_method", string(sale.PaymentMethod)),
		zap.Stringer("total", sale.Total()),
		zap.Int("lines", len(sale.Lines)),
	)

	invoice := NewInvoice(*sale)
	return &invoice, nil
}

func (s *Service) revalidate(lines []CartLine) error {
	for _, line := range lines {
		if line.Quantity < 1 {
			return fmt.Errorf("%w: %s has quantity %d", ErrInvalidQuantity, line.Name, line.Quantity)
		}
		product, err := s.inventory.FindProduct(line.ProductID)
		if err != nil {
			return fmt.Errorf("%w: %s is no longer in the catalog", ErrStockChanged, line.Name)
		}
		if product.Stock < line.Quantity {
			return fmt.Errorf("%w: %s has %d, cart holds %d", ErrStockChanged, line.Name, product.Stock, line.Quantity)
		}
	}
	return nil
}

// FindSale returns a committed sale by ID.
func (s *Service) FindSale(id int) (*Sale, error) {
	return s.storage.Read(id)
}

// ListSales returns every committed sale in ledger order.
func (s *Service) ListSales() ([]*Sale, error) {
	return s.storage.GetAll()
}

// Reset empties the ledger and the cart and restarts sale IDs at 1.
func (s *Service) Reset() {
	s.storage.Restore(nil, 1)
	s.cart.Clear()
	s.logger.Info("sales ledger cleared")
}

// Snapshot returns every sale plus the ID counter.
func (s *Service) Snapshot() ([]Sale, int, error) {
	all, err := s.storage.GetAll()
	if err != nil {
		return nil, 0, err
	}
	out := make([]Sale, 0, len(all))
	for _, sale := range all {
		out = append(out, *sale)
	}
	return out, s.storage.Counter(), nil
}

// Restore replaces the ledger with previously saved state and empties the cart.
func (s *Service) Restore(sales []Sale, nextID int) {
	s.storage.Restore(sales, nextID)
	s.cart.Clear()
	s.logger.Info("sales ledger restored", zap.Int("sales", len(sales)), zap.Int("next_id", s.storage.Counter()))
}
