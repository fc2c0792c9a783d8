// Package app wires the catalog, ledgers, reports and snapshot file into
// the single state value the console operates on.
package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sales_manager/internal/catalog"
	"sales_manager/internal/clock"
	"sales_manager/internal/config"
	"sales_manager/internal/expenses"
	"sales_manager/internal/reports"
	"sales_manager/internal/sales"
	"sales_manager/internal/snapshot"
)

// State is everything one session works with.
type State struct {
	Catalog  *catalog.Service
	Sales    *sales.Service
	Expenses *expenses.Service
	Reports  *reports.Service

	store  *snapshot.File
	clock  clock.Clock
	logger *zap.Logger
}

// New builds a State from cfg. When LoadOnStart is set and a snapshot exists
// it is restored; otherwise the catalog starts with the sample product.
func New(cfg *config.Config, clk clock.Clock, logger *zap.Logger) (*State, error) {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	if clk == nil {
		clk = clock.Real{}
	}

	cat := catalog.NewService(catalog.NewLocalStorage(), logger.Named("catalog"))
	sls := sales.NewService(sales.NewLocalStorage(), cat, clk, logger.Named("sales"),
		sales.WithStrictCheckout(cfg.StrictCheckout))
	exp := expenses.NewService(expenses.NewLocalStorage(), clk, logger.Named("expenses"))

	s := &State{
		Catalog:  cat,
		Sales:    sls,
		Expenses: exp,
		Reports:  reports.NewService(sls, exp, clk, logger.Named("reports"), cfg.BestSellersLimit),
		store:    snapshot.NewFile(cfg.DataFile, logger.Named("snapshot")),
		clock:    clk,
		logger:   logger,
	}

	if cfg.LoadOnStart {
		err := s.Import()
		switch {
		case err == nil:
			return s, nil
		case errors.Is(err, snapshot.ErrNoSnapshot):
		default:
			// A broken file must not keep the shop from opening.
			logger.Warn("starting without saved data", zap.Error(err))
		}
	}

	if _, err := cat.Reset(); err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}
	return s, nil
}

// DataFile is the snapshot path.
func (s *State) DataFile() string {
	return s.store.Path()
}

// Persist writes the full state to the snapshot file. Failures wrap
// snapshot.ErrPersist and leave the in-memory state as it is.
func (s *State) Persist() error {
	products, nextProduct, err := s.Catalog.Snapshot()
	if err != nil {
		return fmt.Errorf("%w: %v", snapshot.ErrPersist, err)
	}
	saleList, nextSale, err := s.Sales.Snapshot()
	if err != nil {
		return fmt.Errorf("%w: %v", snapshot.ErrPersist, err)
	}
	expenseList, nextExpense, err := s.Expenses.Snapshot()
	if err != nil {
		return fmt.Errorf("%w: %v", snapshot.ErrPersist, err)
	}

	return s.store.Save(snapshot.Document{
		SavedAt:       s.clock.Now(),
		Inventory:     products,
		Sales:         saleList,
		Expenses:      expenseList,
		NextProductID: nextProduct,
		NextSaleID:    nextSale,
		NextExpenseID: nextExpense,
	})
}

// Import replaces the in-memory state with the snapshot file's content.
// The open cart is discarded.
func (s *State) Import() error {
	doc, err := s.store.Load()
	if err != nil {
		return err
	}
	s.Catalog.Restore(doc.Inventory, doc.NextProductID)
	s.Sales.Restore(doc.Sales, doc.NextSaleID)
	s.Expenses.Restore(doc.Expenses, doc.NextExpenseID)
	return nil
}

// ClearAll empties every list, restarts all IDs at 1 and reseeds the
// sample product.
func (s *State) ClearAll() error {
	s.Sales.Reset()
	s.Expenses.Reset()
	if _, err := s.Catalog.Reset(); err != nil {
		return err
	}
	s.logger.Info("all data cleared")
	return nil
}
