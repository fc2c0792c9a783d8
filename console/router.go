package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"sales_manager/internal/app"
	"sales_manager/internal/config"
)

type menuItem struct {
	label  string
	action func() error
}

type menu struct {
	title string
	items []menuItem
	back  string
}

// Console drives the numbered menus over an input and output stream.
type Console struct {
	state    *app.State
	prompt   *prompter
	out      io.Writer
	logger   *zap.Logger
	currency string
	lowStock int
}

// New creates a Console reading commands from in and printing to out.
func New(state *app.State, in io.Reader, out io.Writer, cfg *config.Config, logger *zap.Logger) *Console {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Console{
		state:    state,
		prompt:   &prompter{in: bufio.NewReader(in), out: out},
		out:      out,
		logger:   logger,
		currency: cfg.Currency,
		lowStock: cfg.LowStockThreshold,
	}
}

// Run shows the main menu until the user exits or the input ends.
func (c *Console) Run() error {
	top := menu{
		title: "Sales & Expense Management System",
		back:  "Exit",
		items: []menuItem{
			{"Sales Management", c.sub(c.salesMenu())},
			{"Inventory Management", c.sub(c.inventoryMenu())},
			{"Expense Management", c.sub(c.expensesMenu())},
			{"Reports", c.sub(c.reportsMenu())},
			{"Data Management", c.sub(c.dataMenu())},
		},
	}

	c.logger.Info("session started")
	err := c.run(top)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err == nil {
		c.println("Thank you for using the system!")
	}
	c.logger.Info("session ended", zap.Error(err))
	return err
}

func (c *Console) sub(m menu) func() error {
	return func() error { return c.run(m) }
}

// run loops over one menu. 0 returns to the parent; anything else that is
// not a listed number redisplays the menu.
func (c *Console) run(m menu) error {
	for {
		c.println("")
		c.println("=== " + m.title + " ===")
		for i, item := range m.items {
			c.printf("%d. %s\n", i+1, item.label)
		}
		back := m.back
		if back == "" {
			back = "Back to Main Menu"
		}
		c.printf("0. %s\n", back)

		choice, err := c.prompt.number("Choice: ")
		if errors.Is(err, ErrInvalidInput) {
			c.println("Invalid choice!")
			continue
		}
		if err != nil {
			return err
		}
		if choice == 0 {
			return nil
		}
		if choice < 1 || choice > len(m.items) {
			c.println("Invalid choice!")
			continue
		}
		if err := m.items[choice-1].action(); err != nil {
			return err
		}
	}
}

func (c *Console) salesMenu() menu {
	return menu{title: "Sales Management", items: []menuItem{
		{"Add Product to Cart", c.addToCart},
		{"View Current Cart", c.viewCart},
		{"Remove from Cart", c.removeFromCart},
		{"Complete Sale", c.completeSale},
		{"Clear Cart", c.clearCart},
	}}
}

func (c *Console) inventoryMenu() menu {
	return menu{title: "Inventory Management", items: []menuItem{
		{"Add New Product", c.addProduct},
		{"View All Products", c.viewProducts},
		{"Edit Product", c.editProduct},
		{"Delete Product", c.deleteProduct},
	}}
}

func (c *Console) expensesMenu() menu {
	return menu{title: "Expense Management", items: []menuItem{
		{"Add New Expense", c.addExpense},
		{"View All Expenses", c.viewExpenses},
		{"Delete Expense", c.deleteExpense},
	}}
}

func (c *Console) reportsMenu() menu {
	return menu{title: "Reports", items: []menuItem{
		{"Daily Report", c.dailyReport},
		{"All Sales Report", c.allSalesReport},
		{"Financial Summary", c.financialSummary},
		{"Best Selling Products", c.bestSellers},
		{"Credit Sales (Debts)", c.creditSales},
	}}
}

func (c *Console) dataMenu() menu {
	return menu{title: "Data Management", items: []menuItem{
		{"Export Data", c.exportData},
		{"Import Data", c.importData},
		{"Clear All Data", c.clearAllData},
	}}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
