package console

import (
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sales_manager/internal/catalog"
	"sales_manager/internal/clock"
	"sales_manager/internal/expenses"
	"sales_manager/internal/sales"
)

// handle reports a failed operation to the user. Only end of input is
// passed up; every other error stops the current operation and the menu
// carries on.
func (c *Console) handle(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return err
	}

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.println("Product not found!")
	case errors.Is(err, expenses.ErrNotFound):
		c.println("Expense not found!")
	case errors.Is(err, sales.ErrNotFound):
		c.println("Sale not found!")
	case errors.Is(err, sales.ErrEmptyCart):
		c.println("Cart is empty!")
	case errors.Is(err, sales.ErrOutOfStock):
		c.println("Insufficient stock! " + err.Error())
	case errors.Is(err, sales.ErrInvalidIndex):
		c.println("Invalid item number!")
	case errors.Is(err, sales.ErrStockChanged):
		c.println("Sale not completed: " + err.Error())
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, catalog.ErrInvalidProduct),
		errors.Is(err, expenses.ErrInvalidExpense),
		errors.Is(err, sales.ErrInvalidQuantity),
		errors.Is(err, sales.ErrInvalidPaymentMethod):
		c.println("Invalid input: " + err.Error())
	default:
		c.logger.Error("operation failed", zap.Error(err))
		c.println("Error: " + err.Error())
	}
	return nil
}

// persist saves after a mutation. A failure is a warning, not a domain
// error: the change already happened in memory.
func (c *Console) persist() {
	if err := c.state.Persist(); err != nil {
		c.logger.Error("failed to persist data", zap.Error(err))
		c.println("Warning: data could not be saved to " + c.state.DataFile() + ": " + err.Error())
	}
}

func (c *Console) money(d decimal.Decimal) string {
	return d.StringFixed(2) + " " + c.currency
}

func (c *Console) productLine(p *catalog.Product) string {
	return fmt.Sprintf("ID: %d, Name: %s, Price: %s, Stock: %d", p.ID, p.Name, c.money(p.Price), p.Stock)
}

func (c *Console) cartLine(l sales.CartLine) string {
	return fmt.Sprintf("%s - Qty: %d x %s = %s", l.Name, l.Quantity, l.Price.StringFixed(2), c.money(l.Total()))
}

// Inventory

func (c *Console) addProduct() error {
	c.println("\n=== Add New Product ===")
	name, err := c.prompt.text("Product Name: ")
	if err != nil {
		return c.handle(err)
	}
	price, err := c.prompt.amount("Price (" + c.currency + "): ")
	if err != nil {
		return c.handle(err)
	}
	stock, err := c.prompt.number("Stock Quantity: ")
	if err != nil {
		return c.handle(err)
	}

	p, err := c.state.Catalog.AddProduct(catalog.NewProductInput{Name: name, Price: price, Stock: stock})
	if err != nil {
		return c.handle(err)
	}
	c.persist()
	c.printf("Product added successfully! (ID %d)\n", p.ID)
	return nil
}

// listProducts prints the catalog and reports whether it had anything.
func (c *Console) listProducts() (bool, error) {
	c.println("\n=== Product List ===")
	products, err := c.state.Catalog.ListProducts()
	if err != nil {
		return false, err
	}
	if len(products) == 0 {
		c.println("No products in inventory.")
		return false, nil
	}
	for _, p := range products {
		line := c.productLine(p)
		if p.LowStock(c.lowStock) {
			line += " [LOW STOCK]"
		}
		c.println(line)
	}
	return true, nil
}

func (c *Console) viewProducts() error {
	_, err := c.listProducts()
	return c.handle(err)
}

func (c *Console) editProduct() error {
	found, err := c.listProducts()
	if err != nil || !found {
		return c.handle(err)
	}

	id, err := c.prompt.number("\nEnter Product ID to edit: ")
	if err != nil {
		return c.handle(err)
	}
	current, err := c.state.Catalog.FindProduct(id)
	if err != nil {
		return c.handle(err)
	}
	c.println("Current: " + c.productLine(current))

	var in catalog.UpdateProductInput
	name, err := c.prompt.text("New Name (current: " + current.Name + "): ")
	if err != nil {
		return c.handle(err)
	}
	if name != "" {
		in.Name = &name
	}
	priceStr, err := c.prompt.text("New Price (current: " + current.Price.StringFixed(2) + "): ")
	if err != nil {
		return c.handle(err)
	}
	if priceStr != "" {
		price, err := parseDecimal(priceStr)
		if err != nil {
			return c.handle(err)
		}
		in.Price = &price
	}
	stockStr, err := c.prompt.text(fmt.Sprintf("New Stock (current: %d): ", current.Stock))
	if err != nil {
		return c.handle(err)
	}
	if stockStr != "" {
		stock, err := parseInt(stockStr)
		if err != nil {
			return c.handle(err)
		}
		in.Stock = &stock
	}

	if in.Empty() {
		c.println("Nothing changed.")
		return nil
	}
	if _, err := c.state.Catalog.UpdateProduct(id, in); err != nil {
		return c.handle(err)
	}
	c.persist()
	c.println("Product updated successfully!")
	return nil
}

func (c *Console) deleteProduct() error {
	found, err := c.listProducts()
	if err != nil || !found {
		return c.handle(err)
	}

	id, err := c.prompt.number("\nEnter Product ID to delete: ")
	if err != nil {
		return c.handle(err)
	}
	p, err := c.state.Catalog.FindProduct(id)
	if err != nil {
		return c.handle(err)
	}
	ok, err := c.prompt.confirm("Are you sure you want to delete: " + c.productLine(p) + "?")
	if err != nil || !ok {
		return c.handle(err)
	}
	if err := c.state.Catalog.DeleteProduct(id); err != nil {
		return c.handle(err)
	}
	c.persist()
	c.println("Product deleted successfully!")
	return nil
}

// Sales

func (c *Console) addToCart() error {
	c.println("\n=== Available Products ===")
	available, err := c.state.Catalog.ListAvailable()
	if err != nil {
		return c.handle(err)
	}
	if len(available) == 0 {
		c.println("No products available in stock!")
		return nil
	}
	for _, p := range available {
		c.println(c.productLine(p))
	}

	id, err := c.prompt.number("\nEnter Product ID: ")
	if err != nil {
		return c.handle(err)
	}
	qty, err := c.prompt.number("Enter Quantity: ")
	if err != nil {
		return c.handle(err)
	}

	before := len(c.state.Sales.CartLines())
	if _, err := c.state.Sales.AddToCart(id, qty); err != nil {
		return c.handle(err)
	}
	if len(c.state.Sales.CartLines()) == before {
		c.println("Updated quantity in cart!")
	} else {
		c.println("Product added to cart!")
	}
	return nil
}

// showCart prints the cart and reports whether it had lines.
func (c *Console) showCart() bool {
	c.println("\n=== Current Cart ===")
	lines := c.state.Sales.CartLines()
	if len(lines) == 0 {
		c.println("Cart is empty.")
		return false
	}
	for i, l := range lines {
		c.printf("%d. %s\n", i+1, c.cartLine(l))
	}
	c.println("\nTotal: " + c.money(c.state.Sales.CartTotal()))
	return true
}

func (c *Console) viewCart() error {
	c.showCart()
	return nil
}

func (c *Console) removeFromCart() error {
	if !c.showCart() {
		return nil
	}
	n := len(c.state.Sales.CartLines())
	idx, err := c.prompt.number(fmt.Sprintf("\nEnter item number to remove (1-%d): ", n))
	if err != nil {
		return c.handle(err)
	}
	if _, err := c.state.Sales.RemoveFromCart(idx); err != nil {
		return c.handle(err)
	}
	c.println("Item removed from cart!")
	return nil
}

func (c *Console) completeSale() error {
	if len(c.state.Sales.CartLines()) == 0 {
		return c.handle(sales.ErrEmptyCart)
	}
	c.showCart()

	c.println("\nPayment Method:")
	c.println("1. Cash")
	c.println("2. Credit")
	choice, err := c.prompt.number("Choice: ")
	if err != nil {
		return c.handle(err)
	}

	var method sales.PaymentMethod
	var customer string
	switch choice {
	case 1:
		method = sales.PaymentCash
	case 2:
		method = sales.PaymentCredit
		if customer, err = c.prompt.text("Customer Name: "); err != nil {
			return c.handle(err)
		}
	default:
		return c.handle(fmt.Errorf("%w: payment choice %d", sales.ErrInvalidPaymentMethod, choice))
	}

	invoice, err := c.state.Sales.CompleteSale(method, customer)
	if err != nil {
		return c.handle(err)
	}
	c.persist()
	c.printInvoice(invoice)
	c.println("Sale completed successfully!")
	return nil
}

func (c *Console) printInvoice(inv *sales.Invoice) {
	c.println("\n=== Sales Invoice ===")
	c.printf("Invoice ID: %d\n", inv.SaleID)
	c.println("Reference: " + inv.Reference)
	c.println("Date: " + inv.Date.Format(clock.TimestampLayout))
	if inv.CustomerName != "" {
		c.println("Customer: " + inv.CustomerName)
	}
	c.println("Payment Method: " + inv.PaymentMethod.Label())
	c.println("\n--- Items ---")
	for _, l := range inv.Lines {
		c.printf("%s - Qty: %d x %s = %s\n", l.Name, l.Quantity, l.Price.StringFixed(2), c.money(l.LineTotal))
	}
	c.println("\n--- Total ---")
	c.println("Total Amount: " + c.money(inv.Total))
	c.println("================================")
}

func (c *Console) clearCart() error {
	c.state.Sales.ClearCart()
	c.println("Cart cleared!")
	return nil
}

// Expenses

func (c *Console) addExpense() error {
	c.println("\n=== Add New Expense ===")
	desc, err := c.prompt.text("Expense Description: ")
	if err != nil {
		return c.handle(err)
	}
	amount, err := c.prompt.amount("Amount (" + c.currency + "): ")
	if err != nil {
		return c.handle(err)
	}

	if _, err := c.state.Expenses.AddExpense(expenses.NewExpenseInput{Description: desc, Amount: amount}); err != nil {
		return c.handle(err)
	}
	c.persist()
	c.println("Expense added successfully!")
	return nil
}

func (c *Console) expenseLine(e *expenses.Expense) string {
	return fmt.Sprintf("ID: %d | Date: %s | %s - %s", e.ID, e.Date.Format(clock.TimestampLayout), e.Description, c.money(e.Amount))
}

func (c *Console) listExpenses() (bool, error) {
	c.println("\n=== Expense Record ===")
	all, err := c.state.Expenses.ListExpenses()
	if err != nil {
		return false, err
	}
	if len(all) == 0 {
		c.println("No expenses recorded.")
		return false, nil
	}
	for _, e := range all {
		c.println(c.expenseLine(e))
	}
	total, err := c.state.Expenses.TotalExpenses(nil)
	if err != nil {
		return true, err
	}
	c.println("\nTotal Expenses: " + c.money(total))
	return true, nil
}

func (c *Console) viewExpenses() error {
	_, err := c.listExpenses()
	return c.handle(err)
}

func (c *Console) deleteExpense() error {
	found, err := c.listExpenses()
	if err != nil || !found {
		return c.handle(err)
	}

	id, err := c.prompt.number("\nEnter Expense ID to delete: ")
	if err != nil {
		return c.handle(err)
	}
	e, err := c.state.Expenses.FindExpense(id)
	if err != nil {
		return c.handle(err)
	}
	ok, err := c.prompt.confirm("Are you sure you want to delete: " + c.expenseLine(e) + "?")
	if err != nil || !ok {
		return c.handle(err)
	}
	if err := c.state.Expenses.DeleteExpense(id); err != nil {
		return c.handle(err)
	}
	c.persist()
	c.println("Expense deleted successfully!")
	return nil
}

// Reports

func (c *Console) dailyReport() error {
	r, err := c.state.Reports.Today()
	if err != nil {
		return c.handle(err)
	}
	c.println("\n=== Daily Report ===")
	c.println("Date: " + r.Day)
	c.printf("Sales Count: %d\n", r.SalesCount)
	c.println("Cash Revenue: " + c.money(r.CashRevenue))
	c.println("Credit Revenue: " + c.money(r.CreditRevenue))
	c.println("Total Revenue: " + c.money(r.TotalRevenue))
	c.printf("Expenses Count: %d\n", r.ExpensesCount)
	c.println("Total Expenses: " + c.money(r.TotalExpenses))
	c.println("Net Income: " + c.money(r.NetIncome))
	return nil
}

func (c *Console) allSalesReport() error {
	rows, err := c.state.Reports.AllSales()
	if err != nil {
		return c.handle(err)
	}
	c.println("\n=== All Sales Report ===")
	if len(rows) == 0 {
		c.println("No sales recorded.")
		return nil
	}
	for _, r := range rows {
		line := fmt.Sprintf("Sale ID: %d | Date: %s | Total: %s | Payment: %s",
			r.ID, r.Date.Format(clock.TimestampLayout), c.money(r.Total), r.PaymentMethod)
		if r.CustomerName != "" {
			line += " | Customer: " + r.CustomerName
		}
		c.println(line)
	}
	return nil
}

func (c *Console) financialSummary() error {
	s, err := c.state.Reports.Financial()
	if err != nil {
		return c.handle(err)
	}
	c.println("\n=== Financial Summary ===")
	c.println("Total Cash Revenue: " + c.money(s.CashRevenue))
	c.println("Total Credit Revenue: " + c.money(s.CreditRevenue))
	c.println("Total Revenue: " + c.money(s.TotalRevenue))
	c.println("Total Expenses: " + c.money(s.TotalExpenses))
	c.println("Net Income: " + c.money(s.NetIncome))
	c.println("Outstanding Credit: " + c.money(s.OutstandingCredit))
	return nil
}

func (c *Console) bestSellers() error {
	ranked, err := c.state.Reports.BestSellers(0)
	if err != nil {
		return c.handle(err)
	}
	c.println("\n=== Best Selling Products ===")
	if len(ranked) == 0 {
		c.println("No sales data available.")
		return nil
	}
	for i, r := range ranked {
		c.printf("%d. %s - %d units sold\n", i+1, r.Name, r.Quantity)
	}
	return nil
}

func (c *Console) creditSales() error {
	r, err := c.state.Reports.CreditSales()
	if err != nil {
		return c.handle(err)
	}
	c.println("\n=== Credit Sales (Outstanding Debts) ===")
	if r.None() {
		c.println("No credit sales found.")
		return nil
	}
	for _, e := range r.Entries {
		c.printf("Customer: %s | Amount: %s | Date: %s\n", e.CustomerName, c.money(e.Amount), e.Date.Format(clock.TimestampLayout))
	}
	c.println("\nTotal Outstanding Credit: " + c.money(r.Total))
	return nil
}

// Data

func (c *Console) exportData() error {
	if err := c.state.Persist(); err != nil {
		c.logger.Error("export failed", zap.Error(err))
		c.println("Export failed: " + err.Error())
		return nil
	}
	c.println("Data exported to " + c.state.DataFile() + " successfully!")
	return nil
}

func (c *Console) importData() error {
	ok, err := c.prompt.confirm("Importing replaces all current data and empties the cart. Continue?")
	if err != nil || !ok {
		return c.handle(err)
	}
	if err := c.state.Import(); err != nil {
		c.logger.Warn("import failed", zap.Error(err))
		c.println("Import failed: " + err.Error())
		return nil
	}
	c.println("Data imported from " + c.state.DataFile() + " successfully!")
	return nil
}

func (c *Console) clearAllData() error {
	ok, err := c.prompt.confirm("Are you sure you want to clear ALL data? This cannot be undone!")
	if err != nil || !ok {
		return c.handle(err)
	}
	if err := c.state.ClearAll(); err != nil {
		return c.handle(err)
	}
	c.persist()
	c.println("All data cleared successfully!")
	return nil
}
