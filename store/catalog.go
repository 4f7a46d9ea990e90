// Package store provides the catalog aggregate for the storefront model.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/domain"
)

// OrderLine is one (product, quantity) pair within an order.
type OrderLine struct {
	Product  domain.Product
	Quantity int
}

// ReceiptLine records the priced outcome of one order line.
type ReceiptLine struct {
	Product  string
	Quantity int
	Total    decimal.Decimal
}

// Receipt is the result of a successfully executed order.
type Receipt struct {
	ID    string
	Lines []ReceiptLine
	Total decimal.Decimal
}

// Catalog owns an ordered collection of products and executes multi-line
// orders against it. Insertion order is preserved and duplicates by identity
// are permitted.
type Catalog struct {
	mu         sync.RWMutex
	products   []domain.Product
	promotions map[string]*domain.Promotion
}

// New constructs a Catalog holding the given products.
func New(products ...domain.Product) *Catalog {
	return &Catalog{
		products:   products,
		promotions: make(map[string]*domain.Promotion),
	}
}

// AddProduct appends a product to the catalog.
func (c *Catalog) AddProduct(ctx context.Context, p domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == nil {
		return domain.NewInvalidProductError("product", "cannot be nil", nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = append(c.products, p)
	return nil
}

// RemoveProduct removes the first occurrence of p, matched by identity. It
// fails with ProductNotFoundError when p is not in the catalog.
func (c *Catalog) RemoveProduct(ctx context.Context, p domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == nil {
		return domain.NewInvalidProductError("product", "cannot be nil", nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, held := range c.products {
		if held == p {
			c.products = append(c.products[:i], c.products[i+1:]...)
			return nil
		}
	}
	return domain.NewProductNotFoundError(p.Name())
}

// ListActiveProducts returns the active products in insertion order.
func (c *Catalog) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out, nil
}

// FindProduct returns the first active product with the given name.
func (c *Catalog) FindProduct(ctx context.Context, name string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.IsActive() && p.Name() == name {
			return p, nil
		}
	}
	return nil, domain.NewProductNotFoundError(name)
}

// Promotion returns a promotion registered at catalog construction.
func (c *Catalog) Promotion(name string) (*domain.Promotion, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	promo, ok := c.promotions[name]
	return promo, ok
}

// TotalActiveQuantity sums stock over the active, stock-tracked products.
// Non-stocked products contribute 0.
func (c *Catalog) TotalActiveQuantity(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, p := range c.products {
		if p.IsActive() && p.Stocked() {
			total += p.Quantity()
		}
	}
	return total, nil
}

// ExecuteOrder purchases every line and returns a receipt with the grand
// total. Execution is atomic: all lines are validated first, including the
// combined stock taken by lines naming the same product, and stock is
// mutated only once every line has passed. A failing order leaves the
// catalog untouched.
func (c *Catalog) ExecuteOrder(ctx context.Context, lines []OrderLine) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Reservation pass: per-call validation plus cumulative stock per product.
	reserved := make(map[domain.Product]int)
	for _, line := range lines {
		if line.Product == nil {
			return nil, domain.NewInvalidProductError("product", "cannot be nil", nil)
		}
		if err := line.Product.CanPurchase(line.Quantity); err != nil {
			return nil, err
		}
		if !line.Product.Stocked() {
			continue
		}
		pending := reserved[line.Product] + line.Quantity
		if pending > line.Product.Quantity() {
			return nil, domain.NewInsufficientStockError(
				line.Product.Name(), pending, line.Product.Quantity())
		}
		reserved[line.Product] = pending
	}

	// Commit pass: every purchase is guaranteed to succeed by the reservation.
	receipt := &Receipt{ID: uuid.NewString()}
	for _, line := range lines {
		total, err := line.Product.Purchase(line.Quantity)
		if err != nil {
			return nil, err
		}
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			Product:  line.Product.Name(),
			Quantity: line.Quantity,
			Total:    total,
		})
		receipt.Total = receipt.Total.Add(total)
	}
	return receipt, nil
}
