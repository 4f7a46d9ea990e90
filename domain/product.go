// Package domain defines core business types and interfaces.
package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Product is the capability shared by all product variants. Purchases mutate
// stock on stock-tracked variants; everything else is a query or a direct
// setter.
type Product interface {
	Name() string
	Price() decimal.Decimal
	SetPrice(price decimal.Decimal) error
	Quantity() int
	SetQuantity(quantity int) error
	IsActive() bool
	Activate()
	Deactivate()
	Promotion() *Promotion
	SetPromotion(promo *Promotion)
	// Stocked reports whether the variant tracks a finite stock quantity.
	Stocked() bool
	// CanPurchase validates a purchase request without mutating anything.
	CanPurchase(quantity int) error
	// Purchase validates, prices via the attached promotion if any, and
	// decrements stock on stock-tracked variants. A rejected purchase never
	// mutates stock.
	Purchase(quantity int) (decimal.Decimal, error)
	// Describe renders the product for display.
	Describe() string
}

// StandardProduct is a stock-bounded product.
type StandardProduct struct {
	name      string
	price     decimal.Decimal
	quantity  int
	active    bool
	promotion *Promotion
}

// compile-time assertions that all variants implement Product
var (
	_ Product = (*StandardProduct)(nil)
	_ Product = (*NonStockedProduct)(nil)
	_ Product = (*LimitedProduct)(nil)
)

// NewStandardProduct constructs a StandardProduct. The name must be non-empty,
// the price and quantity non-negative.
func NewStandardProduct(name string, price decimal.Decimal, quantity int) (*StandardProduct, error) {
	if name == "" {
		return nil, NewInvalidProductError("name", "cannot be empty", name)
	}
	if price.IsNegative() {
		return nil, NewInvalidProductError("price", "must be non-negative", price)
	}
	if quantity < 0 {
		return nil, NewInvalidProductError("quantity", "must be non-negative", quantity)
	}
	return &StandardProduct{
		name:     name,
		price:    price,
		quantity: quantity,
		active:   true,
	}, nil
}

// Name returns the immutable product name.
func (p *StandardProduct) Name() string {
	return p.name
}

// Price returns the current unit price.
func (p *StandardProduct) Price() decimal.Decimal {
	return p.price
}

// SetPrice updates the unit price, rejecting negative values.
func (p *StandardProduct) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return NewInvalidPriceError(price)
	}
	p.price = price
	return nil
}

// Quantity returns the current stock quantity.
func (p *StandardProduct) Quantity() int {
	return p.quantity
}

// SetQuantity updates the stock quantity, rejecting negative values. Setting
// the quantity to exactly 0 deactivates the product.
func (p *StandardProduct) SetQuantity(quantity int) error {
	if quantity < 0 {
		return NewInvalidQuantityError(quantity)
	}
	p.quantity = quantity
	if p.quantity == 0 {
		p.Deactivate()
	}
	return nil
}

// IsActive reports whether the product is eligible for listing and purchase.
func (p *StandardProduct) IsActive() bool {
	return p.active
}

// Activate marks the product active.
func (p *StandardProduct) Activate() {
	p.active = true
}

// Deactivate marks the product inactive.
func (p *StandardProduct) Deactivate() {
	p.active = false
}

// Promotion returns the attached promotion, or nil if none.
func (p *StandardProduct) Promotion() *Promotion {
	return p.promotion
}

// SetPromotion attaches a promotion; nil detaches.
func (p *StandardProduct) SetPromotion(promo *Promotion) {
	p.promotion = promo
}

// Stocked reports that the standard variant tracks stock.
func (p *StandardProduct) Stocked() bool {
	return true
}

// CanPurchase validates the request against quantity and stock constraints.
func (p *StandardProduct) CanPurchase(quantity int) error {
	if quantity <= 0 {
		return NewInvalidQuantityError(quantity)
	}
	if quantity > p.quantity {
		return NewInsufficientStockError(p.name, quantity, p.quantity)
	}
	return nil
}

// Purchase buys quantity units, returning the total price. Stock is
// decremented and the product deactivates when stock reaches zero.
func (p *StandardProduct) Purchase(quantity int) (decimal.Decimal, error) {
	if err := p.CanPurchase(quantity); err != nil {
		return decimal.Zero, err
	}
	total := p.total(quantity)
	p.quantity -= quantity
	if p.quantity == 0 {
		p.Deactivate()
	}
	return total, nil
}

// total prices quantity units via the attached promotion, if any.
func (p *StandardProduct) total(quantity int) decimal.Decimal {
	if p.promotion != nil {
		return p.promotion.Apply(p.price, quantity)
	}
	return p.price.Mul(decimal.NewFromInt(int64(quantity)))
}

// Describe renders name, price, quantity, and promotion name if present.
func (p *StandardProduct) Describe() string {
	return fmt.Sprintf("%s, Price: $%s, Quantity: %d%s",
		p.name, p.price, p.quantity, promoSuffix(p.promotion))
}

// NonStockedProduct has no tracked stock and is always purchasable.
type NonStockedProduct struct {
	StandardProduct
}

// NewNonStockedProduct constructs a NonStockedProduct.
func NewNonStockedProduct(name string, price decimal.Decimal) (*NonStockedProduct, error) {
	base, err := NewStandardProduct(name, price, 0)
	if err != nil {
		return nil, err
	}
	return &NonStockedProduct{StandardProduct: *base}, nil
}

// Stocked reports that the non-stocked variant has no tracked stock.
func (p *NonStockedProduct) Stocked() bool {
	return false
}

// CanPurchase validates only that the quantity is positive.
func (p *NonStockedProduct) CanPurchase(quantity int) error {
	if quantity <= 0 {
		return NewInvalidQuantityError(quantity)
	}
	return nil
}

// Purchase prices quantity units without touching any stock counter.
func (p *NonStockedProduct) Purchase(quantity int) (decimal.Decimal, error) {
	if err := p.CanPurchase(quantity); err != nil {
		return decimal.Zero, err
	}
	return p.total(quantity), nil
}

// Describe renders the product without a quantity field.
func (p *NonStockedProduct) Describe() string {
	return fmt.Sprintf("%s, Price: $%s%s",
		p.name, p.price, promoSuffix(p.promotion))
}

// LimitedProduct caps how many units a single purchase may take.
type LimitedProduct struct {
	StandardProduct
	maxPerOrder int
}

// NewLimitedProduct constructs a LimitedProduct with a positive per-order cap.
func NewLimitedProduct(name string, price decimal.Decimal, quantity, maxPerOrder int) (*LimitedProduct, error) {
	if maxPerOrder <= 0 {
		return nil, NewInvalidProductError("maxPerOrder", "must be positive", maxPerOrder)
	}
	base, err := NewStandardProduct(name, price, quantity)
	if err != nil {
		return nil, err
	}
	return &LimitedProduct{StandardProduct: *base, maxPerOrder: maxPerOrder}, nil
}

// MaxPerOrder returns the cap on a single purchase.
func (p *LimitedProduct) MaxPerOrder() int {
	return p.maxPerOrder
}

// CanPurchase checks the per-order cap before the standard validation.
func (p *LimitedProduct) CanPurchase(quantity int) error {
	if quantity > p.maxPerOrder {
		return NewPurchaseLimitError(p.name, quantity, p.maxPerOrder)
	}
	return p.StandardProduct.CanPurchase(quantity)
}

// Purchase checks the per-order cap, then delegates to the standard
// stock/promotion/decrement logic.
func (p *LimitedProduct) Purchase(quantity int) (decimal.Decimal, error) {
	if quantity > p.maxPerOrder {
		return decimal.Zero, NewPurchaseLimitError(p.name, quantity, p.maxPerOrder)
	}
	return p.StandardProduct.Purchase(quantity)
}

// Describe renders the product including the per-order cap.
func (p *LimitedProduct) Describe() string {
	return fmt.Sprintf("%s, Price: $%s, Limited to %d per order, Quantity: %d%s",
		p.name, p.price, p.maxPerOrder, p.quantity, promoSuffix(p.promotion))
}

func promoSuffix(promo *Promotion) string {
	if promo == nil {
		return ""
	}
	return ", Promotion: " + promo.Name()
}

// ComparePrice orders a product against another value by unit price. It
// returns -1, 0, or 1 as a's price is less than, equal to, or greater than
// other's, and fails when other is not a product.
func ComparePrice(a Product, other interface{}) (int, error) {
	b, ok := other.(Product)
	if !ok {
		return 0, NewInvalidComparisonError(other)
	}
	return a.Price().Cmp(b.Price()), nil
}

// ByPrice sorts products by ascending unit price, keeping the existing order
// of equal-priced products.
func ByPrice(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Price().LessThan(products[j].Price())
	})
}
