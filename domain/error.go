// Package domain defines error types for the storefront model.
package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// InvalidProductError is returned when product construction fails validation
type InvalidProductError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for InvalidProductError
func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("invalid product: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidProductError) Is(target error) bool {
	_, ok := target.(*InvalidProductError)
	return ok
}

// InvalidPriceError is returned when assigning a negative unit price
type InvalidPriceError struct {
	Price decimal.Decimal
}

// Error implements the error interface for InvalidPriceError
func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid price: must be non-negative, got %s", e.Price)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidPriceError) Is(target error) bool {
	_, ok := target.(*InvalidPriceError)
	return ok
}

// InvalidQuantityError is returned for a zero/negative purchase request or a
// negative quantity assignment
type InvalidQuantityError struct {
	Quantity int
}

// Error implements the error interface for InvalidQuantityError
func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity: %d", e.Quantity)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidQuantityError) Is(target error) bool {
	_, ok := target.(*InvalidQuantityError)
	return ok
}

// InsufficientStockError is returned when a purchase asks for more units than
// the product has in stock
type InsufficientStockError struct {
	Product   string
	Requested int
	Available int
}

// Error implements the error interface for InsufficientStockError
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: product=%s, requested=%d, available=%d",
		e.Product, e.Requested, e.Available)
}

// Is allows proper error type checking with errors.Is()
func (e *InsufficientStockError) Is(target error) bool {
	_, ok := target.(*InsufficientStockError)
	return ok
}

// PurchaseLimitError is returned when a purchase exceeds a limited product's
// per-order cap
type PurchaseLimitError struct {
	Product   string
	Requested int
	Limit     int
}

// Error implements the error interface for PurchaseLimitError
func (e *PurchaseLimitError) Error() string {
	return fmt.Sprintf("purchase limit exceeded: product=%s, requested=%d, limit=%d",
		e.Product, e.Requested, e.Limit)
}

// Is allows proper error type checking with errors.Is()
func (e *PurchaseLimitError) Is(target error) bool {
	_, ok := target.(*PurchaseLimitError)
	return ok
}

// InvalidPercentError is returned when a percent-off promotion is constructed
// with a discount outside [0, 100]
type InvalidPercentError struct {
	Percent decimal.Decimal
}

// Error implements the error interface for InvalidPercentError
func (e *InvalidPercentError) Error() string {
	return fmt.Sprintf("invalid percent: must be between 0 and 100, got %s", e.Percent)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidPercentError) Is(target error) bool {
	_, ok := target.(*InvalidPercentError)
	return ok
}

// InvalidComparisonError is returned when comparing a product against a
// non-product value
type InvalidComparisonError struct {
	Value interface{}
}

// Error implements the error interface for InvalidComparisonError
func (e *InvalidComparisonError) Error() string {
	return fmt.Sprintf("invalid comparison: can only compare products, got %T", e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidComparisonError) Is(target error) bool {
	_, ok := target.(*InvalidComparisonError)
	return ok
}

// ProductNotFoundError is returned when a product with the given name is not
// in the catalog
type ProductNotFoundError struct {
	Product string
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: name=%s", e.Product)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// Helper functions for creating errors with context

// NewInvalidProductError creates a new InvalidProductError
func NewInvalidProductError(field, reason string, value interface{}) error {
	return &InvalidProductError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewInvalidPriceError creates a new InvalidPriceError
func NewInvalidPriceError(price decimal.Decimal) error {
	return &InvalidPriceError{Price: price}
}

// NewInvalidQuantityError creates a new InvalidQuantityError
func NewInvalidQuantityError(quantity int) error {
	return &InvalidQuantityError{Quantity: quantity}
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(product string, requested, available int) error {
	return &InsufficientStockError{
		Product:   product,
		Requested: requested,
		Available: available,
	}
}

// NewPurchaseLimitError creates a new PurchaseLimitError
func NewPurchaseLimitError(product string, requested, limit int) error {
	return &PurchaseLimitError{
		Product:   product,
		Requested: requested,
		Limit:     limit,
	}
}

// NewInvalidPercentError creates a new InvalidPercentError
func NewInvalidPercentError(percent decimal.Decimal) error {
	return &InvalidPercentError{Percent: percent}
}

// NewInvalidComparisonError creates a new InvalidComparisonError
func NewInvalidComparisonError(value interface{}) error {
	return &InvalidComparisonError{Value: value}
}

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(product string) error {
	return &ProductNotFoundError{Product: product}
}

// Type assertion helpers for use with errors.As()

// IsInvalidProductError checks if an error is an InvalidProductError
func IsInvalidProductError(err error) bool {
	var ipe *InvalidProductError
	return errors.As(err, &ipe)
}

// IsInvalidPriceError checks if an error is an InvalidPriceError
func IsInvalidPriceError(err error) bool {
	var ipr *InvalidPriceError
	return errors.As(err, &ipr)
}

// IsInvalidQuantityError checks if an error is an InvalidQuantityError
func IsInvalidQuantityError(err error) bool {
	var iqe *InvalidQuantityError
	return errors.As(err, &iqe)
}

// IsInsufficientStockError checks if an error is an InsufficientStockError
func IsInsufficientStockError(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}

// IsPurchaseLimitError checks if an error is a PurchaseLimitError
func IsPurchaseLimitError(err error) bool {
	var ple *PurchaseLimitError
	return errors.As(err, &ple)
}

// IsInvalidPercentError checks if an error is an InvalidPercentError
func IsInvalidPercentError(err error) bool {
	var ipe *InvalidPercentError
	return errors.As(err, &ipe)
}

// IsInvalidComparisonError checks if an error is an InvalidComparisonError
func IsInvalidComparisonError(err error) bool {
	var ice *InvalidComparisonError
	return errors.As(err, &ice)
}

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}
