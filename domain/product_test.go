package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewStandardProductValidation(t *testing.T) {
	tests := []struct {
		name        string
		productName string
		price       int64
		quantity    int
		expectError bool
		errField    string
	}{
		{
			name:        "valid product",
			productName: "Laptop",
			price:       1000,
			quantity:    5,
			expectError: false,
		},
		{
			name:        "empty name",
			productName: "",
			price:       10,
			quantity:    1,
			expectError: true,
			errField:    "name",
		},
		{
			name:        "negative price",
			productName: "Book",
			price:       -1,
			quantity:    1,
			expectError: true,
			errField:    "price",
		},
		{
			name:        "negative quantity",
			productName: "Pen",
			price:       1,
			quantity:    -5,
			expectError: true,
			errField:    "quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewStandardProduct(tt.productName, decimal.NewFromInt(tt.price), tt.quantity)

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}

				ipe, ok := err.(*InvalidProductError)
				if !ok {
					t.Fatalf("expected InvalidProductError, got %T", err)
				}

				if ipe.Field != tt.errField {
					t.Fatalf("expected error field %q, got %q", tt.errField, ipe.Field)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !p.IsActive() {
				t.Fatal("new product should be active")
			}
		})
	}
}

func TestNewLimitedProductValidation(t *testing.T) {
	for _, max := range []int{0, -1} {
		_, err := NewLimitedProduct("Shipping", decimal.NewFromInt(10), 250, max)
		if !IsInvalidProductError(err) {
			t.Fatalf("max=%d: expected InvalidProductError, got %v", max, err)
		}
	}
}

func TestStandardPurchase(t *testing.T) {
	t.Run("purchase without promotion", func(t *testing.T) {
		p, err := NewStandardProduct("Laptop", decimal.NewFromInt(100), 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		total, err := p.Purchase(5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.Equal(decimal.NewFromInt(500)) {
			t.Fatalf("expected total 500, got %s", total)
		}
		if p.Quantity() != 5 {
			t.Fatalf("expected remaining stock 5, got %d", p.Quantity())
		}
	})

	t.Run("purchase with promotion", func(t *testing.T) {
		p, _ := NewStandardProduct("Laptop", decimal.NewFromInt(100), 10)
		p.SetPromotion(NewSecondUnitHalfPrice("Second Half price!"))

		total, err := p.Purchase(5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.Equal(decimal.NewFromInt(400)) {
			t.Fatalf("expected total 400, got %s", total)
		}
		if p.Quantity() != 5 {
			t.Fatalf("promotion must not change the decrement, got stock %d", p.Quantity())
		}
	})

	t.Run("insufficient stock leaves stock unchanged", func(t *testing.T) {
		p, _ := NewStandardProduct("Laptop", decimal.NewFromInt(100), 3)

		_, err := p.Purchase(4)
		if !IsInsufficientStockError(err) {
			t.Fatalf("expected InsufficientStockError, got %v", err)
		}
		if p.Quantity() != 3 {
			t.Fatalf("rejected purchase must not mutate stock, got %d", p.Quantity())
		}
	})

	t.Run("purchasing all stock deactivates", func(t *testing.T) {
		p, _ := NewStandardProduct("Laptop", decimal.NewFromInt(100), 3)

		if _, err := p.Purchase(3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.IsActive() {
			t.Fatal("product should deactivate when stock reaches 0")
		}
		if p.Quantity() != 0 {
			t.Fatalf("expected stock 0, got %d", p.Quantity())
		}
	})
}

func TestPurchaseRejectsNonPositiveQuantity(t *testing.T) {
	standard, _ := NewStandardProduct("A", decimal.NewFromInt(10), 5)
	nonStocked, _ := NewNonStockedProduct("B", decimal.NewFromInt(10))
	limited, _ := NewLimitedProduct("C", decimal.NewFromInt(10), 5, 3)

	variants := map[string]Product{
		"standard":    standard,
		"non-stocked": nonStocked,
		"limited":     limited,
	}

	for name, p := range variants {
		t.Run(name, func(t *testing.T) {
			for _, quantity := range []int{0, -1} {
				if _, err := p.Purchase(quantity); !IsInvalidQuantityError(err) {
					t.Fatalf("quantity %d: expected InvalidQuantityError, got %v", quantity, err)
				}
			}
		})
	}
}

func TestLimitedPurchase(t *testing.T) {
	p, err := NewLimitedProduct("Shipping", decimal.NewFromInt(10), 100, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("over the cap fails", func(t *testing.T) {
		_, err := p.Purchase(6)
		if !IsPurchaseLimitError(err) {
			t.Fatalf("expected PurchaseLimitError, got %v", err)
		}
		if p.Quantity() != 100 {
			t.Fatalf("rejected purchase must not mutate stock, got %d", p.Quantity())
		}
	})

	t.Run("at the cap succeeds", func(t *testing.T) {
		total, err := p.Purchase(5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.Equal(decimal.NewFromInt(50)) {
			t.Fatalf("expected total 50, got %s", total)
		}
		if p.Quantity() != 95 {
			t.Fatalf("expected remaining stock 95, got %d", p.Quantity())
		}
	})

	t.Run("cap applies before the stock check", func(t *testing.T) {
		small, _ := NewLimitedProduct("Shipping", decimal.NewFromInt(10), 2, 5)
		_, err := small.Purchase(6)
		if !IsPurchaseLimitError(err) {
			t.Fatalf("expected PurchaseLimitError, got %v", err)
		}
	})
}

func TestNonStockedPurchase(t *testing.T) {
	p, err := NewNonStockedProduct("Windows License", decimal.NewFromInt(125))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Stocked() {
		t.Fatal("non-stocked product must not track stock")
	}
	if !p.IsActive() {
		t.Fatal("non-stocked product should be active at construction")
	}

	for _, quantity := range []int{1, 10, 1000} {
		total, err := p.Purchase(quantity)
		if err != nil {
			t.Fatalf("quantity %d: unexpected error: %v", quantity, err)
		}
		expected := decimal.NewFromInt(125 * int64(quantity))
		if !total.Equal(expected) {
			t.Fatalf("quantity %d: expected %s, got %s", quantity, expected, total)
		}
	}

	if p.Quantity() != 0 {
		t.Fatalf("non-stocked purchase must not mutate a stock counter, got %d", p.Quantity())
	}
	if !p.IsActive() {
		t.Fatal("non-stocked product must stay active after purchases")
	}
}

func TestSetters(t *testing.T) {
	t.Run("negative price rejected", func(t *testing.T) {
		p, _ := NewStandardProduct("A", decimal.NewFromInt(10), 5)
		if err := p.SetPrice(decimal.NewFromInt(-1)); !IsInvalidPriceError(err) {
			t.Fatalf("expected InvalidPriceError, got %v", err)
		}
		if !p.Price().Equal(decimal.NewFromInt(10)) {
			t.Fatalf("rejected SetPrice must not mutate, got %s", p.Price())
		}
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		p, _ := NewStandardProduct("A", decimal.NewFromInt(10), 5)
		if err := p.SetQuantity(-1); !IsInvalidQuantityError(err) {
			t.Fatalf("expected InvalidQuantityError, got %v", err)
		}
		if p.Quantity() != 5 {
			t.Fatalf("rejected SetQuantity must not mutate, got %d", p.Quantity())
		}
	})

	t.Run("setting quantity to zero deactivates", func(t *testing.T) {
		p, _ := NewStandardProduct("A", decimal.NewFromInt(10), 5)
		if err := p.SetQuantity(0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.IsActive() {
			t.Fatal("product should deactivate when quantity is set to 0")
		}

		p.Activate()
		if !p.IsActive() {
			t.Fatal("explicit Activate should reactivate")
		}
	})

	t.Run("promotion attach and detach", func(t *testing.T) {
		p, _ := NewStandardProduct("A", decimal.NewFromInt(10), 5)
		promo := NewEveryThirdUnitFree("Third One Free!")

		p.SetPromotion(promo)
		if p.Promotion() != promo {
			t.Fatal("promotion not attached")
		}
		p.SetPromotion(nil)
		if p.Promotion() != nil {
			t.Fatal("promotion not detached")
		}
	})
}

func TestDescribe(t *testing.T) {
	promo := NewSecondUnitHalfPrice("Second Half price!")

	t.Run("standard", func(t *testing.T) {
		p, _ := NewStandardProduct("MacBook Air M2", decimal.NewFromInt(1450), 100)
		expected := "MacBook Air M2, Price: $1450, Quantity: 100"
		if got := p.Describe(); got != expected {
			t.Fatalf("expected %q, got %q", expected, got)
		}

		p.SetPromotion(promo)
		expected += ", Promotion: Second Half price!"
		if got := p.Describe(); got != expected {
			t.Fatalf("expected %q, got %q", expected, got)
		}
	})

	t.Run("non-stocked omits quantity", func(t *testing.T) {
		p, _ := NewNonStockedProduct("Windows License", decimal.NewFromInt(125))
		expected := "Windows License, Price: $125"
		if got := p.Describe(); got != expected {
			t.Fatalf("expected %q, got %q", expected, got)
		}
	})

	t.Run("limited includes the cap", func(t *testing.T) {
		p, _ := NewLimitedProduct("Shipping", decimal.NewFromInt(10), 250, 1)
		expected := "Shipping, Price: $10, Limited to 1 per order, Quantity: 250"
		if got := p.Describe(); got != expected {
			t.Fatalf("expected %q, got %q", expected, got)
		}
	})
}

func TestComparePrice(t *testing.T) {
	cheap, _ := NewStandardProduct("Cheap", decimal.NewFromInt(10), 1)
	dear, _ := NewStandardProduct("Dear", decimal.NewFromInt(20), 1)

	t.Run("orders by price", func(t *testing.T) {
		got, err := ComparePrice(cheap, dear)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != -1 {
			t.Fatalf("expected -1, got %d", got)
		}

		got, err = ComparePrice(dear, cheap)
		if err != nil || got != 1 {
			t.Fatalf("expected 1, got %d (err %v)", got, err)
		}
	})

	t.Run("non-product operand fails", func(t *testing.T) {
		_, err := ComparePrice(cheap, "not a product")
		if !IsInvalidComparisonError(err) {
			t.Fatalf("expected InvalidComparisonError, got %v", err)
		}
	})
}

func TestByPrice(t *testing.T) {
	a, _ := NewStandardProduct("A", decimal.NewFromInt(30), 1)
	b, _ := NewStandardProduct("B", decimal.NewFromInt(10), 1)
	c, _ := NewStandardProduct("C", decimal.NewFromInt(20), 1)

	products := []Product{a, b, c}
	ByPrice(products)

	want := []Product{b, c, a}
	for i := range want {
		if products[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i].Name(), products[i].Name())
		}
	}
}
