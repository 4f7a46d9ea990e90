package domain

import "github.com/shopspring/decimal"

// PromotionKind selects the pricing formula of a Promotion.
type PromotionKind int

const (
	// PromotionFlat applies no discount: unit price times quantity.
	PromotionFlat PromotionKind = iota
	// PromotionSecondUnitHalfPrice prices every second unit at half price.
	PromotionSecondUnitHalfPrice
	// PromotionEveryThirdUnitFree makes one unit in every group of three free.
	PromotionEveryThirdUnitFree
	// PromotionPercentOff discounts the whole line by a fixed percentage.
	PromotionPercentOff
)

// Promotion is a pure pricing strategy. It is immutable after construction and
// may be shared by any number of products.
type Promotion struct {
	name    string
	kind    PromotionKind
	percent decimal.Decimal
}

// NewFlatPromotion constructs a promotion that applies no discount.
func NewFlatPromotion(name string) *Promotion {
	return &Promotion{name: name, kind: PromotionFlat}
}

// NewSecondUnitHalfPrice constructs a second-unit-half-price promotion.
func NewSecondUnitHalfPrice(name string) *Promotion {
	return &Promotion{name: name, kind: PromotionSecondUnitHalfPrice}
}

// NewEveryThirdUnitFree constructs an every-third-unit-free promotion.
func NewEveryThirdUnitFree(name string) *Promotion {
	return &Promotion{name: name, kind: PromotionEveryThirdUnitFree}
}

// NewPercentOff constructs a percentage discount promotion. The percent must
// be between 0 and 100 inclusive.
func NewPercentOff(name string, percent decimal.Decimal) (*Promotion, error) {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, NewInvalidPercentError(percent)
	}
	return &Promotion{name: name, kind: PromotionPercentOff, percent: percent}, nil
}

// Name returns the display label of the promotion.
func (p *Promotion) Name() string {
	return p.name
}

// Kind returns the pricing formula tag of the promotion.
func (p *Promotion) Kind() PromotionKind {
	return p.kind
}

// Apply computes the total price for quantity units at unitPrice. It has no
// side effects and does not validate quantity; callers guarantee quantity > 0.
func (p *Promotion) Apply(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	qty := decimal.NewFromInt(int64(quantity))

	switch p.kind {
	case PromotionSecondUnitHalfPrice:
		// Pair up units: one full price and one half price per pair, an odd
		// leftover unit is full price.
		fullCount := decimal.NewFromInt(int64(quantity/2 + quantity%2))
		halfCount := decimal.NewFromInt(int64(quantity / 2))
		half := unitPrice.Div(decimal.NewFromInt(2))
		return fullCount.Mul(unitPrice).Add(halfCount.Mul(half))

	case PromotionEveryThirdUnitFree:
		payable := decimal.NewFromInt(int64(quantity - quantity/3))
		return payable.Mul(unitPrice)

	case PromotionPercentOff:
		discount := p.percent.Div(decimal.NewFromInt(100))
		return unitPrice.Mul(qty).Mul(decimal.NewFromInt(1).Sub(discount))

	default:
		return unitPrice.Mul(qty)
	}
}
