package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"storefront/domain"
)

// Product kinds accepted in ProductSpec.Kind. The empty string means standard.
const (
	KindStandard   = "standard"
	KindNonStocked = "non-stocked"
	KindLimited    = "limited"
)

// Promotion kinds accepted in PromotionSpec.Kind.
const (
	PromoSecondHalfPrice = "second-half-price"
	PromoThirdOneFree    = "third-one-free"
	PromoPercentOff      = "percent-off"
)

// PromotionSpec declares one promotion available to products in the config.
type PromotionSpec struct {
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	Percent float64 `json:"percent,omitempty"`
}

// ProductSpec declares one product. Promotions are referenced by name, never
// by position.
type ProductSpec struct {
	Name        string  `json:"name"`
	Kind        string  `json:"kind,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity,omitempty"`
	MaxPerOrder int     `json:"max_per_order,omitempty"`
	Promotion   string  `json:"promotion,omitempty"`
}

// Config is the explicit catalog construction input.
type Config struct {
	Promotions []PromotionSpec `json:"promotions,omitempty"`
	Products   []ProductSpec   `json:"products"`
}

// DefaultConfig returns the built-in seed inventory.
func DefaultConfig() Config {
	return Config{
		Promotions: []PromotionSpec{
			{Name: "Second Half price!", Kind: PromoSecondHalfPrice},
			{Name: "Third One Free!", Kind: PromoThirdOneFree},
			{Name: "30% off!", Kind: PromoPercentOff, Percent: 30},
		},
		Products: []ProductSpec{
			{Name: "MacBook Air M2", Price: 1450, Quantity: 100, Promotion: "Second Half price!"},
			{Name: "Bose QuietComfort Earbuds", Price: 250, Quantity: 500, Promotion: "Third One Free!"},
			{Name: "Google Pixel 7", Price: 500, Quantity: 250},
			{Name: "Windows License", Kind: KindNonStocked, Price: 125, Promotion: "30% off!"},
			{Name: "Shipping", Kind: KindLimited, Price: 10, Quantity: 250, MaxPerOrder: 1},
		},
	}
}

// LoadConfig reads a catalog Config from a JSON file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if len(b) == 0 {
		return cfg, fmt.Errorf("empty catalog config: %s", path)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse catalog config %s: %w", path, err)
	}
	return cfg, nil
}

// Load constructs a Catalog from the JSON config at path, or from
// DefaultConfig when path is empty.
func Load(path string) (*Catalog, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}
	return NewFromConfig(cfg)
}

// NewFromConfig builds the promotions, then the products, then wires the two
// together by promotion name.
func NewFromConfig(cfg Config) (*Catalog, error) {
	promotions := make(map[string]*domain.Promotion, len(cfg.Promotions))
	for _, spec := range cfg.Promotions {
		if _, dup := promotions[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate promotion name: %q", spec.Name)
		}
		promo, err := buildPromotion(spec)
		if err != nil {
			return nil, fmt.Errorf("promotion %q: %w", spec.Name, err)
		}
		promotions[spec.Name] = promo
	}

	products := make([]domain.Product, 0, len(cfg.Products))
	for _, spec := range cfg.Products {
		p, err := buildProduct(spec)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", spec.Name, err)
		}
		if spec.Promotion != "" {
			promo, ok := promotions[spec.Promotion]
			if !ok {
				return nil, fmt.Errorf("product %q references unknown promotion %q",
					spec.Name, spec.Promotion)
			}
			p.SetPromotion(promo)
		}
		products = append(products, p)
	}

	catalog := New(products...)
	catalog.promotions = promotions
	return catalog, nil
}

func buildPromotion(spec PromotionSpec) (*domain.Promotion, error) {
	switch spec.Kind {
	case PromoSecondHalfPrice:
		return domain.NewSecondUnitHalfPrice(spec.Name), nil
	case PromoThirdOneFree:
		return domain.NewEveryThirdUnitFree(spec.Name), nil
	case PromoPercentOff:
		return domain.NewPercentOff(spec.Name, decimal.NewFromFloat(spec.Percent))
	default:
		return nil, fmt.Errorf("unknown promotion kind: %q", spec.Kind)
	}
}

func buildProduct(spec ProductSpec) (domain.Product, error) {
	price := decimal.NewFromFloat(spec.Price)
	switch spec.Kind {
	case "", KindStandard:
		return domain.NewStandardProduct(spec.Name, price, spec.Quantity)
	case KindNonStocked:
		return domain.NewNonStockedProduct(spec.Name, price)
	case KindLimited:
		return domain.NewLimitedProduct(spec.Name, price, spec.Quantity, spec.MaxPerOrder)
	default:
		return nil, fmt.Errorf("unknown product kind: %q", spec.Kind)
	}
}
