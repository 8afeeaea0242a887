package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noorfashion/backend/internal/domain/shared"
)

// Category is the closed set of product categories
type Category string

const (
	CategoryCasual  Category = "Casual"
	CategoryFestive Category = "Festive"
	CategoryOffice  Category = "Office"
)

// IsValid returns true if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryCasual, CategoryFestive, CategoryOffice:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// StockMode says how a product's stock is tracked. Legacy records carried a
// single quantity or a bare size string; newer records track per size or per
// (size, color) variant. The persistence layer migrates legacy shapes into
// one of these modes on read, so call sites never branch on optional fields.
type StockMode string

const (
	// StockModeSimple tracks one quantity for the whole product
	StockModeSimple StockMode = "simple"
	// StockModeBySize tracks a quantity per size
	StockModeBySize StockMode = "by_size"
	// StockModeByVariant tracks a quantity per (size, color) pair
	StockModeByVariant StockMode = "by_variant"
)

// IsValid returns true if the stock mode is valid
func (m StockMode) IsValid() bool {
	switch m {
	case StockModeSimple, StockModeBySize, StockModeByVariant:
		return true
	default:
		return false
	}
}

// VariantStock is the stock record for one sellable variant. In by-size
// mode Color is empty; in simple mode both Size and Color are empty.
type VariantStock struct {
	Size     string `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
	Quantity int    `json:"quantity"`
	InStock  bool   `json:"in_stock"`
}

// Common catalog errors
var (
	ErrInvalidCategory = shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
	ErrInvalidPrice    = shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	ErrVariantNotFound = shared.NewDomainError("VARIANT_NOT_FOUND", "No such size/color variant")
)

// Product is the aggregate root for a catalog product
type Product struct {
	shared.BaseAggregateRoot

	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Image         string
	Images        []string
	Category      Category
	Sizes         []string
	Colors        []string
	Tags          []string
	Rating        float64
	Reviews       int
	Featured      bool
	DisplayOrder  int

	StockMode StockMode
	Stock     []VariantStock
}

// NewProduct creates a new product with simple stock tracking
func NewProduct(name string, price decimal.Decimal, category Category) (*Product, error) {
	if name == "" {
		return nil, shared.ErrInvalidInput
	}
	if !price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Price:             price,
		Category:          category,
		StockMode:         StockModeSimple,
		Stock:             []VariantStock{{Quantity: 0, InStock: false}},
	}, nil
}

// SetStock replaces the product's stock records under the given mode
func (p *Product) SetStock(mode StockMode, stock []VariantStock) error {
	if !mode.IsValid() {
		return shared.ErrInvalidInput
	}
	p.StockMode = mode
	p.Stock = stock
	p.Touch()
	return nil
}

// variantFor locates the stock record matching a requested size/color
// under the product's stock mode.
func (p *Product) variantFor(size, color string) *VariantStock {
	for i := range p.Stock {
		v := &p.Stock[i]
		switch p.StockMode {
		case StockModeSimple:
			return v
		case StockModeBySize:
			if v.Size == size {
				return v
			}
		case StockModeByVariant:
			if v.Size == size && v.Color == color {
				return v
			}
		}
	}
	return nil
}

// InStockFor reports whether the requested variant can be sold
func (p *Product) InStockFor(size, color string) bool {
	v := p.variantFor(size, color)
	return v != nil && v.InStock && v.Quantity > 0
}

// AdjustStock changes a variant's quantity by delta, clamping at zero.
// InStock tracks whether any quantity remains.
func (p *Product) AdjustStock(size, color string, delta int) error {
	v := p.variantFor(size, color)
	if v == nil {
		return ErrVariantNotFound
	}
	v.Quantity += delta
	if v.Quantity < 0 {
		v.Quantity = 0
	}
	v.InStock = v.Quantity > 0
	p.Touch()
	return nil
}

// TotalStock sums quantity across all variants
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Stock {
		total += v.Quantity
	}
	return total
}

// OnSale reports whether the product carries a crossed-out original price
func (p *Product) OnSale() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// ListFilter narrows product listings
type ListFilter struct {
	shared.Filter
	Category *Category
	Featured *bool
	InStock  *bool
}

// Repository is the persistence port for products
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Product, int64, error)
	Save(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
