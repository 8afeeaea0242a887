package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/noorfashion/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product aggregate.
// List-valued fields are stored as JSON text so the same model works on
// postgres and the sqlite test driver.
type ProductModel struct {
	AggregateModel
	Name          string           `gorm:"type:varchar(200);not null"`
	Description   string           `gorm:"type:text"`
	Price         decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	OriginalPrice *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Image         string           `gorm:"type:varchar(500)"`
	Images        string           `gorm:"type:text"`
	Category      string           `gorm:"type:varchar(20);not null;index"`
	Sizes         string           `gorm:"type:text"`
	Colors        string           `gorm:"type:text"`
	Tags          string           `gorm:"type:text"`
	Rating        float64          `gorm:"not null;default:0"`
	Reviews       int              `gorm:"not null;default:0"`
	Featured      bool             `gorm:"not null;default:false;index"`
	DisplayOrder  int              `gorm:"not null;default:0"`

	StockMode string `gorm:"type:varchar(20)"`
	Stock     string `gorm:"type:text"`

	// Legacy columns from before per-variant stock tracking. Rows that
	// still carry them are migrated to a stock mode on read and written
	// back in the new shape on the next save.
	LegacySize     string `gorm:"column:legacy_size;type:varchar(10)"`
	LegacyQuantity int    `gorm:"column:legacy_quantity;not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product aggregate
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		Name:          m.Name,
		Description:   m.Description,
		Price:         m.Price,
		OriginalPrice: m.OriginalPrice,
		Image:         m.Image,
		Images:        decodeStrings(m.Images),
		Category:      catalog.Category(m.Category),
		Sizes:         decodeStrings(m.Sizes),
		Colors:        decodeStrings(m.Colors),
		Tags:          decodeStrings(m.Tags),
		Rating:        m.Rating,
		Reviews:       m.Reviews,
		Featured:      m.Featured,
		DisplayOrder:  m.DisplayOrder,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)

	p.StockMode, p.Stock = m.stockToDomain()
	return p
}

// stockToDomain resolves the stored stock shape, migrating legacy rows
func (m *ProductModel) stockToDomain() (catalog.StockMode, []catalog.VariantStock) {
	if m.StockMode != "" {
		var stock []catalog.VariantStock
		if err := json.Unmarshal([]byte(m.Stock), &stock); err == nil {
			return catalog.StockMode(m.StockMode), stock
		}
	}

	// Legacy row: a bare size string means one tracked size, otherwise a
	// single untyped quantity
	if m.LegacySize != "" {
		return catalog.StockModeBySize, []catalog.VariantStock{{
			Size:     m.LegacySize,
			Quantity: m.LegacyQuantity,
			InStock:  m.LegacyQuantity > 0,
		}}
	}
	return catalog.StockModeSimple, []catalog.VariantStock{{
		Quantity: m.LegacyQuantity,
		InStock:  m.LegacyQuantity > 0,
	}}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.OriginalPrice = p.OriginalPrice
	m.Image = p.Image
	m.Images = encodeStrings(p.Images)
	m.Category = p.Category.String()
	m.Sizes = encodeStrings(p.Sizes)
	m.Colors = encodeStrings(p.Colors)
	m.Tags = encodeStrings(p.Tags)
	m.Rating = p.Rating
	m.Reviews = p.Reviews
	m.Featured = p.Featured
	m.DisplayOrder = p.DisplayOrder

	m.StockMode = string(p.StockMode)
	if raw, err := json.Marshal(p.Stock); err == nil {
		m.Stock = string(raw)
	}
	// Saving in the new shape retires the legacy columns
	m.LegacySize = ""
	m.LegacyQuantity = 0
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeStrings(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}
