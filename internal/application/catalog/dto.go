package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noorfashion/backend/internal/domain/catalog"
)

// StockRecord is the request shape for one stock entry
type StockRecord struct {
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity" binding:"min=0"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Description   string           `json:"description" binding:"max=2000"`
	Price         decimal.Decimal  `json:"price" binding:"required"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Image         string           `json:"image"`
	Images        []string         `json:"images"`
	Category      string           `json:"category" binding:"required"`
	Sizes         []string         `json:"sizes"`
	Colors        []string         `json:"colors"`
	Tags          []string         `json:"tags"`
	Featured      bool             `json:"featured"`
	DisplayOrder  int              `json:"display_order"`
	StockMode     string           `json:"stock_mode"`
	Stock         []StockRecord    `json:"stock"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" binding:"omitempty,max=2000"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Image         *string          `json:"image"`
	Images        []string         `json:"images"`
	Category      *string          `json:"category"`
	Sizes         []string         `json:"sizes"`
	Colors        []string         `json:"colors"`
	Tags          []string         `json:"tags"`
	Featured      *bool            `json:"featured"`
	DisplayOrder  *int             `json:"display_order"`
}

// UpdateStockRequest replaces a product's stock records
type UpdateStockRequest struct {
	StockMode string        `json:"stock_mode" binding:"required,oneof=simple by_size by_variant"`
	Stock     []StockRecord `json:"stock" binding:"required"`
}

// AdjustStockRequest shifts one variant's quantity by a delta
type AdjustStockRequest struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	Delta int    `json:"delta" binding:"required"`
}

// VariantStockResponse is one stock entry in API responses
type VariantStockResponse struct {
	Size     string `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
	Quantity int    `json:"quantity"`
	InStock  bool   `json:"in_stock"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID              `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Price         decimal.Decimal        `json:"price"`
	OriginalPrice *decimal.Decimal       `json:"original_price,omitempty"`
	Image         string                 `json:"image"`
	Images        []string               `json:"images"`
	Category      string                 `json:"category"`
	Sizes         []string               `json:"sizes"`
	Colors        []string               `json:"colors"`
	Tags          []string               `json:"tags"`
	Rating        float64                `json:"rating"`
	Reviews       int                    `json:"reviews"`
	Featured      bool                   `json:"featured"`
	DisplayOrder  int                    `json:"display_order"`
	StockMode     string                 `json:"stock_mode"`
	Stock         []VariantStockResponse `json:"stock"`
	InStock       bool                   `json:"in_stock"`
	OnSale        bool                   `json:"on_sale"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// ProductListFilter represents filter options for product listings
type ProductListFilter struct {
	Category string `form:"category" binding:"omitempty,oneof=Casual Festive Office"`
	Featured *bool  `form:"featured"`
	InStock  *bool  `form:"in_stock"`
	OnSale   bool   `form:"on_sale"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductListResult is a page of products plus the unpaginated total
type ProductListResult struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// ImageUploadResponse carries a presigned upload slot for a product image
type ImageUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	stock := make([]VariantStockResponse, len(p.Stock))
	for i, v := range p.Stock {
		stock[i] = VariantStockResponse{
			Size:     v.Size,
			Color:    v.Color,
			Quantity: v.Quantity,
			InStock:  v.InStock,
		}
	}
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Images:        p.Images,
		Category:      string(p.Category),
		Sizes:         p.Sizes,
		Colors:        p.Colors,
		Tags:          p.Tags,
		Rating:        p.Rating,
		Reviews:       p.Reviews,
		Featured:      p.Featured,
		DisplayOrder:  p.DisplayOrder,
		StockMode:     string(p.StockMode),
		Stock:         stock,
		InStock:       p.TotalStock() > 0,
		OnSale:        p.OnSale(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products to responses
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

func toVariantStock(records []StockRecord) []catalog.VariantStock {
	stock := make([]catalog.VariantStock, len(records))
	for i, r := range records {
		stock[i] = catalog.VariantStock{
			Size:     r.Size,
			Color:    r.Color,
			Quantity: r.Quantity,
			InStock:  r.Quantity > 0,
		}
	}
	return stock
}
