package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noorfashion/backend/internal/domain/catalog"
	"github.com/noorfashion/backend/internal/domain/shared"
	"github.com/noorfashion/backend/internal/infrastructure/cache"
)

// ProductService handles catalog business operations. Listing and single
// product reads go through the Redis cache when one is wired; every write
// invalidates the whole catalog namespace.
type ProductService struct {
	products catalog.Repository
	cache    *cache.ProductCache
	logger   *zap.Logger
}

// NewProductService creates a new ProductService. The cache may be nil,
// in which case every read goes to the repository.
func NewProductService(products catalog.Repository, productCache *cache.ProductCache, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		products: products,
		cache:    productCache,
		logger:   logger,
	}
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*ProductListResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	cacheable := s.cache != nil && filter.Search == "" && filter.Featured == nil && filter.InStock == nil
	cacheKey := cache.ListKey(filter.Category, filter.OnSale, filter.Page, filter.PageSize)

	if cacheable {
		var cached ProductListResult
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	domainFilter := catalog.ListFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Search:   filter.Search,
			Filters:  make(map[string]interface{}),
		},
		Featured: filter.Featured,
		InStock:  filter.InStock,
	}
	if filter.Category != "" {
		category := catalog.Category(filter.Category)
		if !category.IsValid() {
			return nil, catalog.ErrInvalidCategory
		}
		domainFilter.Category = &category
	}

	products, total, err := s.products.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := ToProductResponses(products)
	if filter.OnSale {
		onSale := responses[:0]
		for _, r := range responses {
			if r.OnSale {
				onSale = append(onSale, r)
			}
		}
		responses = onSale
	}

	result := &ProductListResult{
		Products: responses,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}

	if cacheable {
		if err := s.cache.Set(ctx, cacheKey, result); err != nil {
			s.logger.Warn("failed to cache product listing", zap.Error(err))
		}
	}

	return result, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	cacheKey := cache.ProductKey(productID.String())
	if s.cache != nil {
		var cached ProductResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, response); err != nil {
			s.logger.Warn("failed to cache product", zap.Error(err))
		}
	}
	return &response, nil
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	category := catalog.Category(req.Category)
	if !category.IsValid() {
		return nil, catalog.ErrInvalidCategory
	}

	product, err := catalog.NewProduct(req.Name, req.Price, category)
	if err != nil {
		return nil, err
	}

	product.Description = req.Description
	product.OriginalPrice = req.OriginalPrice
	product.Image = req.Image
	product.Images = req.Images
	product.Sizes = req.Sizes
	product.Colors = req.Colors
	product.Tags = req.Tags
	product.Featured = req.Featured
	product.DisplayOrder = req.DisplayOrder

	if req.StockMode != "" {
		if err := product.SetStock(catalog.StockMode(req.StockMode), toVariantStock(req.Stock)); err != nil {
			return nil, err
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	response := ToProductResponse(product)
	return &response, nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.ErrInvalidInput
		}
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, catalog.ErrInvalidPrice
		}
		product.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = req.OriginalPrice
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Category != nil {
		category := catalog.Category(*req.Category)
		if !category.IsValid() {
			return nil, catalog.ErrInvalidCategory
		}
		product.Category = category
	}
	if req.Sizes != nil {
		product.Sizes = req.Sizes
	}
	if req.Colors != nil {
		product.Colors = req.Colors
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.DisplayOrder != nil {
		product.DisplayOrder = *req.DisplayOrder
	}
	product.Touch()

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	response := ToProductResponse(product)
	return &response, nil
}

// UpdateStock replaces a product's stock records
func (s *ProductService) UpdateStock(ctx context.Context, productID uuid.UUID, req UpdateStockRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.SetStock(catalog.StockMode(req.StockMode), toVariantStock(req.Stock)); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	response := ToProductResponse(product)
	return &response, nil
}

// AdjustStock shifts one variant's quantity by a delta
func (s *ProductService) AdjustStock(ctx context.Context, productID uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.AdjustStock(req.Size, req.Color, req.Delta); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
