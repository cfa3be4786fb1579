package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/catalog"
	"github.com/stemkits/backend/internal/domain/shared"
)

// ProductService handles product management and storefront browsing
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	publisher    shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	publisher shared.EventPublisher,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// Create creates a new draft product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}
	exists, err = s.productRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
	}

	product, err := catalog.NewProduct(req.SKU, req.Slug, req.Name, req.Price)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.Brand != "" {
		if err := product.Update(req.Name, req.Description, req.Brand); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		product.SetCategory(req.CategoryID)
	}
	if req.CompareAtPrice != nil {
		if err := product.SetPricing(req.Price, *req.CompareAtPrice); err != nil {
			return nil, err
		}
	}
	if req.AgeMin != nil || req.AgeMax != nil {
		ageMin, ageMax := 0, 0
		if req.AgeMin != nil {
			ageMin = *req.AgeMin
		}
		if req.AgeMax != nil {
			ageMax = *req.AgeMax
		}
		if err := product.SetAgeRange(ageMin, ageMax); err != nil {
			return nil, err
		}
	}
	if req.StockQuantity != nil {
		if err := product.AdjustStock(*req.StockQuantity); err != nil {
			return nil, err
		}
	}
	if req.LowStockThreshold != nil {
		if err := product.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return nil, err
		}
	}
	if req.Featured {
		product.SetFeatured(true)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetBySlug retrieves an active product by its storefront slug. Draft and
// archived products are hidden from the storefront.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.ErrNotFound
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products for the admin back office
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductListResponse, int64, error) {
	domainFilter := buildListFilter(filter)

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductListResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductListResponse(&products[i]))
	}
	return responses, total, nil
}

// Browse retrieves active products for the storefront with facet filters
func (s *ProductService) Browse(ctx context.Context, filter ProductListFilter) ([]ProductListResponse, int64, error) {
	query, err := buildStorefrontQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	domainFilter := buildListFilter(filter)

	products, err := s.productRepo.FindStorefront(ctx, *query, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountStorefront(ctx, *query)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductListResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductListResponse(&products[i]))
	}
	return responses, total, nil
}

// ListLowStock retrieves active products at or below their threshold
func (s *ProductService) ListLowStock(ctx context.Context, filter ProductListFilter) ([]ProductListResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx, buildListFilter(filter))
	if err != nil {
		return nil, err
	}
	responses := make([]ProductListResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductListResponse(&products[i]))
	}
	return responses, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil || req.Brand != nil {
		name, description, brand := product.Name, product.Description, product.Brand
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if req.Brand != nil {
			brand = *req.Brand
		}
		if err := product.Update(name, description, brand); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		product.SetCategory(req.CategoryID)
	}
	if req.Price != nil || req.CompareAtPrice != nil {
		price, compareAt := product.Price, product.CompareAtPrice
		if req.Price != nil {
			price = *req.Price
		}
		if req.CompareAtPrice != nil {
			compareAt = *req.CompareAtPrice
		}
		if err := product.SetPricing(price, compareAt); err != nil {
			return nil, err
		}
	}
	if req.AgeMin != nil || req.AgeMax != nil {
		ageMin, ageMax := product.AgeMin, product.AgeMax
		if req.AgeMin != nil {
			ageMin = *req.AgeMin
		}
		if req.AgeMax != nil {
			ageMax = *req.AgeMax
		}
		if err := product.SetAgeRange(ageMin, ageMax); err != nil {
			return nil, err
		}
	}
	if req.LowStockThreshold != nil {
		if err := product.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return nil, err
		}
	}
	if req.Featured != nil {
		product.SetFeatured(*req.Featured)
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Publish moves a draft product onto the storefront
func (s *ProductService) Publish(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	return s.lifecycle(ctx, id, (*catalog.Product).Publish)
}

// Archive retires a product from sale
func (s *ProductService) Archive(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	return s.lifecycle(ctx, id, (*catalog.Product).Archive)
}

func (s *ProductService) lifecycle(ctx context.Context, id uuid.UUID, op func(*catalog.Product) error) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := op(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// AdjustStock applies a manual stock correction
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.AdjustStock(req.Delta); err != nil {
		return nil, err
	}
	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product. Only draft products with no order history can
// be deleted; everything else should be archived instead.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product.Status != catalog.ProductStatusDraft {
		return shared.NewDomainError("INVALID_STATUS", "Only draft products can be deleted; archive instead")
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.publisher == nil {
		return
	}
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
	product.ClearDomainEvents()
}

func buildListFilter(filter ProductListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CategoryID != "" {
		domainFilter.Filters["category_id"] = filter.CategoryID
	}
	if filter.Featured != nil {
		domainFilter.Filters["featured"] = *filter.Featured
	}
	return domainFilter
}

func buildStorefrontQuery(filter ProductListFilter) (*catalog.StorefrontQuery, error) {
	query := &catalog.StorefrontQuery{
		Search:   filter.Search,
		Featured: filter.Featured,
		Age:      filter.Age,
	}
	if filter.InStock != nil {
		query.InStock = *filter.InStock
	}
	if filter.CategoryID != "" {
		categoryID, err := uuid.Parse(filter.CategoryID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID is not a valid UUID")
		}
		query.CategoryID = &categoryID
	}
	if filter.PriceMin != "" {
		priceMin, err := decimal.NewFromString(filter.PriceMin)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PRICE", "price_min is not a valid number")
		}
		query.PriceMin = &priceMin
	}
	if filter.PriceMax != "" {
		priceMax, err := decimal.NewFromString(filter.PriceMax)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PRICE", "price_max is not a valid number")
		}
		query.PriceMax = &priceMax
	}
	return query, nil
}
