package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/catalog"
	"github.com/stemkits/backend/internal/domain/shared"
)

// CategoryService handles category management operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
	}

	category, err := catalog.NewCategory(req.Slug, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := category.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.ParentID); err != nil {
			return nil, shared.NewDomainError("PARENT_NOT_FOUND", "Parent category not found")
		}
		if err := category.SetParent(req.ParentID); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// GetBySlug retrieves a category by slug
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves all categories
func (s *CategoryService) List(ctx context.Context, activeOnly bool) ([]CategoryResponse, error) {
	var categories []catalog.Category
	var err error
	if activeOnly {
		categories, err = s.categoryRepo.FindActive(ctx)
	} else {
		categories, err = s.categoryRepo.FindAll(ctx, categoryListFilter())
	}
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses, nil
}

// Tree returns the category hierarchy with children nested under roots.
func (s *CategoryService) Tree(ctx context.Context, activeOnly bool) ([]CategoryTreeResponse, error) {
	var categories []catalog.Category
	var err error
	if activeOnly {
		categories, err = s.categoryRepo.FindActive(ctx)
	} else {
		categories, err = s.categoryRepo.FindAll(ctx, categoryListFilter())
	}
	if err != nil {
		return nil, err
	}

	byParent := make(map[uuid.UUID][]catalog.Category)
	var roots []catalog.Category
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		}
	}

	var build func(c catalog.Category) CategoryTreeResponse
	build = func(c catalog.Category) CategoryTreeResponse {
		node := CategoryTreeResponse{
			CategoryResponse: ToCategoryResponse(&c),
			Children:         []CategoryTreeResponse{},
		}
		for _, child := range byParent[c.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	tree := make([]CategoryTreeResponse, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, build(root))
	}
	return tree, nil
}

// Update updates a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := category.Name
		description := category.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := category.Update(name, description); err != nil {
			return nil, err
		}
	}
	if req.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.ParentID); err != nil {
			return nil, shared.NewDomainError("PARENT_NOT_FOUND", "Parent category not found")
		}
		if err := category.SetParent(req.ParentID); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}
	if req.IsActive != nil && *req.IsActive != category.IsActive {
		if *req.IsActive {
			err = category.Activate()
		} else {
			err = category.Deactivate()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete removes a category. Categories with products or children cannot
// be deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	productCount, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has products assigned")
	}

	children, err := s.categoryRepo.FindChildren(ctx, id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has child categories")
	}

	return s.categoryRepo.Delete(ctx, id)
}

// categoryListFilter lists every category in one page ordered for display.
func categoryListFilter() shared.Filter {
	return shared.Filter{
		Page:     1,
		PageSize: 500,
		OrderBy:  "sort_order",
		OrderDir: "asc",
		Filters:  map[string]interface{}{},
	}
}
