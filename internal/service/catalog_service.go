package service

import (
	"context"
	"fmt"
	"time"

	"puf-orgu/internal/domain"
	"puf-orgu/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductInput carries the fields of a product write. Category is a slug,
// the stable external identifier, resolved to a category id at write time.
type ProductInput struct {
	ID              uuid.UUID
	Name            string
	Slug            string
	Description     string
	LongDescription *string
	Price           float64
	Category        string
	Material        *string
	Dimensions      *string
	Colors          []string
	Images          []string
	Featured        bool
	FeaturedOrder   int
	InStock         *bool
}

// CatalogService is the CRUD surface between the HTTP layer and the
// catalog store.
type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

type catalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	assets     AssetService
	logger     *zap.Logger
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	assets AssetService,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		products:   products,
		categories: categories,
		assets:     assets,
		logger:     logger,
	}
}

// ListProducts returns products joined with their category
func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProductBySlug returns a single product for detail pages
func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.products.FindBySlug(ctx, slug)
}

// CreateProduct resolves the category slug and persists a new product
func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	category, err := s.categories.FindBySlug(ctx, input.Category)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		ID:        uuid.New(),
		CreatedAt: now,
	}
	applyInput(product, input, category, now)

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	product.CategorySlug = category.Slug
	product.CategoryName = category.Name

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("slug", product.Slug),
	)

	return product, nil
}

// UpdateProduct resolves the category slug and persists all supplied fields
func (s *catalogService) UpdateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	category, err := s.categories.FindBySlug(ctx, input.Category)
	if err != nil {
		return nil, err
	}

	existing, err := s.products.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	applyInput(existing, input, category, time.Now())

	if err := s.products.Update(ctx, existing); err != nil {
		return nil, err
	}

	existing.CategorySlug = category.Slug
	existing.CategoryName = category.Name

	return existing, nil
}

// DeleteProduct reclaims the product's image assets before removing the
// record. Asset cleanup is best-effort; the record is deleted either way.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	s.assets.DeleteOrphans(ctx, product.Images)

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Product deleted",
		zap.String("product_id", id.String()),
		zap.Int("images", len(product.Images)),
	)

	return nil
}

// ListCategories returns all categories
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// applyInput copies the write fields onto a product, defaulting absent
// optional fields: nil text fields stay null, lists become empty, stock
// defaults to available.
func applyInput(product *domain.Product, input ProductInput, category *domain.Category, now time.Time) {
	product.Name = input.Name
	product.Slug = input.Slug
	product.Description = input.Description
	product.LongDescription = input.LongDescription
	product.Price = input.Price
	product.CategoryID = category.ID
	product.Material = input.Material
	product.Dimensions = input.Dimensions
	product.Colors = input.Colors
	product.Images = input.Images
	product.Featured = input.Featured
	product.FeaturedOrder = input.FeaturedOrder
	product.InStock = true
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	product.UpdatedAt = now

	if product.Colors == nil {
		product.Colors = []string{}
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if !product.Featured {
		product.FeaturedOrder = 0
	}
}
