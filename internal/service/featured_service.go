package service

import (
	"context"
	"fmt"

	"puf-orgu/internal/domain"
	"puf-orgu/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeaturedService keeps the featured subset of products in a strict
// display order. Newly featured products are appended at the end; moves
// swap order values with the adjacent neighbor.
type FeaturedService interface {
	Toggle(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	MoveUp(ctx context.Context, id uuid.UUID) error
	MoveDown(ctx context.Context, id uuid.UUID) error
}

type featuredService struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewFeaturedService creates a new instance of FeaturedService
func NewFeaturedService(products repository.ProductRepository, logger *zap.Logger) FeaturedService {
	return &featuredService{
		products: products,
		logger:   logger,
	}
}

// Toggle flips the featured flag. Turning it on places the product last by
// assigning one more than the current maximum order; turning it off resets
// the order to zero. No other product is renumbered.
func (s *featuredService) Toggle(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.Featured {
		product.Featured = false
		product.FeaturedOrder = 0
	} else {
		max, err := s.products.MaxFeaturedOrder(ctx)
		if err != nil {
			return nil, err
		}
		product.Featured = true
		product.FeaturedOrder = max + 1
	}

	if err := s.products.SetFeatured(ctx, id, product.Featured, product.FeaturedOrder); err != nil {
		return nil, err
	}

	s.logger.Info("Featured flag toggled",
		zap.String("product_id", id.String()),
		zap.Bool("featured", product.Featured),
		zap.Int("featured_order", product.FeaturedOrder),
	)

	return product, nil
}

// MoveUp moves the product one position earlier in the featured sequence.
// Moving the first product is a no-op.
func (s *featuredService) MoveUp(ctx context.Context, id uuid.UUID) error {
	return s.move(ctx, id, -1)
}

// MoveDown moves the product one position later in the featured sequence.
// Moving the last product is a no-op.
func (s *featuredService) MoveDown(ctx context.Context, id uuid.UUID) error {
	return s.move(ctx, id, +1)
}

func (s *featuredService) move(ctx context.Context, id uuid.UUID, direction int) error {
	// Featured subset arrives sorted by (featured_order, created_at);
	// created_at breaks ties deterministically.
	featured, err := s.products.ListFeatured(ctx)
	if err != nil {
		return err
	}

	index := -1
	for i, p := range featured {
		if p.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return repository.ErrProductNotFound
	}

	neighbor := index + direction
	if neighbor < 0 || neighbor >= len(featured) {
		// Already at the edge of the sequence
		return nil
	}

	if err := s.products.SwapFeaturedOrder(ctx, featured[index], featured[neighbor]); err != nil {
		return fmt.Errorf("failed to reorder featured products: %w", err)
	}

	s.logger.Info("Featured products reordered",
		zap.String("product_id", id.String()),
		zap.String("swapped_with", featured[neighbor].ID.String()),
	)

	return nil
}
