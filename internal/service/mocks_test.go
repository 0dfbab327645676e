package service

import (
	"context"
	"sort"
	"sync"

	"puf-orgu/internal/domain"
	"puf-orgu/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories and stores for testing

type mockProductRepository struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product

	failSwap bool
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Slug == product.Slug {
			return repository.ErrSlugTaken
		}
	}
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	for _, p := range m.products {
		if p.Slug == product.Slug && p.ID != product.ID {
			return repository.ErrSlugTaken
		}
	}
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Product
	for _, p := range m.products {
		if filter.FeaturedOnly && !p.Featured {
			continue
		}
		if filter.CategorySlug != nil && p.CategorySlug != *filter.CategorySlug {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	if filter.FeaturedOnly {
		sort.Slice(out, func(i, j int) bool {
			if out[i].FeaturedOrder != out[j].FeaturedOrder {
				return out[i].FeaturedOrder < out[j].FeaturedOrder
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	} else {
		sort.Slice(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out, nil
}

func (m *mockProductRepository) ListFeatured(ctx context.Context) ([]*domain.Product, error) {
	return m.List(ctx, repository.ProductFilter{FeaturedOnly: true})
}

func (m *mockProductRepository) MaxFeaturedOrder(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	max := 0
	for _, p := range m.products {
		if p.Featured && p.FeaturedOrder > max {
			max = p.FeaturedOrder
		}
	}
	return max, nil
}

func (m *mockProductRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool, order int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Featured = featured
	p.FeaturedOrder = order
	return nil
}

func (m *mockProductRepository) SwapFeaturedOrder(ctx context.Context, a, b *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSwap {
		return errAssetStore
	}
	pa, ok := m.products[a.ID]
	if !ok {
		return repository.ErrProductNotFound
	}
	pb, ok := m.products[b.ID]
	if !ok {
		return repository.ErrProductNotFound
	}
	pa.FeaturedOrder, pb.FeaturedOrder = b.FeaturedOrder, a.FeaturedOrder
	return nil
}

type mockCategoryRepository struct {
	categories map[string]*domain.Category
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[string]*domain.Category)}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if _, ok := m.categories[category.Slug]; ok {
		return repository.ErrCategoryAlreadyExists
	}
	m.categories[category.Slug] = category
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (m *mockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	c, ok := m.categories[slug]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return c, nil
}

type mockAdminRepository struct {
	admins map[string]*domain.Admin
}

func newMockAdminRepository() *mockAdminRepository {
	return &mockAdminRepository{admins: make(map[string]*domain.Admin)}
}

func (m *mockAdminRepository) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	a, ok := m.admins[username]
	if !ok {
		return nil, repository.ErrAdminNotFound
	}
	return a, nil
}

func (m *mockAdminRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	a, ok := m.admins[username]
	if !ok {
		return repository.ErrAdminNotFound
	}
	a.PasswordHash = passwordHash
	return nil
}
