package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"puf-orgu/internal/domain"
	"puf-orgu/internal/repository"
	"puf-orgu/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCatalogService struct {
	listFn           func(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error)
	createFn         func(ctx context.Context, input service.ProductInput) (*domain.Product, error)
	updateFn         func(ctx context.Context, input service.ProductInput) (*domain.Product, error)
	deleteFn         func(ctx context.Context, id uuid.UUID) error
	listCategoriesFn func(ctx context.Context) ([]*domain.Category, error)
}

func (s *stubCatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	return s.listFn(ctx, filter)
}

func (s *stubCatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return nil, repository.ErrProductNotFound
}

func (s *stubCatalogService) CreateProduct(ctx context.Context, input service.ProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *stubCatalogService) UpdateProduct(ctx context.Context, input service.ProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, input)
}

func (s *stubCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func (s *stubCatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.listCategoriesFn(ctx)
}

type stubFeaturedService struct {
	toggleFn func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	moveFn   func(ctx context.Context, id uuid.UUID) error
}

func (s *stubFeaturedService) Toggle(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.toggleFn(ctx, id)
}

func (s *stubFeaturedService) MoveUp(ctx context.Context, id uuid.UUID) error {
	return s.moveFn(ctx, id)
}

func (s *stubFeaturedService) MoveDown(ctx context.Context, id uuid.UUID) error {
	return s.moveFn(ctx, id)
}

func noAuth(next http.Handler) http.Handler { return next }

func sampleProduct() *domain.Product {
	material := "Pamuk ip"
	return &domain.Product{
		ID:            uuid.New(),
		Name:          "Klasik Örgü Bere",
		Slug:          "klasik-orgu-bere",
		Description:   "El örgüsü bere",
		Price:         249.90,
		CategoryID:    uuid.New(),
		Material:      &material,
		Colors:        []string{"Bej", "Krem"},
		Images:        []string{"/uploads/1_a.png"},
		Featured:      true,
		FeaturedOrder: 1,
		InStock:       true,
		CreatedAt:     time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		CategorySlug:  "bereler",
		CategoryName:  "Bereler",
	}
}

func newProductRouter(catalog service.CatalogService, featured service.FeaturedService) chi.Router {
	router := chi.NewRouter()
	handler := NewProductHandler(catalog, featured, zap.NewNop())
	handler.RegisterRoutes(router, noAuth)
	return router
}

func TestListProducts_ViewModelShape(t *testing.T) {
	catalog := &stubCatalogService{
		listFn: func(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
			return []*domain.Product{sampleProduct()}, nil
		},
	}
	router := newProductRouter(catalog, &stubFeaturedService{})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Products []ProductView `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)

	view := resp.Products[0]
	assert.Equal(t, "bereler", view.Category)
	assert.Equal(t, "Bereler", view.CategoryName)
	assert.Equal(t, "2025-03-14", view.CreatedAt)
	assert.Equal(t, []string{"Bej", "Krem"}, view.Specifications.Colors)
	require.NotNil(t, view.Specifications.Material)
	assert.Equal(t, "Pamuk ip", *view.Specifications.Material)
}

func TestListProducts_PassesFilters(t *testing.T) {
	var gotFilter repository.ProductFilter
	catalog := &stubCatalogService{
		listFn: func(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	router := newProductRouter(catalog, &stubFeaturedService{})

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=bereler&featured=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotFilter.CategorySlug)
	assert.Equal(t, "bereler", *gotFilter.CategorySlug)
	assert.True(t, gotFilter.FeaturedOnly)
}

func TestCreateProduct_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"unknown category", repository.ErrCategoryNotFound, http.StatusBadRequest},
		{"duplicate slug", repository.ErrSlugTaken, http.StatusConflict},
		{"store failure", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &stubCatalogService{
				createFn: func(ctx context.Context, input service.ProductInput) (*domain.Product, error) {
					return nil, tt.serviceErr
				},
			}
			router := newProductRouter(catalog, &stubFeaturedService{})

			req := httptest.NewRequest(http.MethodPost, "/api/products",
				strings.NewReader(`{"name":"Bere","slug":"bere","category":"bereler"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCreateProduct_MissingFieldsRejected(t *testing.T) {
	catalog := &stubCatalogService{
		createFn: func(ctx context.Context, input service.ProductInput) (*domain.Product, error) {
			t.Error("service must not be called on invalid payload")
			return nil, nil
		},
	}
	router := newProductRouter(catalog, &stubFeaturedService{})

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"name":"Bere"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProduct_ByQueryID(t *testing.T) {
	id := uuid.New()
	var gotID uuid.UUID
	catalog := &stubCatalogService{
		deleteFn: func(ctx context.Context, deleteID uuid.UUID) error {
			gotID = deleteID
			return nil
		},
	}
	router := newProductRouter(catalog, &stubFeaturedService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/products?id="+id.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, gotID)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestDeleteProduct_InvalidID(t *testing.T) {
	router := newProductRouter(&stubCatalogService{}, &stubFeaturedService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/products?id=not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReorderEndpoints(t *testing.T) {
	id := uuid.New()
	calls := 0
	featured := &stubFeaturedService{
		moveFn: func(ctx context.Context, moveID uuid.UUID) error {
			calls++
			assert.Equal(t, id, moveID)
			return nil
		},
	}
	router := newProductRouter(&stubCatalogService{}, featured)

	for _, path := range []string{"/move-up", "/move-down"} {
		req := httptest.NewRequest(http.MethodPost, "/api/products/"+id.String()+path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 2, calls)
}

func TestToggleFeatured_ReturnsUpdatedProduct(t *testing.T) {
	product := sampleProduct()
	featured := &stubFeaturedService{
		toggleFn: func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
			return product, nil
		},
	}
	router := newProductRouter(&stubCatalogService{}, featured)

	req := httptest.NewRequest(http.MethodPost, "/api/products/"+product.ID.String()+"/featured", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool        `json:"success"`
		Product ProductView `json:"product"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Product.FeaturedOrder)
}
