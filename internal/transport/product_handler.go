package transport

import (
	"context"
	"net/http"

	"puf-orgu/internal/domain"
	"puf-orgu/internal/middleware"
	"puf-orgu/internal/repository"
	"puf-orgu/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SpecificationsPayload is the nested specification block of the product
// JSON contract.
type SpecificationsPayload struct {
	Material   *string  `json:"material"`
	Dimensions *string  `json:"dimensions"`
	Colors     []string `json:"colors"`
}

// ProductRequest is the product write payload. Category is a slug; absent
// optional fields take their defaults.
type ProductRequest struct {
	ID              string                `json:"id"`
	Name            string                `json:"name" validate:"required"`
	Slug            string                `json:"slug" validate:"required"`
	Description     string                `json:"description"`
	LongDescription *string               `json:"longDescription"`
	Price           float64               `json:"price"`
	Category        string                `json:"category" validate:"required"`
	Specifications  SpecificationsPayload `json:"specifications"`
	Images          []string              `json:"images"`
	Featured        bool                  `json:"featured"`
	FeaturedOrder   int                   `json:"featuredOrder"`
	InStock         *bool                 `json:"inStock"`
}

// ProductView is the product read model consumed by the storefront and the
// admin screens.
type ProductView struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Slug            string                `json:"slug"`
	Description     string                `json:"description"`
	LongDescription *string               `json:"longDescription"`
	Price           float64               `json:"price"`
	Category        string                `json:"category"`
	CategoryName    string                `json:"categoryName"`
	Images          []string              `json:"images"`
	Specifications  SpecificationsPayload `json:"specifications"`
	Featured        bool                  `json:"featured"`
	FeaturedOrder   int                   `json:"featuredOrder"`
	InStock         bool                  `json:"inStock"`
	CreatedAt       string                `json:"createdAt"`
}

// ProductHandler handles HTTP requests for catalog products
type ProductHandler struct {
	catalog  service.CatalogService
	featured service.FeaturedService
	logger   *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog service.CatalogService, featured service.FeaturedService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog:  catalog,
		featured: featured,
		logger:   logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		// Public routes
		r.Get("/", h.List)
		r.Get("/{slug}", h.GetBySlug)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
			r.Post("/{id}/featured", h.ToggleFeatured)
			r.Post("/{id}/move-up", h.MoveUp)
			r.Post("/{id}/move-down", h.MoveDown)
		})
	})
}

// List handles the catalog listing, optionally filtered by category slug
// or narrowed to the featured subset in display order.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProductFilter{}

	if category := r.URL.Query().Get("category"); category != "" {
		filter.CategorySlug = &category
	}
	if r.URL.Query().Get("featured") == "true" {
		filter.FeaturedOnly = true
	}

	products, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"products": views})
}

// GetBySlug handles product detail lookups
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.catalog.GetProductBySlug(r.Context(), slug)
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"product": toProductView(product)})
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), toProductInput(req, uuid.Nil))
	if err != nil {
		h.respondProductWriteError(w, err)
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": toProductView(product),
	})
}

// Update handles product updates by body id
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), toProductInput(req, id))
	if err != nil {
		h.respondProductWriteError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": toProductView(product),
	})
}

// Delete handles product deletion by query id, reclaiming image assets
// before the record is removed.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// ToggleFeatured flips the featured flag of a product
func (h *ProductHandler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.featured.Toggle(r.Context(), id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to toggle featured", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": toProductView(product),
	})
}

// MoveUp moves a featured product one position earlier
func (h *ProductHandler) MoveUp(w http.ResponseWriter, r *http.Request) {
	h.reorder(w, r, h.featured.MoveUp)
}

// MoveDown moves a featured product one position later
func (h *ProductHandler) MoveDown(w http.ResponseWriter, r *http.Request) {
	h.reorder(w, r, h.featured.MoveDown)
}

func (h *ProductHandler) reorder(w http.ResponseWriter, r *http.Request, move func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := move(r.Context(), id); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to reorder featured products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to reorder products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *ProductHandler) respondProductWriteError(w http.ResponseWriter, err error) {
	switch err {
	case repository.ErrCategoryNotFound:
		middleware.RespondWithError(w, http.StatusBadRequest, "category not found")
	case repository.ErrSlugTaken:
		middleware.RespondWithError(w, http.StatusConflict, "product with this slug already exists")
	case repository.ErrProductNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	default:
		h.logger.Error("Product write failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save product")
	}
}

func toProductInput(req ProductRequest, id uuid.UUID) service.ProductInput {
	return service.ProductInput{
		ID:              id,
		Name:            req.Name,
		Slug:            req.Slug,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Price:           req.Price,
		Category:        req.Category,
		Material:        req.Specifications.Material,
		Dimensions:      req.Specifications.Dimensions,
		Colors:          req.Specifications.Colors,
		Images:          req.Images,
		Featured:        req.Featured,
		FeaturedOrder:   req.FeaturedOrder,
		InStock:         req.InStock,
	}
}

func toProductView(p *domain.Product) ProductView {
	return ProductView{
		ID:              p.ID.String(),
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Price:           p.Price,
		Category:        p.CategorySlug,
		CategoryName:    p.CategoryName,
		Images:          p.Images,
		Specifications: SpecificationsPayload{
			Material:   p.Material,
			Dimensions: p.Dimensions,
			Colors:     p.Colors,
		},
		Featured:      p.Featured,
		FeaturedOrder: p.FeaturedOrder,
		InStock:       p.InStock,
		CreatedAt:     p.CreatedAt.Format("2006-01-02"),
	}
}
