package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"puf-orgu/internal/domain"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSlugTaken       = errors.New("product with this slug already exists")
)

// ProductFilter narrows the product listing. A nil CategorySlug means all
// categories; FeaturedOnly selects the homepage subset ordered by
// featured_order.
type ProductFilter struct {
	CategorySlug *string
	FeaturedOnly bool
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	ListFeatured(ctx context.Context) ([]*domain.Product, error)
	MaxFeaturedOrder(ctx context.Context) (int, error)
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool, order int) error
	SwapFeaturedOrder(ctx context.Context, a, b *domain.Product) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `p.id, p.name, p.slug, p.description, p.long_description, p.price,
	p.category_id, p.material, p.dimensions, p.colors, p.images,
	p.featured, p.featured_order, p.in_stock, p.created_at, p.updated_at,
	c.slug, c.name`

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	colors, images, err := encodeLists(product)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (id, name, slug, description, long_description, price,
			category_id, material, dimensions, colors, images,
			featured, featured_order, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.LongDescription,
		product.Price,
		product.CategoryID,
		product.Material,
		product.Dimensions,
		colors,
		images,
		product.Featured,
		product.FeaturedOrder,
		product.InStock,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "products_slug_key") {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update updates an existing product in the database using parameterized queries
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	colors, images, err := encodeLists(product)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET name = $2, slug = $3, description = $4, long_description = $5, price = $6,
		    category_id = $7, material = $8, dimensions = $9, colors = $10, images = $11,
		    featured = $12, featured_order = $13, in_stock = $14, updated_at = $15
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.LongDescription,
		product.Price,
		product.CategoryID,
		product.Material,
		product.Dimensions,
		colors,
		images,
		product.Featured,
		product.FeaturedOrder,
		product.InStock,
		product.UpdatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "products_slug_key") {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product from the database using parameterized queries
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID joined with its category
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, productColumns)

	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

// FindBySlug retrieves a product by its slug for detail pages
func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.slug = $1
	`, productColumns)

	return scanProduct(r.db.QueryRowContext(ctx, query, slug))
}

// List retrieves products joined with category name/slug. The catalog
// listing sorts newest first; the featured subset sorts by featured_order
// with created_at as the tie-break.
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	builder := squirrel.
		Select(strings.Split(productColumns, ",")...).
		From("products p").
		Join("categories c ON c.id = p.category_id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.CategorySlug != nil {
		builder = builder.Where(squirrel.Eq{"c.slug": *filter.CategorySlug})
	}

	if filter.FeaturedOnly {
		builder = builder.
			Where(squirrel.Eq{"p.featured": true}).
			OrderBy("p.featured_order ASC", "p.created_at ASC")
	} else {
		builder = builder.OrderBy("p.created_at DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// ListFeatured returns the featured subset in display order
func (r *productRepository) ListFeatured(ctx context.Context) ([]*domain.Product, error) {
	return r.List(ctx, ProductFilter{FeaturedOnly: true})
}

// MaxFeaturedOrder returns the highest featured_order among featured
// products, or 0 when none are featured.
func (r *productRepository) MaxFeaturedOrder(ctx context.Context) (int, error) {
	query := `SELECT COALESCE(MAX(featured_order), 0) FROM products WHERE featured`

	var max int
	if err := r.db.QueryRowContext(ctx, query).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to get max featured order: %w", err)
	}

	return max, nil
}

// SetFeatured updates only the featured flag and order of a product
func (r *productRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool, order int) error {
	query := `
		UPDATE products
		SET featured = $2, featured_order = $3, updated_at = now()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, featured, order)
	if err != nil {
		return fmt.Errorf("failed to set featured: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// SwapFeaturedOrder exchanges the featured_order values of two products in
// a single transaction, so a reorder either applies to both records or to
// neither.
func (r *productRepository) SwapFeaturedOrder(ctx context.Context, a, b *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin swap transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE products SET featured_order = $2, updated_at = now() WHERE id = $1`

	if _, err := tx.ExecContext(ctx, query, a.ID, b.FeaturedOrder); err != nil {
		return fmt.Errorf("failed to update featured order: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, b.ID, a.FeaturedOrder); err != nil {
		return fmt.Errorf("failed to update featured order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit swap transaction: %w", err)
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var colors, images []byte

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.LongDescription,
		&product.Price,
		&product.CategoryID,
		&product.Material,
		&product.Dimensions,
		&colors,
		&images,
		&product.Featured,
		&product.FeaturedOrder,
		&product.InStock,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.CategorySlug,
		&product.CategoryName,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	if err := json.Unmarshal(colors, &product.Colors); err != nil {
		return nil, fmt.Errorf("failed to decode colors: %w", err)
	}
	if err := json.Unmarshal(images, &product.Images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}

	return product, nil
}

// encodeLists marshals the ordered colors and images lists for the jsonb
// columns; nil slices are stored as empty arrays.
func encodeLists(product *domain.Product) (colors, images []byte, err error) {
	if product.Colors == nil {
		product.Colors = []string{}
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	colors, err = json.Marshal(product.Colors)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode colors: %w", err)
	}

	images, err = json.Marshal(product.Images)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode images: %w", err)
	}

	return colors, images, nil
}
