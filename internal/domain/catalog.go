package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a product category
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Product represents a product in the catalog. Colors and Images are
// ordered lists; their sequence is part of the data.
type Product struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Slug            string    `json:"slug" db:"slug"`
	Description     string    `json:"description" db:"description"`
	LongDescription *string   `json:"long_description" db:"long_description"`
	Price           float64   `json:"price" db:"price"`
	CategoryID      uuid.UUID `json:"category_id" db:"category_id"`
	Material        *string   `json:"material" db:"material"`
	Dimensions      *string   `json:"dimensions" db:"dimensions"`
	Colors          []string  `json:"colors" db:"colors"`
	Images          []string  `json:"images" db:"images"`
	Featured        bool      `json:"featured" db:"featured"`
	FeaturedOrder   int       `json:"featured_order" db:"featured_order"`
	InStock         bool      `json:"in_stock" db:"in_stock"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	// Denormalized from the category join for listing.
	CategorySlug string `json:"category_slug" db:"category_slug"`
	CategoryName string `json:"category_name" db:"category_name"`
}

// Admin represents the back-office account. A single row with username
// "admin" is expected; it is created by the seed migration and only ever
// mutated by a password change.
type Admin struct {
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
