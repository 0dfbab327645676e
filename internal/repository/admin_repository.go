package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"puf-orgu/internal/domain"
)

var ErrAdminNotFound = errors.New("admin not found")

// AdminRepository defines the interface for back-office account data access
type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

type adminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new instance of AdminRepository
func NewAdminRepository(db *sql.DB) AdminRepository {
	return &adminRepository{db: db}
}

// FindByUsername retrieves an admin account using parameterized queries
func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := `
		SELECT username, password_hash, created_at, updated_at
		FROM admins
		WHERE username = $1
	`

	admin := &domain.Admin{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	return admin, nil
}

// UpdatePassword replaces the stored password hash
func (r *adminRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	query := `
		UPDATE admins
		SET password_hash = $2, updated_at = now()
		WHERE username = $1
	`

	result, err := r.db.ExecContext(ctx, query, username, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update admin password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}
