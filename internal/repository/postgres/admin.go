package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/telemedix/telemed-api/internal/model"
	"github.com/telemedix/telemed-api/internal/repository"
)

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	query := `SELECT id, username, password_hash, role FROM admins WHERE username = $1`
	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by username: %w", err)
	}
	return &admin, nil
}

func (r *adminRepository) GetRole(ctx context.Context, id uuid.UUID) (model.AdminRole, error) {
	query := `SELECT role FROM admins WHERE id = $1`
	var role model.AdminRole
	err := r.db.GetContext(ctx, &role, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("failed to get admin role: %w", err)
	}
	return role, nil
}
