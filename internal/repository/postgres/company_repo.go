package postgres

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type companyRepo struct {
	db *pgxpool.Pool
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	query := `
		SELECT id, name, email, image, created_at
		FROM companies
		WHERE id = $1`

	var company domain.Company
	err := r.db.QueryRow(ctx, query, id).Scan(
		&company.ID, &company.Name, &company.Email, &company.Image, &company.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}
