package domain

import (
	"context"
	"time"
)

// Company is an employer account. Read-only here; account management lives
// in a separate service.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*Company, error)
}

type CompanyUsecase interface {
	GetProfile(ctx context.Context, companyID int64) (*Company, error)
}
