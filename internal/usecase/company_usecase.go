package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type companyUsecase struct {
	companyRepo domain.CompanyRepository
}

// NewCompanyUsecase creates a new company usecase
func NewCompanyUsecase(companyRepo domain.CompanyRepository) domain.CompanyUsecase {
	return &companyUsecase{companyRepo: companyRepo}
}

func (uc *companyUsecase) GetProfile(ctx context.Context, companyID int64) (*domain.Company, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Company Not Found")
		}
		return nil, apperror.Internal(err)
	}
	return company, nil
}
