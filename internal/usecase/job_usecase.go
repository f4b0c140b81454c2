package usecase

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo domain.JobRepository
}

// NewJobUsecase creates a new job usecase
func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

func (uc *jobUsecase) ListJobs(ctx context.Context) ([]domain.JobWithCompany, error) {
	jobs, err := uc.jobRepo.FetchVisible(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}
