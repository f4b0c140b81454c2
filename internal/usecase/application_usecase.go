package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
	}
}

// ApplyToJob submits an application for the authenticated user. Resubmitting
// for the same job never creates a second record: the pre-check catches the
// common case early, and the unique index behind Create closes the race when
// two submissions for the same pair arrive concurrently.
func (uc *applicationUsecase) ApplyToJob(ctx context.Context, userID string, jobID int64) error {
	// 1. Validate input before touching storage
	if jobID == 0 {
		return apperror.MissingInput("Job ID is required")
	}

	// 2. Duplicate pre-check for the friendly error path
	existing, err := uc.applicationRepo.FindByJobAndUser(ctx, jobID, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	if existing != nil {
		return apperror.Duplicate("Already Applied")
	}

	// 3. Validate the job exists
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job Not Found")
		}
		return apperror.Internal(err)
	}

	// 4. Create, denormalizing the owning company at write time
	app := &domain.JobApplication{
		JobID:     jobID,
		UserID:    userID,
		CompanyID: job.CompanyID,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		// Lost the race against a concurrent submission for the same pair;
		// the outcome for the caller is the same as failing the pre-check.
		if errors.Is(err, domain.ErrDuplicate) {
			return apperror.Duplicate("Already Applied")
		}
		return apperror.Internal(err)
	}

	return nil
}

// GetUserApplications returns the user's application history with company
// and job data populated.
func (uc *applicationUsecase) GetUserApplications(ctx context.Context, userID string) ([]domain.ApplicationDetail, error) {
	applications, err := uc.applicationRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return applications, nil
}
