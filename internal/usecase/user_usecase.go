package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/storage"
)

type userUsecase struct {
	userRepo domain.UserRepository
	gateway  storage.ResumeGateway
	validate *validator.Validate
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo domain.UserRepository, gateway storage.ResumeGateway, validate *validator.Validate) domain.UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		gateway:  gateway,
		validate: validate,
	}
}

func (uc *userUsecase) GetUserData(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User Not Found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// UpdateResume uploads the file to the storage gateway and persists the
// returned URL on the user profile. The URL is written only after the upload
// succeeds, so a failed upload never leaves a dangling reference.
func (uc *userUsecase) UpdateResume(ctx context.Context, userID string, upload *domain.ResumeUpload) error {
	if upload == nil || upload.Content == nil {
		return apperror.MissingInput("Resume file is missing")
	}
	if err := uc.validate.Struct(upload); err != nil {
		return apperror.MissingInput("Invalid resume file")
	}

	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}

	url, err := uc.gateway.Upload(ctx, upload.Filename, upload.ContentType, upload.Size, upload.Content)
	if err != nil {
		return apperror.Internal(err)
	}

	if err := uc.userRepo.UpdateResumeURL(ctx, userID, url); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
