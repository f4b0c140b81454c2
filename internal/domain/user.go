package domain

import (
	"context"
	"io"
	"time"
)

// User is a job seeker. Records are provisioned by the external account-sync
// process; this service only ever mutates resume_url.
type User struct {
	ID        string    `json:"id"` // Identity provider UUID
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image"`
	ResumeURL *string   `json:"resume,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResumeUpload carries an uploaded resume file through the usecase layer.
// Content is read exactly once; the caller owns closing the underlying file.
type ResumeUpload struct {
	Filename    string `validate:"required"`
	ContentType string
	Size        int64 `validate:"gte=0,lte=10485760"` // 10 MB cap
	Content     io.Reader
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateResumeURL(ctx context.Context, id string, resumeURL string) error
}

type UserUsecase interface {
	GetUserData(ctx context.Context, userID string) (*User, error)
	UpdateResume(ctx context.Context, userID string, upload *ResumeUpload) error
}
