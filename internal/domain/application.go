package domain

import (
	"context"
	"time"
)

// JobApplication is one seeker's application to one job posting. CompanyID is
// denormalized from the job at creation time so application listings never
// need a jobs→companies join chain. Records are created once and never
// mutated or deleted.
//
// At most one application may exist per (job_id, user_id) pair. The unique
// index in the database is the authoritative guard; the usecase pre-check
// only exists for a friendlier error path.
type JobApplication struct {
	ID        int64     `json:"id"`
	JobID     int64     `json:"job_id"`
	UserID    string    `json:"user_id"`
	CompanyID int64     `json:"company_id"`
	AppliedAt time.Time `json:"date"`
}

// ApplicationCompany is the subset of company fields exposed on an
// application listing.
type ApplicationCompany struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// ApplicationJob is the subset of job fields exposed on an application
// listing.
type ApplicationJob struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Category    string  `json:"category"`
	Level       string  `json:"level"`
	Salary      float64 `json:"salary"`
}

// ApplicationDetail is an application populated with its company and job.
type ApplicationDetail struct {
	JobApplication
	Company ApplicationCompany `json:"company"`
	Job     ApplicationJob     `json:"job"`
}

type ApplicationRepository interface {
	// Create inserts the application. Returns ErrDuplicate when an
	// application for the same (job_id, user_id) already exists; the insert
	// and the uniqueness check are a single atomic operation at the
	// database.
	Create(ctx context.Context, app *JobApplication) error
	// FindByJobAndUser returns nil, nil when no application exists.
	FindByJobAndUser(ctx context.Context, jobID int64, userID string) (*JobApplication, error)
	GetByUserID(ctx context.Context, userID string) ([]ApplicationDetail, error)
}

type ApplicationUsecase interface {
	ApplyToJob(ctx context.Context, userID string, jobID int64) error
	GetUserApplications(ctx context.Context, userID string) ([]ApplicationDetail, error)
}
