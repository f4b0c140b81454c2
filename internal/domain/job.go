package domain

import (
	"context"
	"time"
)

type Job struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"company_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Level       string    `json:"level"`
	Salary      float64   `json:"salary"`
	Visible     bool      `json:"visible"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobWithCompany extends Job with the posting company's public fields,
// joined in for listing responses.
type JobWithCompany struct {
	Job
	CompanyName  string `json:"company_name"`
	CompanyEmail string `json:"company_email"`
	CompanyImage string `json:"company_image"`
}

type JobRepository interface {
	GetByID(ctx context.Context, id int64) (*Job, error)
	FetchVisible(ctx context.Context) ([]JobWithCompany, error)
}

type JobUsecase interface {
	ListJobs(ctx context.Context) ([]JobWithCompany, error)
}
