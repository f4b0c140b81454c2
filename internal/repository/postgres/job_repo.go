package postgres

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `
		SELECT id, company_id, title, description, location, category, level, salary, visible, created_at
		FROM jobs
		WHERE id = $1`

	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.CompanyID, &job.Title, &job.Description, &job.Location,
		&job.Category, &job.Level, &job.Salary, &job.Visible, &job.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// FetchVisible retrieves all publicly listed jobs with company data joined in
func (r *jobRepo) FetchVisible(ctx context.Context) ([]domain.JobWithCompany, error) {
	query := `
		SELECT
			j.id, j.company_id, j.title, j.description, j.location,
			j.category, j.level, j.salary, j.visible, j.created_at,
			c.name, c.email, c.image
		FROM jobs j
		JOIN companies c ON j.company_id = c.id
		WHERE j.visible = TRUE
		ORDER BY j.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.JobWithCompany
	for rows.Next() {
		var job domain.JobWithCompany
		if err := rows.Scan(
			&job.ID, &job.CompanyID, &job.Title, &job.Description, &job.Location,
			&job.Category, &job.Level, &job.Salary, &job.Visible, &job.CreatedAt,
			&job.CompanyName, &job.CompanyEmail, &job.CompanyImage,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
