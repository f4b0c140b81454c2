package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The unique index on (job_id, user_id)
// makes the insert an atomic insert-or-reject; a violation surfaces as
// domain.ErrDuplicate so concurrent submissions for the same pair can never
// both commit.
func (r *applicationRepo) Create(ctx context.Context, app *domain.JobApplication) error {
	query := `
		INSERT INTO job_applications (job_id, user_id, company_id, applied_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now()
	}

	err := r.db.QueryRow(ctx, query,
		app.JobID,
		app.UserID,
		app.CompanyID,
		app.AppliedAt,
	).Scan(&app.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrDuplicate
	}
	return err
}

// FindByJobAndUser returns the existing application for the pair, or nil
// when none exists.
func (r *applicationRepo) FindByJobAndUser(ctx context.Context, jobID int64, userID string) (*domain.JobApplication, error) {
	query := `
		SELECT id, job_id, user_id, company_id, applied_at
		FROM job_applications
		WHERE job_id = $1 AND user_id = $2`

	var app domain.JobApplication
	err := r.db.QueryRow(ctx, query, jobID, userID).Scan(
		&app.ID, &app.JobID, &app.UserID, &app.CompanyID, &app.AppliedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByUserID retrieves all applications for a user, populated with the
// company and job fields the application history view renders.
func (r *applicationRepo) GetByUserID(ctx context.Context, userID string) ([]domain.ApplicationDetail, error) {
	query := `
		SELECT
			a.id, a.job_id, a.user_id, a.company_id, a.applied_at,
			c.name, c.email, c.image,
			j.title, j.description, j.location, j.category, j.level, j.salary
		FROM job_applications a
		JOIN companies c ON a.company_id = c.id
		JOIN jobs j ON a.job_id = j.id
		WHERE a.user_id = $1
		ORDER BY a.applied_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.ApplicationDetail
	for rows.Next() {
		var app domain.ApplicationDetail
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.UserID, &app.CompanyID, &app.AppliedAt,
			&app.Company.Name, &app.Company.Email, &app.Company.Image,
			&app.Job.Title, &app.Job.Description, &app.Job.Location,
			&app.Job.Category, &app.Job.Level, &app.Job.Salary,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}
