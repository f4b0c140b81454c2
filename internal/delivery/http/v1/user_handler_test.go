package v1_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go-jobboard-backend/internal/delivery/http/middleware"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("production")
	os.Exit(m.Run())
}

type fakeUserUC struct {
	getUserData  func(ctx context.Context, userID string) (*domain.User, error)
	updateResume func(ctx context.Context, userID string, upload *domain.ResumeUpload) error
}

func (f *fakeUserUC) GetUserData(ctx context.Context, userID string) (*domain.User, error) {
	return f.getUserData(ctx, userID)
}

func (f *fakeUserUC) UpdateResume(ctx context.Context, userID string, upload *domain.ResumeUpload) error {
	return f.updateResume(ctx, userID, upload)
}

type fakeApplicationUC struct {
	apply   func(ctx context.Context, userID string, jobID int64) error
	history func(ctx context.Context, userID string) ([]domain.ApplicationDetail, error)
}

func (f *fakeApplicationUC) ApplyToJob(ctx context.Context, userID string, jobID int64) error {
	return f.apply(ctx, userID, jobID)
}

func (f *fakeApplicationUC) GetUserApplications(ctx context.Context, userID string) ([]domain.ApplicationDetail, error) {
	return f.history(ctx, userID)
}

// setupRouter wires the user routes behind a stub auth layer so tests can
// exercise the full handler → error middleware → envelope path.
func setupRouter(userUC domain.UserUsecase, applicationUC domain.ApplicationUsecase) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())

	grp := r.Group("/api")
	grp.Use(func(c *gin.Context) {
		c.Set(string(domain.KeyUserID), "user1")
		c.Next()
	})

	noLimit := func(c *gin.Context) { c.Next() }
	v1.NewUserHandler(grp, noLimit, userUC, applicationUC)
	return r
}

func TestApplyEndpoint(t *testing.T) {
	t.Run("first application succeeds", func(t *testing.T) {
		var gotJobID int64
		appUC := &fakeApplicationUC{
			apply: func(ctx context.Context, userID string, jobID int64) error {
				gotJobID = jobID
				return nil
			},
		}
		r := setupRouter(&fakeUserUC{}, appUC)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/users/apply", strings.NewReader(`{"jobId":42}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"message":"Applied Successfully"}`, w.Body.String())
		assert.Equal(t, int64(42), gotJobID)
	})

	t.Run("duplicate application returns the duplicate envelope", func(t *testing.T) {
		appUC := &fakeApplicationUC{
			apply: func(ctx context.Context, userID string, jobID int64) error {
				return apperror.Duplicate("Already Applied")
			},
		}
		r := setupRouter(&fakeUserUC{}, appUC)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/users/apply", strings.NewReader(`{"jobId":42}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"Already Applied"}`, w.Body.String())
	})

	t.Run("missing job id returns the missing-input envelope", func(t *testing.T) {
		appUC := &fakeApplicationUC{
			apply: func(ctx context.Context, userID string, jobID int64) error {
				if jobID == 0 {
					return apperror.MissingInput("Job ID is required")
				}
				return nil
			},
		}
		r := setupRouter(&fakeUserUC{}, appUC)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/users/apply", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"Job ID is required"}`, w.Body.String())
	})

	t.Run("unknown job returns 404", func(t *testing.T) {
		appUC := &fakeApplicationUC{
			apply: func(ctx context.Context, userID string, jobID int64) error {
				return apperror.NotFound("Job Not Found")
			},
		}
		r := setupRouter(&fakeUserUC{}, appUC)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/users/apply", strings.NewReader(`{"jobId":99}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"Job Not Found"}`, w.Body.String())
	})

	t.Run("server faults hide internal details", func(t *testing.T) {
		appUC := &fakeApplicationUC{
			apply: func(ctx context.Context, userID string, jobID int64) error {
				return apperror.Internal(errors.New("pgx: connection refused"))
			},
		}
		r := setupRouter(&fakeUserUC{}, appUC)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/users/apply", strings.NewReader(`{"jobId":42}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "pgx")
		assert.Contains(t, w.Body.String(), `"success":false`)
	})
}

func TestApplicationsEndpoint(t *testing.T) {
	appUC := &fakeApplicationUC{
		history: func(ctx context.Context, userID string) ([]domain.ApplicationDetail, error) {
			return []domain.ApplicationDetail{{
				JobApplication: domain.JobApplication{ID: 1, JobID: 42, UserID: userID, CompanyID: 7},
				Company:        domain.ApplicationCompany{Name: "Acme", Email: "hr@acme.test"},
				Job:            domain.ApplicationJob{Title: "Backend Engineer", Salary: 90000},
			}}, nil
		},
	}
	r := setupRouter(&fakeUserUC{}, appUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users/applications", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"applications"`)
	assert.Contains(t, w.Body.String(), `"Backend Engineer"`)
	assert.Contains(t, w.Body.String(), `"Acme"`)
}

func TestResumeEndpointRequiresFile(t *testing.T) {
	called := false
	userUC := &fakeUserUC{
		updateResume: func(ctx context.Context, userID string, upload *domain.ResumeUpload) error {
			called = true
			return nil
		},
	}
	r := setupRouter(userUC, &fakeApplicationUC{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/resume", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Resume file is missing"}`, w.Body.String())
	assert.False(t, called)
}

func TestMeEndpoint(t *testing.T) {
	t.Run("known user", func(t *testing.T) {
		resume := "https://cdn.example.com/resumes/abc.pdf"
		userUC := &fakeUserUC{
			getUserData: func(ctx context.Context, userID string) (*domain.User, error) {
				return &domain.User{ID: userID, Name: "Jane", ResumeURL: &resume}, nil
			},
		}
		r := setupRouter(userUC, &fakeApplicationUC{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user"`)
		assert.Contains(t, w.Body.String(), `"Jane"`)
	})

	t.Run("unknown user", func(t *testing.T) {
		userUC := &fakeUserUC{
			getUserData: func(ctx context.Context, userID string) (*domain.User, error) {
				return nil, apperror.NotFound("User Not Found")
			},
		}
		r := setupRouter(userUC, &fakeApplicationUC{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"User Not Found"}`, w.Body.String())
	})
}
