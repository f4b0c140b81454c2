// Package client is a typed HTTP client for the job board API, used by the
// session synchronizer and any other Go consumer of the backend.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
)

// APIError is a failure response from the backend. Message carries the
// server-provided message when the envelope was readable.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api request failed with status %d", e.Status)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type jobsResponse struct {
	envelope
	Jobs []domain.JobWithCompany `json:"jobs"`
}

type userResponse struct {
	envelope
	User *domain.User `json:"user"`
}

type applicationsResponse struct {
	envelope
	Applications []domain.ApplicationDetail `json:"applications"`
}

type companyResponse struct {
	envelope
	Company *domain.Company `json:"company"`
}

// get performs an authenticated GET and decodes the envelope response.
// Error responses still carry the envelope, so the body is decoded before
// the status code is checked; the server message wins over a generic one.
func (c *Client) get(ctx context.Context, path, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{Status: resp.StatusCode}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) FetchJobs(ctx context.Context) ([]domain.JobWithCompany, error) {
	var res jobsResponse
	if err := c.get(ctx, "/api/jobs", "", &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, &APIError{Message: res.Message}
	}
	return res.Jobs, nil
}

func (c *Client) FetchUserData(ctx context.Context, token string) (*domain.User, error) {
	var res userResponse
	if err := c.get(ctx, "/api/users/me", token, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, &APIError{Message: res.Message}
	}
	return res.User, nil
}

func (c *Client) FetchUserApplications(ctx context.Context, token string) ([]domain.ApplicationDetail, error) {
	var res applicationsResponse
	if err := c.get(ctx, "/api/users/applications", token, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, &APIError{Message: res.Message}
	}
	return res.Applications, nil
}

func (c *Client) FetchCompanyProfile(ctx context.Context, token string) (*domain.Company, error) {
	var res companyResponse
	if err := c.get(ctx, "/api/company/profile", token, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, &APIError{Message: res.Message}
	}
	return res.Company, nil
}
