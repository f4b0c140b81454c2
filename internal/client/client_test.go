package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-jobboard-backend/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/jobs", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"jobs":[{"id":1,"title":"Backend Engineer","company_name":"Acme"}]}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, 5*time.Second)
	jobs, err := c.FetchJobs(context.Background())

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Backend Engineer", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].CompanyName)
}

func TestFetchUserDataSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/me", r.URL.Path)
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"user":{"id":"user1","name":"Jane"}}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, 5*time.Second)
	user, err := c.FetchUserData(context.Background(), "tok123")

	require.NoError(t, err)
	assert.Equal(t, "Jane", user.Name)
}

func TestErrorEnvelopeMessageIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"User Not Found"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, 5*time.Second)
	_, err := c.FetchUserData(context.Background(), "tok123")

	require.Error(t, err)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "User Not Found", apiErr.Message)
}

func TestNonJSONErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("Bad Gateway"))
	}))
	defer srv.Close()

	c := client.New(srv.URL, 5*time.Second)
	_, err := c.FetchJobs(context.Background())

	require.Error(t, err)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestFetchCompanyProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/company/profile", r.URL.Path)
		assert.Equal(t, "Bearer ctok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"company":{"id":7,"name":"Acme","email":"hr@acme.test"}}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, 5*time.Second)
	company, err := c.FetchCompanyProfile(context.Background(), "ctok")

	require.NoError(t, err)
	assert.Equal(t, int64(7), company.ID)
	assert.Equal(t, "Acme", company.Name)
}
