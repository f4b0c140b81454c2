package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-jobboard-backend/internal/client"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI implements session.API with per-call hooks and counters.
type fakeAPI struct {
	mu                sync.Mutex
	jobsCalls         int
	companyCalls      int
	userCalls         int
	applicationsCalls int

	jobs         func() ([]domain.JobWithCompany, error)
	company      func() (*domain.Company, error)
	user         func() (*domain.User, error)
	applications func() ([]domain.ApplicationDetail, error)
}

func (f *fakeAPI) FetchJobs(ctx context.Context) ([]domain.JobWithCompany, error) {
	f.mu.Lock()
	f.jobsCalls++
	f.mu.Unlock()
	if f.jobs == nil {
		return nil, nil
	}
	return f.jobs()
}

func (f *fakeAPI) FetchCompanyProfile(ctx context.Context, token string) (*domain.Company, error) {
	f.mu.Lock()
	f.companyCalls++
	f.mu.Unlock()
	if f.company == nil {
		return nil, nil
	}
	return f.company()
}

func (f *fakeAPI) FetchUserData(ctx context.Context, token string) (*domain.User, error) {
	f.mu.Lock()
	f.userCalls++
	f.mu.Unlock()
	if f.user == nil {
		return nil, nil
	}
	return f.user()
}

func (f *fakeAPI) FetchUserApplications(ctx context.Context, token string) ([]domain.ApplicationDetail, error) {
	f.mu.Lock()
	f.applicationsCalls++
	f.mu.Unlock()
	if f.applications == nil {
		return nil, nil
	}
	return f.applications()
}

func (f *fakeAPI) calls() (jobs, company, user, applications int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobsCalls, f.companyCalls, f.userCalls, f.applicationsCalls
}

// fakeNotifier records every surfaced failure message.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func (n *fakeNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

// fakeUserSession drives the identity-provider session externally.
type fakeUserSession struct {
	mu    sync.Mutex
	token string
	cb    func(active bool)
}

func (s *fakeUserSession) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *fakeUserSession) OnChange(fn func(active bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cb = fn
}

func (s *fakeUserSession) signIn(token string) {
	s.mu.Lock()
	s.token = token
	cb := s.cb
	s.mu.Unlock()
	if cb != nil {
		cb(true)
	}
}

func newSynchronizer(t *testing.T, api *fakeAPI, notifier *fakeNotifier, usersess *fakeUserSession) (*session.Synchronizer, session.TokenStore) {
	t.Helper()
	store := session.NewFileTokenStore(t.TempDir() + "/company_token")
	s := session.New(session.Deps{
		API:      api,
		Tokens:   store,
		Session:  usersess,
		Notifier: notifier,
	})
	return s, store
}

func TestStartWithoutCompanyToken(t *testing.T) {
	api := &fakeAPI{
		jobs: func() ([]domain.JobWithCompany, error) {
			return []domain.JobWithCompany{{Job: domain.Job{ID: 1, Title: "Backend Engineer"}}}, nil
		},
	}
	notifier := &fakeNotifier{}
	s, _ := newSynchronizer(t, api, notifier, &fakeUserSession{})

	s.Start(context.Background())

	snap := s.Snapshot()
	assert.Len(t, snap.Jobs, 1)
	assert.Equal(t, session.CompanyAnonymous, snap.CompanyState)
	assert.Nil(t, snap.Company)

	// No persisted token: the company profile fetch must never fire
	_, companyCalls, _, _ := api.calls()
	assert.Zero(t, companyCalls)
	assert.Zero(t, notifier.count())
}

func TestStartWithPersistedCompanyToken(t *testing.T) {
	api := &fakeAPI{
		company: func() (*domain.Company, error) {
			return &domain.Company{ID: 7, Name: "Acme"}, nil
		},
	}
	notifier := &fakeNotifier{}
	s, store := newSynchronizer(t, api, notifier, &fakeUserSession{})
	require.NoError(t, store.Save("company-token"))

	s.Start(context.Background())

	snap := s.Snapshot()
	assert.Equal(t, session.CompanyAuthenticated, snap.CompanyState)
	assert.Equal(t, "company-token", snap.CompanyToken)
	require.NotNil(t, snap.Company)
	assert.Equal(t, "Acme", snap.Company.Name)
	assert.Zero(t, snap.CompanyFetchFailures)
}

func TestCompanyFetchFailureKeepsToken(t *testing.T) {
	api := &fakeAPI{
		company: func() (*domain.Company, error) {
			return nil, &client.APIError{Status: 502, Message: "upstream unavailable"}
		},
	}
	notifier := &fakeNotifier{}
	s, store := newSynchronizer(t, api, notifier, &fakeUserSession{})
	require.NoError(t, store.Save("company-token"))

	s.Start(context.Background())

	// Transient failure must not log the employer out
	snap := s.Snapshot()
	assert.Equal(t, session.CompanyTokenPresent, snap.CompanyState)
	assert.Equal(t, "company-token", snap.CompanyToken)
	assert.Nil(t, snap.Company)
	assert.Equal(t, 1, snap.CompanyFetchFailures)

	// The token survives on disk as well
	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "company-token", persisted)

	require.Equal(t, 1, notifier.count())
	assert.Equal(t, "upstream unavailable", notifier.last())
}

func TestUserSignInFetchesProfileAndApplications(t *testing.T) {
	api := &fakeAPI{
		user: func() (*domain.User, error) {
			return &domain.User{ID: "user1", Name: "Jane"}, nil
		},
		applications: func() ([]domain.ApplicationDetail, error) {
			return []domain.ApplicationDetail{{JobApplication: domain.JobApplication{ID: 1}}}, nil
		},
	}
	notifier := &fakeNotifier{}
	usersess := &fakeUserSession{}
	s, _ := newSynchronizer(t, api, notifier, usersess)

	s.Start(context.Background())
	usersess.signIn("user-token")

	assert.Eventually(t, func() bool {
		snap := s.Snapshot()
		return snap.User != nil && len(snap.UserApplications) == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, _, userCalls, applicationsCalls := api.calls()
	assert.Equal(t, 1, userCalls)
	assert.Equal(t, 1, applicationsCalls)
	assert.Zero(t, notifier.count())
}

func TestPartialUserSyncFailureIsIsolated(t *testing.T) {
	api := &fakeAPI{
		user: func() (*domain.User, error) {
			return nil, &client.APIError{Status: 500, Message: "profile backend down"}
		},
		applications: func() ([]domain.ApplicationDetail, error) {
			return []domain.ApplicationDetail{{JobApplication: domain.JobApplication{ID: 1}}}, nil
		},
	}
	notifier := &fakeNotifier{}
	usersess := &fakeUserSession{}
	s, _ := newSynchronizer(t, api, notifier, usersess)

	s.Start(context.Background())
	usersess.signIn("user-token")

	// The applications fetch lands even though the profile fetch fails
	assert.Eventually(t, func() bool {
		return len(s.Snapshot().UserApplications) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return notifier.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	snap := s.Snapshot()
	assert.Nil(t, snap.User)
	assert.Len(t, snap.UserApplications, 1)
	assert.Equal(t, "profile backend down", notifier.last())
}

func TestSetCompanyTokenPersistsAndFetches(t *testing.T) {
	api := &fakeAPI{
		company: func() (*domain.Company, error) {
			return &domain.Company{ID: 7, Name: "Acme"}, nil
		},
	}
	notifier := &fakeNotifier{}
	s, store := newSynchronizer(t, api, notifier, &fakeUserSession{})

	s.SetCompanyToken(context.Background(), "fresh-token")

	snap := s.Snapshot()
	assert.Equal(t, session.CompanyAuthenticated, snap.CompanyState)
	require.NotNil(t, snap.Company)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", persisted)
}

func TestClearCompanyToken(t *testing.T) {
	api := &fakeAPI{
		company: func() (*domain.Company, error) {
			return &domain.Company{ID: 7, Name: "Acme"}, nil
		},
	}
	s, store := newSynchronizer(t, api, &fakeNotifier{}, &fakeUserSession{})

	s.SetCompanyToken(context.Background(), "fresh-token")
	s.ClearCompanyToken()

	snap := s.Snapshot()
	assert.Equal(t, session.CompanyAnonymous, snap.CompanyState)
	assert.Empty(t, snap.CompanyToken)
	assert.Nil(t, snap.Company)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestSearchFilterMarksSearchPerformed(t *testing.T) {
	s, _ := newSynchronizer(t, &fakeAPI{}, &fakeNotifier{}, &fakeUserSession{})

	assert.False(t, s.Snapshot().IsSearched)

	s.SetSearchFilter(session.SearchFilter{Title: "engineer", Location: "Berlin"})

	snap := s.Snapshot()
	assert.True(t, snap.IsSearched)
	assert.Equal(t, "engineer", snap.SearchFilter.Title)
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	s, _ := newSynchronizer(t, &fakeAPI{}, &fakeNotifier{}, &fakeUserSession{})

	var mu sync.Mutex
	var seen []session.Snapshot
	s.Subscribe(func(snap session.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, snap)
	})

	s.SetShowRecruiterLogin(true)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 1)
	assert.True(t, seen[0].ShowRecruiterLogin)
}
