// Package session keeps an in-memory snapshot of server state consistent
// across asynchronous session transitions: job listings at startup, the
// employer session gated on a persisted token, and the job-seeker session
// driven by the identity provider. Each fetch updates only its own snapshot
// field and surfaces its own failures, so one fetch going wrong never
// corrupts unrelated state.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go-jobboard-backend/internal/client"
	"go-jobboard-backend/internal/domain"
)

const genericFetchError = "Something went wrong. Please try again."

// API is the subset of the backend client the synchronizer consumes.
type API interface {
	FetchJobs(ctx context.Context) ([]domain.JobWithCompany, error)
	FetchUserData(ctx context.Context, token string) (*domain.User, error)
	FetchUserApplications(ctx context.Context, token string) ([]domain.ApplicationDetail, error)
	FetchCompanyProfile(ctx context.Context, token string) (*domain.Company, error)
}

// UserSession is the identity provider's session handle: a fresh token per
// request plus an out-of-band notification when the session starts or ends.
type UserSession interface {
	// Token returns a fresh bearer token, or "" when no session is active.
	Token(ctx context.Context) (string, error)
	// OnChange registers a callback invoked on session transitions; active
	// is true when a user session is present.
	OnChange(fn func(active bool))
}

// Notifier surfaces fetch failures to the user, one notification per failed
// fetch.
type Notifier interface {
	Notify(message string)
}

// Deps are the synchronizer's injected collaborators.
type Deps struct {
	API      API
	Tokens   TokenStore
	Session  UserSession
	Notifier Notifier
	Logger   *slog.Logger
}

// Synchronizer owns the ClientSessionSnapshot and every fetch that updates
// it. All exported methods are safe for concurrent use.
type Synchronizer struct {
	deps Deps

	mu   sync.RWMutex
	snap Snapshot
	subs []func(Snapshot)
}

func New(deps Deps) *Synchronizer {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Synchronizer{deps: deps}
}

// Start performs the startup synchronization: the public job listing fetch
// and, when a persisted employer token exists, the employer profile fetch.
// The two run concurrently and Start returns once both have resolved. It
// also subscribes to user-session transitions; an active session triggers
// the profile and application-history fetches in the background.
func (s *Synchronizer) Start(ctx context.Context) {
	token, err := s.deps.Tokens.Load()
	if err != nil {
		s.deps.Logger.Warn("failed to load persisted employer token", "error", err)
	}
	if token != "" {
		s.update(func(snap *Snapshot) {
			snap.CompanyToken = token
			snap.CompanyState = CompanyTokenPresent
		})
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.RefreshJobs(ctx)
	}()
	if token != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.refreshCompany(ctx)
		}()
	}
	wg.Wait()

	s.deps.Session.OnChange(func(active bool) {
		if active {
			go s.syncUserState(ctx)
			return
		}
		s.update(func(snap *Snapshot) {
			snap.User = nil
			snap.UserApplications = nil
		})
	})
}

// Snapshot returns a copy of the current state.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Subscribe registers a callback invoked with the new snapshot after every
// state change. Callbacks run on the mutating goroutine and must not block.
func (s *Synchronizer) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// update applies a mutation atomically and notifies subscribers.
func (s *Synchronizer) update(mutate func(*Snapshot)) {
	s.mu.Lock()
	mutate(&s.snap)
	snap := s.snap
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// RefreshJobs reloads the public job listing. Exposed so the UI can refresh
// after mutating actions elsewhere.
func (s *Synchronizer) RefreshJobs(ctx context.Context) {
	jobs, err := s.deps.API.FetchJobs(ctx)
	if err != nil {
		s.reportFailure("fetch jobs", err)
		return
	}
	s.update(func(snap *Snapshot) {
		snap.Jobs = jobs
	})
}

// syncUserState runs the two user-session fetches concurrently. Each fetch
// updates only its own field and reports only its own failure, so they may
// complete in any order and partial success is fine.
func (s *Synchronizer) syncUserState(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.RefreshUserData(ctx)
	}()
	go func() {
		defer wg.Done()
		s.RefreshUserApplications(ctx)
	}()
	wg.Wait()
}

// RefreshUserData reloads the authenticated user's profile.
func (s *Synchronizer) RefreshUserData(ctx context.Context) {
	token, err := s.deps.Session.Token(ctx)
	if err != nil || token == "" {
		s.reportFailure("fetch user token", err)
		return
	}

	user, err := s.deps.API.FetchUserData(ctx, token)
	if err != nil {
		s.reportFailure("fetch user data", err)
		return
	}
	s.update(func(snap *Snapshot) {
		snap.User = user
	})
}

// RefreshUserApplications reloads the authenticated user's application
// history.
func (s *Synchronizer) RefreshUserApplications(ctx context.Context) {
	token, err := s.deps.Session.Token(ctx)
	if err != nil || token == "" {
		s.reportFailure("fetch user token", err)
		return
	}

	applications, err := s.deps.API.FetchUserApplications(ctx, token)
	if err != nil {
		s.reportFailure("fetch user applications", err)
		return
	}
	s.update(func(snap *Snapshot) {
		snap.UserApplications = applications
	})
}

// refreshCompany fetches the employer profile for the current token. A
// failure is reported but the token is kept: a transient network failure
// must not log the employer out. Consecutive failures are counted on the
// snapshot so the UI can decide whether to prompt re-authentication.
func (s *Synchronizer) refreshCompany(ctx context.Context) {
	s.mu.RLock()
	token := s.snap.CompanyToken
	s.mu.RUnlock()
	if token == "" {
		return
	}

	company, err := s.deps.API.FetchCompanyProfile(ctx, token)
	if err != nil {
		s.update(func(snap *Snapshot) {
			snap.CompanyFetchFailures++
		})
		s.reportFailure("fetch company profile", err)
		return
	}
	s.update(func(snap *Snapshot) {
		snap.Company = company
		snap.CompanyState = CompanyAuthenticated
		snap.CompanyFetchFailures = 0
	})
}

// SetCompanyToken stores a freshly issued employer token, persists it, and
// kicks off the profile fetch.
func (s *Synchronizer) SetCompanyToken(ctx context.Context, token string) {
	if err := s.deps.Tokens.Save(token); err != nil {
		s.deps.Logger.Warn("failed to persist employer token", "error", err)
	}
	s.update(func(snap *Snapshot) {
		snap.CompanyToken = token
		snap.CompanyState = CompanyTokenPresent
		snap.Company = nil
		snap.CompanyFetchFailures = 0
	})
	s.refreshCompany(ctx)
}

// ClearCompanyToken signs the employer out locally.
func (s *Synchronizer) ClearCompanyToken() {
	if err := s.deps.Tokens.Clear(); err != nil {
		s.deps.Logger.Warn("failed to clear employer token", "error", err)
	}
	s.update(func(snap *Snapshot) {
		snap.CompanyToken = ""
		snap.CompanyState = CompanyAnonymous
		snap.Company = nil
		snap.CompanyFetchFailures = 0
	})
}

// SetSearchFilter records the search criteria and marks that a search has
// been performed.
func (s *Synchronizer) SetSearchFilter(filter SearchFilter) {
	s.update(func(snap *Snapshot) {
		snap.SearchFilter = filter
		snap.IsSearched = true
	})
}

// SetShowRecruiterLogin toggles the recruiter login panel flag.
func (s *Synchronizer) SetShowRecruiterLogin(show bool) {
	s.update(func(snap *Snapshot) {
		snap.ShowRecruiterLogin = show
	})
}

// reportFailure logs the failure and raises exactly one user-visible
// notification, preferring the server-provided message when one exists.
func (s *Synchronizer) reportFailure(op string, err error) {
	s.deps.Logger.Warn("synchronization fetch failed", "op", op, "error", err)

	message := genericFetchError
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = apiErr.Message
	}
	if s.deps.Notifier != nil {
		s.deps.Notifier.Notify(message)
	}
}
