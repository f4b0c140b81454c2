package session

import "go-jobboard-backend/internal/domain"

// CompanySessionState tracks the employer-session sub-state machine.
type CompanySessionState int

const (
	// CompanyAnonymous - no employer token known.
	CompanyAnonymous CompanySessionState = iota
	// CompanyTokenPresent - a persisted token was found but the profile
	// fetch has not succeeded yet.
	CompanyTokenPresent
	// CompanyAuthenticated - the profile fetch succeeded for the token.
	CompanyAuthenticated
)

// SearchFilter is the job search criteria set by the UI.
type SearchFilter struct {
	Title    string
	Location string
}

// Snapshot is the synchronizer's in-memory view of server state. It is
// eventually consistent: fields update independently as their fetches
// complete, and a reader may observe one field updated before another.
// Values are copies; slices and pointers must be treated as read-only.
type Snapshot struct {
	Jobs         []domain.JobWithCompany
	SearchFilter SearchFilter
	IsSearched   bool

	ShowRecruiterLogin bool

	CompanyToken         string
	CompanyState         CompanySessionState
	Company              *domain.Company
	CompanyFetchFailures int

	User             *domain.User
	UserApplications []domain.ApplicationDetail
}
