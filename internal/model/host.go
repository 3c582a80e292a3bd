package model

import "time"

// Host roles. A host is either an event organizer or a venue provider.
const (
	RoleOrganizer = "organizer"
	RoleProvider  = "provider"
)

// Host is a directory profile (organizer or provider) with denormalized
// reputation counters. Score and VoteCount are mutated only through the
// vote ledger; everywhere else they are read-only.
type Host struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio,omitempty"`
	Score     int       `json:"score"`
	VoteCount int       `json:"voteCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// HostCreateRequest is the API request body for registering a host.
type HostCreateRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Bio      string `json:"bio,omitempty"`
}

// HostResponse is the API response for host profile lookups.
type HostResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Bio       string `json:"bio,omitempty"`
	Score     int    `json:"score"`
	VoteCount int    `json:"voteCount"`
	CreatedAt string `json:"createdAt"`
}

// StatsResponse is the API response for global platform statistics.
type StatsResponse struct {
	TotalEvents int `json:"totalEvents"`
	TotalVenues int `json:"totalVenues"`
	TotalHosts  int `json:"totalHosts"`
	TotalVotes  int `json:"totalVotes"`
	Organizers  int `json:"organizers"`
	Providers   int `json:"providers"`
}

// DirectoryExport is the API response for a full host-directory dump.
type DirectoryExport struct {
	Hosts       []Host `json:"hosts"`
	GeneratedAt string `json:"generatedAt"`
}
