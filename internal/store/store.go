// Package store owns the platform's collections and the vote ledger. Every
// implementation guarantees that a vote transition and its score delta are
// applied as one atomic unit, and that listing snapshots never observe a
// half-applied vote.
package store

import (
	"context"
	"errors"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/model"
)

var (
	// ErrTargetNotFound is returned when an operation references a host
	// id that does not exist.
	ErrTargetNotFound = errors.New("store: vote target not found")
	// ErrVoteNotFound is returned when a retraction references a vote id
	// that no longer exists.
	ErrVoteNotFound = errors.New("store: vote not found")
	// ErrInvalidVoteValue is returned for vote values outside {+1, -1}.
	ErrInvalidVoteValue = errors.New("store: vote value must be +1 or -1")
)

// Store is the storage contract shared by the in-memory and Postgres
// backends. Snapshot methods return copies in stable insertion order; the
// listing pipeline runs over those snapshots in process.
type Store interface {
	CreateEvent(ctx context.Context, e model.Event) (model.Event, error)
	CreateVenue(ctx context.Context, v model.Venue) (model.Venue, error)
	CreateHost(ctx context.Context, h model.Host) (model.Host, error)

	Events(ctx context.Context) ([]model.Event, error)
	Venues(ctx context.Context) ([]model.Venue, error)
	Hosts(ctx context.Context) ([]model.Host, error)
	HostByID(ctx context.Context, id string) (*model.Host, error)
	HostIDs(ctx context.Context) ([]string, error)

	// CastVote applies the vote state machine for (voterID, targetID):
	// create on first vote, switch in place on the opposite value, no-op
	// on a resubmitted value. The returned response carries the resulting
	// vote record, the transition taken, and the target's new counters.
	CastVote(ctx context.Context, voterID, targetID string, value int) (*model.VoteResponse, error)

	// RetractVote deletes an active vote and reverses its score delta.
	// It returns the target host id so callers can invalidate caches.
	RetractVote(ctx context.Context, voteID string) (targetID string, err error)

	// VoteFor returns the caller's active vote on a target, or nil.
	VoteFor(ctx context.Context, voterID, targetID string) (*model.Vote, error)

	// AuditHost recomputes one host's counters from the vote ledger and
	// repairs them if they drifted. Repair is the off-path consistency
	// operation; normal voting never recomputes.
	AuditHost(ctx context.Context, hostID string) (repaired bool, err error)

	Stats(ctx context.Context) (*model.StatsResponse, error)
	Close()
}
