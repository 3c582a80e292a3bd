package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/model"
)

type voteKey struct {
	voterID  string
	targetID string
}

// MemoryStore keeps all collections in process. Reads take snapshots under
// a read lock; vote transitions and their score deltas run under the write
// lock, which makes each transition atomic with respect to every reader
// and every other writer.
type MemoryStore struct {
	mu sync.RWMutex

	events []model.Event
	venues []model.Venue

	hostOrder []string
	hosts     map[string]*model.Host

	votesByPair map[voteKey]*model.Vote
	votesByID   map[string]*model.Vote

	now func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		hosts:       make(map[string]*model.Host),
		votesByPair: make(map[voteKey]*model.Vote),
		votesByID:   make(map[string]*model.Vote),
		now:         time.Now,
	}
}

func (s *MemoryStore) CreateEvent(_ context.Context, e model.Event) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hosts[e.OrganizerID]; !ok {
		return model.Event{}, ErrTargetNotFound
	}
	e.ID = uuid.NewString()
	e.CreatedAt = s.now()
	s.events = append(s.events, e)
	return e, nil
}

func (s *MemoryStore) CreateVenue(_ context.Context, v model.Venue) (model.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hosts[v.ProviderID]; !ok {
		return model.Venue{}, ErrTargetNotFound
	}
	v.ID = uuid.NewString()
	v.CreatedAt = s.now()
	s.venues = append(s.venues, v)
	return v, nil
}

func (s *MemoryStore) CreateHost(_ context.Context, h model.Host) (model.Host, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h.ID = uuid.NewString()
	h.Score = 0
	h.VoteCount = 0
	h.CreatedAt = s.now()
	stored := h
	s.hosts[h.ID] = &stored
	s.hostOrder = append(s.hostOrder, h.ID)
	return h, nil
}

// Events returns a snapshot of all events in insertion order.
func (s *MemoryStore) Events(_ context.Context) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *MemoryStore) Venues(_ context.Context) ([]model.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Venue, len(s.venues))
	copy(out, s.venues)
	return out, nil
}

func (s *MemoryStore) Hosts(_ context.Context) ([]model.Host, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Host, 0, len(s.hostOrder))
	for _, id := range s.hostOrder {
		out = append(out, *s.hosts[id])
	}
	return out, nil
}

func (s *MemoryStore) HostByID(_ context.Context, id string) (*model.Host, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.hosts[id]
	if !ok {
		return nil, ErrTargetNotFound
	}
	cp := *h
	return &cp, nil
}

func (s *MemoryStore) HostIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.hostOrder))
	copy(out, s.hostOrder)
	return out, nil
}

func (s *MemoryStore) CastVote(_ context.Context, voterID, targetID string, value int) (*model.VoteResponse, error) {
	if value != model.VoteUp && value != model.VoteDown {
		return nil, ErrInvalidVoteValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.hosts[targetID]
	if !ok {
		return nil, ErrTargetNotFound
	}

	key := voteKey{voterID: voterID, targetID: targetID}
	existing, ok := s.votesByPair[key]

	switch {
	case !ok:
		vote := &model.Vote{
			ID:        uuid.NewString(),
			VoterID:   voterID,
			TargetID:  targetID,
			Value:     value,
			CreatedAt: s.now(),
		}
		s.votesByPair[key] = vote
		s.votesByID[vote.ID] = vote
		target.Score += value
		target.VoteCount++
		return s.voteResponse(vote, model.TransitionCreated, target), nil

	case existing.Value == value:
		// Resubmitting the same value is idempotent.
		return s.voteResponse(existing, model.TransitionUnchanged, target), nil

	default:
		target.Score += value - existing.Value
		existing.Value = value
		ts := s.now()
		existing.UpdatedAt = &ts
		return s.voteResponse(existing, model.TransitionSwitched, target), nil
	}
}

func (s *MemoryStore) voteResponse(v *model.Vote, transition string, target *model.Host) *model.VoteResponse {
	return &model.VoteResponse{
		Vote:       *v,
		Transition: transition,
		NewScore:   target.Score,
		VoteCount:  target.VoteCount,
	}
}

func (s *MemoryStore) RetractVote(_ context.Context, voteID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vote, ok := s.votesByID[voteID]
	if !ok {
		return "", ErrVoteNotFound
	}

	target := s.hosts[vote.TargetID]
	target.Score -= vote.Value
	target.VoteCount--

	delete(s.votesByID, voteID)
	delete(s.votesByPair, voteKey{voterID: vote.VoterID, targetID: vote.TargetID})
	return vote.TargetID, nil
}

func (s *MemoryStore) VoteFor(_ context.Context, voterID, targetID string) (*model.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vote, ok := s.votesByPair[voteKey{voterID: voterID, targetID: targetID}]
	if !ok {
		return nil, nil
	}
	cp := *vote
	return &cp, nil
}

// AuditHost recomputes score and vote_count from the ledger and repairs
// the denormalized counters on drift.
func (s *MemoryStore) AuditHost(_ context.Context, hostID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.hosts[hostID]
	if !ok {
		return false, ErrTargetNotFound
	}

	score, count := 0, 0
	for _, v := range s.votesByID {
		if v.TargetID == hostID {
			score += v.Value
			count++
		}
	}

	if target.Score == score && target.VoteCount == count {
		return false, nil
	}
	target.Score = score
	target.VoteCount = count
	return true, nil
}

func (s *MemoryStore) Stats(_ context.Context) (*model.StatsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &model.StatsResponse{
		TotalEvents: len(s.events),
		TotalVenues: len(s.venues),
		TotalHosts:  len(s.hosts),
		TotalVotes:  len(s.votesByID),
	}
	for _, h := range s.hosts {
		switch h.Role {
		case model.RoleOrganizer:
			stats.Organizers++
		case model.RoleProvider:
			stats.Providers++
		}
	}
	return stats, nil
}

func (s *MemoryStore) Close() {}
