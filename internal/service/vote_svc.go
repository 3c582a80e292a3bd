package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/model"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/store"
	"github.com/mulham-salem/Event-Management-System-sub000/pkg/hash"
)

// VoteService drives the vote lifecycle. The store applies the ledger
// mutation and the score delta atomically; this layer adds cache
// invalidation so stale profiles never outlive a vote. Voter IDs are
// hashed before they touch the ledger, so stored keys cannot be traced
// back to a client identifier.
type VoteService struct {
	store store.Store
	cache *CacheService
}

func NewVoteService(st store.Store, cache *CacheService) *VoteService {
	return &VoteService{store: st, cache: cache}
}

// Cast creates, switches, or no-ops the caller's vote on a target.
func (s *VoteService) Cast(ctx context.Context, req model.VoteRequest) (*model.VoteResponse, error) {
	resp, err := s.store.CastVote(ctx, hash.HashVoterID(req.VoterID), req.TargetID, req.Value)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && resp.Transition != model.TransitionUnchanged {
		if err := s.cache.InvalidateHost(ctx, req.TargetID); err != nil {
			log.Warn().Err(err).Str("hostId", req.TargetID).Msg("cache: invalidate host failed")
		}
	}

	return resp, nil
}

// Retract deletes an active vote and reverses its delta.
func (s *VoteService) Retract(ctx context.Context, voteID string) error {
	targetID, err := s.store.RetractVote(ctx, voteID)
	if err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateHost(ctx, targetID); err != nil {
			log.Warn().Err(err).Str("hostId", targetID).Msg("cache: invalidate host failed")
		}
	}
	return nil
}

// Lookup returns the caller's active vote on a target, or nil.
func (s *VoteService) Lookup(ctx context.Context, voterID, targetID string) (*model.Vote, error) {
	return s.store.VoteFor(ctx, hash.HashVoterID(voterID), targetID)
}
