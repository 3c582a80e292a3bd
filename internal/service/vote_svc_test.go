package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/model"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/store"
)

func TestVoteService_CastAndLookup(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewVoteService(st, nil)
	host := seedHost(t, st, "alex", model.RoleOrganizer)

	resp, err := svc.Cast(ctx, model.VoteRequest{VoterID: "client-abc", TargetID: host.ID, Value: model.VoteUp})
	require.NoError(t, err)
	assert.Equal(t, model.TransitionCreated, resp.Transition)
	assert.Equal(t, 1, resp.NewScore)

	// The raw client identifier never reaches the ledger
	assert.NotEqual(t, "client-abc", resp.Vote.VoterID)
	raw, err := st.VoteFor(ctx, "client-abc", host.ID)
	require.NoError(t, err)
	assert.Nil(t, raw)

	// But lookups through the service resolve the same vote
	v, err := svc.Lookup(ctx, "client-abc", host.ID)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, resp.Vote.ID, v.ID)
}

func TestVoteService_HashingIsStablePerVoter(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewVoteService(st, nil)
	host := seedHost(t, st, "alex", model.RoleOrganizer)

	first, err := svc.Cast(ctx, model.VoteRequest{VoterID: "client-abc", TargetID: host.ID, Value: model.VoteUp})
	require.NoError(t, err)

	// The same client resubmitting hits the same ledger entry
	again, err := svc.Cast(ctx, model.VoteRequest{VoterID: "client-abc", TargetID: host.ID, Value: model.VoteUp})
	require.NoError(t, err)
	assert.Equal(t, model.TransitionUnchanged, again.Transition)
	assert.Equal(t, first.Vote.ID, again.Vote.ID)

	// A different client creates an independent vote
	other, err := svc.Cast(ctx, model.VoteRequest{VoterID: "client-xyz", TargetID: host.ID, Value: model.VoteUp})
	require.NoError(t, err)
	assert.Equal(t, model.TransitionCreated, other.Transition)
	assert.Equal(t, 2, other.NewScore)
}

func TestVoteService_Retract(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewVoteService(st, nil)
	host := seedHost(t, st, "alex", model.RoleOrganizer)

	resp, err := svc.Cast(ctx, model.VoteRequest{VoterID: "client-abc", TargetID: host.ID, Value: model.VoteDown})
	require.NoError(t, err)

	require.NoError(t, svc.Retract(ctx, resp.Vote.ID))

	h, err := st.HostByID(ctx, host.ID)
	require.NoError(t, err)
	assert.Zero(t, h.Score)
	assert.Zero(t, h.VoteCount)

	err = svc.Retract(ctx, resp.Vote.ID)
	assert.ErrorIs(t, err, store.ErrVoteNotFound)
}

func TestVoteService_TargetMissing(t *testing.T) {
	ctx := context.Background()
	svc := NewVoteService(store.NewMemory(), nil)

	_, err := svc.Cast(ctx, model.VoteRequest{VoterID: "client-abc", TargetID: "ghost", Value: model.VoteUp})
	assert.ErrorIs(t, err, store.ErrTargetNotFound)
}
