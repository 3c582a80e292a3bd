package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/model"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/store"
)

func TestLedgerAuditor_SweepCleanLedger(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	for i := 0; i < 8; i++ {
		h := seedHost(t, st, fmt.Sprintf("host-%d", i), model.RoleOrganizer)
		_, err := st.CastVote(ctx, "voter-1", h.ID, model.VoteUp)
		require.NoError(t, err)
	}

	auditor := NewLedgerAuditor(st, nil, time.Minute, 4)
	repaired, err := auditor.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, repaired, "counters maintained by the vote path never need repair")
}

func TestLedgerAuditor_SweepEmptyStore(t *testing.T) {
	auditor := NewLedgerAuditor(store.NewMemory(), nil, time.Minute, 0)
	repaired, err := auditor.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, repaired)
}
