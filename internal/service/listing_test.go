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

func seedHost(t *testing.T, st *store.MemoryStore, name, role string) model.Host {
	t.Helper()
	h, err := st.CreateHost(context.Background(), model.Host{
		FullName: name,
		Email:    name + "@example.com",
		Role:     role,
	})
	require.NoError(t, err)
	return h
}

func TestListEvents_FilterOrderPaginate(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewListingService(st)
	organizer := seedHost(t, st, "olive", model.RoleOrganizer)

	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		_, err := st.CreateEvent(ctx, model.Event{
			Title:       fmt.Sprintf("Concert %d", i),
			OrganizerID: organizer.ID,
			Date:        base.AddDate(0, 0, i),
			Capacity:    100 + i*50,
			TicketPrice: float64(10 * i),
		})
		require.NoError(t, err)
	}

	page, err := svc.ListEvents(ctx, map[string]string{
		"min_capacity": "200",
		"ordering":     "-date",
		"page_size":    "2",
	})
	require.NoError(t, err)

	// Capacity >= 200 leaves events 2..5; -date puts the latest first
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.LastPage)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "Concert 5", page.Results[0].Title)
	assert.Equal(t, "Concert 4", page.Results[1].Title)
	assert.Empty(t, page.IgnoredFilters)
}

func TestListEvents_SearchAndDateWindow(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewListingService(st)
	organizer := seedHost(t, st, "olive", model.RoleOrganizer)

	mk := func(title string, date time.Time) {
		_, err := st.CreateEvent(ctx, model.Event{Title: title, OrganizerID: organizer.ID, Date: date})
		require.NoError(t, err)
	}
	mk("Jazz Night", time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC))
	mk("Jazz Brunch", time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC))
	mk("Rock Night", time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC))

	page, err := svc.ListEvents(ctx, map[string]string{
		"search":   "jazz",
		"max_date": "2026-06-30",
	})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Jazz Night", page.Results[0].Title)
}

func TestListEvents_MalformedFilterSurfaced(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewListingService(st)
	organizer := seedHost(t, st, "olive", model.RoleOrganizer)

	_, err := st.CreateEvent(ctx, model.Event{Title: "Expo", OrganizerID: organizer.ID})
	require.NoError(t, err)

	page, err := svc.ListEvents(ctx, map[string]string{"min_capacity": "huge"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, []string{"min_capacity"}, page.IgnoredFilters)
}

func TestListVenues_ProviderScopeAndPriceBand(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewListingService(st)
	p1 := seedHost(t, st, "pat", model.RoleProvider)
	p2 := seedHost(t, st, "quinn", model.RoleProvider)

	mk := func(name, provider string, price float64) {
		_, err := st.CreateVenue(ctx, model.Venue{Name: name, ProviderID: provider, PricePerHour: price})
		require.NoError(t, err)
	}
	mk("Loft", p1.ID, 40)
	mk("Hall", p1.ID, 90)
	mk("Barn", p2.ID, 45)

	page, err := svc.ListVenues(ctx, map[string]string{
		"provider_id": p1.ID,
		"max_price":   "50",
	})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Loft", page.Results[0].Name)
}

func TestListHosts_DirectoryPagination(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewListingService(st)

	for i := 0; i < 25; i++ {
		seedHost(t, st, fmt.Sprintf("host-%02d", i), model.RoleOrganizer)
	}

	seen := map[string]bool{}
	page, err := svc.ListHosts(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 3, page.LastPage)

	for n := 1; n <= page.LastPage; n++ {
		p, err := svc.ListHosts(ctx, map[string]string{"page": fmt.Sprint(n)})
		require.NoError(t, err)
		for _, h := range p.Results {
			assert.False(t, seen[h.ID], "host %s appeared on two pages", h.FullName)
			seen[h.ID] = true
		}
	}
	assert.Len(t, seen, 25)
}

func TestListHosts_ReputationFilters(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewListingService(st)

	a := seedHost(t, st, "alice", model.RoleOrganizer)
	b := seedHost(t, st, "bob", model.RoleOrganizer)
	seedHost(t, st, "carol", model.RoleProvider)

	for i := 0; i < 3; i++ {
		_, err := st.CastVote(ctx, fmt.Sprintf("v%d", i), a.ID, model.VoteUp)
		require.NoError(t, err)
	}
	_, err := st.CastVote(ctx, "v0", b.ID, model.VoteDown)
	require.NoError(t, err)

	page, err := svc.ListHosts(ctx, map[string]string{
		"role":      "organizer",
		"min_score": "1",
	})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "alice", page.Results[0].FullName)
	assert.Equal(t, 3, page.Results[0].Score)
}

// Hosts sharing a vote count must keep their directory order, so repeated
// identical queries paginate the same way.
func TestListHosts_VoteOrderingTieStability(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewListingService(st)

	names := []string{"alice", "bob", "carol", "dave"}
	hosts := make([]model.Host, 0, len(names))
	for _, n := range names {
		hosts = append(hosts, seedHost(t, st, n, model.RoleOrganizer))
	}

	// alice, bob, carol all end with 2 votes; dave gets 1
	for i, h := range hosts[:3] {
		for v := 0; v < 2; v++ {
			_, err := st.CastVote(ctx, fmt.Sprintf("v%d-%d", i, v), h.ID, model.VoteUp)
			require.NoError(t, err)
		}
	}
	_, err := st.CastVote(ctx, "solo", hosts[3].ID, model.VoteUp)
	require.NoError(t, err)

	for run := 0; run < 3; run++ {
		page, err := svc.ListHosts(ctx, map[string]string{"ordering": "-votes_count"})
		require.NoError(t, err)
		require.Len(t, page.Results, 4)
		for i, want := range []string{"alice", "bob", "carol", "dave"} {
			assert.Equal(t, want, page.Results[i].FullName, "run %d position %d", run, i)
		}
	}
}

func TestListHosts_UnknownOrderingKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewListingService(st)
	seedHost(t, st, "zed", model.RoleOrganizer)
	seedHost(t, st, "amy", model.RoleOrganizer)

	page, err := svc.ListHosts(ctx, map[string]string{"ordering": "shoe_size"})
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "zed", page.Results[0].FullName)
	assert.Equal(t, []string{"ordering"}, page.IgnoredFilters)
}
