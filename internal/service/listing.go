package service

import (
	"context"
	"time"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/model"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/query"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/store"
)

// ListingService runs the listing pipeline (normalize, filter, order,
// paginate) over store snapshots for every paginated collection.
type ListingService struct {
	store store.Store
}

func NewListingService(st store.Store) *ListingService {
	return &ListingService{store: st}
}

// ListEvents executes an event listing from raw filter parameters.
func (s *ListingService) ListEvents(ctx context.Context, raw map[string]string) (model.Page[model.Event], error) {
	q := query.Normalize(raw, query.EventProfile)

	events, err := s.store.Events(ctx)
	if err != nil {
		return model.Page[model.Event]{}, err
	}

	filtered := query.Filter(events, eventPredicate(q))
	query.SortStable(filtered, eventLess(q.Ordering))

	page := query.Paginate(filtered, q.Page, q.PageSize)
	page.IgnoredFilters = q.Ignored
	return page, nil
}

func (s *ListingService) ListVenues(ctx context.Context, raw map[string]string) (model.Page[model.Venue], error) {
	q := query.Normalize(raw, query.VenueProfile)

	venues, err := s.store.Venues(ctx)
	if err != nil {
		return model.Page[model.Venue]{}, err
	}

	filtered := query.Filter(venues, venuePredicate(q))
	query.SortStable(filtered, venueLess(q.Ordering))

	page := query.Paginate(filtered, q.Page, q.PageSize)
	page.IgnoredFilters = q.Ignored
	return page, nil
}

// ListHosts executes a hosts-directory listing. The role filter scopes the
// directory to organizers or providers; reputation filters see the current
// denormalized counters, so a completed vote is immediately visible here.
func (s *ListingService) ListHosts(ctx context.Context, raw map[string]string) (model.Page[model.Host], error) {
	q := query.Normalize(raw, query.HostProfile)

	hosts, err := s.store.Hosts(ctx)
	if err != nil {
		return model.Page[model.Host]{}, err
	}

	filtered := query.Filter(hosts, hostPredicate(q))
	query.SortStable(filtered, hostLess(q.Ordering))

	page := query.Paginate(filtered, q.Page, q.PageSize)
	page.IgnoredFilters = q.Ignored
	return page, nil
}

func eventPredicate(q query.ListQuery) query.Predicate[model.Event] {
	var preds []query.Predicate[model.Event]

	if q.Search != "" {
		preds = append(preds, query.TextContains(q.Search, func(e model.Event) []string {
			return []string{e.Title, e.Description}
		}))
	}
	if q.MinDate != nil || q.MaxDate != nil {
		preds = append(preds, query.TimeRange(func(e model.Event) time.Time { return e.Date }, q.MinDate, q.MaxDate))
	}
	if q.MinCapacity != nil || q.MaxCapacity != nil {
		preds = append(preds, query.IntRange(func(e model.Event) int { return e.Capacity }, q.MinCapacity, q.MaxCapacity))
	}
	if q.MaxPrice != nil {
		preds = append(preds, query.FloatRange(func(e model.Event) float64 { return e.TicketPrice }, nil, q.MaxPrice))
	}
	if q.RelationID != "" {
		preds = append(preds, query.Equals(func(e model.Event) string { return e.OrganizerID }, q.RelationID))
	}

	return query.And(preds...)
}

func venuePredicate(q query.ListQuery) query.Predicate[model.Venue] {
	var preds []query.Predicate[model.Venue]

	if q.Search != "" {
		preds = append(preds, query.TextContains(q.Search, func(v model.Venue) []string {
			return []string{v.Name, v.Description}
		}))
	}
	if q.MinCapacity != nil || q.MaxCapacity != nil {
		preds = append(preds, query.IntRange(func(v model.Venue) int { return v.Capacity }, q.MinCapacity, q.MaxCapacity))
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		preds = append(preds, query.FloatRange(func(v model.Venue) float64 { return v.PricePerHour }, q.MinPrice, q.MaxPrice))
	}
	if q.RelationID != "" {
		preds = append(preds, query.Equals(func(v model.Venue) string { return v.ProviderID }, q.RelationID))
	}

	return query.And(preds...)
}

func hostPredicate(q query.ListQuery) query.Predicate[model.Host] {
	var preds []query.Predicate[model.Host]

	if q.Role != "" {
		preds = append(preds, query.Equals(func(h model.Host) string { return h.Role }, q.Role))
	}
	if q.Search != "" {
		preds = append(preds, query.TextContains(q.Search, func(h model.Host) []string {
			return []string{h.FullName, h.Email}
		}))
	}
	if q.MinScore != nil {
		preds = append(preds, query.IntRange(func(h model.Host) int { return h.Score }, q.MinScore, nil))
	}
	if q.MinVotes != nil {
		preds = append(preds, query.IntRange(func(h model.Host) int { return h.VoteCount }, q.MinVotes, nil))
	}

	return query.And(preds...)
}

// Comparator tables. Tokens a profile does not emit fall through to nil
// (insertion order); normalization guarantees tokens are in-profile.

func eventLess(tok query.OrderingToken) query.Less[model.Event] {
	switch tok {
	case query.OrderDateAsc:
		return func(a, b model.Event) bool { return a.Date.Before(b.Date) }
	case query.OrderDateDesc:
		return query.Desc(func(a, b model.Event) bool { return a.Date.Before(b.Date) })
	case query.OrderTitleAsc:
		return func(a, b model.Event) bool { return a.Title < b.Title }
	case query.OrderTitleDesc:
		return query.Desc(func(a, b model.Event) bool { return a.Title < b.Title })
	case query.OrderCreatedAsc:
		return func(a, b model.Event) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case query.OrderCreatedDesc:
		return query.Desc(func(a, b model.Event) bool { return a.CreatedAt.Before(b.CreatedAt) })
	default:
		return nil
	}
}

func venueLess(tok query.OrderingToken) query.Less[model.Venue] {
	switch tok {
	case query.OrderTitleAsc:
		return func(a, b model.Venue) bool { return a.Name < b.Name }
	case query.OrderTitleDesc:
		return query.Desc(func(a, b model.Venue) bool { return a.Name < b.Name })
	case query.OrderPriceAsc:
		return func(a, b model.Venue) bool { return a.PricePerHour < b.PricePerHour }
	case query.OrderPriceDesc:
		return query.Desc(func(a, b model.Venue) bool { return a.PricePerHour < b.PricePerHour })
	case query.OrderCapacityAsc:
		return func(a, b model.Venue) bool { return a.Capacity < b.Capacity }
	case query.OrderCapacityDesc:
		return query.Desc(func(a, b model.Venue) bool { return a.Capacity < b.Capacity })
	case query.OrderCreatedAsc:
		return func(a, b model.Venue) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case query.OrderCreatedDesc:
		return query.Desc(func(a, b model.Venue) bool { return a.CreatedAt.Before(b.CreatedAt) })
	default:
		return nil
	}
}

func hostLess(tok query.OrderingToken) query.Less[model.Host] {
	switch tok {
	case query.OrderScoreAsc:
		return func(a, b model.Host) bool { return a.Score < b.Score }
	case query.OrderScoreDesc:
		return query.Desc(func(a, b model.Host) bool { return a.Score < b.Score })
	case query.OrderVotesAsc:
		return func(a, b model.Host) bool { return a.VoteCount < b.VoteCount }
	case query.OrderVotesDesc:
		return query.Desc(func(a, b model.Host) bool { return a.VoteCount < b.VoteCount })
	case query.OrderTitleAsc:
		return func(a, b model.Host) bool { return a.FullName < b.FullName }
	case query.OrderTitleDesc:
		return query.Desc(func(a, b model.Host) bool { return a.FullName < b.FullName })
	case query.OrderCreatedAsc:
		return func(a, b model.Host) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case query.OrderCreatedDesc:
		return query.Desc(func(a, b model.Host) bool { return a.CreatedAt.Before(b.CreatedAt) })
	default:
		return nil
	}
}
