package query

import (
	"testing"
	"time"
)

func TestNormalize_Defaults(t *testing.T) {
	q := Normalize(map[string]string{}, EventProfile)

	if q.Page != 1 {
		t.Errorf("Page = %d, want 1", q.Page)
	}
	if q.PageSize != 12 {
		t.Errorf("PageSize = %d, want 12", q.PageSize)
	}
	if q.Ordering != OrderDefault {
		t.Errorf("Ordering = %v, want default", q.Ordering)
	}
	if len(q.Ignored) != 0 {
		t.Errorf("Ignored = %v, want empty", q.Ignored)
	}
}

func TestNormalize_HostDefaults(t *testing.T) {
	q := Normalize(map[string]string{}, HostProfile)
	if q.PageSize != 10 {
		t.Errorf("host PageSize = %d, want 10", q.PageSize)
	}
}

func TestNormalize_Pagination(t *testing.T) {
	tests := []struct {
		name         string
		page         string
		pageSize     string
		wantPage     int
		wantPageSize int
	}{
		{"explicit values", "3", "20", 3, 20},
		{"zero page clamps to 1", "0", "10", 1, 10},
		{"negative page clamps to 1", "-5", "10", 1, 10},
		{"garbage page falls back", "abc", "10", 1, 10},
		{"zero page_size falls back to default", "2", "0", 2, 12},
		{"oversized page_size clamps to 100", "1", "500", 1, 100},
		{"garbage page_size falls back", "1", "xx", 1, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Normalize(map[string]string{"page": tt.page, "page_size": tt.pageSize}, EventProfile)
			if q.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", q.Page, tt.wantPage)
			}
			if q.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", q.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestNormalize_OrderingTokens(t *testing.T) {
	tests := []struct {
		token string
		want  OrderingToken
	}{
		{"date", OrderDateAsc},
		{"-date", OrderDateDesc},
		{"title", OrderTitleAsc},
		{"-title", OrderTitleDesc},
		{"created_at", OrderCreatedAsc},
		{"-created_at", OrderCreatedDesc},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			q := Normalize(map[string]string{"ordering": tt.token}, EventProfile)
			if q.Ordering != tt.want {
				t.Errorf("Ordering = %v, want %v", q.Ordering, tt.want)
			}
		})
	}
}

func TestNormalize_UnknownOrderingFallsBack(t *testing.T) {
	q := Normalize(map[string]string{"ordering": "banana"}, EventProfile)
	if q.Ordering != OrderDefault {
		t.Errorf("Ordering = %v, want default", q.Ordering)
	}
	if len(q.Ignored) != 1 || q.Ignored[0] != "ordering" {
		t.Errorf("Ignored = %v, want [ordering]", q.Ignored)
	}
}

func TestNormalize_OrderingIsPerResource(t *testing.T) {
	// "score" is a host token, not an event token
	q := Normalize(map[string]string{"ordering": "score"}, EventProfile)
	if q.Ordering != OrderDefault {
		t.Errorf("event Ordering = %v, want default for host-only token", q.Ordering)
	}

	q = Normalize(map[string]string{"ordering": "-score"}, HostProfile)
	if q.Ordering != OrderScoreDesc {
		t.Errorf("host Ordering = %v, want score desc", q.Ordering)
	}
}

func TestNormalize_IntFilters(t *testing.T) {
	q := Normalize(map[string]string{"min_capacity": "50", "max_capacity": "200"}, VenueProfile)
	if q.MinCapacity == nil || *q.MinCapacity != 50 {
		t.Errorf("MinCapacity = %v, want 50", q.MinCapacity)
	}
	if q.MaxCapacity == nil || *q.MaxCapacity != 200 {
		t.Errorf("MaxCapacity = %v, want 200", q.MaxCapacity)
	}
}

func TestNormalize_MalformedFiltersIgnoredNotFatal(t *testing.T) {
	raw := map[string]string{
		"min_capacity": "lots",
		"max_price":    "cheap",
		"min_date":     "yesterday",
		"search":       "gala",
	}
	q := Normalize(raw, EventProfile)

	if q.MinCapacity != nil {
		t.Errorf("MinCapacity = %v, want nil", q.MinCapacity)
	}
	if q.MaxPrice != nil {
		t.Errorf("MaxPrice = %v, want nil", q.MaxPrice)
	}
	if q.MinDate != nil {
		t.Errorf("MinDate = %v, want nil", q.MinDate)
	}
	// Valid parameters survive alongside dropped ones
	if q.Search != "gala" {
		t.Errorf("Search = %q, want gala", q.Search)
	}
	if len(q.Ignored) != 3 {
		t.Errorf("Ignored = %v, want 3 entries", q.Ignored)
	}
}

func TestNormalize_UnrecognizedKeysSilentlyDropped(t *testing.T) {
	// min_score is a host filter; events never see it and never report it
	q := Normalize(map[string]string{"min_score": "5", "color": "red"}, EventProfile)
	if q.MinScore != nil {
		t.Errorf("MinScore = %v, want nil", q.MinScore)
	}
	if len(q.Ignored) != 0 {
		t.Errorf("Ignored = %v, want empty", q.Ignored)
	}
}

func TestNormalize_DateLayouts(t *testing.T) {
	q := Normalize(map[string]string{"min_date": "2026-06-01"}, EventProfile)
	if q.MinDate == nil {
		t.Fatal("MinDate = nil, want parsed")
	}
	want := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	if !q.MinDate.Equal(want) {
		t.Errorf("MinDate = %v, want %v", q.MinDate, want)
	}

	q = Normalize(map[string]string{"max_date": "2026-06-01T18:30:00Z"}, EventProfile)
	if q.MaxDate == nil {
		t.Fatal("MaxDate = nil, want parsed")
	}
	if q.MaxDate.Hour() != 18 {
		t.Errorf("MaxDate hour = %d, want 18", q.MaxDate.Hour())
	}
}

func TestNormalize_Role(t *testing.T) {
	tests := []struct {
		raw         string
		wantRole    string
		wantIgnored int
	}{
		{"organizer", "organizer", 0},
		{"Provider", "provider", 0},
		{"", "", 0},
		{"admin", "", 1},
	}

	for _, tt := range tests {
		t.Run("role="+tt.raw, func(t *testing.T) {
			q := Normalize(map[string]string{"role": tt.raw}, HostProfile)
			if q.Role != tt.wantRole {
				t.Errorf("Role = %q, want %q", q.Role, tt.wantRole)
			}
			if len(q.Ignored) != tt.wantIgnored {
				t.Errorf("Ignored = %v, want %d entries", q.Ignored, tt.wantIgnored)
			}
		})
	}
}

func TestNormalize_RelationScoping(t *testing.T) {
	q := Normalize(map[string]string{"organizer_id": " abc-123 "}, EventProfile)
	if q.RelationID != "abc-123" {
		t.Errorf("RelationID = %q, want abc-123", q.RelationID)
	}

	// venue profile recognizes provider_id, not organizer_id
	q = Normalize(map[string]string{"organizer_id": "abc-123"}, VenueProfile)
	if q.RelationID != "" {
		t.Errorf("RelationID = %q, want empty", q.RelationID)
	}
}

func TestNormalize_SearchTrimmed(t *testing.T) {
	q := Normalize(map[string]string{"search": "  summer fest  "}, EventProfile)
	if q.Search != "summer fest" {
		t.Errorf("Search = %q, want trimmed", q.Search)
	}
}
