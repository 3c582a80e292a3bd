package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/model"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/store"
)

// HostService serves host profile lookups, the directory export, and
// platform statistics.
type HostService struct {
	store store.Store
	cache *CacheService
}

func NewHostService(st store.Store, cache *CacheService) *HostService {
	return &HostService{store: st, cache: cache}
}

// Create registers a new host profile with zeroed reputation counters.
func (s *HostService) Create(ctx context.Context, req model.HostCreateRequest) (model.Host, error) {
	return s.store.CreateHost(ctx, model.Host{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		Bio:      req.Bio,
	})
}

// Lookup returns a host profile, cache-aside: Redis first, store on miss,
// then populate.
func (s *HostService) Lookup(ctx context.Context, hostID string) (*model.HostResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetHost(ctx, hostID)
		if err != nil {
			log.Warn().Err(err).Msg("cache: host get failed")
		} else if cached != nil {
			var resp model.HostResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	h, err := s.store.HostByID(ctx, hostID)
	if err != nil {
		return nil, err
	}

	resp := &model.HostResponse{
		ID:        h.ID,
		FullName:  h.FullName,
		Email:     h.Email,
		Role:      h.Role,
		Bio:       h.Bio,
		Score:     h.Score,
		VoteCount: h.VoteCount,
		CreatedAt: h.CreatedAt.Format(time.RFC3339),
	}

	if s.cache != nil {
		if err := s.cache.SetHost(ctx, hostID, resp); err != nil {
			log.Warn().Err(err).Msg("cache: host set failed")
		}
	}

	return resp, nil
}

// Export dumps the full host directory as one snapshot.
func (s *HostService) Export(ctx context.Context) (*model.DirectoryExport, error) {
	hosts, err := s.store.Hosts(ctx)
	if err != nil {
		return nil, err
	}
	if hosts == nil {
		hosts = []model.Host{}
	}
	return &model.DirectoryExport{
		Hosts:       hosts,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Stats returns aggregate platform statistics.
func (s *HostService) Stats(ctx context.Context) (*model.StatsResponse, error) {
	return s.store.Stats(ctx)
}
