package service

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/store"
)

// LedgerAuditor periodically recomputes every host's score and vote_count
// from the vote ledger and repairs drift. Normal voting never recomputes;
// this is the off-path consistency check behind the aggregation contract.
type LedgerAuditor struct {
	store    store.Store
	cache    *CacheService
	interval time.Duration
	workers  int
	repairs  prometheus.Counter
}

func NewLedgerAuditor(st store.Store, cache *CacheService, interval time.Duration, workers int) *LedgerAuditor {
	if workers < 1 {
		workers = 1
	}
	return &LedgerAuditor{
		store:    st,
		cache:    cache,
		interval: interval,
		workers:  workers,
	}
}

// InstrumentWith wires the repairs counter; safe to skip in tests.
func (a *LedgerAuditor) InstrumentWith(repairs prometheus.Counter) {
	a.repairs = repairs
}

// Start runs audit sweeps until ctx is cancelled.
func (a *LedgerAuditor) Start(ctx context.Context) {
	log.Info().Dur("interval", a.interval).Int("workers", a.workers).Msg("ledger-auditor: starting")

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			repaired, err := a.Sweep(ctx)
			if err != nil {
				log.Error().Err(err).Msg("ledger-auditor: sweep failed")
				continue
			}
			if repaired > 0 {
				log.Warn().Int("repaired", repaired).Msg("ledger-auditor: drift repaired")
			}
		case <-ctx.Done():
			log.Info().Msg("ledger-auditor: stopping")
			return
		}
	}
}

// Sweep audits every host once, fanning out over a bounded worker pool,
// and returns the number of hosts whose counters needed repair.
func (a *LedgerAuditor) Sweep(ctx context.Context) (int, error) {
	ids, err := a.store.HostIDs(ctx)
	if err != nil {
		return 0, err
	}

	p := pool.NewWithResults[bool]().
		WithMaxGoroutines(a.workers).
		WithContext(ctx)

	for _, id := range ids {
		p.Go(func(ctx context.Context) (bool, error) {
			repaired, err := a.store.AuditHost(ctx, id)
			if err != nil {
				return false, err
			}
			if repaired && a.cache != nil {
				if err := a.cache.InvalidateHost(ctx, id); err != nil {
					log.Warn().Err(err).Str("hostId", id).Msg("ledger-auditor: cache invalidate failed")
				}
			}
			return repaired, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, r := range results {
		if r {
			repaired++
		}
	}
	if a.repairs != nil && repaired > 0 {
		a.repairs.Add(float64(repaired))
	}
	return repaired, nil
}
