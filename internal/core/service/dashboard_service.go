package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/influenceai/influence-frontend/internal/core/ports"
)

const defaultTopLimit = 10

type dashboardService struct {
	gateway ports.BackendGateway
	log     zerolog.Logger
}

// NewDashboardService returns a DashboardService implementation.
func NewDashboardService(gateway ports.BackendGateway, log zerolog.Logger) ports.DashboardService {
	return &dashboardService{gateway: gateway, log: log}
}

// Overview issues the three dashboard fetches concurrently. The slots are
// disjoint view state: no ordering is guaranteed between them, and one slot
// failing leaves the others intact — its error is reported per slot instead
// of failing the whole view. The caller's context cancels all of them at
// once when the navigation is abandoned.
func (s *dashboardService) Overview(ctx context.Context, token string, limit int) (*ports.DashboardOverview, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}

	overview := &ports.DashboardOverview{}
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		fail = func(slot string, err error) {
			mu.Lock()
			if overview.Errors == nil {
				overview.Errors = make(map[string]string)
			}
			overview.Errors[slot] = err.Error()
			mu.Unlock()
			s.log.Warn().Err(err).Str("slot", slot).Msg("dashboard fetch failed")
		}
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		stats, err := s.gateway.DashboardStats(ctx, token)
		if err != nil {
			fail("stats", err)
			return
		}
		mu.Lock()
		overview.Stats = stats
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		metrics, err := s.gateway.ModelMetrics(ctx, token)
		if err != nil {
			fail("model_metrics", err)
			return
		}
		mu.Lock()
		overview.ModelMetrics = metrics
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		top, err := s.gateway.AnalyticsTopInfluencers(ctx, token, limit)
		if err != nil {
			fail("top_influencers", err)
			return
		}
		mu.Lock()
		overview.TopInfluencers = top
		mu.Unlock()
	}()
	wg.Wait()

	return overview, nil
}
