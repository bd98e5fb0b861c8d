package ports

import (
	"context"

	"github.com/influenceai/influence-frontend/internal/core/domain"
)

// DashboardOverview bundles the three independent dashboard fetches. Slots
// are disjoint pieces of view state: each is nil when its fetch failed, with
// the failure noted under Errors by slot name.
type DashboardOverview struct {
	Stats          *domain.DashboardStats      `json:"stats,omitempty"`
	ModelMetrics   []domain.ModelMetric        `json:"model_metrics,omitempty"`
	TopInfluencers *domain.TopInfluencerReport `json:"top_influencers,omitempty"`
	Errors         map[string]string           `json:"errors,omitempty"`
}

// DashboardService aggregates the dashboard view's data fetches.
type DashboardService interface {
	Overview(ctx context.Context, token string, limit int) (*DashboardOverview, error)
}
