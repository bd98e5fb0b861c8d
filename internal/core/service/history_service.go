package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/influenceai/influence-frontend/internal/core/domain"
	"github.com/influenceai/influence-frontend/internal/core/ports"
)

type historyService struct {
	gateway ports.BackendGateway
	log     zerolog.Logger
}

// NewHistoryService returns a HistoryService implementation over the gateway.
func NewHistoryService(gateway ports.BackendGateway, log zerolog.Logger) ports.HistoryService {
	return &historyService{gateway: gateway, log: log}
}

// List fetches the caller's history and applies both filters. The backend's
// ordering is preserved; filtering only ever removes records.
func (s *historyService) List(ctx context.Context, token, query, level string) ([]domain.PredictionRecord, error) {
	records, err := s.gateway.PredictionHistory(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("history list: %w", err)
	}
	return Filter(records, query, level), nil
}

// Filter narrows records by a free-text query (matched case-insensitively
// against the JSON-serialized input metrics and the level label) AND an
// exact level filter. Level "All" or "" passes every level. The two
// predicates are independent, so their application order is irrelevant.
func Filter(records []domain.PredictionRecord, query, level string) []domain.PredictionRecord {
	out := make([]domain.PredictionRecord, 0, len(records))
	for _, r := range records {
		if !r.MatchesQuery(query) {
			continue
		}
		if level != "" && level != domain.LevelAll && r.InfluenceLevel != level {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Delete issues the remote delete and removes the record from the local view
// only once the backend confirmed. Never optimistic: a failed remote delete
// leaves the view untouched, so a record that still exists is never shown as
// gone.
func (s *historyService) Delete(ctx context.Context, token string, records []domain.PredictionRecord, id int64) ([]domain.PredictionRecord, error) {
	if err := s.gateway.DeletePrediction(ctx, token, id); err != nil {
		return records, fmt.Errorf("history delete: %w", err)
	}

	out := make([]domain.PredictionRecord, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			out = append(out, r)
		}
	}
	s.log.Debug().Int64("prediction_id", id).Msg("prediction record deleted")
	return out, nil
}

// Report locates one record of the caller's history and synthesizes its
// plain-text report. The rendering itself is pure; only the lookup talks to
// the backend.
func (s *historyService) Report(ctx context.Context, token string, id int64) (string, error) {
	records, err := s.gateway.PredictionHistory(ctx, token)
	if err != nil {
		return "", fmt.Errorf("history report: %w", err)
	}
	for _, r := range records {
		if r.ID == id {
			return r.Report(), nil
		}
	}
	return "", fmt.Errorf("history report: %w", domain.ErrNotFound)
}
