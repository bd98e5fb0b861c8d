package ports

import (
	"context"

	"github.com/influenceai/influence-frontend/internal/core/domain"
)

// HistoryService is the client-side derived view over the prediction history.
type HistoryService interface {
	// List fetches the caller's history and applies the free-text and level
	// filters. Backend ordering is preserved.
	List(ctx context.Context, token, query, level string) ([]domain.PredictionRecord, error)
	// Delete removes a record remotely and returns the record set without it.
	// The local view only loses the record after the remote call succeeds.
	Delete(ctx context.Context, token string, records []domain.PredictionRecord, id int64) ([]domain.PredictionRecord, error)
	// Report synthesizes the plain-text report for one record of the
	// caller's history.
	Report(ctx context.Context, token string, id int64) (string, error)
}
