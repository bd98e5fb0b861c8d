package ports

import (
	"context"
	"io"

	"github.com/influenceai/influence-frontend/internal/core/domain"
)

// RegisterInput carries a new account registration, forwarded to the backend.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// UploadResult is the handle returned by a dataset upload. It is transient:
// held only for the duration of the upload→train workflow on one page.
type UploadResult struct {
	DatasetID int64  `json:"dataset_id"`
	Message   string `json:"message,omitempty"`
}

// BackendGateway is the single outbound pipeline to the ML backend. Every
// implementation must attach the given bearer token to authenticated calls
// and must not clear or mutate session state on failure — surfacing the
// error is its whole responsibility.
type BackendGateway interface {
	// Login exchanges credentials for an access token (no auth required).
	Login(ctx context.Context, username, password string) (string, error)
	// Register creates a new account (no auth required).
	Register(ctx context.Context, in RegisterInput) error
	// CurrentUser resolves the token into the identity it belongs to.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)

	UploadDataset(ctx context.Context, token, filename string, file io.Reader) (*UploadResult, error)
	Train(ctx context.Context, token string, datasetID int64) (*domain.TrainResult, error)
	Predict(ctx context.Context, token string, in domain.PredictionInput) (*domain.PredictionResult, error)
	ModelMetrics(ctx context.Context, token string) ([]domain.ModelMetric, error)
	TopInfluencers(ctx context.Context, token string) ([]domain.PredictionRecord, error)
	AnalyticsTopInfluencers(ctx context.Context, token string, limit int) (*domain.TopInfluencerReport, error)
	DashboardStats(ctx context.Context, token string) (*domain.DashboardStats, error)
	PredictionHistory(ctx context.Context, token string) ([]domain.PredictionRecord, error)
	DeletePrediction(ctx context.Context, token string, id int64) error
}
