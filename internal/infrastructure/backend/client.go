// Package backend implements the outbound HTTP gateway to the ML backend.
// Every remote operation funnels through a single request pipeline that
// attaches the caller's bearer token, enforces the configured timeout, and
// maps failures onto the domain error taxonomy. The gateway never touches
// session state: an invalid token is surfaced as ErrUnauthenticated and
// nothing more.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/influenceai/influence-frontend/internal/api/metrics"
	"github.com/influenceai/influence-frontend/internal/core/domain"
	"github.com/influenceai/influence-frontend/internal/core/ports"
)

const defaultTimeout = 40 * time.Second

// Client is the BackendGateway implementation bound to one resolved origin.
type Client struct {
	base       string
	httpClient *http.Client
	log        zerolog.Logger
}

var _ ports.BackendGateway = (*Client)(nil)

// NewClient creates a gateway client bound to apiBase (origin + /api).
// A non-positive timeout falls back to the cold-start-tolerant default.
func NewClient(apiBase string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:       apiBase,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// do executes one backend call end-to-end: build, authorize, send, decode.
// No operation may bypass it — it is the only place the Authorization header
// is written and the only place backend failures become domain errors.
func (c *Client) do(ctx context.Context, op, method, path, token, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(op, "unavailable").Inc()
		c.log.Warn().Err(err).Str("operation", op).Msg("backend unreachable")
		return fmt.Errorf("%s: %w: %v", op, domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		derr := c.statusError(op, resp)
		metrics.BackendRequestsTotal.WithLabelValues(op, outcomeOf(derr)).Inc()
		return derr
	}

	metrics.BackendRequestsTotal.WithLabelValues(op, "ok").Inc()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// statusError converts a non-2xx backend response into a domain error.
func (c *Client) statusError(op string, resp *http.Response) error {
	detail := parseDetail(resp.Body)
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthenticated)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		if detail == "" {
			detail = "invalid request"
		}
		return &domain.ValidationError{Detail: detail}
	default:
		return &domain.OperationError{Op: op, Detail: detail}
	}
}

// parseDetail extracts the backend's {"detail": ...} field. FastAPI sends
// either a plain string or, for schema violations, a list of objects; the
// latter is kept as compact JSON.
func parseDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 16<<10))
	if err != nil {
		return ""
	}
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(raw, &envelope) != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(envelope.Detail, &s) == nil {
		return s
	}
	return string(envelope.Detail)
}

// asOperationError downgrades a ValidationError into an OperationError.
// Training and prediction reject with 400 + detail when no model exists yet;
// those are operation failures shown at the point of action, not form errors.
func asOperationError(op string, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return &domain.OperationError{Op: op, Detail: verr.Detail}
	}
	return err
}

func outcomeOf(err error) string {
	var verr *domain.ValidationError
	var operr *domain.OperationError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return "unavailable"
	case errors.As(err, &verr):
		return "validation"
	case errors.As(err, &operr):
		return "operation"
	}
	return "error"
}

// Login exchanges credentials for an access token. The backend expects the
// OAuth2 password-flow form encoding.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	err := c.do(ctx, "login", http.MethodPost, "/auth/login", "",
		"application/x-www-form-urlencoded", bytes.NewBufferString(form.Encode()), &resp)
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", &domain.OperationError{Op: "login", Detail: "backend returned no token"}
	}
	return resp.AccessToken, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) error {
	payload := map[string]string{
		"username": in.Username,
		"email":    in.Email,
		"password": in.Password,
		"role":     string(in.Role),
	}
	body, _ := json.Marshal(payload)
	return c.do(ctx, "register", http.MethodPost, "/auth/register", "",
		"application/json", bytes.NewReader(body), nil)
}

// CurrentUser resolves token into the identity it was issued for.
func (c *Client) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	var resp struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}
	if err := c.do(ctx, "whoami", http.MethodGet, "/auth/me", token, "", nil, &resp); err != nil {
		return nil, err
	}
	role, ok := domain.ParseRole(resp.Role)
	if !ok {
		return nil, &domain.OperationError{Op: "whoami", Detail: "backend returned unknown role " + strconv.Quote(resp.Role)}
	}
	return &domain.User{Username: resp.Username, Email: resp.Email, Role: role}, nil
}

// UploadDataset streams an engagement dataset to the backend and returns the
// transient dataset handle consumed by Train.
func (c *Client) UploadDataset(ctx context.Context, token, filename string, file io.Reader) (*ports.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("upload: read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	var resp ports.UploadResult
	if err := c.do(ctx, "upload", http.MethodPost, "/ml/upload", token, mw.FormDataContentType(), &buf, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Train triggers a training run over a previously uploaded dataset.
func (c *Client) Train(ctx context.Context, token string, datasetID int64) (*domain.TrainResult, error) {
	var resp domain.TrainResult
	path := "/ml/train?dataset_id=" + strconv.FormatInt(datasetID, 10)
	if err := c.do(ctx, "train", http.MethodPost, path, token, "", nil, &resp); err != nil {
		return nil, asOperationError("train", err)
	}
	return &resp, nil
}

// Predict scores one engagement profile.
func (c *Client) Predict(ctx context.Context, token string, in domain.PredictionInput) (*domain.PredictionResult, error) {
	body, _ := json.Marshal(in)
	var resp domain.PredictionResult
	if err := c.do(ctx, "predict", http.MethodPost, "/ml/predict", token, "application/json", bytes.NewReader(body), &resp); err != nil {
		return nil, asOperationError("predict", err)
	}
	return &resp, nil
}

// ModelMetrics lists evaluation scores for every trained model.
func (c *Client) ModelMetrics(ctx context.Context, token string) ([]domain.ModelMetric, error) {
	var resp []domain.ModelMetric
	if err := c.do(ctx, "metrics", http.MethodGet, "/ml/metrics", token, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// TopInfluencers returns the highest-scoring prediction records.
func (c *Client) TopInfluencers(ctx context.Context, token string) ([]domain.PredictionRecord, error) {
	var resp []domain.PredictionRecord
	if err := c.do(ctx, "top_influencers", http.MethodGet, "/ml/top-influencers", token, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AnalyticsTopInfluencers returns the ranked influencer analysis of the
// caller's latest dataset.
func (c *Client) AnalyticsTopInfluencers(ctx context.Context, token string, limit int) (*domain.TopInfluencerReport, error) {
	path := "/ml/analytics-top-influencers?limit=" + strconv.Itoa(limit)
	var resp domain.TopInfluencerReport
	if err := c.do(ctx, "analytics_top_influencers", http.MethodGet, path, token, "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DashboardStats returns the aggregate engagement counters.
func (c *Client) DashboardStats(ctx context.Context, token string) (*domain.DashboardStats, error) {
	var resp domain.DashboardStats
	if err := c.do(ctx, "dashboard_stats", http.MethodGet, "/ml/dashboard-stats", token, "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PredictionHistory lists the caller's prediction records in backend order.
func (c *Client) PredictionHistory(ctx context.Context, token string) ([]domain.PredictionRecord, error) {
	var resp []domain.PredictionRecord
	if err := c.do(ctx, "history", http.MethodGet, "/ml/predictions-history", token, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DeletePrediction removes one history record remotely.
func (c *Client) DeletePrediction(ctx context.Context, token string, id int64) error {
	path := "/ml/predictions/" + strconv.FormatInt(id, 10)
	return c.do(ctx, "delete_prediction", http.MethodDelete, path, token, "", nil, nil)
}
