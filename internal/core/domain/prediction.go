package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Influence levels as labelled by the backend's classifier.
const (
	LevelHigh   = "High"
	LevelMedium = "Medium"
	LevelLow    = "Low"
	// LevelAll is the filter wildcard, never a record label.
	LevelAll = "All"
)

// PredictionInput is the engagement profile submitted for scoring.
type PredictionInput struct {
	Followers int `json:"followers" validate:"min=0"`
	Likes     int `json:"likes" validate:"min=0"`
	Shares    int `json:"shares" validate:"min=0"`
	Comments  int `json:"comments" validate:"min=0"`
}

// PredictionResult is the backend's answer to a predict call.
type PredictionResult struct {
	InfluenceScore float64 `json:"influence_score"`
	InfluenceLevel string  `json:"influence_level"`
}

// PredictionRecord is one entry of the prediction history. The backend owns
// these records; the frontend holds a read/filter/delete-only view per
// request and never re-sorts what the backend returned.
//
// InputData keys vary with the source platform (followers vs subscribers,
// likes vs views), so it stays a loose map. CreatedAt is kept verbatim — the
// backend emits naive ISO timestamps that are displayed, never computed on.
type PredictionRecord struct {
	ID             int64              `json:"id"`
	CreatedAt      string             `json:"created_at"`
	InputData      map[string]float64 `json:"input_data"`
	InfluenceScore float64            `json:"influence_score"`
	InfluenceLevel string             `json:"influence_level"`
}

// Metric returns the first present input metric among keys, defaulting to 0.
func (r PredictionRecord) Metric(keys ...string) int {
	for _, k := range keys {
		if v, ok := r.InputData[k]; ok && v != 0 {
			return int(v)
		}
	}
	return 0
}

// MatchesQuery reports whether the record matches a free-text query against
// the JSON-serialized input metrics and the influence-level label,
// case-insensitively. An empty query matches everything.
func (r PredictionRecord) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	raw, _ := json.Marshal(r.InputData)
	return strings.Contains(strings.ToLower(string(raw)), q) ||
		strings.Contains(strings.ToLower(r.InfluenceLevel), q)
}

// Report renders the record as the plain-text prediction report offered for
// download. Deterministic, no network: every value comes from the record,
// missing metrics default to 0 and the score is rounded to two decimals.
func (r PredictionRecord) Report() string {
	var b strings.Builder
	b.WriteString("INFLUENCE.AI - PREDICTION REPORT\n")
	b.WriteString("-------------------------------\n")
	fmt.Fprintf(&b, "Date: %s\n", r.CreatedAt)
	fmt.Fprintf(&b, "Prediction ID: #%d\n\n", r.ID)
	b.WriteString("INPUT DATA:\n")
	fmt.Fprintf(&b, "- Followers/Reach: %d\n", r.Metric("followers", "subscribers"))
	fmt.Fprintf(&b, "- Avg. Likes/Views: %d\n", r.Metric("likes", "views"))
	fmt.Fprintf(&b, "- Avg. Shares: %d\n", r.Metric("shares"))
	fmt.Fprintf(&b, "- Avg. Comments: %d\n\n", r.Metric("comments"))
	b.WriteString("RESULTS:\n")
	fmt.Fprintf(&b, "- Influence Score: %.2f\n", r.InfluenceScore)
	fmt.Fprintf(&b, "- Performance Level: %s\n\n", r.InfluenceLevel)
	b.WriteString("This report was generated automatically by Influence.AI Predictive Analytics.\n")
	return b.String()
}

// ModelMetric is one trained model's evaluation scores.
type ModelMetric struct {
	ModelName string  `json:"model_name"`
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
	IsBest    bool    `json:"is_best,omitempty"`
}

// TrainResult is the backend's response to a training run.
type TrainResult struct {
	Message string        `json:"message"`
	Metrics []ModelMetric `json:"metrics"`
}

// Influencer is one ranked account from the analytics endpoint.
type Influencer struct {
	AccountID        string  `json:"account_id"`
	Followers        int64   `json:"followers"`
	Likes            int64   `json:"likes"`
	Shares           int64   `json:"shares"`
	Comments         int64   `json:"comments"`
	TotalEngagement  int64   `json:"total_engagement"`
	EngagementRate   float64 `json:"engagement_rate"`
	IsViral          bool    `json:"is_viral"`
	PerformanceLevel string  `json:"performance_level"`
}

// TopInfluencerReport is the analytics summary over the latest dataset.
type TopInfluencerReport struct {
	Platform       string       `json:"platform"`
	TotalAnalyzed  int          `json:"total_analyzed"`
	ViralThreshold int64        `json:"viral_threshold"`
	Influencers    []Influencer `json:"influencers"`
}

// TrendPoint is one month of the engagement trend series.
type TrendPoint struct {
	Month    string `json:"month"`
	Likes    int64  `json:"likes"`
	Shares   int64  `json:"shares"`
	Comments int64  `json:"comments"`
}

// DashboardStats aggregates the engagement counters for the dashboard view.
type DashboardStats struct {
	TotalLikes      int64        `json:"total_likes"`
	TotalShares     int64        `json:"total_shares"`
	TotalComments   int64        `json:"total_comments"`
	TotalRecords    int64        `json:"total_records"`
	SystemAccuracy  float64      `json:"system_accuracy"`
	Platform        string       `json:"platform"`
	EngagementTrend []TrendPoint `json:"engagement_trend"`
}
