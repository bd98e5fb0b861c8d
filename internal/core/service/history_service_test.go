package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/influenceai/influence-frontend/internal/core/domain"
	"github.com/influenceai/influence-frontend/internal/core/ports"
)

// stubGateway implements only the operations the history service touches.
type stubGateway struct {
	ports.BackendGateway

	history   []domain.PredictionRecord
	listErr   error
	deleteErr error
	deleted   []int64
}

func (s *stubGateway) PredictionHistory(_ context.Context, _ string) ([]domain.PredictionRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.history, nil
}

func (s *stubGateway) DeletePrediction(_ context.Context, _ string, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func sampleRecords() []domain.PredictionRecord {
	return []domain.PredictionRecord{
		{ID: 1, InputData: map[string]float64{"followers": 10000, "likes": 500}, InfluenceScore: 72.3, InfluenceLevel: domain.LevelHigh},
		{ID: 2, InputData: map[string]float64{"followers": 300, "likes": 12}, InfluenceScore: 15.1, InfluenceLevel: domain.LevelLow},
		{ID: 3, InputData: map[string]float64{"subscribers": 8000, "views": 4000}, InfluenceScore: 55.0, InfluenceLevel: domain.LevelMedium},
	}
}

func ids(records []domain.PredictionRecord) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter_LevelAndQuery(t *testing.T) {
	records := sampleRecords()

	if got := Filter(records, "", domain.LevelAll); !reflect.DeepEqual(ids(got), []int64{1, 2, 3}) {
		t.Fatalf("All filter changed the set: %v", ids(got))
	}
	if got := Filter(records, "", domain.LevelHigh); !reflect.DeepEqual(ids(got), []int64{1}) {
		t.Fatalf("level filter = %v, want [1]", ids(got))
	}
	if got := Filter(records, "subscribers", ""); !reflect.DeepEqual(ids(got), []int64{3}) {
		t.Fatalf("query filter = %v, want [3]", ids(got))
	}
	// Matching the level label through the free-text query.
	if got := Filter(records, "medium", ""); !reflect.DeepEqual(ids(got), []int64{3}) {
		t.Fatalf("label query = %v, want [3]", ids(got))
	}
}

func TestFilter_PredicatesCommute(t *testing.T) {
	records := sampleRecords()
	queries := []string{"", "followers", "10000", "low"}
	levels := []string{domain.LevelAll, domain.LevelHigh, domain.LevelMedium, domain.LevelLow}

	for _, q := range queries {
		for _, lvl := range levels {
			queryFirst := Filter(Filter(records, q, domain.LevelAll), "", lvl)
			levelFirst := Filter(Filter(records, "", lvl), q, domain.LevelAll)
			combined := Filter(records, q, lvl)

			if !reflect.DeepEqual(ids(queryFirst), ids(levelFirst)) {
				t.Errorf("filters do not commute for q=%q level=%q: %v vs %v",
					q, lvl, ids(queryFirst), ids(levelFirst))
			}
			if !reflect.DeepEqual(ids(combined), ids(queryFirst)) {
				t.Errorf("combined filter differs for q=%q level=%q: %v vs %v",
					q, lvl, ids(combined), ids(queryFirst))
			}
		}
	}
}

func TestFilter_Idempotent(t *testing.T) {
	records := sampleRecords()
	once := Filter(records, "followers", domain.LevelHigh)
	twice := Filter(once, "followers", domain.LevelHigh)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter is not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestFilter_PreservesBackendOrder(t *testing.T) {
	// Records arrive newest-first from the backend; the filter must not
	// re-sort them, only remove.
	records := []domain.PredictionRecord{
		{ID: 9, InfluenceLevel: domain.LevelHigh},
		{ID: 4, InfluenceLevel: domain.LevelHigh},
		{ID: 7, InfluenceLevel: domain.LevelLow},
	}
	got := Filter(records, "", domain.LevelHigh)
	if !reflect.DeepEqual(ids(got), []int64{9, 4}) {
		t.Fatalf("order not preserved: %v", ids(got))
	}
}

func TestHistoryService_Delete_RemovesOnlyAfterConfirmation(t *testing.T) {
	gw := &stubGateway{}
	svc := NewHistoryService(gw, zerolog.Nop())
	records := sampleRecords()

	got, err := svc.Delete(context.Background(), "tok", records, 2)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []int64{1, 3}) {
		t.Fatalf("record not removed after confirmed delete: %v", ids(got))
	}
	if !reflect.DeepEqual(gw.deleted, []int64{2}) {
		t.Fatalf("remote delete not issued: %v", gw.deleted)
	}
}

func TestHistoryService_Delete_RemoteFailureLeavesViewUnchanged(t *testing.T) {
	gw := &stubGateway{deleteErr: errors.New("boom")}
	svc := NewHistoryService(gw, zerolog.Nop())
	records := sampleRecords()

	got, err := svc.Delete(context.Background(), "tok", records, 2)
	if err == nil {
		t.Fatal("expected error from failed remote delete")
	}
	if !reflect.DeepEqual(ids(got), []int64{1, 2, 3}) {
		t.Fatalf("local view changed despite remote failure: %v", ids(got))
	}
}

func TestHistoryService_List_AppliesFilters(t *testing.T) {
	gw := &stubGateway{history: sampleRecords()}
	svc := NewHistoryService(gw, zerolog.Nop())

	got, err := svc.List(context.Background(), "tok", "", domain.LevelMedium)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []int64{3}) {
		t.Fatalf("List filter = %v, want [3]", ids(got))
	}
}

func TestHistoryService_Report(t *testing.T) {
	gw := &stubGateway{history: sampleRecords()}
	svc := NewHistoryService(gw, zerolog.Nop())

	report, err := svc.Report(context.Background(), "tok", 1)
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if !strings.Contains(report, "Prediction ID: #1") || !strings.Contains(report, "Influence Score: 72.30") {
		t.Fatalf("unexpected report:\n%s", report)
	}

	if _, err := svc.Report(context.Background(), "tok", 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown record, got %v", err)
	}
}
