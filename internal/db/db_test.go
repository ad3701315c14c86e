package db

import (
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.InitSchema(); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	return store
}

func TestSaveAndGetReport(t *testing.T) {
	store := openTestStore(t)

	payload := []byte(`{"validation":{"is_valid":true}}`)
	saved, err := store.SaveReport(Summary{
		Source:     "prd.json",
		StoryCount: 3,
		Score:      88,
		Grade:      "B",
		IsValid:    true,
	}, payload)
	if err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}
	if saved.ID == "" {
		t.Error("saved report has empty ID")
	}
	if saved.CreatedAt == 0 {
		t.Error("saved report has zero CreatedAt")
	}

	got, err := store.GetReport(saved.ID)
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if got.Source != "prd.json" || got.StoryCount != 3 || got.Score != 88 || got.Grade != "B" {
		t.Errorf("GetReport() = %+v, want saved summary", got)
	}
	if !got.IsValid {
		t.Error("IsValid = false, want true")
	}
	if string(got.Payload) != string(payload) {
		t.Errorf("Payload = %s, want %s", got.Payload, payload)
	}
}

func TestGetReport_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetReport("nope")
	if err == nil {
		t.Fatal("GetReport() error = nil, want not-found")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want not-found message", err)
	}
}

func TestListReports(t *testing.T) {
	store := openTestStore(t)

	for i, source := range []string{"a.json", "b.json", "c.json"} {
		if _, err := store.SaveReport(Summary{Source: source, Score: 50 + i, Grade: "F"}, []byte("{}")); err != nil {
			t.Fatalf("SaveReport(%s) error = %v", source, err)
		}
	}

	reports, err := store.ListReports(2)
	if err != nil {
		t.Fatalf("ListReports() error = %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	for _, r := range reports {
		if len(r.Payload) != 0 {
			t.Errorf("ListReports included payload for %s", r.ID)
		}
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	store := openTestStore(t)
	if err := store.InitSchema(); err != nil {
		t.Fatalf("second InitSchema() error = %v", err)
	}
}
