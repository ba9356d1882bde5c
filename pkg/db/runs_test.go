package db

import (
	"testing"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestInsertRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first, err := db.InsertRun("items")
	if err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}
	if first == 0 {
		t.Error("InsertRun() returned 0 ID")
	}

	second, err := db.InsertRun("creatures")
	if err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}
	if second <= first {
		t.Errorf("run IDs not increasing: %d then %d", first, second)
	}
}

func TestRecordFileAndGetRunFiles(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun("items")
	if err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}

	files := []struct {
		path   string
		status string
		detail string
	}{
		{"Blurbs/Widget.html", StatusConverted, ""},
		{"Blurbs/AllBlurbs.html", StatusSkipped, "index page"},
		{"Blurbs/Broken.html", StatusError, "could not extract item id"},
	}
	for _, f := range files {
		if err := db.RecordFile(runID, f.path, f.status, f.detail); err != nil {
			t.Fatalf("RecordFile(%s) failed: %v", f.path, err)
		}
	}

	got, err := db.GetRunFiles(runID)
	if err != nil {
		t.Fatalf("GetRunFiles() failed: %v", err)
	}
	if len(got) != len(files) {
		t.Fatalf("GetRunFiles() returned %d rows, want %d", len(got), len(files))
	}
	for i, f := range files {
		if got[i].Path != f.path || got[i].Status != f.status || got[i].Detail != f.detail {
			t.Errorf("row %d = %+v, want %+v", i, got[i], f)
		}
	}
}

func TestFinishRunAndListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	older, err := db.InsertRun("items")
	if err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}
	newer, err := db.InsertRun("creatures")
	if err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}

	if err := db.FinishRun(older, 5, 2, 1); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns() returned %d runs, want 2", len(runs))
	}
	if runs[0].RunID != newer {
		t.Errorf("runs not newest-first: got %d first, want %d", runs[0].RunID, newer)
	}
	if runs[1].Converted != 5 || runs[1].Skipped != 2 || runs[1].Errors != 1 {
		t.Errorf("finished run counters = %+v", runs[1])
	}

	limited, err := db.ListRuns(1)
	if err != nil {
		t.Fatalf("ListRuns(1) failed: %v", err)
	}
	if len(limited) != 1 || limited[0].RunID != newer {
		t.Errorf("ListRuns(1) = %+v", limited)
	}
}
