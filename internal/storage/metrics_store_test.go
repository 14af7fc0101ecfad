package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenCreatesDatabase(t *testing.T) {
	root := t.TempDir()
	db, err := Open(root, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	want := filepath.Join(root, ".focus", "focus.db")
	if db.Path() != want {
		t.Errorf("path = %q, want %q", db.Path(), want)
	}
}

func TestRecordAndAggregate(t *testing.T) {
	db := openTestDB(t)

	records := []OperationRecord{
		{Operation: "peekFile", Path: "a.go", ResultTag: "SUMMARY", FullBytes: 1000, ReturnedBytes: 120, DurationMs: 4},
		{Operation: "peekFile", Path: "b.go", ResultTag: "SUMMARY", FullBytes: 2000, ReturnedBytes: 280, DurationMs: 6},
		{Operation: "readFile", Path: "a.go", ResultTag: "FULL", FullBytes: 1000, ReturnedBytes: 1000, DurationMs: 2},
		{Operation: "editFile", Path: "a.go", Failed: true, ErrorCode: "NO_MATCH", DurationMs: 1},
	}
	for _, rec := range records {
		if err := db.RecordOperation(rec); err != nil {
			t.Fatalf("RecordOperation failed: %v", err)
		}
	}

	aggs, err := db.Aggregates(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Aggregates failed: %v", err)
	}
	if len(aggs) != 3 {
		t.Fatalf("aggregates = %+v", aggs)
	}

	// Ordered by count descending, so peekFile comes first.
	peek := aggs[0]
	if peek.Operation != "peekFile" || peek.Count != 2 {
		t.Fatalf("first aggregate = %+v", peek)
	}
	if peek.AvgMs != 5 {
		t.Errorf("avg ms = %v", peek.AvgMs)
	}
	// 3000 full bytes, 400 returned.
	if peek.SavingsPct < 86 || peek.SavingsPct > 87 {
		t.Errorf("savings pct = %v", peek.SavingsPct)
	}

	byOp := make(map[string]OperationAggregate)
	for _, agg := range aggs {
		byOp[agg.Operation] = agg
	}
	if byOp["editFile"].Failures != 1 {
		t.Errorf("edit failures = %d", byOp["editFile"].Failures)
	}
	if byOp["readFile"].SavingsPct != 0 {
		t.Errorf("full read should show no savings: %v", byOp["readFile"].SavingsPct)
	}
}

func TestAggregatesWindow(t *testing.T) {
	db := openTestDB(t)

	old := OperationRecord{
		Operation:  "readFile",
		Path:       "old.go",
		ResultTag:  "FULL",
		RecordedAt: time.Now().UTC().Add(-48 * time.Hour),
	}
	recent := OperationRecord{Operation: "peekFile", Path: "new.go", ResultTag: "SUMMARY"}
	if err := db.RecordOperation(old); err != nil {
		t.Fatal(err)
	}
	if err := db.RecordOperation(recent); err != nil {
		t.Fatal(err)
	}

	aggs, err := db.Aggregates(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(aggs) != 1 || aggs[0].Operation != "peekFile" {
		t.Errorf("window leaked old records: %+v", aggs)
	}
}

func TestRecentOperationsNewestFirst(t *testing.T) {
	db := openTestDB(t)

	for _, path := range []string{"first.go", "second.go", "third.go"} {
		if err := db.RecordOperation(OperationRecord{Operation: "readFile", Path: path, ResultTag: "FULL"}); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := db.RecentOperations(2)
	if err != nil {
		t.Fatalf("RecentOperations failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d", len(recs))
	}
	if recs[0].Path != "third.go" || recs[1].Path != "second.go" {
		t.Errorf("order = %q, %q", recs[0].Path, recs[1].Path)
	}
	if recs[0].RecordedAt.IsZero() {
		t.Error("recordedAt should round-trip")
	}
}

func TestPrune(t *testing.T) {
	db := openTestDB(t)

	stale := OperationRecord{
		Operation:  "peekFile",
		Path:       "stale.go",
		RecordedAt: time.Now().UTC().Add(-30 * 24 * time.Hour),
	}
	fresh := OperationRecord{Operation: "peekFile", Path: "fresh.go"}
	if err := db.RecordOperation(stale); err != nil {
		t.Fatal(err)
	}
	if err := db.RecordOperation(fresh); err != nil {
		t.Fatal(err)
	}

	pruned, err := db.Prune(time.Now().Add(-7 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d", pruned)
	}

	recs, err := db.RecentOperations(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Path != "fresh.go" {
		t.Errorf("remaining = %+v", recs)
	}
}
