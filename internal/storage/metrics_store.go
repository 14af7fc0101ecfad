package storage

import (
	"time"
)

// OperationRecord is one persisted lifecycle operation.
type OperationRecord struct {
	ID            int64     `json:"id"`
	Operation     string    `json:"operation"`
	Path          string    `json:"path"`
	ResultTag     string    `json:"resultTag"`
	FullBytes     int       `json:"fullBytes"`
	ReturnedBytes int       `json:"returnedBytes"`
	DurationMs    int64     `json:"durationMs"`
	Failed        bool      `json:"failed"`
	ErrorCode     string    `json:"errorCode,omitempty"`
	RecordedAt    time.Time `json:"recordedAt"`
}

// OperationAggregate is per-operation rollup within a time window.
type OperationAggregate struct {
	Operation     string  `json:"operation"`
	Count         int64   `json:"count"`
	Failures      int64   `json:"failures"`
	FullBytes     int64   `json:"fullBytes"`
	ReturnedBytes int64   `json:"returnedBytes"`
	TotalMs       int64   `json:"totalMs"`
	AvgMs         float64 `json:"avgMs"`
	SavingsPct    float64 `json:"savingsPct"`
}

// RecordOperation persists one lifecycle operation outcome.
func (db *DB) RecordOperation(rec OperationRecord) error {
	failed := 0
	if rec.Failed {
		failed = 1
	}
	recordedAt := rec.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}
	_, err := db.Exec(`
		INSERT INTO operation_metrics (
			operation, path, result_tag, full_bytes, returned_bytes,
			duration_ms, failed, error_code, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.Operation, rec.Path, rec.ResultTag, rec.FullBytes, rec.ReturnedBytes,
		rec.DurationMs, failed, rec.ErrorCode, recordedAt.Format(time.RFC3339))
	return err
}

// Aggregates returns per-operation rollups since the given time.
func (db *DB) Aggregates(since time.Time) ([]OperationAggregate, error) {
	rows, err := db.Query(`
		SELECT
			operation,
			COUNT(*) as count,
			SUM(failed) as failures,
			SUM(full_bytes) as full_bytes,
			SUM(returned_bytes) as returned_bytes,
			SUM(duration_ms) as total_ms
		FROM operation_metrics
		WHERE recorded_at >= ?
		GROUP BY operation
		ORDER BY count DESC
	`, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OperationAggregate
	for rows.Next() {
		var agg OperationAggregate
		if err := rows.Scan(
			&agg.Operation,
			&agg.Count,
			&agg.Failures,
			&agg.FullBytes,
			&agg.ReturnedBytes,
			&agg.TotalMs,
		); err != nil {
			return nil, err
		}
		if agg.Count > 0 {
			agg.AvgMs = float64(agg.TotalMs) / float64(agg.Count)
		}
		if agg.FullBytes > 0 {
			agg.SavingsPct = 100 * float64(agg.FullBytes-agg.ReturnedBytes) / float64(agg.FullBytes)
		}
		out = append(out, agg)
	}
	return out, rows.Err()
}

// RecentOperations returns the most recent records, newest first.
func (db *DB) RecentOperations(limit int) ([]OperationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT id, operation, path, result_tag, full_bytes, returned_bytes,
		       duration_ms, failed, error_code, recorded_at
		FROM operation_metrics
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OperationRecord
	for rows.Next() {
		var rec OperationRecord
		var failed int
		var recordedAt string
		if err := rows.Scan(
			&rec.ID,
			&rec.Operation,
			&rec.Path,
			&rec.ResultTag,
			&rec.FullBytes,
			&rec.ReturnedBytes,
			&rec.DurationMs,
			&failed,
			&rec.ErrorCode,
			&recordedAt,
		); err != nil {
			return nil, err
		}
		rec.Failed = failed != 0
		if t, err := time.Parse(time.RFC3339, recordedAt); err == nil {
			rec.RecordedAt = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Prune deletes records older than the cutoff and returns how many went.
func (db *DB) Prune(before time.Time) (int64, error) {
	res, err := db.Exec(`
		DELETE FROM operation_metrics WHERE recorded_at < ?
	`, before.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
