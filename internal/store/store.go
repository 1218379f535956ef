// Package store persists completed scans in SQLite. Scan records are
// immutable once saved except for the AI-insight attachment; the raw HTML
// snapshot is kept alongside each record so scans can be diffed over time.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sitelens/sitelens/internal/interfaces"
	"github.com/sitelens/sitelens/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

var (
	ErrScanNotFound   = errors.New("scan not found")
	ErrDomainMismatch = errors.New("snapshots belong to different domains")
)

// SQLiteStore implements interfaces.ScanStore.
type SQLiteStore struct {
	db     *sql.DB
	logger interfaces.Logger
}

// Open creates (or reuses) the scan database under rootDir and runs the
// schema migration.
func Open(rootDir string, logger interfaces.Logger) (*SQLiteStore, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("rootDir is required")
	}
	rootDir = filepath.Clean(rootDir)
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure rootDir %s: %w", rootDir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(rootDir, "sitelens.db"))
	if err != nil {
		return nil, fmt.Errorf("open scan database: %w", err)
	}
	return NewWithDB(db, logger)
}

// NewWithDB wraps an existing database handle (tests use in-memory SQLite
// through this) and applies the schema.
func NewWithDB(db *sql.DB, logger interfaces.Logger) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("execute schema: %w", err)
	}

	l := logger.With(interfaces.Field{Key: "component", Value: "store"})
	l.Info("scan store ready")

	return &SQLiteStore{db: db, logger: l}, nil
}

// SaveScan persists a completed scan and its snapshot, returning the new id.
func (s *SQLiteStore) SaveScan(ctx context.Context, userID string, result *model.ScanResult, snapshot []byte) (string, error) {
	if result == nil {
		return "", fmt.Errorf("nil scan result")
	}

	id := uuid.New().String()
	stored := *result
	stored.ID = id
	// Insight travels in its own column so attachment doesn't rewrite the
	// immutable record.
	stored.Insight = nil

	resultJSON, err := json.Marshal(&stored)
	if err != nil {
		return "", fmt.Errorf("marshal scan result: %w", err)
	}

	createdAt := result.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scans (id, user_id, url, domain, status, created_at, result_json, snapshot)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, result.URL, result.Domain, string(result.Status),
		createdAt.UTC().Format(time.RFC3339), string(resultJSON), snapshot)
	if err != nil {
		return "", fmt.Errorf("insert scan: %w", err)
	}

	s.logger.Info("scan saved",
		interfaces.Field{Key: "id", Value: id},
		interfaces.Field{Key: "domain", Value: result.Domain})
	return id, nil
}

// GetScan returns the scan stored under id, with any attached insight.
func (s *SQLiteStore) GetScan(ctx context.Context, id string) (*model.ScanResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT result_json, insight_json FROM scans WHERE id = ?`, id)

	var resultJSON string
	var insightJSON sql.NullString
	if err := row.Scan(&resultJSON, &insightJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScanNotFound
		}
		return nil, fmt.Errorf("query scan %s: %w", id, err)
	}

	return decodeScan(resultJSON, insightJSON)
}

// ListScans returns the scans owned by userID, most recent first. limit <= 0
// means no limit.
func (s *SQLiteStore) ListScans(ctx context.Context, userID string, limit int) ([]*model.ScanResult, error) {
	query := `SELECT result_json, insight_json FROM scans WHERE user_id = ? ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scans for %s: %w", userID, err)
	}
	defer rows.Close()

	var out []*model.ScanResult
	for rows.Next() {
		var resultJSON string
		var insightJSON sql.NullString
		if err := rows.Scan(&resultJSON, &insightJSON); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		result, err := decodeScan(resultJSON, insightJSON)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, rows.Err()
}

// AttachInsight records an insight against an existing scan. A scan that
// already has one keeps it; the first attachment wins.
func (s *SQLiteStore) AttachInsight(ctx context.Context, id string, insight *model.Insight) error {
	if insight == nil {
		return fmt.Errorf("nil insight")
	}
	insightJSON, err := json.Marshal(insight)
	if err != nil {
		return fmt.Errorf("marshal insight: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE scans SET insight_json = ? WHERE id = ? AND insight_json IS NULL`,
		string(insightJSON), id)
	if err != nil {
		return fmt.Errorf("attach insight to %s: %w", id, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		// Either the scan is missing or the insight is already set;
		// distinguish so callers can 404 properly.
		var exists int
		if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM scans WHERE id = ?`, id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrScanNotFound
			}
			return fmt.Errorf("check scan %s: %w", id, err)
		}
	}
	return nil
}

// GetSnapshot returns the raw HTML captured for a scan.
func (s *SQLiteStore) GetSnapshot(ctx context.Context, id string) ([]byte, error) {
	var snapshot []byte
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM scans WHERE id = ?`, id).Scan(&snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot %s: %w", id, err)
	}
	return snapshot, nil
}

func (s *SQLiteStore) Close() error {
	s.logger.Info("closing scan store")
	return s.db.Close()
}

func decodeScan(resultJSON string, insightJSON sql.NullString) (*model.ScanResult, error) {
	var result model.ScanResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("decode scan result: %w", err)
	}
	if insightJSON.Valid {
		var insight model.Insight
		if err := json.Unmarshal([]byte(insightJSON.String), &insight); err != nil {
			return nil, fmt.Errorf("decode insight: %w", err)
		}
		result.Insight = &insight
	}
	return &result, nil
}

// compile-time check
var _ interfaces.ScanStore = (*SQLiteStore)(nil)
