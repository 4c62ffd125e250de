// Package loader persists prepared report examples into Postgres for
// downstream labeling and dashboard queries.
package loader

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Report is one row destined for the report table.
type Report struct {
	SourceFile string          `json:"source_file"`
	ReportText string          `json:"report_text"`
	SchemaJSON json.RawMessage `json:"schema_json"`
}

// DB wraps the pgx pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New opens a connection pool against the given DSN and verifies it.
func New(ctx context.Context, dsn string) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// Close releases the pool.
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS report (
	id          BIGSERIAL PRIMARY KEY,
	source_file TEXT NOT NULL,
	report_text TEXT NOT NULL,
	schema_json JSONB,
	loaded_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema creates the report table when absent.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// LoadReports batch-inserts the reports and returns the number of rows
// written.
func (db *DB) LoadReports(ctx context.Context, reports []Report) (int64, error) {
	batch := &pgx.Batch{}
	for _, r := range reports {
		schema := r.SchemaJSON
		if len(schema) == 0 {
			schema = json.RawMessage("{}")
		}
		batch.Queue(
			"INSERT INTO report (source_file, report_text, schema_json) VALUES ($1, $2, $3)",
			r.SourceFile, r.ReportText, schema,
		)
	}

	br := db.Pool.SendBatch(ctx, batch)
	defer br.Close()

	var inserted int64
	for range reports {
		tag, err := br.Exec()
		if err != nil {
			return inserted, fmt.Errorf("insert report: %w", err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

// ReadReportsFile decodes a JSON Lines file of prepared examples into
// loadable rows. The source file name is recorded on every row.
func ReadReportsFile(path string) ([]Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var reports []Report
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var r Report
		if err := json.Unmarshal([]byte(text), &r); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		r.SourceFile = path
		reports = append(reports, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return reports, nil
}
