package results

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/klejdi94/simscore/core"
	"github.com/lib/pq"
)

const defaultTableName = "similarity_results"

// PostgresWriter stores one row per item (id, position, source text, JSONB result).
// Each Write replaces the table contents with the given result set in one transaction.
type PostgresWriter struct {
	db    *sql.DB
	table string
}

// NewPostgresWriter creates a writer using db (driver "postgres"). The table is created if it doesn't exist.
func NewPostgresWriter(ctx context.Context, db *sql.DB, table string) (*PostgresWriter, error) {
	if table == "" {
		table = defaultTableName
	}
	w := &PostgresWriter{db: db, table: table}
	if err := w.migrate(ctx); err != nil {
		return nil, fmt.Errorf("postgres results: %w", err)
	}
	return w, nil
}

func (w *PostgresWriter) migrate(ctx context.Context) error {
	q := `CREATE TABLE IF NOT EXISTS ` + w.table + ` (
		item_id TEXT PRIMARY KEY,
		position INT NOT NULL,
		source_text TEXT NOT NULL,
		result JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	_, err := w.db.ExecContext(ctx, q)
	return err
}

// Location returns the table name.
func (w *PostgresWriter) Location() string {
	return "postgres table " + w.table
}

// Write implements Writer.
func (w *PostgresWriter) Write(ctx context.Context, rs core.ResultSet) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres results: %w", err)
	}
	defer tx.Rollback()

	upsert := `INSERT INTO ` + w.table + ` (item_id, position, source_text, result, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (item_id) DO UPDATE SET
			position = EXCLUDED.position, source_text = EXCLUDED.source_text,
			result = EXCLUDED.result, updated_at = EXCLUDED.updated_at`
	ids := rs.Keys()
	if ids == nil {
		ids = []string{}
	}
	for i, id := range ids {
		res, _ := rs.Get(id)
		data, err := marshal(res)
		if err != nil {
			return fmt.Errorf("postgres results encode %q: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, upsert, id, i, res.SourceText, data); err != nil {
			return fmt.Errorf("postgres results %q: %w", id, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+w.table+` WHERE NOT (item_id = ANY($1))`, pq.Array(ids)); err != nil {
		return fmt.Errorf("postgres results prune: %w", err)
	}
	return tx.Commit()
}
