// Package postgres mirrors the canonical collections into a local Postgres
// database for reporting and other local consumers. The mirror is
// replace-style and never a source of truth: every write reflects state the
// remote backend already confirmed.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

type Mirror struct {
	db *sql.DB
}

func NewMirror(db *sql.DB) *Mirror {
	return &Mirror{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (m *Mirror) EnsureSchema(ctx context.Context) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across concurrent daemon startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026090101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS mirror_documents (
	id TEXT PRIMARY KEY,
	file_name TEXT NOT NULL,
	file_type TEXT,
	file_size BIGINT NOT NULL DEFAULT 0,
	entity_id TEXT,
	processing_status TEXT NOT NULL,
	processing_progress INTEGER NOT NULL DEFAULT 0,
	processing_error TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	mirrored_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS mirror_entities (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	kind TEXT NOT NULL,
	phone TEXT,
	pan TEXT,
	gst_number TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	mirrored_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS mirror_deadlines (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	due_date TIMESTAMPTZ NOT NULL,
	priority TEXT NOT NULL,
	status TEXT NOT NULL,
	document_id TEXT NOT NULL,
	mirrored_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mirror_deadlines_due ON mirror_deadlines(due_date);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// MirrorDocuments replaces the document mirror inside one transaction, so
// readers never observe a half-applied sync.
func (m *Mirror) MirrorDocuments(ctx context.Context, docs []domain.Document) error {
	return m.replace(ctx, "mirror_documents", func(tx *sql.Tx, now time.Time) error {
		for _, doc := range docs {
			_, err := tx.ExecContext(ctx, `
INSERT INTO mirror_documents (
	id, file_name, file_type, file_size, entity_id, processing_status, processing_progress, processing_error, created_at, mirrored_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`,
				doc.ID, doc.FileName, doc.FileType, doc.FileSize, doc.EntityID,
				string(doc.ProcessingStatus), doc.ProcessingProgress, doc.ProcessingError, doc.CreatedAt, now,
			)
			if err != nil {
				return fmt.Errorf("insert mirror document: %w", err)
			}
		}
		return nil
	})
}

func (m *Mirror) MirrorEntities(ctx context.Context, entities []domain.Entity) error {
	return m.replace(ctx, "mirror_entities", func(tx *sql.Tx, now time.Time) error {
		for _, entity := range entities {
			_, err := tx.ExecContext(ctx, `
INSERT INTO mirror_entities (id, name, kind, phone, pan, gst_number, created_at, mirrored_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`,
				entity.ID, entity.Name, string(entity.Kind), entity.Phone, entity.PAN, entity.GSTNumber, entity.CreatedAt, now,
			)
			if err != nil {
				return fmt.Errorf("insert mirror entity: %w", err)
			}
		}
		return nil
	})
}

func (m *Mirror) MirrorDeadlines(ctx context.Context, deadlines []domain.Deadline) error {
	return m.replace(ctx, "mirror_deadlines", func(tx *sql.Tx, now time.Time) error {
		for _, deadline := range deadlines {
			_, err := tx.ExecContext(ctx, `
INSERT INTO mirror_deadlines (id, title, description, due_date, priority, status, document_id, mirrored_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`,
				deadline.ID, deadline.Title, deadline.Description, deadline.DueDate,
				string(deadline.Priority), string(deadline.Status), deadline.DocumentID, now,
			)
			if err != nil {
				return fmt.Errorf("insert mirror deadline: %w", err)
			}
		}
		return nil
	})
}

func (m *Mirror) replace(ctx context.Context, table string, insert func(*sql.Tx, time.Time) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mirror tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err := insert(tx, time.Now().UTC()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mirror tx: %w", err)
	}
	return nil
}
