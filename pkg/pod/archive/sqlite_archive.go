package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/loopholelabs/podcomm/pkg/pod/transcript"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS transcripts (
	id         TEXT PRIMARY KEY,
	address    INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	data       BLOB NOT NULL
)`

// SQLiteArchive stores transcripts in a local SQLite database.
type SQLiteArchive struct {
	sqlDB *sql.DB
}

func NewSQLiteArchive(path string) (*SQLiteArchive, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteArchive{sqlDB: sqlDB}, nil
}

func (sa *SQLiteArchive) Put(ctx context.Context, t *transcript.Transcript) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := sa.sqlDB.ExecContext(ctx,
		`INSERT OR REPLACE INTO transcripts (id, address, created_at, data) VALUES (?, ?, ?, ?)`,
		t.ID.String(),
		int64(t.Address),
		t.Created.UTC().UnixMilli(),
		t.Bytes(),
	)
	if err != nil {
		return fmt.Errorf("put transcript %s: %w", t.ID, err)
	}
	return nil
}

func (sa *SQLiteArchive) Get(ctx context.Context, id uuid.UUID) (*transcript.Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var address int64
	var created int64
	var data []byte
	err := sa.sqlDB.QueryRowContext(ctx,
		`SELECT address, created_at, data FROM transcripts WHERE id = ?`,
		id.String(),
	).Scan(&address, &created, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transcript %s: %w", id, err)
	}
	return transcript.FromBytes(id, uint32(address), time.UnixMilli(created).UTC(), data)
}

func (sa *SQLiteArchive) List(ctx context.Context) ([]uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := sa.sqlDB.QueryContext(ctx, `SELECT id FROM transcripts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan transcript id: %w", err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse transcript id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (sa *SQLiteArchive) Close() error {
	if sa == nil || sa.sqlDB == nil {
		return nil
	}
	return sa.sqlDB.Close()
}
