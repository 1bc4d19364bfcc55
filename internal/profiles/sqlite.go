package profiles

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	stage      TEXT NOT NULL,
	profile    TEXT NOT NULL,
	archetype  TEXT NOT NULL DEFAULT '',
	lifestyle  TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
`

// SQLite stores sessions in a single table. Timestamps are unix nanoseconds.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema. ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, errx.New(errx.KindStorage, "create database directory", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errx.New(errx.KindStorage, "open sqlite", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s, err := NewSQLite(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLite wraps an open database and applies the schema.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, errx.New(errx.KindStorage, "apply sqlite schema", err)
	}
	return &SQLite{db: db, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, stage, profile, archetype, lifestyle, created_at, updated_at
		FROM sessions WHERE id = ?`, id.String())

	var (
		session          = models.Session{BaseModel: models.BaseModel{ID: id}}
		profile          []byte
		created, updated int64
	)
	err := row.Scan(&session.UserID, &session.Stage, &profile,
		&session.Archetype, &session.Lifestyle, &created, &updated)
	if err != nil {
		return nil, errx.WrapSQL(err)
	}
	if err := json.Unmarshal(profile, &session.Profile); err != nil {
		return nil, errx.New(errx.KindStorage, "decode profile", err)
	}
	session.CreatedAt = time.Unix(0, created).UTC()
	session.UpdatedAt = time.Unix(0, updated).UTC()
	return &session, nil
}

func (s *SQLite) Put(ctx context.Context, session *models.Session) error {
	if err := checkSession(session); err != nil {
		return err
	}

	profile, err := json.Marshal(session.Profile)
	if err != nil {
		return errx.New(errx.KindInternal, "encode profile", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, stage, profile, archetype, lifestyle, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			stage = excluded.stage,
			profile = excluded.profile,
			archetype = excluded.archetype,
			lifestyle = excluded.lifestyle,
			updated_at = excluded.updated_at`,
		session.ID.String(), session.UserID, string(session.Stage), string(profile),
		session.Archetype, session.Lifestyle,
		session.CreatedAt.UnixNano(), session.UpdatedAt.UnixNano())
	return errx.WrapSQL(err)
}

func (s *SQLite) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id.String())
	return errx.WrapSQL(err)
}

func (s *SQLite) DeleteExpired(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := s.now().Add(-ttl).UnixNano()

	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, errx.WrapSQL(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errx.New(errx.KindStorage, "rows affected", err)
	}
	return int(n), nil
}

// DB exposes the underlying database so other tables can share the file.
func (s *SQLite) DB() *sql.DB {
	return s.db
}
