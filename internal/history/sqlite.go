package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS recommendation_history (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	session_id   TEXT NOT NULL DEFAULT '',
	product_id   TEXT NOT NULL,
	name         TEXT NOT NULL DEFAULT '',
	brand        TEXT NOT NULL DEFAULT '',
	score        REAL NOT NULL,
	reasoning    TEXT NOT NULL DEFAULT '',
	rank         INTEGER NOT NULL,
	generated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_user ON recommendation_history(user_id, generated_at);
`

// SQLite stores history in a table next to the session table. Timestamps
// are unix nanoseconds.
type SQLite struct {
	db *sql.DB
}

// NewSQLite applies the schema to an open database.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, errx.New(errx.KindStorage, "apply history schema", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Append(ctx context.Context, records []models.RecommendationRecord) error {
	if err := checkRecords(records); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errx.WrapSQL(err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range records {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recommendation_history
				(id, user_id, session_id, product_id, name, brand, score, reasoning, rank, generated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID.String(), r.UserID, r.SessionID, r.ProductID, r.Name, r.Brand,
			r.Score, r.Reasoning, r.Rank, r.GeneratedAt.UnixNano())
		if err != nil {
			return errx.WrapSQL(err)
		}
	}
	return errx.WrapSQL(tx.Commit())
}

func (s *SQLite) ForUser(ctx context.Context, userID string, limit int) ([]models.RecommendationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, product_id, name, brand, score, reasoning, rank, generated_at
		FROM recommendation_history
		WHERE user_id = ?
		ORDER BY generated_at DESC, rank ASC
		LIMIT ?`, userID, normalizeLimit(limit))
	if err != nil {
		return nil, errx.WrapSQL(err)
	}
	defer rows.Close()

	var out []models.RecommendationRecord
	for rows.Next() {
		var (
			r         = models.RecommendationRecord{UserID: userID}
			id        string
			generated int64
		)
		if err := rows.Scan(&id, &r.SessionID, &r.ProductID, &r.Name, &r.Brand,
			&r.Score, &r.Reasoning, &r.Rank, &generated); err != nil {
			return nil, errx.WrapSQL(err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, errx.New(errx.KindStorage, "decode history id", err)
		}
		r.GeneratedAt = time.Unix(0, generated).UTC()
		r.CreatedAt, r.UpdatedAt = r.GeneratedAt, r.GeneratedAt
		out = append(out, r)
	}
	return out, errx.WrapSQL(rows.Err())
}
