package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/disasternet/relay/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	msg_id     TEXT NOT NULL,
	kind       TEXT NOT NULL,
	sender     TEXT NOT NULL,
	text       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(created_at);
`

// Log implements store.MessageLog on SQLite. The gateway keeps its message
// log here when a database path is configured, so the log survives restarts.
type Log struct {
	db *sql.DB
}

// New opens (and if needed creates) the message log at dbPath.
// Use ":memory:" for an ephemeral database.
func New(dbPath string) (*Log, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &Log{db: db}, nil
}

// Close closes the database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

// Append inserts a message and returns its row id.
func (l *Log) Append(ctx context.Context, msg store.Message) (int64, error) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO messages (msg_id, kind, sender, text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := l.db.ExecContext(ctx, query, msg.MsgID, msg.Kind, msg.Sender, msg.Text, msg.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	return id, nil
}

// List returns messages in append order, keeping only the most recent limit
// entries when limit is positive.
func (l *Log) List(ctx context.Context, limit int) ([]store.Message, error) {
	query := `
		SELECT id, msg_id, kind, sender, text, created_at
		FROM messages
		ORDER BY id
	`
	if limit > 0 {
		query = fmt.Sprintf(`
			SELECT id, msg_id, kind, sender, text, created_at
			FROM (
				SELECT id, msg_id, kind, sender, text, created_at
				FROM messages ORDER BY id DESC LIMIT %d
			) ORDER BY id
		`, limit)
	}

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var msgs []store.Message
	for rows.Next() {
		var m store.Message
		if err := rows.Scan(&m.ID, &m.MsgID, &m.Kind, &m.Sender, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return msgs, nil
}

// Clear deletes every message from the log.
func (l *Log) Clear(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	return nil
}
