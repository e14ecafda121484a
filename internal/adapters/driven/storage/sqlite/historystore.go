// Package sqlite provides the SQLite-backed chat history store.
// History belongs to the chat front-end alone; the coordinator never
// reads it and no history is fed back into planning or answering.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	context    TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL
);
`

// HistoryStore is a SQLite-backed implementation of driven.HistoryStore.
type HistoryStore struct {
	db   *sql.DB
	path string
}

// NewHistoryStore creates a history store at the specified data
// directory. If dataDir is empty, defaults to ~/.askdoc/data/history.db.
func NewHistoryStore(dataDir string) (*HistoryStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".askdoc", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// WAL mode for better concurrency between readers and the writer
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &HistoryStore{db: db, path: dbPath}, nil
}

// Append records a message at the end of the conversation.
func (s *HistoryStore) Append(ctx context.Context, msg domain.Message) error {
	contextJSON, err := json.Marshal(msg.Context)
	if err != nil {
		return fmt.Errorf("encoding context: %w", err)
	}

	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO messages (id, role, content, context, created_at) VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.Role, msg.Content, string(contextJSON), createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

// Recent returns up to limit most recent messages in insertion order.
// A user/assistant exchange shares one timestamp, so rowid is the only
// ordering that keeps the question ahead of its answer.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, role, content, context, created_at FROM (
			SELECT rowid, id, role, content, context, created_at
			FROM messages ORDER BY rowid DESC LIMIT ?
		) ORDER BY rowid ASC`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var contextJSON string
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &contextJSON, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		if err := json.Unmarshal([]byte(contextJSON), &msg.Context); err != nil {
			return nil, fmt.Errorf("decoding context: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}
	return messages, nil
}

// Clear removes all stored messages.
func (s *HistoryStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("clearing messages: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *HistoryStore) Path() string {
	return s.path
}
