// internal/store/chats.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nyaysetu/internal/chat"
)

// ChatStore persists resolved chat turns in Postgres. It implements
// chat.RecordSink; inserts are append-only and records are never updated
// or deleted.
type ChatStore struct {
	db *sql.DB
}

func NewChatStore(db *sql.DB) *ChatStore {
	return &ChatStore{db: db}
}

// Append inserts one chat record and returns its id.
func (s *ChatStore) Append(ctx context.Context, rec chat.Record) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO chats (question, answer, language, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		rec.Question, rec.Answer, rec.Language, rec.Timestamp,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert chat: %w", err)
	}
	return id, nil
}

// ChatFilter narrows List results. Zero values mean "no constraint".
type ChatFilter struct {
	Start    time.Time
	End      time.Time
	Language string
	Query    string // substring match over question and answer
}

// List returns chat records matching the filter, newest first.
func (s *ChatStore) List(ctx context.Context, filter ChatFilter) ([]chat.Record, error) {
	query := `SELECT id, question, answer, language, timestamp FROM chats WHERE 1=1`
	args := []interface{}{}

	if !filter.Start.IsZero() {
		args = append(args, filter.Start)
		query += fmt.Sprintf(" AND timestamp >= $%d", len(args))
	}
	if !filter.End.IsZero() {
		args = append(args, filter.End)
		query += fmt.Sprintf(" AND timestamp <= $%d", len(args))
	}
	if filter.Language != "" {
		args = append(args, filter.Language)
		query += fmt.Sprintf(" AND language = $%d", len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		query += fmt.Sprintf(" AND (question ILIKE $%d OR answer ILIKE $%d)", len(args), len(args))
	}

	query += " ORDER BY timestamp DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chats: %w", err)
	}
	defer rows.Close()

	var records []chat.Record
	for rows.Next() {
		var rec chat.Record
		if err := rows.Scan(&rec.ID, &rec.Question, &rec.Answer, &rec.Language, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
