// internal/store/forms.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// FormRecord is one generated legal form as persisted.
type FormRecord struct {
	ID        int64             `json:"id,omitempty"`
	FormType  string            `json:"form_type"`
	FormText  string            `json:"form_text"`
	Responses map[string]string `json:"responses"`
	Timestamp time.Time         `json:"timestamp"`
}

// FormStore persists generated forms in Postgres.
type FormStore struct {
	db *sql.DB
}

func NewFormStore(db *sql.DB) *FormStore {
	return &FormStore{db: db}
}

// Append inserts one form record and returns its id. The raw field
// responses are kept alongside the rendered text as JSON.
func (s *FormStore) Append(ctx context.Context, rec FormRecord) (int64, error) {
	responsesJSON, err := json.Marshal(rec.Responses)
	if err != nil {
		return 0, fmt.Errorf("marshal responses: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO forms (form_type, form_text, responses_json, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		rec.FormType, rec.FormText, string(responsesJSON), rec.Timestamp,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert form: %w", err)
	}
	return id, nil
}

// FormFilter narrows List results. Zero values mean "no constraint".
type FormFilter struct {
	Start    time.Time
	End      time.Time
	FormType string
	Query    string // substring match over form text
}

// List returns form records matching the filter, newest first.
func (s *FormStore) List(ctx context.Context, filter FormFilter) ([]FormRecord, error) {
	query := `SELECT id, form_type, form_text, responses_json, timestamp FROM forms WHERE 1=1`
	args := []interface{}{}

	if !filter.Start.IsZero() {
		args = append(args, filter.Start)
		query += fmt.Sprintf(" AND timestamp >= $%d", len(args))
	}
	if !filter.End.IsZero() {
		args = append(args, filter.End)
		query += fmt.Sprintf(" AND timestamp <= $%d", len(args))
	}
	if filter.FormType != "" {
		args = append(args, filter.FormType)
		query += fmt.Sprintf(" AND form_type = $%d", len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		query += fmt.Sprintf(" AND form_text ILIKE $%d", len(args))
	}

	query += " ORDER BY timestamp DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query forms: %w", err)
	}
	defer rows.Close()

	var records []FormRecord
	for rows.Next() {
		var rec FormRecord
		var responsesJSON string
		if err := rows.Scan(&rec.ID, &rec.FormType, &rec.FormText, &responsesJSON, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan form: %w", err)
		}
		if err := json.Unmarshal([]byte(responsesJSON), &rec.Responses); err != nil {
			rec.Responses = nil
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
