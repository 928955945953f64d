package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyaysetu/internal/chat"
)

func TestChatStore_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO chats").
		WithArgs("How do I file an FIR?", "Visit the police station.", "en", ts).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := NewChatStore(db).Append(context.Background(), chat.Record{
		Question:  "How do I file an FIR?",
		Answer:    "Visit the police station.",
		Language:  "en",
		Timestamp: ts,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatStore_Append_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO chats").
		WillReturnError(assert.AnError)

	_, err = NewChatStore(db).Append(context.Background(), chat.Record{
		Question: "q", Answer: "a", Language: "en", Timestamp: time.Now(),
	})
	assert.Error(t, err)
}

func TestChatStore_List_NoFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "question", "answer", "language", "timestamp"}).
		AddRow(2, "q2", "a2", "hi", ts).
		AddRow(1, "q1", "a1", "en", ts.Add(-time.Hour))

	mock.ExpectQuery("SELECT id, question, answer, language, timestamp FROM chats").
		WillReturnRows(rows)

	records, err := NewChatStore(db).List(context.Background(), ChatFilter{})
	assert.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(2), records[0].ID)
	assert.Equal(t, "hi", records[0].Language)
}

func TestChatStore_List_Filtered(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, question, answer, language, timestamp FROM chats").
		WithArgs(start, "en", "%fir%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "question", "answer", "language", "timestamp"}))

	records, err := NewChatStore(db).List(context.Background(), ChatFilter{
		Start:    start,
		Language: "en",
		Query:    "fir",
	})
	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}
