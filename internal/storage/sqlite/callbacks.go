package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Newrona-pi/Twilio-mensetsu/pkg/logger"
)

// CallbackStorage handles storage of re-dial requests
type CallbackStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewCallbackStorage creates a new SQLite callback storage
func NewCallbackStorage(db *sql.DB, log *logger.Logger) (*CallbackStorage, error) {
	storage := &CallbackStorage{
		db:     db,
		logger: log.Named("sqlite-callbacks"),
	}

	if err := storage.initDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize callback storage: %w", err)
	}

	return storage, nil
}

func (s *CallbackStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS callbacks (
			id TEXT PRIMARY KEY,
			stream_sid TEXT NOT NULL,
			date TEXT NOT NULL,
			time TEXT,
			note TEXT,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create callbacks table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_callbacks_stream_sid ON callbacks(stream_sid)`,
		`CREATE INDEX IF NOT EXISTS idx_callbacks_created_at ON callbacks(created_at)`,
	}
	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create callback index: %w", err)
		}
	}

	return nil
}

// Append stores one callback record and returns its assigned ID
func (s *CallbackStorage) Append(record *CallbackRecord) (string, error) {
	id := uuid.NewString()

	_, err := s.db.Exec(
		`INSERT INTO callbacks (id, stream_sid, date, time, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		record.StreamSID,
		record.Date,
		record.Time,
		record.Note,
		record.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert callback: %w", err)
	}

	s.logger.Info("Callback saved",
		logger.String("id", id),
		logger.String("stream_sid", record.StreamSID),
		logger.String("date", record.Date))

	return id, nil
}

// List returns all callback records in creation order
func (s *CallbackStorage) List() ([]*CallbackRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, stream_sid, date, time, note, created_at
		FROM callbacks
		ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query callbacks: %w", err)
	}
	defer rows.Close()

	var records []*CallbackRecord
	for rows.Next() {
		var record CallbackRecord
		var timeSlot, note sql.NullString
		var createdAt string

		if err := rows.Scan(
			&record.ID,
			&record.StreamSID,
			&record.Date,
			&timeSlot,
			&note,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan callback: %w", err)
		}

		record.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if timeSlot.Valid {
			record.Time = timeSlot.String
		}
		if note.Valid {
			record.Note = note.String
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}
