package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Newrona-pi/Twilio-mensetsu/pkg/logger"
)

// AppointmentStorage handles storage of appointment records
type AppointmentStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewAppointmentStorage creates a new SQLite appointment storage
func NewAppointmentStorage(db *sql.DB, log *logger.Logger) (*AppointmentStorage, error) {
	storage := &AppointmentStorage{
		db:     db,
		logger: log.Named("sqlite-appointments"),
	}

	if err := storage.initDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize appointment storage: %w", err)
	}

	return storage, nil
}

// initDB initializes the database tables
func (s *AppointmentStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS appointments (
			id TEXT PRIMARY KEY,
			stream_sid TEXT NOT NULL,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			messages TEXT,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create appointments table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_appointments_stream_sid ON appointments(stream_sid)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_created_at ON appointments(created_at)`,
	}
	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create appointment index: %w", err)
		}
	}

	return nil
}

// Append stores one appointment record and returns its assigned ID
func (s *AppointmentStorage) Append(record *AppointmentRecord) (string, error) {
	id := uuid.NewString()

	_, err := s.db.Exec(
		`INSERT INTO appointments (id, stream_sid, date, time, messages, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		record.StreamSID,
		record.Date,
		record.Time,
		record.Messages,
		record.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert appointment: %w", err)
	}

	s.logger.Info("Appointment saved",
		logger.String("id", id),
		logger.String("stream_sid", record.StreamSID),
		logger.String("date", record.Date),
		logger.String("time", record.Time))

	return id, nil
}

// List returns all appointment records in creation order
func (s *AppointmentStorage) List() ([]*AppointmentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, stream_sid, date, time, messages, created_at
		FROM appointments
		ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var records []*AppointmentRecord
	for rows.Next() {
		var record AppointmentRecord
		var messages sql.NullString
		var createdAt string

		if err := rows.Scan(
			&record.ID,
			&record.StreamSID,
			&record.Date,
			&record.Time,
			&messages,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}

		record.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if messages.Valid {
			record.Messages = messages.String
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}
