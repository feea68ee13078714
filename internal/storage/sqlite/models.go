package sqlite

import "time"

// AppointmentRecord is one confirmed interview appointment.
// Records are append-only: there is no update or delete path.
type AppointmentRecord struct {
	ID        string    `json:"id"`
	StreamSID string    `json:"stream_sid"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM
	Messages  string    `json:"messages,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CallbackRecord is one requested re-dial when the caller had no time
type CallbackRecord struct {
	ID        string    `json:"id"`
	StreamSID string    `json:"stream_sid"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
