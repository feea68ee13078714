package bridge

import (
	"github.com/Newrona-pi/Twilio-mensetsu/internal/storage/sqlite"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/tools"
)

// SQLiteAppointments adapts the appointment storage to the tool layer.
type SQLiteAppointments struct {
	Storage *sqlite.AppointmentStorage
}

func (s SQLiteAppointments) Append(record *tools.AppointmentRecord) (string, error) {
	return s.Storage.Append(&sqlite.AppointmentRecord{
		StreamSID: record.StreamSID,
		Date:      record.Date,
		Time:      record.Time,
		Messages:  record.Messages,
		CreatedAt: record.CreatedAt,
	})
}

// SQLiteCallbacks adapts the callback storage to the tool layer.
type SQLiteCallbacks struct {
	Storage *sqlite.CallbackStorage
}

func (s SQLiteCallbacks) Append(record *tools.CallbackRecord) (string, error) {
	return s.Storage.Append(&sqlite.CallbackRecord{
		StreamSID: record.StreamSID,
		Date:      record.Date,
		Time:      record.Time,
		Note:      record.Note,
		CreatedAt: record.CreatedAt,
	})
}
