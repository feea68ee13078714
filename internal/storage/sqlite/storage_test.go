package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Newrona-pi/Twilio-mensetsu/pkg/logger"
)

func openTestDB(t *testing.T) (*AppointmentStorage, *CallbackStorage) {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	appts, err := NewAppointmentStorage(db, logger.Nop())
	if err != nil {
		t.Fatalf("NewAppointmentStorage failed: %v", err)
	}
	cbs, err := NewCallbackStorage(db, logger.Nop())
	if err != nil {
		t.Fatalf("NewCallbackStorage failed: %v", err)
	}
	return appts, cbs
}

func TestAppointmentAppendAndList(t *testing.T) {
	appts, _ := openTestDB(t)

	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	records := []*AppointmentRecord{
		{StreamSID: "MZ1", Date: "2025-06-13", Time: "13:00", Messages: "駐車場の有無を確認したい", CreatedAt: base},
		{StreamSID: "MZ2", Date: "2025-06-16", Time: "10:00", CreatedAt: base.Add(time.Minute)},
	}

	for _, r := range records {
		id, err := appts.Append(r)
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if id == "" {
			t.Fatal("Append returned empty id")
		}
	}

	got, err := appts.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d records, want 2", len(got))
	}
	if got[0].StreamSID != "MZ1" || got[1].StreamSID != "MZ2" {
		t.Errorf("records out of creation order: %s, %s", got[0].StreamSID, got[1].StreamSID)
	}
	if got[0].Messages != "駐車場の有無を確認したい" {
		t.Errorf("Messages = %q, want original text", got[0].Messages)
	}
	if !got[0].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", got[0].CreatedAt, base)
	}
}

func TestCallbackAppendAndList(t *testing.T) {
	_, cbs := openTestDB(t)

	id, err := cbs.Append(&CallbackRecord{
		StreamSID: "MZ3",
		Date:      "2025-06-12",
		Time:      "18:00",
		Note:      "夕方以降なら可",
		CreatedAt: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := cbs.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List returned %d records, want 1", len(got))
	}
	if got[0].ID != id {
		t.Errorf("ID = %q, want %q", got[0].ID, id)
	}
	if got[0].Note != "夕方以降なら可" {
		t.Errorf("Note = %q", got[0].Note)
	}
}

func TestEmptyListIsNotAnError(t *testing.T) {
	appts, cbs := openTestDB(t)

	if got, err := appts.List(); err != nil || len(got) != 0 {
		t.Errorf("appointments List() = %v, %v; want empty, nil", got, err)
	}
	if got, err := cbs.List(); err != nil || len(got) != 0 {
		t.Errorf("callbacks List() = %v, %v; want empty, nil", got, err)
	}
}
